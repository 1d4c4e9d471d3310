//go:build windows

package mediatool

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows/registry"
)

const (
	machineEnvironmentKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`
	userEnvironmentKey    = `Environment`
	pathValueName         = "PATH"
)

// RefreshPath rebuilds the process PATH from the machine and user registry values,
// picking up installs made after the process started.
func RefreshPath() error {
	machinePath, err := readRegistryPath(registry.LOCAL_MACHINE, machineEnvironmentKey)
	if err != nil {
		return fmt.Errorf("failed to read machine PATH: %w", err)
	}

	// a missing user PATH is normal
	userPath, _ := readRegistryPath(registry.CURRENT_USER, userEnvironmentKey)

	return os.Setenv(pathValueName, machinePath+";"+userPath)
}

func readRegistryPath(root registry.Key, path string) (string, error) {
	k, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer k.Close()

	value, _, err := k.GetStringValue(pathValueName)
	if err != nil {
		return "", err
	}
	return registry.ExpandString(value)
}
