//go:build !windows

package mediatool

// RefreshPath is a no-op outside Windows
func RefreshPath() error {
	return ErrRefreshUnsupported
}
