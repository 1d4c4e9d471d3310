package ui

import (
	"errors"

	"github.com/ytget/youtomp3/internal/controller"
)

var errorTexts = []struct {
	err error
	key string
}{
	{controller.ErrEmptyURL, KeyErrEmptyURL},
	{controller.ErrPathNotFound, KeyErrPathNotFound},
	{controller.ErrAlreadyRunning, KeyErrAlreadyRunning},
	{controller.ErrNoHistory, KeyErrNoHistory},
}

// dialogError replaces known controller errors with their localized wording
func (l *Localization) dialogError(err error) error {
	for _, et := range errorTexts {
		if errors.Is(err, et.err) {
			return errors.New(l.GetText(et.key))
		}
	}
	return err
}
