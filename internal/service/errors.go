package service

import (
	"errors"
	"fmt"
)

// ErrDefaultFolder rejects deleting the reserved folder
var ErrDefaultFolder = errors.New("cannot delete the default folder")

// MalformedImportError is returned when an imported notes file cannot be parsed.
// The existing notes are left untouched.
type MalformedImportError struct {
	Err error
}

func (e *MalformedImportError) Error() string {
	return fmt.Sprintf("failed to import notes: invalid file: %v", e.Err)
}

func (e *MalformedImportError) Unwrap() error { return e.Err }

// SettingError reports an invalid settings value
type SettingError struct {
	Field Field
	Value string
	Msg   string
}

func (e *SettingError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Field, e.Msg)
}
