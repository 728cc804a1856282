package errors

import "fmt"

// ValidationError reports a structurally incomplete date configuration.
type ValidationError struct {
	Date   string
	Room   string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	switch {
	case e.Date != "" && e.Room != "":
		return fmt.Sprintf("invalid configuration for %s room %s: %s", e.Date, e.Room, e.Reason)
	case e.Date != "":
		return fmt.Sprintf("invalid configuration for %s: %s", e.Date, e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StorageError wraps a failed read or write against a backing store.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// InputSchemaError is a staff or requirement record the allocator cannot use.
type InputSchemaError struct {
	Date  string
	Room  string
	Field string
	Err   error
}

func (e *InputSchemaError) Error() string {
	where := e.Date
	if e.Room != "" {
		where += " room " + e.Room
	}
	return fmt.Sprintf("bad input for %s (field %s): %v", where, e.Field, e.Err)
}

func (e *InputSchemaError) Unwrap() error {
	return e.Err
}

var (
	ErrNotRecord        = fmt.Errorf("configuration is not an object")
	ErrMissingRooms     = fmt.Errorf("missing rooms configuration")
	ErrMissingSettings  = fmt.Errorf("missing settings configuration")
	ErrMissingRoomField = fmt.Errorf("room is missing a required field")
	ErrMissingSetting   = fmt.Errorf("missing required settings")
	ErrDuplicateRoom    = fmt.Errorf("duplicate room")
	ErrEmptyName        = fmt.Errorf("empty name")
	ErrInvalidGender    = fmt.Errorf("invalid gender")
	ErrInvalidDate      = fmt.Errorf("invalid date")
	ErrHallExists       = fmt.Errorf("hall already exists")
	ErrHallNotFound     = fmt.Errorf("hall not found")
	ErrRoomExists       = fmt.Errorf("room already exists")
	ErrRoomNotFound     = fmt.Errorf("room not found")
)
