package errors_test

import (
	"errors"
	"fmt"
	"testing"

	allocerrors "github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessagesIdentifyLocation(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"validation_date_room": {
			err:  &allocerrors.ValidationError{Date: "2024-03-08", Room: "101", Reason: "duplicate room"},
			want: "invalid configuration for 2024-03-08 room 101: duplicate room",
		},
		"validation_date": {
			err:  &allocerrors.ValidationError{Date: "2024-03-08", Reason: "missing rooms configuration"},
			want: "invalid configuration for 2024-03-08: missing rooms configuration",
		},
		"validation_bare": {
			err:  &allocerrors.ValidationError{Reason: "configuration is not an object"},
			want: "invalid configuration: configuration is not an object",
		},
		"storage": {
			err:  &allocerrors.StorageError{Op: "save", Key: "2024-03-08", Err: fmt.Errorf("disk full")},
			want: "storage save 2024-03-08: disk full",
		},
		"schema": {
			err:  &allocerrors.InputSchemaError{Date: "2024-03-08", Room: "101", Field: "room_no", Err: allocerrors.ErrEmptyName},
			want: "bad input for 2024-03-08 room 101 (field room_no): empty name",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestErrorsUnwrap(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &allocerrors.InputSchemaError{Field: "staff_gender", Err: allocerrors.ErrInvalidGender})
	assert.True(t, errors.Is(err, allocerrors.ErrInvalidGender))

	var schemaErr *allocerrors.InputSchemaError
	assert.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "staff_gender", schemaErr.Field)

	storageErr := &allocerrors.StorageError{Op: "load", Err: allocerrors.ErrHallNotFound}
	assert.True(t, errors.Is(storageErr, allocerrors.ErrHallNotFound))
}
