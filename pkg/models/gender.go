package models

import (
	"fmt"
	"strings"
)

// Gender is stored the way the staff sheet abbreviates it.
type Gender string

const (
	Male   Gender = "M"
	Female Gender = "F"
)

// ParseGender normalizes free-form sheet values. Anything that is not a
// recognised male or female spelling is an error.
func ParseGender(raw string) (Gender, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "M", "MALE", "MR":
		return Male, nil
	case "F", "FEMALE", "MS", "MRS":
		return Female, nil
	}
	return "", fmt.Errorf("unrecognised gender %q", raw)
}

// Valid reports whether g is one of the normalized values.
func (g Gender) Valid() bool {
	return g == Male || g == Female
}
