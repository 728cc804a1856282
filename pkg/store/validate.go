package store

import (
	"encoding/json"
	"fmt"
	"strings"

	allocerrors "github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/errors"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
)

var (
	roomFields    = []string{"room_no", "girls_only", "single_staff"}
	settingFields = []string{"reporting_time", "assessment_name", "exam_time", "exam_details"}
)

// ValidateJSON checks the shape of a raw date configuration. It only
// reports problems; callers decide whether to refuse the config.
func ValidateJSON(date string, data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return &allocerrors.ValidationError{Date: date, Reason: "malformed JSON: " + err.Error(), Err: allocerrors.ErrNotRecord}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return invalid(date, "", allocerrors.ErrNotRecord)
	}

	roomsRaw, ok := obj["rooms"]
	if !ok {
		return invalid(date, "", allocerrors.ErrMissingRooms)
	}
	settingsRaw, ok := obj["settings"]
	if !ok {
		return invalid(date, "", allocerrors.ErrMissingSettings)
	}

	rooms, ok := roomsRaw.([]any)
	if !ok {
		return &allocerrors.ValidationError{Date: date, Reason: "rooms must be a list", Err: allocerrors.ErrMissingRooms}
	}
	for i, r := range rooms {
		room, ok := r.(map[string]any)
		if !ok {
			return &allocerrors.ValidationError{
				Date:   date,
				Reason: fmt.Sprintf("room %d is not an object", i),
				Err:    allocerrors.ErrMissingRoomField,
			}
		}
		if missing := missingKeys(room, roomFields); len(missing) > 0 {
			return &allocerrors.ValidationError{
				Date:   date,
				Room:   roomLabel(room, i),
				Reason: fmt.Sprintf("%v: %s", allocerrors.ErrMissingRoomField, strings.Join(missing, ", ")),
				Err:    allocerrors.ErrMissingRoomField,
			}
		}
	}

	settings, ok := settingsRaw.(map[string]any)
	if !ok {
		return invalid(date, "", allocerrors.ErrMissingSettings)
	}
	if missing := missingKeys(settings, settingFields); len(missing) > 0 {
		return &allocerrors.ValidationError{
			Date:   date,
			Reason: fmt.Sprintf("%v: %s", allocerrors.ErrMissingSetting, strings.Join(missing, ", ")),
			Err:    allocerrors.ErrMissingSetting,
		}
	}
	return nil
}

// DecodeConfig validates data and decodes it into a DateConfig.
func DecodeConfig(date string, data []byte) (models.DateConfig, error) {
	if err := ValidateJSON(date, data); err != nil {
		return models.DateConfig{}, err
	}
	var cfg models.DateConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return models.DateConfig{}, &allocerrors.ValidationError{Date: date, Reason: err.Error(), Err: allocerrors.ErrNotRecord}
	}
	if err := Validate(date, cfg); err != nil {
		return models.DateConfig{}, err
	}
	return cfg, nil
}

// Validate checks a typed config: every room needs a number and room
// numbers are unique within the date.
func Validate(date string, cfg models.DateConfig) error {
	seen := make(map[string]bool, len(cfg.Rooms))
	for i, room := range cfg.Rooms {
		no := strings.TrimSpace(room.RoomNo)
		if no == "" {
			return &allocerrors.ValidationError{
				Date:   date,
				Reason: fmt.Sprintf("room %d has an empty room_no", i),
				Err:    allocerrors.ErrMissingRoomField,
			}
		}
		if seen[no] {
			return invalid(date, no, allocerrors.ErrDuplicateRoom)
		}
		seen[no] = true
	}
	return nil
}

func invalid(date, room string, err error) error {
	return &allocerrors.ValidationError{Date: date, Room: room, Reason: err.Error(), Err: err}
}

func missingKeys(obj map[string]any, keys []string) []string {
	var missing []string
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

func roomLabel(room map[string]any, i int) string {
	if no, ok := room["room_no"].(string); ok && no != "" {
		return no
	}
	return fmt.Sprintf("#%d", i)
}
