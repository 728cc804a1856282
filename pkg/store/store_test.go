package store_test

import (
	"context"
	"errors"
	"testing"

	allocerrors "github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/errors"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/models"
	"github.com/Eashwar-Kumar-T/Staff-Allotment-App/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDisk = errors.New("disk unavailable")

type memoryBackend struct {
	configs    map[string]models.DateConfig
	exclusions []string
	saves      int
	failSave   bool
	failLoad   bool
}

func (m *memoryBackend) LoadConfigs(context.Context) (map[string]models.DateConfig, error) {
	if m.failLoad {
		return nil, errDisk
	}
	return m.configs, nil
}

func (m *memoryBackend) SaveConfigs(_ context.Context, configs map[string]models.DateConfig) error {
	if m.failSave {
		return errDisk
	}
	m.saves++
	m.configs = make(map[string]models.DateConfig, len(configs))
	for k, v := range configs {
		m.configs[k] = v.Clone()
	}
	return nil
}

func (m *memoryBackend) LoadExclusions(context.Context) ([]string, error) {
	if m.failLoad {
		return nil, errDisk
	}
	return m.exclusions, nil
}

func (m *memoryBackend) SaveExclusions(_ context.Context, names []string) error {
	if m.failSave {
		return errDisk
	}
	m.saves++
	m.exclusions = append([]string(nil), names...)
	return nil
}

func sampleConfig() models.DateConfig {
	return models.DateConfig{
		Rooms: []models.RoomRequirement{
			{RoomNo: "101", GirlsOnly: true, SingleStaff: true},
			{RoomNo: "102"},
		},
		Settings: models.Settings{
			ReportingTime:  "09:00",
			AssessmentName: "CAT 1",
			ExamTime:       "09:30 - 11:00",
			ExamDetails:    "Odd semester",
		},
	}
}

func TestConfigStore_GetUnsetDateReturnsDefault(t *testing.T) {
	backend := &memoryBackend{}
	s := store.NewConfigStore(backend, nil)

	first := s.Get("2024-03-08")
	second := s.Get("2024-03-08")

	assert.Equal(t, models.DefaultDateConfig(), first)
	assert.Equal(t, first, second)
	assert.NotNil(t, first.Rooms)
	assert.Empty(t, s.ListDates(), "Get must not create entries")
	assert.Zero(t, backend.saves)
}

func TestConfigStore_SetGetRoundTrip(t *testing.T) {
	backend := &memoryBackend{}
	s := store.NewConfigStore(backend, nil)
	ctx := context.Background()

	cfg := sampleConfig()
	require.NoError(t, s.Set(ctx, "2024-03-08", cfg))
	assert.Equal(t, cfg, s.Get("2024-03-08"))
	assert.Equal(t, cfg, backend.configs["2024-03-08"])

	// Mutating the returned value must not leak into the store.
	got := s.Get("2024-03-08")
	got.Rooms[0].RoomNo = "999"
	assert.Equal(t, "101", s.Get("2024-03-08").Rooms[0].RoomNo)

	// A later save replaces the entry wholesale.
	require.NoError(t, s.Set(ctx, "2024-03-08", models.DateConfig{}))
	assert.Empty(t, s.Get("2024-03-08").Rooms)
	assert.Equal(t, models.Settings{}, s.Get("2024-03-08").Settings)
}

func TestConfigStore_SetFailureKeepsMemory(t *testing.T) {
	backend := &memoryBackend{failSave: true}
	s := store.NewConfigStore(backend, nil)

	err := s.Set(context.Background(), "2024-03-08", sampleConfig())
	require.Error(t, err)

	var storageErr *allocerrors.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "2024-03-08", storageErr.Key)
	assert.ErrorIs(t, err, errDisk)

	assert.Equal(t, sampleConfig(), s.Get("2024-03-08"))
	assert.Nil(t, backend.configs)
}

func TestConfigStore_ListDatesSorted(t *testing.T) {
	s := store.NewConfigStore(&memoryBackend{}, nil)
	ctx := context.Background()
	for _, d := range []string{"2024-03-11", "2024-02-29", "2024-03-08"} {
		require.NoError(t, s.Set(ctx, d, models.DateConfig{}))
	}
	assert.Equal(t, []string{"2024-02-29", "2024-03-08", "2024-03-11"}, s.ListDates())
}

func TestConfigStore_ClearPersistsEmptyState(t *testing.T) {
	backend := &memoryBackend{}
	s := store.NewConfigStore(backend, nil)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "2024-03-08", sampleConfig()))
	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.ListDates())
	assert.Empty(t, backend.configs)
}

func TestConfigStore_LoadAndReset(t *testing.T) {
	backend := &memoryBackend{configs: map[string]models.DateConfig{"2024-03-08": sampleConfig()}}
	s := store.NewConfigStore(backend, nil)
	ctx := context.Background()

	require.NoError(t, s.Load(ctx))
	assert.Equal(t, sampleConfig(), s.Get("2024-03-08"))

	require.NoError(t, s.Reset(ctx, []string{"2024-04-01", "2024-04-02"}))
	assert.Equal(t, []string{"2024-04-01", "2024-04-02"}, s.ListDates())
	assert.Equal(t, models.DefaultDateConfig(), s.Get("2024-04-01"))

	backend.failLoad = true
	err := s.Load(ctx)
	require.Error(t, err)
	assert.Empty(t, s.ListDates())
}

func TestConfigStore_Configure(t *testing.T) {
	s := store.NewConfigStore(&memoryBackend{}, nil)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "2024-03-08", sampleConfig()))
	rooms := []models.RoomRequirement{{RoomNo: "201"}}
	require.NoError(t, s.Configure(ctx, []string{"2024-03-08", "2024-03-09"}, rooms))

	for _, d := range []string{"2024-03-08", "2024-03-09"} {
		cfg := s.Get(d)
		assert.Equal(t, rooms, cfg.Rooms)
		assert.Equal(t, models.Settings{}, cfg.Settings)
	}

	snap := s.Snapshot()
	assert.Len(t, snap, 2)
}

func TestValidateJSON(t *testing.T) {
	tests := map[string]struct {
		body    string
		wantErr error
	}{
		"valid": {
			body: `{"rooms":[{"room_no":"101","girls_only":false,"single_staff":true}],
				"settings":{"reporting_time":"","assessment_name":"","exam_time":"","exam_details":""}}`,
		},
		"not_object": {
			body:    `[1,2,3]`,
			wantErr: allocerrors.ErrNotRecord,
		},
		"malformed": {
			body:    `{`,
			wantErr: allocerrors.ErrNotRecord,
		},
		"missing_rooms": {
			body:    `{"settings":{}}`,
			wantErr: allocerrors.ErrMissingRooms,
		},
		"missing_settings": {
			body:    `{"rooms":[]}`,
			wantErr: allocerrors.ErrMissingSettings,
		},
		"room_missing_field": {
			body: `{"rooms":[{"room_no":"101","girls_only":true}],
				"settings":{"reporting_time":"","assessment_name":"","exam_time":"","exam_details":""}}`,
			wantErr: allocerrors.ErrMissingRoomField,
		},
		"settings_missing_field": {
			body:    `{"rooms":[],"settings":{"reporting_time":"","assessment_name":""}}`,
			wantErr: allocerrors.ErrMissingSetting,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := store.ValidateJSON("2024-03-08", []byte(tc.body))
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			var vErr *allocerrors.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "2024-03-08", vErr.Date)
		})
	}
}

func TestValidateJSON_NamesOffendingRoom(t *testing.T) {
	body := `{"rooms":[{"room_no":"B-12","single_staff":true}],
		"settings":{"reporting_time":"","assessment_name":"","exam_time":"","exam_details":""}}`
	err := store.ValidateJSON("2024-03-08", []byte(body))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "B-12")
	assert.Contains(t, err.Error(), "girls_only")
}

func TestDecodeConfig(t *testing.T) {
	body := `{"rooms":[{"room_no":"101","girls_only":true,"single_staff":false}],
		"settings":{"reporting_time":"9","assessment_name":"CAT","exam_time":"10","exam_details":"x"}}`
	cfg, err := store.DecodeConfig("2024-03-08", []byte(body))
	require.NoError(t, err)
	assert.Equal(t, []models.RoomRequirement{{RoomNo: "101", GirlsOnly: true}}, cfg.Rooms)
	assert.Equal(t, "CAT", cfg.Settings.AssessmentName)

	dup := `{"rooms":[{"room_no":"1","girls_only":true,"single_staff":false},{"room_no":"1","girls_only":false,"single_staff":false}],
		"settings":{"reporting_time":"","assessment_name":"","exam_time":"","exam_details":""}}`
	_, err = store.DecodeConfig("2024-03-08", []byte(dup))
	assert.ErrorIs(t, err, allocerrors.ErrDuplicateRoom)

	wrongType := `{"rooms":[{"room_no":"1","girls_only":"yes","single_staff":false}],
		"settings":{"reporting_time":"","assessment_name":"","exam_time":"","exam_details":""}}`
	_, err = store.DecodeConfig("2024-03-08", []byte(wrongType))
	assert.Error(t, err)
}

func TestExclusionSet_Toggle(t *testing.T) {
	backend := &memoryBackend{}
	e := store.NewExclusionSet(backend, nil)
	ctx := context.Background()

	excluded, err := e.Toggle(ctx, " Alice ")
	require.NoError(t, err)
	assert.True(t, excluded)
	assert.True(t, e.Contains("Alice"))
	assert.Equal(t, []string{"Alice"}, backend.exclusions)

	excluded, err = e.Toggle(ctx, "Alice")
	require.NoError(t, err)
	assert.False(t, excluded)
	assert.False(t, e.Contains("Alice"))
	assert.Empty(t, backend.exclusions)

	_, err = e.Toggle(ctx, "  ")
	assert.ErrorIs(t, err, allocerrors.ErrEmptyName)
}

func TestExclusionSet_LoadAndSnapshot(t *testing.T) {
	backend := &memoryBackend{exclusions: []string{"Bob", " Alice", ""}}
	e := store.NewExclusionSet(backend, nil)
	require.NoError(t, e.Load(context.Background()))

	assert.Equal(t, []string{"Alice", "Bob"}, e.Names())
	snap := e.Snapshot()
	assert.Equal(t, map[string]bool{"Alice": true, "Bob": true}, snap)

	snap["Carol"] = true
	assert.False(t, e.Contains("Carol"))
}

func TestExclusionSet_SaveFailure(t *testing.T) {
	backend := &memoryBackend{failSave: true}
	e := store.NewExclusionSet(backend, nil)

	excluded, err := e.Toggle(context.Background(), "Alice")
	require.Error(t, err)
	assert.True(t, excluded)
	assert.True(t, e.Contains("Alice"))
	var storageErr *allocerrors.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "Alice", storageErr.Key)
}
