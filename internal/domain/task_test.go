package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTask() *Task {
	return &Task{
		ID:             uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		StellaURL:      "http://stella.local",
		VottBackendURL: "http://vott.local",
		ImageServerURL: "http://images.local",
		TaskServerURL:  "http://tasks.local",
	}
}

func TestTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr error
	}{
		{"valid", func(task *Task) {}, nil},
		{"missing_id", func(task *Task) { task.ID = uuid.Nil }, ErrTaskIDEmpty},
		{"missing_stella_url", func(task *Task) { task.StellaURL = "" }, ErrTaskStellaURLEmpty},
		{"missing_vott_backend_url", func(task *Task) { task.VottBackendURL = "" }, ErrTaskVottBackendURLEmpty},
		{"missing_image_server_url", func(task *Task) { task.ImageServerURL = "" }, ErrTaskImageServerURLEmpty},
		{"missing_task_server_url", func(task *Task) { task.TaskServerURL = "" }, ErrTaskServerURLEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			tt.mutate(task)

			err := task.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				// Every field-specific error is also a validation error.
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestTask_MergeFrom_IncomingWins(t *testing.T) {
	existing := validTask()
	existing.StellaURL = "http://old-stella.local"
	existing.CreatedAt = "2025-01-01T00:00:00Z"
	existing.LastUpdatedAt = "2025-01-02T00:00:00Z"
	existing.Progress = map[string]AssetState{"x": AssetStateNotVisited}

	incoming := validTask()
	incoming.StellaURL = "http://new-stella.local"
	incoming.Progress = map[string]AssetState{"x": AssetStateTagged}

	incoming.MergeFrom(existing)

	// Submitted values win over stored ones.
	assert.Equal(t, "http://new-stella.local", incoming.StellaURL)
	assert.Equal(t, map[string]AssetState{"x": AssetStateTagged}, incoming.Progress)
}

func TestTask_MergeFrom_StoredValuesFillGaps(t *testing.T) {
	existing := validTask()
	existing.ImageList = map[string]string{"a": "http://images.local/a.jpg"}
	existing.Progress = map[string]AssetState{"a": AssetStateVisited}
	existing.AttributeKeys = map[string]json.RawMessage{"color": json.RawMessage(`{"type":"enum"}`)}
	existing.Tags = json.RawMessage(`["car","truck"]`)
	existing.LastUsedForProjectCreation = "2025-02-01T00:00:00Z"
	existing.CreatedAt = "2025-01-01T00:00:00Z"

	incoming := &Task{ID: existing.ID}
	incoming.MergeFrom(existing)

	assert.Equal(t, existing.StellaURL, incoming.StellaURL)
	assert.Equal(t, existing.VottBackendURL, incoming.VottBackendURL)
	assert.Equal(t, existing.ImageServerURL, incoming.ImageServerURL)
	assert.Equal(t, existing.TaskServerURL, incoming.TaskServerURL)
	assert.Equal(t, existing.ImageList, incoming.ImageList)
	assert.Equal(t, existing.Progress, incoming.Progress)
	assert.Equal(t, existing.AttributeKeys, incoming.AttributeKeys)
	assert.Equal(t, existing.Tags, incoming.Tags)
	assert.Equal(t, existing.LastUsedForProjectCreation, incoming.LastUsedForProjectCreation)
}

func TestTask_MergeFrom_CreatedAtAlwaysInherited(t *testing.T) {
	existing := validTask()
	existing.CreatedAt = "2025-01-01T00:00:00Z"

	incoming := validTask()
	incoming.CreatedAt = "2025-06-01T00:00:00Z" // client-supplied value must not stick

	incoming.MergeFrom(existing)
	assert.Equal(t, "2025-01-01T00:00:00Z", incoming.CreatedAt)
}

func TestTask_MergeFrom_NilExisting(t *testing.T) {
	task := validTask()
	task.MergeFrom(nil)
	assert.Equal(t, validTask(), task)
}

func TestTask_PopulateDefaultProgress(t *testing.T) {
	t.Run("from_image_list", func(t *testing.T) {
		task := validTask()
		task.ImageList = map[string]string{
			"x": "http://images.local/x.jpg",
			"y": "http://images.local/y.jpg",
		}

		task.PopulateDefaultProgress()

		require.Len(t, task.Progress, 2)
		assert.Equal(t, AssetStateNotVisited, task.Progress["x"])
		assert.Equal(t, AssetStateNotVisited, task.Progress["y"])
	})

	t.Run("empty_image_list", func(t *testing.T) {
		task := validTask()

		task.PopulateDefaultProgress()

		require.NotNil(t, task.Progress)
		assert.Empty(t, task.Progress)
	})

	t.Run("client_progress_untouched", func(t *testing.T) {
		task := validTask()
		task.ImageList = map[string]string{"x": "http://images.local/x.jpg"}
		task.Progress = map[string]AssetState{"z": AssetStateTagged}

		task.PopulateDefaultProgress()

		assert.Equal(t, map[string]AssetState{"z": AssetStateTagged}, task.Progress)
	})
}

func TestTask_JSONFieldNames(t *testing.T) {
	task := validTask()
	task.AttributeKeys = map[string]json.RawMessage{}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, field := range []string{
		"id", "stellaUrl", "vottBackendUrl", "imageServerUrl", "taskServerUrl",
		"attributeKeys", "lastUsedForProjectCreation",
	} {
		assert.Contains(t, decoded, field)
	}
}
