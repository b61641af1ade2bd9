package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Task describes an annotation job: the URLs of the collaborating services,
// the list of images to annotate, per-image progress, and the attribute
// schema the annotation client uses. Timestamps are ISO-8601 UTC strings
// (yyyy-MM-ddTHH:mm:ssZ) produced by the service clock, never by clients.
//
// AttributeKeys, Tags and Categories are opaque to the server: they are
// stored and returned verbatim as JSON.
type Task struct {
	ID                         uuid.UUID                  `json:"id"`
	StellaURL                  string                     `json:"stellaUrl"`
	VottBackendURL             string                     `json:"vottBackendUrl"`
	ImageServerURL             string                     `json:"imageServerUrl"`
	TaskServerURL              string                     `json:"taskServerUrl"`
	ImageList                  map[string]string          `json:"imageList,omitempty"`
	Progress                   map[string]AssetState      `json:"progress,omitempty"`
	AttributeKeys              map[string]json.RawMessage `json:"attributeKeys"`
	Tags                       json.RawMessage            `json:"tags,omitempty"`
	Categories                 json.RawMessage            `json:"categories,omitempty"`
	CreatedAt                  string                     `json:"createdAt,omitempty"`
	LastUpdatedAt              string                     `json:"lastUpdatedAt,omitempty"`
	LastUsedForProjectCreation string                     `json:"lastUsedForProjectCreation"`
}

// Validate checks that the task carries everything required for a save.
// Empty strings count as absent: a task whose stellaUrl is "" is as
// unusable as one without the field at all.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}
	if t.StellaURL == "" {
		return ErrTaskStellaURLEmpty
	}
	if t.VottBackendURL == "" {
		return ErrTaskVottBackendURLEmpty
	}
	if t.ImageServerURL == "" {
		return ErrTaskImageServerURLEmpty
	}
	if t.TaskServerURL == "" {
		return ErrTaskServerURLEmpty
	}
	return nil
}

// MergeFrom fills the task's unset fields from an existing persisted task.
// The direction is deliberate: the incoming task's values win, and the
// persisted values are used only to plug gaps. CreatedAt is the one
// exception and is always inherited from the persisted task.
//
// The field-by-field policy is spelled out here rather than done
// reflectively so it can be audited and stays invariant across saves.
func (t *Task) MergeFrom(existing *Task) {
	if existing == nil {
		return
	}

	if t.StellaURL == "" {
		t.StellaURL = existing.StellaURL
	}
	if t.VottBackendURL == "" {
		t.VottBackendURL = existing.VottBackendURL
	}
	if t.ImageServerURL == "" {
		t.ImageServerURL = existing.ImageServerURL
	}
	if t.TaskServerURL == "" {
		t.TaskServerURL = existing.TaskServerURL
	}
	if t.ImageList == nil {
		t.ImageList = existing.ImageList
	}
	if t.Progress == nil {
		t.Progress = existing.Progress
	}
	if t.AttributeKeys == nil {
		t.AttributeKeys = existing.AttributeKeys
	}
	if t.Tags == nil {
		t.Tags = existing.Tags
	}
	if t.Categories == nil {
		t.Categories = existing.Categories
	}
	if t.LastUsedForProjectCreation == "" {
		t.LastUsedForProjectCreation = existing.LastUsedForProjectCreation
	}

	// CreatedAt is set once at first save and never rewritten.
	t.CreatedAt = existing.CreatedAt
}

// PopulateDefaultProgress sets the progress map when the client did not
// submit one: every image list key maps to NOTVISITED. With no image list
// the progress map is simply empty. A client-submitted progress map is
// never touched.
func (t *Task) PopulateDefaultProgress() {
	if t.Progress != nil {
		return
	}
	t.Progress = make(map[string]AssetState, len(t.ImageList))
	for key := range t.ImageList {
		t.Progress[key] = AssetStateNotVisited
	}
}
