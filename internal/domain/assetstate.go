package domain

import (
	"encoding/json"
	"fmt"
)

// AssetState is the annotation progress state of a single image asset.
// The wire values are fixed by the consuming annotation client.
type AssetState string

const (
	// AssetStateNotVisited marks an asset the annotator has not opened yet.
	AssetStateNotVisited AssetState = "NOTVISITED"

	// AssetStateVisited marks an asset that was opened but carries no tags.
	AssetStateVisited AssetState = "VISITED"

	// AssetStateTagged marks an asset with at least one tag applied.
	AssetStateTagged AssetState = "TAGGED"
)

// IsValid reports whether the state is one of the known enumeration values.
func (s AssetState) IsValid() bool {
	switch s {
	case AssetStateNotVisited, AssetStateVisited, AssetStateTagged:
		return true
	}
	return false
}

// MarshalJSON implements json.Marshaler, refusing unknown states so a bad
// value can never reach a client.
func (s AssetState) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAssetState, string(s))
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler, refusing unknown states so a
// bad value is rejected at decode time rather than persisted.
func (s *AssetState) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAssetState, err)
	}

	state := AssetState(raw)
	if !state.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidAssetState, raw)
	}

	*s = state
	return nil
}
