package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFile(t *testing.T) {
	file, err := NewFile("frame_0001.jpg", "abc-123", `{"regions":[]}`)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, file.ID)
	assert.Equal(t, "frame_0001.jpg", file.FileName)
	assert.Equal(t, "abc-123", file.FileUUID)
	assert.Equal(t, `{"regions":[]}`, file.Data)
}

func TestNewFile_Validation(t *testing.T) {
	_, err := NewFile("", "abc-123", "{}")
	assert.ErrorIs(t, err, ErrFileNameEmpty)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewFile("frame_0001.jpg", "", "{}")
	assert.ErrorIs(t, err, ErrFileUUIDEmpty)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFile_CompositeName(t *testing.T) {
	file := &File{FileName: "frame_0001.jpg", FileUUID: "abc-123"}
	assert.Equal(t, "frame_0001.jpg_abc-123", file.CompositeName())
}
