package domain

import (
	"github.com/google/uuid"
)

// File is an opaque JSON-metadata blob the annotation client persists
// between sessions. It is keyed by the (FileName, FileUUID) pair; the two
// components are kept separate in storage and only concatenated as
// "<fileName>_<uuid>" at the URL routing layer, since either component may
// itself contain an underscore.
//
// Data is stored and returned verbatim. The service never parses it.
type File struct {
	ID       uuid.UUID `json:"id"`
	FileName string    `json:"fileName"`
	FileUUID string    `json:"uuid"`
	Data     string    `json:"data"`
}

// NewFile creates a new File with a freshly assigned row ID.
// Returns an error if validation fails.
func NewFile(fileName, fileUUID, data string) (*File, error) {
	f := &File{
		ID:       uuid.New(),
		FileName: fileName,
		FileUUID: fileUUID,
		Data:     data,
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return f, nil
}

// Validate checks if the File has valid key components.
func (f *File) Validate() error {
	if f.FileName == "" {
		return ErrFileNameEmpty
	}
	if f.FileUUID == "" {
		return ErrFileUUIDEmpty
	}
	return nil
}

// CompositeName renders the legacy "<fileName>_<uuid>" form used on the
// wire by the annotation client.
func (f *File) CompositeName() string {
	return f.FileName + "_" + f.FileUUID
}
