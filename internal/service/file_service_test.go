package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vottdot/vottdot-server/internal/domain"
)

func newTestFileService(t *testing.T) (FileService, *fakeFileRepository) {
	t.Helper()

	repo := newFakeFileRepository(t)
	svc, err := NewFileService(repo, nil)
	require.NoError(t, err)

	return svc, repo
}

func TestNewFileService_NilRepo(t *testing.T) {
	_, err := NewFileService(nil, nil)
	assert.Error(t, err)
}

func TestFileService_Upsert_CreatesAndReplaces(t *testing.T) {
	svc, _ := newTestFileService(t)
	ctx := context.Background()

	created, err := svc.Upsert(ctx, "frame_0001.jpg", "abc-123", `{"regions":[]}`)
	require.NoError(t, err)
	assert.Equal(t, `{"regions":[]}`, created.Data)

	// A second write to the same key replaces the data and keeps the row ID.
	replaced, err := svc.Upsert(ctx, "frame_0001.jpg", "abc-123", `{"regions":[{"id":"r1"}]}`)
	require.NoError(t, err)
	assert.Equal(t, `{"regions":[{"id":"r1"}]}`, replaced.Data)
	assert.Equal(t, created.ID, replaced.ID)

	got, err := svc.Get(ctx, "frame_0001.jpg", "abc-123")
	require.NoError(t, err)
	assert.Equal(t, replaced.Data, got.Data)
}

func TestFileService_Upsert_KeysAreIndependent(t *testing.T) {
	svc, _ := newTestFileService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "frame_0001.jpg", "abc-123", `{"a":1}`)
	require.NoError(t, err)

	// Same file name, different UUID: a distinct row.
	_, err = svc.Get(ctx, "frame_0001.jpg", "other-uuid")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFileService_Upsert_InvalidKey(t *testing.T) {
	svc, _ := newTestFileService(t)

	_, err := svc.Upsert(context.Background(), "", "abc-123", "{}")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFileNameEmpty)
}

func TestFileService_Get_Missing(t *testing.T) {
	svc, _ := newTestFileService(t)

	_, err := svc.Get(context.Background(), "no-such.jpg", "abc-123")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestFileService_Delete_MissingIsSilent(t *testing.T) {
	svc, _ := newTestFileService(t)
	ctx := context.Background()

	assert.NoError(t, svc.Delete(ctx, "no-such.jpg", "abc-123"))

	_, err := svc.Upsert(ctx, "frame_0001.jpg", "abc-123", "{}")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "frame_0001.jpg", "abc-123"))
	_, err = svc.Get(ctx, "frame_0001.jpg", "abc-123")
	assert.ErrorIs(t, err, ErrFileNotFound)

	// Repeated delete stays a success.
	assert.NoError(t, svc.Delete(ctx, "frame_0001.jpg", "abc-123"))
}

func TestFileService_FindAll(t *testing.T) {
	svc, _ := newTestFileService(t)
	ctx := context.Background()

	files, err := svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = svc.Upsert(ctx, "frame_0001.jpg", "abc-123", "{}")
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, "frame_0002.jpg", "abc-123", "{}")
	require.NoError(t, err)

	files, err = svc.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestFileService_FindAll_RepositoryError(t *testing.T) {
	svc, repo := newTestFileService(t)
	repo.findErr = errors.New("connection reset")

	_, err := svc.FindAll(context.Background())
	require.Error(t, err)

	var svcErr *ServiceError
	assert.ErrorAs(t, err, &svcErr)
}
