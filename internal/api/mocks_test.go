package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/vottdot/vottdot-server/internal/domain"
	"github.com/vottdot/vottdot-server/internal/service"
)

// mockTaskService implements service.TaskService with function fields so
// each test configures only the calls it expects.
type mockTaskService struct {
	findAllFn func(ctx context.Context) ([]*domain.Task, error)
	findOneFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	saveFn    func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
	existsFn  func(ctx context.Context, id uuid.UUID) (bool, error)
}

var _ service.TaskService = (*mockTaskService)(nil)

func (m *mockTaskService) FindAll(ctx context.Context) ([]*domain.Task, error) {
	return m.findAllFn(ctx)
}

func (m *mockTaskService) FindOne(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.findOneFn(ctx, id)
}

func (m *mockTaskService) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return m.saveFn(ctx, task)
}

func (m *mockTaskService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockTaskService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.existsFn(ctx, id)
}

// mockFileService implements service.FileService the same way.
type mockFileService struct {
	findAllFn func(ctx context.Context) ([]*domain.File, error)
	getFn     func(ctx context.Context, fileName, fileUUID string) (*domain.File, error)
	upsertFn  func(ctx context.Context, fileName, fileUUID, data string) (*domain.File, error)
	deleteFn  func(ctx context.Context, fileName, fileUUID string) error
}

var _ service.FileService = (*mockFileService)(nil)

func (m *mockFileService) FindAll(ctx context.Context) ([]*domain.File, error) {
	return m.findAllFn(ctx)
}

func (m *mockFileService) Get(ctx context.Context, fileName, fileUUID string) (*domain.File, error) {
	return m.getFn(ctx, fileName, fileUUID)
}

func (m *mockFileService) Upsert(ctx context.Context, fileName, fileUUID, data string) (*domain.File, error) {
	return m.upsertFn(ctx, fileName, fileUUID, data)
}

func (m *mockFileService) Delete(ctx context.Context, fileName, fileUUID string) error {
	return m.deleteFn(ctx, fileName, fileUUID)
}
