package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vottdot/vottdot-server/internal/domain"
	"github.com/vottdot/vottdot-server/internal/store"
)

// fixedClock is a Clock pinned to a settable instant.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// noopDriver is a minimal database/sql driver whose connections support
// only transaction begin/commit/rollback. It lets the services run their
// RunInTransaction paths in unit tests without a live database; the
// actual reads and writes go to the in-memory fakes below.
type noopDriver struct{}

func (noopDriver) Open(name string) (driver.Conn, error) { return noopConn{}, nil }

type noopConn struct{}

func (noopConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("noop driver does not prepare statements")
}
func (noopConn) Close() error              { return nil }
func (noopConn) Begin() (driver.Tx, error) { return noopTx{}, nil }

type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }

var registerNoopDriver sync.Once

func newFakeDB(t *testing.T) *sql.DB {
	t.Helper()
	registerNoopDriver.Do(func() {
		sql.Register("vottdot-noop", noopDriver{})
	})
	db, err := sql.Open("vottdot-noop", "")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

// fakeTaskRepository is an in-memory TaskRepository.
type fakeTaskRepository struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
	db    *sql.DB

	findErr error
	saveErr error
	saves   int
}

func newFakeTaskRepository(t *testing.T) *fakeTaskRepository {
	return &fakeTaskRepository{
		tasks: make(map[uuid.UUID]*domain.Task),
		db:    newFakeDB(t),
	}
}

func (r *fakeTaskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	tasks := make([]*domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		copied := *task
		tasks = append(tasks, &copied)
	}
	return tasks, nil
}

func (r *fakeTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	task, ok := r.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *fakeTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *task
	r.tasks[task.ID] = &copied
	r.saves++
	return nil
}

func (r *fakeTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tasks[id]
	return ok, nil
}

func (r *fakeTaskRepository) WithTx(tx *sql.Tx) TaskRepository { return r }

func (r *fakeTaskRepository) DB() *sql.DB { return r.db }

// fakeFileRepository is an in-memory FileRepository keyed by the
// (fileName, fileUUID) pair.
type fakeFileRepository struct {
	mu    sync.Mutex
	files map[string]*domain.File
	db    *sql.DB

	findErr error
	saveErr error
}

func newFakeFileRepository(t *testing.T) *fakeFileRepository {
	return &fakeFileRepository{
		files: make(map[string]*domain.File),
		db:    newFakeDB(t),
	}
}

func fileKey(fileName, fileUUID string) string {
	return fileName + "\x00" + fileUUID
}

func (r *fakeFileRepository) FindAll(ctx context.Context) ([]*domain.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	files := make([]*domain.File, 0, len(r.files))
	for _, file := range r.files {
		copied := *file
		files = append(files, &copied)
	}
	return files, nil
}

func (r *fakeFileRepository) FindByKey(ctx context.Context, fileName, fileUUID string) (*domain.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	file, ok := r.files[fileKey(fileName, fileUUID)]
	if !ok {
		return nil, store.ErrFileNotFound
	}
	copied := *file
	return &copied, nil
}

func (r *fakeFileRepository) Save(ctx context.Context, file *domain.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *file
	r.files[fileKey(file.FileName, file.FileUUID)] = &copied
	return nil
}

func (r *fakeFileRepository) DeleteByKey(ctx context.Context, fileName, fileUUID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, fileKey(fileName, fileUUID))
	return nil
}

func (r *fakeFileRepository) WithTx(tx *sql.Tx) FileRepository { return r }

func (r *fakeFileRepository) DB() *sql.DB { return r.db }
