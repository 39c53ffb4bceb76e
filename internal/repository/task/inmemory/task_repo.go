package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskAdmin/internal/models/task"
	repo "taskAdmin/internal/repository"

	"github.com/google/uuid"
)

type TaskStorage struct {
	storage  map[uuid.UUID]*task.Task
	comments map[uuid.UUID][]*task.Comment // по task_id, в порядке добавления
	mtx      *sync.RWMutex
	ids      []uuid.UUID
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage:  make(map[uuid.UUID]*task.Task),
		comments: make(map[uuid.UUID][]*task.Comment),
		mtx:      &sync.RWMutex{},
		ids:      []uuid.UUID{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

// copyTask отвязывает хранимые записи от указателей вызывающего:
// наружу и внутрь ходят только копии, как при чтении из БД
func copyTask(t *task.Task) *task.Task {
	c := *t
	return &c
}

func copyComment(c *task.Comment) *task.Comment {
	cc := *c
	return &cc
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToCreate.CreatedAt = time.Now()

	s.storage[taskToCreate.ID] = copyTask(taskToCreate)
	s.ids = append(s.ids, taskToCreate.ID)
	return nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}

	now := time.Now()
	taskToUpdate.UpdatedAt = &now
	s.storage[taskToUpdate.ID] = copyTask(taskToUpdate)

	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return copyTask(taskToGet), nil
}

// постраничная выборка задач компании
func (s *TaskStorage) GetByCompanyWithLimit(ctx context.Context, companyID uuid.UUID, page, limit int) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	skip := (page - 1) * limit

	for _, id := range s.ids {
		if len(res) >= limit {
			break
		}

		taskToGet := s.storage[id]
		if taskToGet.CompanyID != companyID {
			continue
		}

		if skip > 0 {
			skip--
			continue
		}

		res = append(res, copyTask(taskToGet))
	}

	return res, nil
}

// задачи компании с определённым статусом
func (s *TaskStorage) GetStatusedWithLimit(ctx context.Context, companyID uuid.UUID, page, limit int, status task.Status) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	skip := (page - 1) * limit

	for _, id := range s.ids {
		if len(res) >= limit {
			break
		}

		taskToGet := s.storage[id]
		if taskToGet.CompanyID != companyID || taskToGet.Status != status {
			continue
		}

		if skip > 0 {
			skip--
			continue
		}

		res = append(res, copyTask(taskToGet))
	}

	return res, nil
}

func (s *TaskStorage) GetTasksDueBefore(ctx context.Context, deadline time.Time, limit int) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var tasks []*task.Task

	for _, id := range s.ids {
		if len(tasks) >= limit {
			break
		}

		t := s.storage[id]

		if t.Status != task.StatusCompleted &&
			t.Status != task.StatusOverdue &&
			t.Deadline.Before(deadline) {
			tasks = append(tasks, copyTask(t))
		}
	}

	return tasks, nil
}

func (s *TaskStorage) GetTasksInReminderWindow(ctx context.Context, now time.Time, limit int) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var tasks []*task.Task

	for _, id := range s.ids {
		if len(tasks) >= limit {
			break
		}

		t := s.storage[id]

		if t.Status == task.StatusCompleted || t.Status == task.StatusOverdue {
			continue
		}
		if t.ReminderDaysBefore <= 0 {
			continue
		}

		if t.Deadline.After(now) && !t.ReminderStart().After(now) {
			tasks = append(tasks, copyTask(t))
		}
	}

	return tasks, nil
}

func (s *TaskStorage) CreateComment(ctx context.Context, comment *task.Comment) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[comment.TaskID]; !ok {
		return repo.ErrNotFound
	}

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	s.comments[comment.TaskID] = append(s.comments[comment.TaskID], copyComment(comment))
	return nil
}

func (s *TaskStorage) GetCommentsByTask(ctx context.Context, taskID uuid.UUID) ([]*task.Comment, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.Comment, 0, len(s.comments[taskID]))
	for _, c := range s.comments[taskID] {
		res = append(res, copyComment(c))
	}

	// created_at по возрастанию, как отдаёт и БД
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})

	return res, nil
}
