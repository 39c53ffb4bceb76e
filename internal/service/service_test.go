package service_test

import (
	"context"
	"os"
	"testing"
	"time"

	"taskAdmin/internal/logger"
	"taskAdmin/internal/models/identity"
	"taskAdmin/internal/models/task"
	repo "taskAdmin/internal/repository"
	identityInmemory "taskAdmin/internal/repository/identity/inmemory"
	taskInmemory "taskAdmin/internal/repository/task/inmemory"
	"taskAdmin/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(true)
	os.Exit(m.Run())
}

// MockTaskRepository - мок репозитория задач
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTaskRepository) Create(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByCompanyWithLimit(ctx context.Context, companyID uuid.UUID, page, limit int) ([]*task.Task, error) {
	args := m.Called(ctx, companyID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskRepository) GetStatusedWithLimit(ctx context.Context, companyID uuid.UUID, page, limit int, status task.Status) ([]*task.Task, error) {
	args := m.Called(ctx, companyID, page, limit, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskRepository) GetTasksDueBefore(ctx context.Context, deadline time.Time, limit int) ([]*task.Task, error) {
	args := m.Called(ctx, deadline, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskRepository) GetTasksInReminderWindow(ctx context.Context, now time.Time, limit int) ([]*task.Task, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskRepository) CreateComment(ctx context.Context, c *task.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockTaskRepository) GetCommentsByTask(ctx context.Context, taskID uuid.UUID) ([]*task.Comment, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Comment), args.Error(1)
}

var _ service.TaskRepository = (*MockTaskRepository)(nil)

// MockIdentityRepository - мок реестров учёток
type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockIdentityRepository) GetPlatformAdmin(ctx context.Context, id uuid.UUID) (identity.Identity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(identity.Identity), args.Error(1)
}

func (m *MockIdentityRepository) GetCompanyMember(ctx context.Context, id uuid.UUID) (identity.Identity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(identity.Identity), args.Error(1)
}

var _ service.IdentityRepository = (*MockIdentityRepository)(nil)

// expectMember настраивает разрешение учётки в сотрудника компании
func expectMember(m *MockIdentityRepository, ident identity.Identity) {
	m.On("GetPlatformAdmin", mock.Anything, ident.ID).Return(identity.Identity{}, repo.ErrNotFound)
	m.On("GetCompanyMember", mock.Anything, ident.ID).Return(ident, nil)
}

// expectAdmin настраивает разрешение учётки в администратора платформы
func expectAdmin(m *MockIdentityRepository, ident identity.Identity) {
	m.On("GetPlatformAdmin", mock.Anything, ident.ID).Return(ident, nil)
}

func expectUnknown(m *MockIdentityRepository, id uuid.UUID) {
	m.On("GetPlatformAdmin", mock.Anything, id).Return(identity.Identity{}, repo.ErrNotFound)
	m.On("GetCompanyMember", mock.Anything, id).Return(identity.Identity{}, repo.ErrNotFound)
}

func assertBusinessCode(t *testing.T, err error, code string) *service.BusinessError {
	t.Helper()
	require.Error(t, err)
	busErr, ok := err.(*service.BusinessError)
	require.True(t, ok, "Expected BusinessError, got %T", err)
	assert.Equal(t, code, busErr.Code)
	return busErr
}

// TestTaskService_ResolveIdentity тестирует разрешение учёток на границе
func TestTaskService_ResolveIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("platform admin wins over member registry", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		admin := newPlatformAdmin(true)
		expectAdmin(mockIdentities, admin)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		resolved, err := svc.ResolveIdentity(ctx, admin.ID)

		require.NoError(t, err)
		assert.Equal(t, identity.KindPlatformAdmin, resolved.Kind)
		assert.True(t, resolved.Elevated)
		mockIdentities.AssertExpectations(t)
	})

	t.Run("company member found after admin miss", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		member := newMember(identity.RoleEmployee, uuid.New())
		expectMember(mockIdentities, member)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		resolved, err := svc.ResolveIdentity(ctx, member.ID)

		require.NoError(t, err)
		assert.Equal(t, identity.KindCompanyMember, resolved.Kind)
		mockIdentities.AssertExpectations(t)
	})

	t.Run("unknown account cannot act", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		unknown := uuid.New()
		expectUnknown(mockIdentities, unknown)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		_, err := svc.ResolveIdentity(ctx, unknown)

		assertBusinessCode(t, err, "NOT_FOUND")
		mockIdentities.AssertExpectations(t)
	})
}

// TestTaskService_ApplyStatusChange_CompanyTask - сценарий: задача админа X,
// назначена на админа Y, посторонний Z
func TestTaskService_ApplyStatusChange_CompanyTask(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	creatorX := newMember(identity.RoleAdmin, companyID)
	assigneeY := newMember(identity.RoleAdmin, companyID)
	strangerZ := newMember(identity.RoleAdmin, companyID)

	newTask := func() *task.Task {
		assigned := assigneeY.ID
		return &task.Task{
			ID:         uuid.New(),
			CompanyID:  companyID,
			Title:      "Quarterly report",
			Status:     task.StatusOpen,
			Priority:   task.PriorityHigh,
			CreatedBy:  creatorX.ID,
			AssignedTo: &assigned,
		}
	}

	t.Run("assignee updates status and is stamped", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		testTask := newTask()

		expectMember(mockIdentities, assigneeY)
		expectMember(mockIdentities, creatorX)
		mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)
		mockTasks.On("Update", mock.Anything, mock.MatchedBy(func(updated *task.Task) bool {
			return updated.Status == task.StatusInProgress &&
				updated.ModifiedBy != nil && *updated.ModifiedBy == assigneeY.ID
		})).Return(nil)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		result, err := svc.ApplyStatusChange(ctx, assigneeY.ID, testTask.ID, task.StatusInProgress)

		require.NoError(t, err)
		assert.Equal(t, task.StatusInProgress, result.Status)
		require.NotNil(t, result.ModifiedBy)
		assert.Equal(t, assigneeY.ID, *result.ModifiedBy)
		mockTasks.AssertExpectations(t)
	})

	t.Run("creator updates status", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		testTask := newTask()

		expectMember(mockIdentities, creatorX)
		mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)
		mockTasks.On("Update", mock.Anything, mock.MatchedBy(func(updated *task.Task) bool {
			return updated.ModifiedBy != nil && *updated.ModifiedBy == creatorX.ID
		})).Return(nil)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		_, err := svc.ApplyStatusChange(ctx, creatorX.ID, testTask.ID, task.StatusCompleted)

		require.NoError(t, err)
		mockTasks.AssertExpectations(t)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		testTask := newTask()

		expectMember(mockIdentities, strangerZ)
		expectMember(mockIdentities, creatorX)
		mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		_, err := svc.ApplyStatusChange(ctx, strangerZ.ID, testTask.ID, task.StatusCompleted)

		busErr := assertBusinessCode(t, err, "PERMISSION_DENIED")
		assert.Equal(t, service.ReasonNotCreatorOrAssignee, busErr.Details["reason"])
		mockTasks.AssertExpectations(t)
	})
}

// TestTaskService_ApplyStatusChange_PlatformManaged - сценарий: задача супер-админа
func TestTaskService_ApplyStatusChange_PlatformManaged(t *testing.T) {
	ctx := context.Background()
	superAdmin := newPlatformAdmin(true)

	t.Run("unassigned task is frozen for company admins", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		companyAdmin := newMember(identity.RoleAdmin, uuid.New())
		testTask := newTaskBy(superAdmin, nil)

		expectMember(mockIdentities, companyAdmin)
		expectAdmin(mockIdentities, superAdmin)
		mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		_, err := svc.ApplyStatusChange(ctx, companyAdmin.ID, testTask.ID, task.StatusCompleted)

		busErr := assertBusinessCode(t, err, "PERMISSION_DENIED")
		assert.Equal(t, service.ReasonPlatformManaged, busErr.Details["reason"])
		mockTasks.AssertExpectations(t)
	})

	t.Run("assignee overrides the platform lock", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		assigneeW := newMember(identity.RoleAdmin, uuid.New())
		testTask := newTaskBy(superAdmin, &assigneeW)

		expectMember(mockIdentities, assigneeW)
		expectAdmin(mockIdentities, superAdmin)
		mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)
		mockTasks.On("Update", mock.Anything, mock.MatchedBy(func(updated *task.Task) bool {
			return updated.Status == task.StatusInProgress &&
				updated.ModifiedBy != nil && *updated.ModifiedBy == assigneeW.ID
		})).Return(nil)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		result, err := svc.ApplyStatusChange(ctx, assigneeW.ID, testTask.ID, task.StatusInProgress)

		require.NoError(t, err)
		assert.Equal(t, task.StatusInProgress, result.Status)
		mockTasks.AssertExpectations(t)
	})
}

// TestTaskService_ApplyStatusChange_Noop - повторная запись того же статуса
// всё равно штампует modified_by
func TestTaskService_ApplyStatusChange_Noop(t *testing.T) {
	ctx := context.Background()
	creator := newMember(identity.RoleAdmin, uuid.New())
	testTask := newTaskBy(creator, nil)
	testTask.Status = task.StatusOpen

	mockTasks := new(MockTaskRepository)
	mockIdentities := new(MockIdentityRepository)
	expectMember(mockIdentities, creator)
	mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)
	mockTasks.On("Update", mock.Anything, mock.MatchedBy(func(updated *task.Task) bool {
		return updated.Status == task.StatusOpen &&
			updated.ModifiedBy != nil && *updated.ModifiedBy == creator.ID
	})).Return(nil)

	svc := service.NewTaskService(mockTasks, mockIdentities)
	_, err := svc.ApplyStatusChange(ctx, creator.ID, testTask.ID, task.StatusOpen)

	require.NoError(t, err)
	mockTasks.AssertExpectations(t)
}

// TestTaskService_ApplyStatusChange_Validation тестирует входные проверки
func TestTaskService_ApplyStatusChange_Validation(t *testing.T) {
	ctx := context.Background()
	mockTasks := new(MockTaskRepository)
	mockIdentities := new(MockIdentityRepository)

	svc := service.NewTaskService(mockTasks, mockIdentities)
	_, err := svc.ApplyStatusChange(ctx, uuid.New(), uuid.New(), task.Status("deleted"))

	assertBusinessCode(t, err, "VALIDATION_ERROR")
}

// TestTaskService_AddComment тестирует добавление комментариев
func TestTaskService_AddComment(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	member := newMember(identity.RoleEmployee, companyID)

	newTask := func() *task.Task {
		creator := newMember(identity.RoleAdmin, companyID)
		testTask := newTaskBy(creator, nil)
		testTask.CompanyID = companyID
		return testTask
	}

	t.Run("whitespace-only message is rejected", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		_, err := svc.AddComment(ctx, member.ID, uuid.New(), "   ")

		assertBusinessCode(t, err, "VALIDATION_ERROR")
		mockTasks.AssertExpectations(t)
	})

	t.Run("message is stored trimmed", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		testTask := newTask()

		expectMember(mockIdentities, member)
		mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)
		mockTasks.On("CreateComment", mock.Anything, mock.MatchedBy(func(c *task.Comment) bool {
			return c.Message == "Looks good" && c.SenderID == member.ID && c.TaskID == testTask.ID
		})).Return(nil)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		comment, err := svc.AddComment(ctx, member.ID, testTask.ID, "  Looks good  ")

		require.NoError(t, err)
		assert.Equal(t, "Looks good", comment.Message)
		mockTasks.AssertExpectations(t)
	})

	t.Run("member of another company is denied", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		outsider := newMember(identity.RoleAdmin, uuid.New())
		testTask := newTask()

		expectMember(mockIdentities, outsider)
		mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		_, err := svc.AddComment(ctx, outsider.ID, testTask.ID, "hi")

		busErr := assertBusinessCode(t, err, "PERMISSION_DENIED")
		assert.Equal(t, service.ReasonWrongCompany, busErr.Details["reason"])
	})

	t.Run("platform admin comments on any task", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		admin := newPlatformAdmin(false)
		testTask := newTask()

		expectAdmin(mockIdentities, admin)
		mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)
		mockTasks.On("CreateComment", mock.Anything, mock.Anything).Return(nil)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		_, err := svc.AddComment(ctx, admin.ID, testTask.ID, "status?")

		require.NoError(t, err)
		mockTasks.AssertExpectations(t)
	})
}

// TestTaskService_CreateTask тестирует правила создания
func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()
	deadline := time.Now().Add(72 * time.Hour)

	t.Run("company admin creates inside own company", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		admin := newMember(identity.RoleAdmin, uuid.New())

		expectMember(mockIdentities, admin)
		mockTasks.On("Create", mock.Anything, mock.MatchedBy(func(created *task.Task) bool {
			return created.CompanyID == admin.CompanyID &&
				created.Status == task.StatusOpen &&
				created.CreatedBy == admin.ID
		})).Return(nil)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		// чужая компания в запросе игнорируется
		created, err := svc.CreateTask(ctx, admin.ID, uuid.New(), "Title", "Desc", deadline, task.PriorityLow, nil, 3)

		require.NoError(t, err)
		assert.Equal(t, admin.CompanyID, created.CompanyID)
		mockTasks.AssertExpectations(t)
	})

	t.Run("employee cannot create", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		employee := newMember(identity.RoleEmployee, uuid.New())

		expectMember(mockIdentities, employee)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		_, err := svc.CreateTask(ctx, employee.ID, uuid.Nil, "Title", "", deadline, task.PriorityLow, nil, 0)

		busErr := assertBusinessCode(t, err, "PERMISSION_DENIED")
		assert.Equal(t, service.ReasonRoleForbidden, busErr.Details["reason"])
	})

	t.Run("platform admin must name a company", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		admin := newPlatformAdmin(true)

		expectAdmin(mockIdentities, admin)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		_, err := svc.CreateTask(ctx, admin.ID, uuid.Nil, "Title", "", deadline, task.PriorityLow, nil, 0)

		assertBusinessCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("reminder days out of range", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		admin := newMember(identity.RoleAdmin, uuid.New())

		expectMember(mockIdentities, admin)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		_, err := svc.CreateTask(ctx, admin.ID, uuid.Nil, "Title", "", deadline, task.PriorityLow, nil, 400)

		assertBusinessCode(t, err, "VALIDATION_ERROR")
	})
}

// TestTaskService_EditContent тестирует правку содержимого
func TestTaskService_EditContent(t *testing.T) {
	ctx := context.Background()

	t.Run("creator edits own task", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		creator := newMember(identity.RoleAdmin, uuid.New())
		testTask := newTaskBy(creator, nil)

		expectMember(mockIdentities, creator)
		mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)
		mockTasks.On("Update", mock.Anything, mock.MatchedBy(func(updated *task.Task) bool {
			return updated.Title == "New Title" &&
				updated.ModifiedBy != nil && *updated.ModifiedBy == creator.ID
		})).Return(nil)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		result, err := svc.EditContent(ctx, creator.ID, testTask.ID, task.WithTitle("New Title"))

		require.NoError(t, err)
		assert.Equal(t, "New Title", result.Title)
		mockTasks.AssertExpectations(t)
	})

	t.Run("non-creator is denied", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		creator := newMember(identity.RoleAdmin, uuid.New())
		other := newMember(identity.RoleAdmin, creator.CompanyID)
		testTask := newTaskBy(creator, nil)

		expectMember(mockIdentities, other)
		expectMember(mockIdentities, creator)
		mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		_, err := svc.EditContent(ctx, other.ID, testTask.ID, task.WithTitle("X"))

		busErr := assertBusinessCode(t, err, "PERMISSION_DENIED")
		assert.Equal(t, service.ReasonNotCreator, busErr.Details["reason"])
	})

	t.Run("elevated-created task is frozen even for its creator", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		superAdmin := newPlatformAdmin(true)
		testTask := newTaskBy(superAdmin, nil)

		expectAdmin(mockIdentities, superAdmin)
		mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		_, err := svc.EditContent(ctx, superAdmin.ID, testTask.ID, task.WithTitle("X"))

		busErr := assertBusinessCode(t, err, "PERMISSION_DENIED")
		assert.Equal(t, service.ReasonPlatformManaged, busErr.Details["reason"])
	})

	t.Run("reminder out of range after options", func(t *testing.T) {
		mockTasks := new(MockTaskRepository)
		mockIdentities := new(MockIdentityRepository)
		creator := newMember(identity.RoleAdmin, uuid.New())
		testTask := newTaskBy(creator, nil)

		expectMember(mockIdentities, creator)
		mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)

		svc := service.NewTaskService(mockTasks, mockIdentities)
		_, err := svc.EditContent(ctx, creator.ID, testTask.ID, task.WithReminderDays(-1))

		assertBusinessCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("failed validation leaves the stored task untouched", func(t *testing.T) {
		taskStore := taskInmemory.NewTaskStorage()
		identityStore := identityInmemory.NewIdentityStorage()

		creator := newMember(identity.RoleAdmin, uuid.New())
		identityStore.AddCompanyMember(creator)

		original := newTaskBy(creator, nil)
		original.Title = "original title"
		original.ReminderDaysBefore = 5
		require.NoError(t, taskStore.Create(ctx, original))

		svc := service.NewTaskService(taskStore, identityStore)
		_, err := svc.EditContent(ctx, creator.ID, original.ID,
			task.WithTitle("hacked"), task.WithReminderDays(500))

		assertBusinessCode(t, err, "VALIDATION_ERROR")

		// ни одна опция не должна была примениться
		stored, err := taskStore.GetByID(ctx, original.ID)
		require.NoError(t, err)
		assert.Equal(t, "original title", stored.Title)
		assert.Equal(t, 5, stored.ReminderDaysBefore)
		assert.Nil(t, stored.ModifiedBy)
		assert.Nil(t, stored.UpdatedAt)
	})
}

// TestTaskService_CheckPermissions тестирует вычисление прав для клиента
func TestTaskService_CheckPermissions(t *testing.T) {
	ctx := context.Background()
	superAdmin := newPlatformAdmin(true)
	assignee := newMember(identity.RoleAdmin, uuid.New())
	testTask := newTaskBy(superAdmin, &assignee)

	mockTasks := new(MockTaskRepository)
	mockIdentities := new(MockIdentityRepository)
	expectMember(mockIdentities, assignee)
	expectAdmin(mockIdentities, superAdmin)
	mockTasks.On("GetByID", mock.Anything, testTask.ID).Return(testTask, nil)

	svc := service.NewTaskService(mockTasks, mockIdentities)
	permissions, err := svc.CheckPermissions(ctx, assignee.ID, testTask.ID)

	require.NoError(t, err)
	assert.False(t, permissions.CanEditContent)
	assert.True(t, permissions.CanChangeStatus)
}
