package service_test

import (
	"testing"

	"taskAdmin/internal/models/identity"
	"taskAdmin/internal/models/task"
	"taskAdmin/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newMember(role identity.MemberRole, companyID uuid.UUID) identity.Identity {
	return identity.Identity{
		ID:        uuid.New(),
		Kind:      identity.KindCompanyMember,
		CompanyID: companyID,
		Role:      role,
		Status:    identity.StatusActive,
	}
}

func newPlatformAdmin(elevated bool) identity.Identity {
	return identity.Identity{
		ID:       uuid.New(),
		Kind:     identity.KindPlatformAdmin,
		Elevated: elevated,
	}
}

func newTaskBy(creator identity.Identity, assignee *identity.Identity) *task.Task {
	t := &task.Task{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Title:     "Test Task",
		Status:    task.StatusOpen,
		Priority:  task.PriorityMedium,
		CreatedBy: creator.ID,
	}
	if assignee != nil {
		id := assignee.ID
		t.AssignedTo = &id
	}
	return t
}

// TestCanEditContent_OrdinaryCreator - содержимое правит только автор
func TestCanEditContent_OrdinaryCreator(t *testing.T) {
	companyID := uuid.New()
	creator := newMember(identity.RoleAdmin, companyID)
	other := newMember(identity.RoleAdmin, companyID)
	testTask := newTaskBy(creator, nil)

	assert.True(t, service.CanEditContent(creator, creator, testTask))
	assert.False(t, service.CanEditContent(other, creator, testTask))
}

// TestCanEditContent_ElevatedCreator - задачи супер-админа не правит никто
func TestCanEditContent_ElevatedCreator(t *testing.T) {
	creator := newPlatformAdmin(true)
	member := newMember(identity.RoleAdmin, uuid.New())
	testTask := newTaskBy(creator, nil)

	assert.False(t, service.CanEditContent(member, creator, testTask))
	// включая самого автора
	assert.False(t, service.CanEditContent(creator, creator, testTask))
}

// TestCanEditContent_NonElevatedPlatformAdmin - обычный админ платформы правит свои задачи
func TestCanEditContent_NonElevatedPlatformAdmin(t *testing.T) {
	creator := newPlatformAdmin(false)
	testTask := newTaskBy(creator, nil)

	assert.True(t, service.CanEditContent(creator, creator, testTask))
}

// TestCanChangeStatus_AssigneeAlways - назначенный меняет статус независимо от автора
func TestCanChangeStatus_AssigneeAlways(t *testing.T) {
	tests := []struct {
		name    string
		creator identity.Identity
	}{
		{name: "creator is company admin", creator: newMember(identity.RoleAdmin, uuid.New())},
		{name: "creator is employee", creator: newMember(identity.RoleEmployee, uuid.New())},
		{name: "creator is platform admin", creator: newPlatformAdmin(false)},
		{name: "creator is elevated platform admin", creator: newPlatformAdmin(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignee := newMember(identity.RoleEmployee, uuid.New())
			testTask := newTaskBy(tt.creator, &assignee)

			assert.True(t, service.CanChangeStatus(assignee, tt.creator, testTask))
		})
	}
}

// TestCanChangeStatus_Creator - автор меняет статус, если он не супер-админ
func TestCanChangeStatus_Creator(t *testing.T) {
	creator := newMember(identity.RoleAdmin, uuid.New())
	testTask := newTaskBy(creator, nil)

	assert.True(t, service.CanChangeStatus(creator, creator, testTask))
}

// TestCanChangeStatus_PlatformManagedLock - задача супер-админа без назначенного
// заморожена для всех остальных
func TestCanChangeStatus_PlatformManagedLock(t *testing.T) {
	creator := newPlatformAdmin(true)
	testTask := newTaskBy(creator, nil)

	companyAdmin := newMember(identity.RoleAdmin, uuid.New())
	employee := newMember(identity.RoleEmployee, uuid.New())

	assert.False(t, service.CanChangeStatus(companyAdmin, creator, testTask))
	assert.False(t, service.CanChangeStatus(employee, creator, testTask))
}

// TestCanChangeStatus_Stranger - посторонний не меняет статус
func TestCanChangeStatus_Stranger(t *testing.T) {
	companyID := uuid.New()
	creator := newMember(identity.RoleAdmin, companyID)
	assignee := newMember(identity.RoleAdmin, companyID)
	stranger := newMember(identity.RoleAdmin, companyID)
	testTask := newTaskBy(creator, &assignee)

	assert.False(t, service.CanChangeStatus(stranger, creator, testTask))
}

// TestCanChangeStatus_AssigneeOverridesPlatformLock - сценарий: задача супер-админа,
// позже назначенная на админа компании
func TestCanChangeStatus_AssigneeOverridesPlatformLock(t *testing.T) {
	creator := newPlatformAdmin(true)
	assignee := newMember(identity.RoleAdmin, uuid.New())
	testTask := newTaskBy(creator, &assignee)

	assert.True(t, service.CanChangeStatus(assignee, creator, testTask))
}

// TestDenyReasons - причины отказа различимы для клиента
func TestDenyReasons(t *testing.T) {
	elevated := newPlatformAdmin(true)
	ordinary := newMember(identity.RoleAdmin, uuid.New())

	assert.Equal(t, service.ReasonPlatformManaged, service.StatusDenyReason(elevated))
	assert.Equal(t, service.ReasonNotCreatorOrAssignee, service.StatusDenyReason(ordinary))
	assert.Equal(t, service.ReasonPlatformManaged, service.EditDenyReason(elevated))
	assert.Equal(t, service.ReasonNotCreator, service.EditDenyReason(ordinary))
}

// TestPermissions_DanglingCreator - автор, которого больше нет в реестрах,
// считается обычным: его задачи не замораживаются
func TestPermissions_DanglingCreator(t *testing.T) {
	creatorID := uuid.New()
	testTask := &task.Task{
		ID:        uuid.New(),
		CreatedBy: creatorID,
	}
	caller := identity.Identity{ID: creatorID, Kind: identity.KindCompanyMember, Role: identity.RoleAdmin}

	// нулевая Identity вместо автора
	assert.True(t, service.CanChangeStatus(caller, identity.Identity{}, testTask))
	assert.True(t, service.CanEditContent(caller, identity.Identity{}, testTask))
}
