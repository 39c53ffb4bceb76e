package service

import (
	"taskAdmin/internal/models/identity"
	"taskAdmin/internal/models/task"
)

// Единственная точка принятия решений о правах на задачу.
// Правила не дублируются ни в обработчиках, ни в клиентах.
//
// Две независимые цепочки:
//   - авторство управляет правкой содержимого;
//   - назначение управляет сменой статуса и сильнее авторства.
// Обе перекрываются блокировкой задач, созданных супер-админом платформы.
//
// creator - разрешённая учётка автора задачи. Если автор больше не
// разрешается (деактивирован, удалён), передаётся нулевая Identity и
// задача ведёт себя как созданная обычным сотрудником.

// CanEditContent - может ли caller править title/description/deadline/priority/reminder
func CanEditContent(caller, creator identity.Identity, t *task.Task) bool {
	// содержимое задач супер-админа не правит никто, включая его самого
	if creator.IsElevatedPlatformAdmin() {
		return false
	}
	return caller.ID == t.CreatedBy
}

// CanChangeStatus - может ли caller менять статус задачи
func CanChangeStatus(caller, creator identity.Identity, t *task.Task) bool {
	// назначенный меняет статус всегда, даже на задаче супер-админа
	if t.AssignedTo != nil && caller.ID == *t.AssignedTo {
		return true
	}

	if caller.ID == t.CreatedBy {
		return !creator.IsElevatedPlatformAdmin()
	}

	return false
}

// StatusDenyReason - причина отказа для клиента, когда CanChangeStatus == false
func StatusDenyReason(creator identity.Identity) string {
	if creator.IsElevatedPlatformAdmin() {
		return ReasonPlatformManaged
	}
	return ReasonNotCreatorOrAssignee
}

// EditDenyReason - причина отказа для клиента, когда CanEditContent == false
func EditDenyReason(creator identity.Identity) string {
	if creator.IsElevatedPlatformAdmin() {
		return ReasonPlatformManaged
	}
	return ReasonNotCreator
}
