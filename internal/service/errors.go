package service

import "fmt"

// причины отказа в доступе, уходят клиенту в details.reason
const (
	ReasonPlatformManaged      = "platform_managed"
	ReasonNotCreator           = "not_creator"
	ReasonNotCreatorOrAssignee = "not_creator_or_assignee"
	ReasonWrongCompany         = "wrong_company"
	ReasonRoleForbidden        = "role_forbidden"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

func NewNotFound(resource string, id string) *BusinessError {
	return &BusinessError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s %s не найден(а)", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewPermissionDenied(reason string, details ...Detail) *BusinessError {
	message := "Операция запрещена"
	if reason == ReasonPlatformManaged {
		message = "Задача управляется платформой, доступ закрыт"
	}

	busErr := NewBusinessError("PERMISSION_DENIED", message, details...)
	busErr.Details["reason"] = reason
	return busErr
}
