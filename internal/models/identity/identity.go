package identity

import "github.com/google/uuid"

type Kind string
type MemberRole string
type ActiveStatus string

const KindPlatformAdmin Kind = "platform_admin"
const KindCompanyMember Kind = "company_member"

const RoleAdmin MemberRole = "admin"
const RoleEmployee MemberRole = "employee"

const StatusActive ActiveStatus = "active"
const StatusInactive ActiveStatus = "inactive"

// Identity - учётная запись, разрешённая один раз на границе сервиса.
// Дальше вся логика сравнивает только Kind/Elevated/Role, а не строки из БД.
type Identity struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	Kind      Kind         `json:"kind" db:"kind"`
	Elevated  bool         `json:"elevated,omitempty" db:"elevated"`
	CompanyID uuid.UUID    `json:"company_id,omitempty" db:"company_id"`
	Role      MemberRole   `json:"role,omitempty" db:"role"`
	Status    ActiveStatus `json:"active_status,omitempty" db:"active_status"`
	Name      string       `json:"name,omitempty" db:"name"`
	Email     string       `json:"email,omitempty" db:"email"`
}

// IsElevatedPlatformAdmin - супер-админ платформы
func (i Identity) IsElevatedPlatformAdmin() bool {
	return i.Kind == KindPlatformAdmin && i.Elevated
}

func (i Identity) IsPlatformAdmin() bool {
	return i.Kind == KindPlatformAdmin
}

func (i Identity) IsCompanyAdmin() bool {
	return i.Kind == KindCompanyMember && i.Role == RoleAdmin
}
