package models

// Роли пользователей
const (
	RoleHost  = "host"
	RoleGuest = "guest"
)

// ValidRoles список валидных ролей
var ValidRoles = map[string]struct{}{
	RoleHost:  {},
	RoleGuest: {},
}
