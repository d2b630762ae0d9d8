// Package authz implements the role-based authorization model: the closed
// permission token set, the role-to-permission map with its YAML document
// store, page access gates, and the session surface shared with the UI layer.
package authz

import "suinocore/pkg/domain"

// Permission is one token of the closed permission set.
type Permission string

// The recognised permission tokens. No other token grants anything.
const (
	PermAdmin              Permission = "admin"
	PermManageUsers        Permission = "manage_users"
	PermDeveloperTools     Permission = "developer_tools"
	PermSystemConfig       Permission = "system_config"
	PermEdit               Permission = "edit"
	PermViewReports        Permission = "view_reports"
	PermExportData         Permission = "export_data"
	PermImportData         Permission = "import_data"
	PermManageAnimals      Permission = "manage_animals"
	PermManageReproduction Permission = "manage_reproduction"
	PermManageHealth       Permission = "manage_health"
	PermManageGrowth       Permission = "manage_growth"
)

// AllPermissions lists every recognised token.
func AllPermissions() []Permission {
	return []Permission{
		PermAdmin,
		PermManageUsers,
		PermDeveloperTools,
		PermSystemConfig,
		PermEdit,
		PermViewReports,
		PermExportData,
		PermImportData,
		PermManageAnimals,
		PermManageReproduction,
		PermManageHealth,
		PermManageGrowth,
	}
}

// IsValid reports whether the token belongs to the closed set.
func (p Permission) IsValid() bool {
	for _, known := range AllPermissions() {
		if p == known {
			return true
		}
	}
	return false
}

// Canonical role names. Roles are free-form strings on the employee record;
// these are the ones the default map knows about.
const (
	RoleDeveloper     = "Desenvolvedor"
	RoleAdministrator = "Administrador"
	RoleManager       = "Gerente"
	RoleTechnician    = "Técnico"
	RoleOperator      = "Operador"
	RoleVisitor       = "Visitante"
)

// RoleMap associates role names with their granted permission tokens.
type RoleMap map[string][]Permission

// DefaultRoleMap returns the built-in role-to-permission map used whenever no
// document is present on disk.
func DefaultRoleMap() RoleMap {
	return RoleMap{
		RoleDeveloper: {
			PermAdmin, PermEdit, PermViewReports, PermManageUsers,
			PermManageAnimals, PermManageReproduction, PermManageHealth,
			PermManageGrowth, PermExportData, PermImportData,
			PermDeveloperTools, PermSystemConfig,
		},
		RoleAdministrator: {
			PermAdmin, PermEdit, PermViewReports, PermManageUsers,
			PermManageAnimals, PermManageReproduction, PermManageHealth,
			PermManageGrowth, PermExportData, PermImportData,
		},
		RoleManager: {
			PermAdmin, PermEdit, PermViewReports, PermManageUsers,
			PermManageAnimals, PermManageReproduction, PermManageHealth,
			PermManageGrowth, PermExportData, PermImportData,
		},
		RoleTechnician: {
			PermEdit, PermViewReports, PermManageAnimals,
			PermManageReproduction, PermManageHealth, PermManageGrowth,
		},
		RoleOperator: {
			PermEdit, PermManageAnimals, PermManageHealth, PermViewReports,
		},
		RoleVisitor: {
			PermViewReports,
		},
	}
}

// clone deep-copies the map so stored values stay immutable.
func (m RoleMap) clone() RoleMap {
	out := make(RoleMap, len(m))
	for role, perms := range m {
		cpy := make([]Permission, len(perms))
		copy(cpy, perms)
		out[role] = cpy
	}
	return out
}

// Grants reports whether the role holds the token according to this map.
func (m RoleMap) Grants(role string, token Permission) bool {
	for _, perm := range m[role] {
		if perm == token {
			return true
		}
	}
	return false
}

// IsDeveloper reports whether the employee holds the implicit superuser role.
// The check runs before any map lookup so a corrupted document cannot lock
// developers out.
func IsDeveloper(user *domain.Employee) bool {
	return user != nil && user.Role == RoleDeveloper
}
