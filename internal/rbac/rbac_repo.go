package rbac

import "gorm.io/gorm"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions() ([]RolePermissionRow, error)
	GetRoleInheritance() ([]RoleInheritanceRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

// RoleInheritanceRow grants Role every permission of ParentRole.
type RoleInheritanceRow struct {
	Role       string
	ParentRole string
}

func (r *repository) GetRolePermissions() ([]RolePermissionRow, error) {
	var result []RolePermissionRow

	err := r.db.
		Table("role_permissions").
		Select("role, resource, action").
		Order("role, resource, action").
		Scan(&result).Error

	return result, err
}

func (r *repository) GetRoleInheritance() ([]RoleInheritanceRow, error) {
	var result []RoleInheritanceRow

	err := r.db.
		Table("role_inheritance").
		Select("role, parent_role").
		Scan(&result).Error

	return result, err
}
