package rbac

import (
	"errors"
	"testing"

	"go-attendance/internal/rbac/infra"

	"github.com/casbin/casbin/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =========================================
// Fake Repository
// =========================================

type fakeRepo struct {
	perms       []RolePermissionRow
	inheritance []RoleInheritanceRow
	err         error
}

func (f *fakeRepo) GetRolePermissions() ([]RolePermissionRow, error) {
	return f.perms, f.err
}

func (f *fakeRepo) GetRoleInheritance() ([]RoleInheritanceRow, error) {
	return f.inheritance, f.err
}

func defaultPolicy() *fakeRepo {
	return &fakeRepo{
		perms: []RolePermissionRow{
			{Role: "staff", Resource: "leave", Action: "submit"},
			{Role: "staff", Resource: "balance", Action: "read_own"},
			{Role: "admin", Resource: "leave", Action: "decide"},
			{Role: "admin", Resource: "report", Action: "read"},
		},
		inheritance: []RoleInheritanceRow{
			{Role: "admin", ParentRole: "staff"},
		},
	}
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	e, err := infra.NewEnforcer()
	require.NoError(t, err)
	return e
}

// =========================================
// TEST: Load + Enforce
// =========================================

func TestRBACService_Enforce(t *testing.T) {
	service := NewService(defaultPolicy(), newTestEnforcer(t))
	require.NoError(t, service.LoadPolicy())

	allowed, err := service.Enforce("staff", "leave", "submit")
	assert.NoError(t, err)
	assert.True(t, allowed)

	denied, err := service.Enforce("staff", "report", "read")
	assert.NoError(t, err)
	assert.False(t, denied)

	// admin inherits staff permissions
	inherited, err := service.Enforce("admin", "balance", "read_own")
	assert.NoError(t, err)
	assert.True(t, inherited)

	anonymous, err := service.Enforce("", "leave", "submit")
	assert.NoError(t, err)
	assert.False(t, anonymous)
}

func TestRBACService_IsAdmin(t *testing.T) {
	service := NewService(defaultPolicy(), newTestEnforcer(t))
	require.NoError(t, service.LoadPolicy())

	assert.True(t, service.IsAdmin("admin"))
	assert.False(t, service.IsAdmin("staff"))
	assert.False(t, service.IsAdmin("unknown"))
}

func TestRBACService_LoadPolicyReplaces(t *testing.T) {
	repo := defaultPolicy()
	service := NewService(repo, newTestEnforcer(t))
	require.NoError(t, service.LoadPolicy())
	assert.True(t, service.IsAdmin("admin"))

	repo.perms = []RolePermissionRow{{Role: "staff", Resource: "leave", Action: "submit"}}
	repo.inheritance = nil
	require.NoError(t, service.LoadPolicy())
	assert.False(t, service.IsAdmin("admin"))
}

func TestRBACService_LoadPolicyError(t *testing.T) {
	service := NewService(&fakeRepo{err: errors.New("db down")}, newTestEnforcer(t))
	assert.Error(t, service.LoadPolicy())
}

func TestRBACService_PermissionsForRole(t *testing.T) {
	service := NewService(defaultPolicy(), newTestEnforcer(t))
	require.NoError(t, service.LoadPolicy())

	perms, err := service.PermissionsForRole("admin")
	require.NoError(t, err)
	assert.ElementsMatch(t, []PermissionResponse{
		{Resource: "leave", Action: "submit"},
		{Resource: "balance", Action: "read_own"},
		{Resource: "leave", Action: "decide"},
		{Resource: "report", Action: "read"},
	}, perms)
}
