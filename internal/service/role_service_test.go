package service

import (
	"testing"

	"backoffice/internal/model"
	"backoffice/internal/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f fixtures) roleService() RoleService {
	return NewRoleService(f.roles, f.users, permission.NewEngine(f.roles), f.audit)
}

func TestSeedDefaultRolesIsIdempotent(t *testing.T) {
	f := newFixtures(t)
	svc := f.roleService()

	require.NoError(t, svc.SeedDefaultRoles())
	first := f.roles.Scan()

	require.NoError(t, svc.SeedDefaultRoles())
	assert.Len(t, f.roles.Scan(), len(first), "second seed must not duplicate roles")
}

func TestDeleteCoreRolesFails(t *testing.T) {
	f := newFixtures(t)
	svc := f.roleService()
	require.NoError(t, svc.SeedDefaultRoles())

	before := len(f.roles.Scan())
	for _, id := range []string{model.RoleAdmin, model.RoleProsecutor, model.RoleJudge, model.RoleClerk, model.RoleChiefJustice} {
		err := svc.DeleteRole(id, adminActor)
		require.Error(t, err, "core role %s must not be deletable", id)
	}
	assert.Len(t, f.roles.Scan(), before, "role collection must be unchanged")
}

func TestDeleteCustomRole(t *testing.T) {
	f := newFixtures(t)
	svc := f.roleService()

	created, err := svc.CreateRole(CreateRoleRequest{Name: "Paralegal"}, adminActor)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRole(created.ID, adminActor))
	_, err = svc.GetRole(created.ID)
	require.Error(t, err)
}

func TestDeleteRoleStillAssigned(t *testing.T) {
	f := newFixtures(t)
	svc := f.roleService()

	created, err := svc.CreateRole(CreateRoleRequest{Name: "Paralegal"}, adminActor)
	require.NoError(t, err)

	require.NoError(t, f.users.Insert(model.User{ID: "u1", Username: "jdoe", RoleID: created.ID}))

	err = svc.DeleteRole(created.ID, adminActor)
	require.Error(t, err, "role in use must not be deletable")
}

func TestRenameSystemRoleRejected(t *testing.T) {
	f := newFixtures(t)
	svc := f.roleService()
	require.NoError(t, svc.SeedDefaultRoles())

	_, err := svc.UpdateRole(model.RoleJudge, UpdateRoleRequest{Name: "Super Judge"}, adminActor)
	require.Error(t, err)

	// description edits are still allowed
	updated, err := svc.UpdateRole(model.RoleJudge, UpdateRoleRequest{Name: "Judge", Description: "updated"}, adminActor)
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Description)
}

func TestChiefJusticeEditGate(t *testing.T) {
	f := newFixtures(t)
	svc := f.roleService()
	require.NoError(t, svc.SeedDefaultRoles())

	_, err := svc.UpdateRole(model.RoleChiefJustice, UpdateRoleRequest{Name: "Chief Justice", Description: "x"}, adminActor)
	require.Error(t, err, "only the holder may edit chief_justice")

	holder := Actor{ID: "cj-1", Username: "chief", RoleID: model.RoleChiefJustice}
	_, err = svc.UpdateRole(model.RoleChiefJustice, UpdateRoleRequest{Name: "Chief Justice", Description: "x"}, holder)
	require.NoError(t, err)

	_, err = svc.SavePermissions(model.RoleChiefJustice, SavePermissionsRequest{
		Permissions: map[string][]string{permission.ModuleCases: {permission.ActionView}},
	}, adminActor)
	require.Error(t, err)
}

func TestSavePermissionsRoundTrip(t *testing.T) {
	f := newFixtures(t)
	svc := f.roleService()

	created, err := svc.CreateRole(CreateRoleRequest{Name: "Paralegal"}, adminActor)
	require.NoError(t, err)

	saved, err := svc.SavePermissions(created.ID, SavePermissionsRequest{
		Permissions: map[string][]string{
			permission.ModuleCases: {permission.ActionView, permission.ActionView, permission.ActionEdit},
			"bogus":                {permission.ActionView},
		},
	}, adminActor)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{permission.ActionView, permission.ActionEdit}, saved.Permissions[permission.ModuleCases])
	assert.NotContains(t, saved.Permissions, "bogus")

	// reading back yields a set-equal copy
	got, err := svc.GetRole(created.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, saved.Permissions[permission.ModuleCases], got.Permissions[permission.ModuleCases])
}

func TestSavePermissionsUnknownRole(t *testing.T) {
	f := newFixtures(t)
	svc := f.roleService()

	_, err := svc.SavePermissions("ghost", SavePermissionsRequest{
		Permissions: map[string][]string{permission.ModuleCases: {permission.ActionView}},
	}, adminActor)
	require.Error(t, err)
}
