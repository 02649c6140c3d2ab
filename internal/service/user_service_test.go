package service

import (
	"testing"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/permission"
	"backoffice/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixtures struct {
	dir   string
	roles *store.Collection[model.Role]
	users *store.Collection[model.User]
	cases *store.Collection[model.Case]
	audit AuditService
}

func newFixtures(t *testing.T) fixtures {
	t.Helper()
	dir := t.TempDir()
	f := fixtures{
		dir:   dir,
		roles: store.NewCollection[model.Role](dir, store.CollectionRoles),
		users: store.NewCollection[model.User](dir, store.CollectionUsers),
		cases: store.NewCollection[model.Case](dir, store.CollectionCases),
	}
	f.audit = NewAuditService(store.NewCollection[model.AuditEntry](dir, store.CollectionAudit), nil)

	require.NoError(t, f.roles.Insert(model.Role{
		ID:       model.RoleAdmin,
		Name:     "Administrator",
		IsSystem: true,
		Permissions: map[string][]string{
			permission.ModuleAdmin: {permission.ActionView},
			permission.ModuleUsers: {permission.ActionView, permission.ActionCreate, permission.ActionEdit, permission.ActionDelete},
		},
	}))
	require.NoError(t, f.roles.Insert(model.Role{
		ID:       model.RoleClerk,
		Name:     "Clerk",
		IsSystem: true,
		Permissions: map[string][]string{
			permission.ModuleCases: {permission.ActionView},
		},
	}))
	return f
}

func (f fixtures) userService() UserService {
	return NewUserService(f.users, f.roles, permission.NewEngine(f.roles), f.audit)
}

var adminActor = Actor{ID: "admin-1", Username: "root", RoleID: model.RoleAdmin}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	f := newFixtures(t)
	svc := f.userService()

	_, err := svc.CreateUser(CreateUserRequest{
		Username:        "jdoe",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		RoleID:          "nonexistent",
	}, adminActor)

	require.Error(t, err)
	assert.Empty(t, f.users.Scan(), "no record must be inserted")
}

func TestCreateUserRejectsMismatchedConfirmation(t *testing.T) {
	f := newFixtures(t)
	svc := f.userService()

	_, err := svc.CreateUser(CreateUserRequest{
		Username:        "jdoe",
		Password:        "secret1",
		PasswordConfirm: "secret2",
		RoleID:          model.RoleClerk,
	}, adminActor)

	require.Error(t, err)
	assert.Empty(t, f.users.Scan())
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	f := newFixtures(t)
	svc := f.userService()

	_, err := svc.CreateUser(CreateUserRequest{
		Username:        "jdoe",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		RoleID:          model.RoleClerk,
	}, adminActor)
	require.NoError(t, err)

	_, err = svc.CreateUser(CreateUserRequest{
		Username:        "jdoe",
		Password:        "other99",
		PasswordConfirm: "other99",
		RoleID:          model.RoleClerk,
	}, adminActor)
	require.Error(t, err)
	assert.Len(t, f.users.Scan(), 1)
}

func TestCreateUserComputesIsAdmin(t *testing.T) {
	f := newFixtures(t)
	svc := f.userService()

	clerk, err := svc.CreateUser(CreateUserRequest{
		Username:        "clerk1",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		RoleID:          model.RoleClerk,
	}, adminActor)
	require.NoError(t, err)
	assert.False(t, clerk.IsAdmin)

	admin, err := svc.CreateUser(CreateUserRequest{
		Username:        "admin2",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		RoleID:          model.RoleAdmin,
	}, adminActor)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
}

func TestUpdateUserRecomputesIsAdmin(t *testing.T) {
	f := newFixtures(t)
	svc := f.userService()

	created, err := svc.CreateUser(CreateUserRequest{
		Username:        "clerk1",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		RoleID:          model.RoleClerk,
	}, adminActor)
	require.NoError(t, err)
	require.False(t, created.IsAdmin)

	updated, err := svc.UpdateUser(created.ID, UpdateUserRequest{RoleID: model.RoleAdmin}, adminActor)
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin, "is_admin must follow the role on save")
}

func TestLoginInactiveAccountNotRevealedToWrongPassword(t *testing.T) {
	f := newFixtures(t)
	svc := f.userService()

	created, err := svc.CreateUser(CreateUserRequest{
		Username:        "jdoe",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		RoleID:          model.RoleClerk,
		Status:          model.StatusInactive,
	}, adminActor)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// a wrong password must get the same answer as an unknown username
	_, err = svc.Login(LoginRequest{Username: "jdoe", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "invalid username or password", err.Error())

	// the inactive state is only surfaced after password proof
	_, err = svc.Login(LoginRequest{Username: "jdoe", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, "account is inactive", err.Error())
}

func TestLoginActiveAccount(t *testing.T) {
	f := newFixtures(t)
	svc := f.userService()

	_, err := svc.CreateUser(CreateUserRequest{
		Username:        "jdoe",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		RoleID:          model.RoleClerk,
	}, adminActor)
	require.NoError(t, err)

	token, err := svc.Login(LoginRequest{Username: "jdoe", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	f := newFixtures(t)
	svc := f.userService()

	require.NoError(t, f.users.Insert(model.User{
		ID:          "admin-1",
		Username:    "root",
		RoleID:      model.RoleAdmin,
		Status:      model.StatusActive,
		DateCreated: model.NewTimestamp(time.Now()),
	}))

	err := svc.DeleteUser("admin-1", adminActor)
	require.Error(t, err)
	assert.Len(t, f.users.Scan(), 1, "collection must be unchanged")
}

func TestDeleteUserUnknownID(t *testing.T) {
	f := newFixtures(t)
	svc := f.userService()

	err := svc.DeleteUser("missing", adminActor)
	require.Error(t, err)
}
