package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/permission"
	"backoffice/internal/service"
	"backoffice/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoleRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	roles := store.NewCollection[model.Role](dir, store.CollectionRoles)
	users := store.NewCollection[model.User](dir, store.CollectionUsers)
	audit := service.NewAuditService(store.NewCollection[model.AuditEntry](dir, store.CollectionAudit), nil)

	engine := permission.NewEngine(roles)
	middleware.InitPermissionMiddleware(engine)

	roleService := service.NewRoleService(roles, users, engine, audit)
	require.NoError(t, roleService.SeedDefaultRoles())

	router := gin.New()
	NewRoleHandler(roleService).RegisterRoutes(&router.RouterGroup)
	return router
}

func tokenFor(t *testing.T, roleID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "u-1",
		"username": "tester",
		"role_id":  roleID,
	})
	signed, err := token.SignedString(middleware.GetJWTSecret())
	require.NoError(t, err)
	return signed
}

func doRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListRolesRequiresToken(t *testing.T) {
	router := newRoleRouter(t)

	w := doRequest(router, http.MethodGet, "/api/roles", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListRolesForbiddenWithoutGrant(t *testing.T) {
	router := newRoleRouter(t)

	w := doRequest(router, http.MethodGet, "/api/roles", tokenFor(t, model.RoleClerk))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListRolesAsAdmin(t *testing.T) {
	router := newRoleRouter(t)

	w := doRequest(router, http.MethodGet, "/api/roles", tokenFor(t, model.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []service.RoleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.GreaterOrEqual(t, len(body.Data), 5, "all seeded roles are listed")
}

func TestDeleteCoreRoleRejected(t *testing.T) {
	router := newRoleRouter(t)

	w := doRequest(router, http.MethodDelete, "/api/roles/"+model.RoleJudge, tokenFor(t, model.RoleAdmin))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUnknownRoleIs404(t *testing.T) {
	router := newRoleRouter(t)

	w := doRequest(router, http.MethodDelete, "/api/roles/does-not-exist", tokenFor(t, model.RoleAdmin))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPermissionCatalogs(t *testing.T) {
	router := newRoleRouter(t)

	for _, path := range []string{"/api/permissions/modules", "/api/permissions/actions"} {
		w := doRequest(router, http.MethodGet, path, tokenFor(t, model.RoleAdmin))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
