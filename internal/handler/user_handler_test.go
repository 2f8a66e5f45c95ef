package handler

import (
	"net/http"
	"testing"

	"inventory-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAppliesDefaults(t *testing.T) {
	setupTestDB(t)
	e := newTestEcho()

	rec := invoke(t, e, http.MethodPost, "/api/users", map[string]interface{}{
		"name":  "Alice",
		"email": "alice@example.com",
		"pin":   "12345",
	}, CreateUser, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var user model.User
	decodeBody(t, rec, &user)
	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleOrgEmployee, user.Role)
	assert.Equal(t, model.UserStatusActive, user.Status)
	assert.Nil(t, user.TenantID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	seedUser(t, db, "bob@example.com", "11111", nil)

	rec := invoke(t, e, http.MethodPost, "/api/users", map[string]interface{}{
		"name":  "Bob Again",
		"email": "bob@example.com",
	}, CreateUser, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Email already exists", body["error"])
}

func TestCreateUserDuplicateEmailIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	seedUser(t, db, "carol@example.com", "22222", nil)

	rec := invoke(t, e, http.MethodPost, "/api/users", map[string]interface{}{
		"name":  "Carol Upper",
		"email": "Carol@Example.COM",
	}, CreateUser, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUserRejectsBadPIN(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()

	// Signed and decimal strings are 5 characters but not 5 digits
	for _, pin := range []string{"123", "123456", "12a45", "-1234", "+1234", "12.34"} {
		rec := invoke(t, e, http.MethodPost, "/api/users", map[string]interface{}{
			"name":  "Pin Tester",
			"email": "pin@example.com",
			"pin":   pin,
		}, CreateUser, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "pin %q should be rejected", pin)
	}

	var count int64
	db.Model(&model.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetUserNotFound(t *testing.T) {
	setupTestDB(t)
	e := newTestEcho()

	rec := invoke(t, e, http.MethodGet, "/api/users/999", nil, GetUser, map[string]string{"id": "999"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUserKeepingOwnEmail(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	user := seedUser(t, db, "dave@example.com", "33333", nil)

	rec := invoke(t, e, http.MethodPut, "/api/users/1", map[string]interface{}{
		"name":  "Dave Renamed",
		"email": "dave@example.com",
		"role":  model.RoleOrgOwner,
	}, UpdateUser, map[string]string{"id": "1"})

	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, "Dave Renamed", updated.Name)
	assert.Equal(t, model.RoleOrgOwner, updated.Role)
}

func TestUpdateUserEmailCollision(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	seedUser(t, db, "erin@example.com", "44444", nil)
	seedUser(t, db, "frank@example.com", "55555", nil)

	rec := invoke(t, e, http.MethodPut, "/api/users/2", map[string]interface{}{
		"name":  "Frank",
		"email": "erin@example.com",
	}, UpdateUser, map[string]string{"id": "2"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	user := seedUser(t, db, "gone@example.com", "66666", nil)

	rec := invoke(t, e, http.MethodDelete, "/api/users/1", nil, DeleteUser, map[string]string{"id": "1"})
	require.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	db.Model(&model.User{}).Where("id = ?", user.ID).Count(&count)
	assert.Zero(t, count)

	rec = invoke(t, e, http.MethodDelete, "/api/users/1", nil, DeleteUser, map[string]string{"id": "1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListUsersIsGlobal(t *testing.T) {
	db := setupTestDB(t)
	e := newTestEcho()
	tenant := seedTenant(t, db, "Hotel One")
	seedUser(t, db, "one@example.com", "10001", &tenant.ID)
	seedUser(t, db, "two@example.com", "10002", nil)

	rec := invoke(t, e, http.MethodGet, "/api/users", nil, ListUsers, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []model.User
	decodeBody(t, rec, &users)
	assert.Len(t, users, 2)
}
