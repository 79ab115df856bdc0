package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/charter-booking/internal/config"
	"github.com/harborline/charter-booking/internal/repository"
	"github.com/harborline/charter-booking/internal/utils"
)

const authTestSecret = "test-secret"

func newAuthHandler(db *sql.DB) *AuthHandler {
	cfg := config.Config{JWTSecret: authTestSecret, AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4}
	return NewAuthHandler(cfg,
		repository.NewCompanyRepo(db),
		repository.NewUserRepo(db),
		repository.NewTokenRepo(db))
}

func authContext(t *testing.T, target, body, bearer string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = utils.NewValidator()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterCompanyCreatesTenantAndAdminAtomically(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO companies").
		WithArgs("Harborline Charters", "UTC").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO users").
		WithArgs(uint64(7), "owner@example.com", sqlmock.AnyArg(), "admin").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(uint64(9), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	h := newAuthHandler(db)
	c, rec := authContext(t, "/v1/auth/register",
		`{"company_name":"Harborline Charters","email":"owner@example.com","password":"supersecret"}`, "")

	require.NoError(t, h.RegisterCompany(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"company_id":7`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterCompanyRollsBackOnDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO companies").
		WithArgs("Harborline Charters", "UTC").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO users").
		WithArgs(uint64(7), "owner@example.com", sqlmock.AnyArg(), "admin").
		WillReturnError(errors.New("Error 1062: Duplicate entry 'owner@example.com' for key 'users.email'"))
	mock.ExpectRollback()

	h := newAuthHandler(db)
	c, rec := authContext(t, "/v1/auth/register",
		`{"company_name":"Harborline Charters","email":"owner@example.com","password":"supersecret"}`, "")

	require.NoError(t, h.RegisterCompany(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutWithBearerRevokesAllSessions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	access, err := utils.NewAccessToken(authTestSecret, 9, 42, "staff", 15)
	require.NoError(t, err)

	h := newAuthHandler(db)
	c, rec := authContext(t, "/v1/auth/logout", "", access.Token)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutRejectsBadBearer(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	forged, err := utils.NewAccessToken("wrong-secret", 9, 42, "staff", 15)
	require.NoError(t, err)

	h := newAuthHandler(db)
	c, rec := authContext(t, "/v1/auth/logout", "", forged.Token)

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
