package api

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentnest/server/config"
	"rentnest/server/internal/auth"
	"rentnest/server/internal/database"
	"rentnest/server/internal/models"
	"rentnest/server/internal/storage"
)

type mockEnv struct {
	router      *gin.Engine
	mock        sqlmock.Sqlmock
	storageRoot string
}

// newMockEnv builds the full route tree over a sqlmock database with the
// given account pre-authenticated, so tests can prove exactly which
// queries a request causes.
func newMockEnv(t *testing.T, account *models.Account) *mockEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db := database.NewWithDB(sqlDB)
	storageRoot := t.TempDir()
	store, err := storage.NewStore(storageRoot, "http://localhost:5250", logger)
	require.NoError(t, err)

	authService := auth.NewService(db, "test-secret", time.Hour, nil, logger)
	handler := NewHandler(db, logger, authService, store, nil, nil, config.GetCityNames(), time.Hour)

	router := gin.New()
	if account != nil {
		router.Use(func(c *gin.Context) {
			c.Set("account", account)
			c.Next()
		})
	}
	SetupRoutes(router, handler)

	return &mockEnv{router: router, mock: mock, storageRoot: storageRoot}
}

func TestCreateListingRoleGateRunsBeforeAnyQuery(t *testing.T) {
	tenant := &models.Account{ID: "tenant-1", Role: models.RoleTenant}
	env := newMockEnv(t, tenant)

	body := bytes.NewBufferString(`{"title":"x","street":"y","city":"z","category":"house","monthly_rent":1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/listings", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	// No expectations were registered: any query at all would have failed.
	assert.NoError(t, env.mock.ExpectationsWereMet())
}

func buildVerificationForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("document_type", models.DocumentPassport))
	require.NoError(t, writer.WriteField("document_number", "NX1234567"))
	part, err := writer.CreateFormFile("document", "passport.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func (e *mockEnv) submitVerification(t *testing.T) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := buildVerificationForm(t)
	req := httptest.NewRequest(http.MethodPost, "/api/verification", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *mockEnv) storedDocuments(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(filepath.Join(e.storageRoot, storage.BucketVerificationDocuments))
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestVerificationFailureRollsBackAndRetryWorks(t *testing.T) {
	tenant := &models.Account{ID: "tenant-1", Role: models.RoleTenant, VerificationStatus: models.VerificationNotStarted}
	env := newMockEnv(t, tenant)

	// First attempt dies on the request insert. The account must be rolled
	// back to not_started and the uploaded document removed.
	env.mock.ExpectExec("INSERT INTO verification_requests").
		WillReturnError(errors.New("disk I/O error"))
	env.mock.ExpectExec("UPDATE profiles SET verification_status").
		WithArgs(models.VerificationNotStarted, sqlmock.AnyArg(), "tenant-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := env.submitVerification(t)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, env.storedDocuments(t), "orphaned upload should be removed")
	require.NoError(t, env.mock.ExpectationsWereMet())

	// The failed attempt does not block the retry.
	env.mock.ExpectExec("INSERT INTO verification_requests").
		WillReturnResult(sqlmock.NewResult(0, 1))
	env.mock.ExpectExec("UPDATE profiles SET verification_status").
		WithArgs(models.VerificationPending, sqlmock.AnyArg(), "tenant-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w = env.submitVerification(t)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, env.storedDocuments(t), 1)
	assert.Equal(t, models.VerificationPending, tenant.VerificationStatus)
	require.NoError(t, env.mock.ExpectationsWereMet())
}

func TestVerificationRejectsUnknownDocumentType(t *testing.T) {
	tenant := &models.Account{ID: "tenant-1", Role: models.RoleTenant}
	env := newMockEnv(t, tenant)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("document_type", "library_card"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/verification", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, env.mock.ExpectationsWereMet())
}
