package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/routes"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils"
)

func TestMain(m *testing.M) {
	// The JWT config is loaded once per process; set it before any token
	// is generated.
	os.Setenv("JWT_SECRET", "handler-test-secret")
	os.Exit(m.Run())
}

// fakeStore is an in-memory stand-in for S3. failDelete lets tests simulate
// partial store outages during cascading cleanup.
type fakeStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	deleted    []string
	uploadErr  error
	failDelete func(key string) bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Upload(_ context.Context, body io.Reader, key, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return key, nil
}

func (f *fakeStore) Presign(key string) (string, error) {
	return "https://signed.example/" + key, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	if f.failDelete != nil && f.failDelete(key) {
		return fmt.Errorf("simulated store outage for %s", key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	store *fakeStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.IncomingLetter{},
		&models.OutgoingLetter{},
		&models.LetterDisposition{},
		&models.LetterApproval{},
		&models.LetterAttachment{},
		&models.SequenceCounter{},
	))

	store := newFakeStore()
	app := fiber.New()
	routes.Register(app, db, store)

	return &testEnv{app: app, db: db, store: store}
}

var userSeq int64

// seedUser creates a user and returns it with a valid bearer token.
func (e *testEnv) seedUser(t *testing.T, orgID uint, role models.Role) (models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	n := atomic.AddInt64(&userSeq, 1)
	user := models.User{
		OrganizationID: orgID,
		Username:       fmt.Sprintf("%s-%d-%d", role, orgID, n),
		Email:          fmt.Sprintf("%s-%d-%d@example.org", role, orgID, n),
		PasswordHash:   hash,
		FullName:       "Test User",
		Role:           role,
	}
	require.NoError(t, e.db.Create(&user).Error)

	token, _, err := utils.GenerateAccessToken(user)
	require.NoError(t, err)

	return user, token
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) doMultipart(t *testing.T, method, path, token string, fileField, fileName string, content []byte, fields map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(fileField, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) utils.APIResponse {
	t.Helper()

	var envelope utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}
