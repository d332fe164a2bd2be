package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/studyhelper-dev/studyhelper/db"
	"github.com/studyhelper-dev/studyhelper/internal/auth"
	"github.com/studyhelper-dev/studyhelper/internal/router"
)

// setupTest wires a fresh sqlite-backed server for one test. The router is
// the real one, so these tests exercise routing, middleware and handlers
// together.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "contract-test-secret")
	require.NoError(t, auth.InitJWTSecret())

	dsn := "file:" + filepath.Join(t.TempDir(), "handlers_test.db") + "?_pragma=foreign_keys(1)"
	require.NoError(t, db.ConnectDatabase("sqlite", dsn))
	require.NoError(t, db.MigrateDatabase())

	return router.NewRouter()
}

func performRequest(t *testing.T, r *gin.Engine, method string, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()

	w := performRequest(t, r, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, w, &body)
	require.NotEmpty(t, body.AccessToken)

	return body.AccessToken
}

func createTestCourse(t *testing.T, r *gin.Engine, token string, name string) uint {
	t.Helper()

	w := performRequest(t, r, http.MethodPost, "/api/v1/courses", gin.H{"name": name}, token)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var course struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &course)

	return course.ID
}

func createTestNote(t *testing.T, r *gin.Engine, token string, courseID uint, title string) uint {
	t.Helper()

	w := performRequest(t, r, http.MethodPost, "/api/v1/notes", gin.H{
		"course_id": courseID,
		"title":     title,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var note struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &note)

	return note.ID
}

func createTestTask(t *testing.T, r *gin.Engine, token string, courseID uint, title string, body gin.H) uint {
	t.Helper()

	payload := gin.H{"course_id": courseID, "title": title}

	for key, value := range body {
		payload[key] = value
	}

	w := performRequest(t, r, http.MethodPost, "/api/v1/tasks", payload, token)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var task struct {
		ID uint `json:"id"`
	}
	decodeBody(t, w, &task)

	return task.ID
}
