package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskpro/api/database"
	"taskpro/api/services"
	"taskpro/api/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	db     *database.Database
	events *testutils.RecordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWithConfig(t, RouterConfig{AllowedOrigins: "*", MaxBodyBytes: 4096})
}

func newTestServerWithConfig(t *testing.T, cfg RouterConfig) *testServer {
	t.Helper()
	db := testutils.SetupTestDB(t)
	events := &testutils.RecordingPublisher{}
	userService := services.NewUserService(services.NewBcryptHasher(bcrypt.MinCost), events)
	taskService := services.NewTaskService(events)
	return &testServer{
		router: NewRouter(cfg, db, userService, taskService),
		db:     db,
		events: events,
	}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	return serve(s.router, method, path, body)
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createUser(t *testing.T, username string) uint {
	t.Helper()
	w := s.do(http.MethodPost, "/users", fmt.Sprintf(`{"username":%q,"password":"password123"}`, username))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var user struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	return user.ID
}

func (s *testServer) createTask(t *testing.T, userID uint, body string) uint {
	t.Helper()
	w := s.do(http.MethodPost, fmt.Sprintf("/users/%d/tasks", userID), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task.ID
}

type errorEnvelope struct {
	Error struct {
		Code      string          `json:"code"`
		Message   string          `json:"message"`
		Details   json.RawMessage `json:"details"`
		RequestID string          `json:"request_id"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func fieldDetails(t *testing.T, env errorEnvelope) map[string][]string {
	t.Helper()
	var details map[string][]string
	require.NoError(t, json.Unmarshal(env.Error.Details, &details), string(env.Error.Details))
	return details
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) errorEnvelope {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	env := decodeError(t, w)
	require.Equal(t, code, env.Error.Code)
	return env
}
