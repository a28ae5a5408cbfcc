package routes

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskpro/api/database"
	"taskpro/api/models"
	"taskpro/api/testutils"
	"taskpro/api/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMockRouter(users *testutils.MockUserService, tasks *testutils.MockTaskService) *gin.Engine {
	return NewRouter(RouterConfig{AllowedOrigins: "*", MaxBodyBytes: 4096}, &database.Database{}, users, tasks)
}

func TestUnexpectedErrorIsInternal(t *testing.T) {
	users := &testutils.MockUserService{}
	users.On("GetUsers", mock.Anything).Return([]models.User(nil), errors.New("connection refused"))
	router := newMockRouter(users, &testutils.MockTaskService{})

	w := serve(router, http.MethodGet, "/users", "")

	env := requireError(t, w, http.StatusInternalServerError, CodeInternalError)
	assert.Equal(t, "An unexpected error occurred.", env.Error.Message)
	assert.NotContains(t, w.Body.String(), "connection refused")
	users.AssertExpectations(t)
}

func TestUnexpectedErrorUsesHandlerMessage(t *testing.T) {
	tasks := &testutils.MockTaskService{}
	tasks.On("DeleteTasks", mock.Anything, uint(3), mock.Anything).Return(0, errors.New("disk I/O error"))
	router := newMockRouter(&testutils.MockUserService{}, tasks)

	w := serve(router, http.MethodDelete, "/users/3/tasks", `{"tasks":[1]}`)

	env := requireError(t, w, http.StatusInternalServerError, CodeInternalError)
	assert.Equal(t, "A database error occurred.", env.Error.Message)
	tasks.AssertExpectations(t)
}

func TestPanicIsInternal(t *testing.T) {
	users := &testutils.MockUserService{}
	users.On("GetUserById", mock.Anything, uint(1)).Run(func(mock.Arguments) {
		panic("boom")
	}).Return(models.User{}, nil)
	router := newMockRouter(users, &testutils.MockTaskService{})

	w := serve(router, http.MethodGet, "/users/1", "")

	requireError(t, w, http.StatusInternalServerError, CodeInternalError)
}

func TestHandlersPassPathIDs(t *testing.T) {
	tasks := &testutils.MockTaskService{}
	tasks.On("GetTaskById", mock.Anything, uint(4), uint(9)).
		Return(models.Task{ID: 9, UserID: 4, Name: "mocked", Priority: 1}, nil)
	router := newMockRouter(&testutils.MockUserService{}, tasks)

	w := serve(router, http.MethodGet, "/users/4/tasks/9", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"mocked"`)
	assert.Contains(t, w.Body.String(), `"owner":null`)
	tasks.AssertExpectations(t)
}

func TestRespondError_NoRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	c := testutils.GetTestGinContext(w, httptest.NewRequest(http.MethodGet, "/", nil))

	respondError(c, validation.Errors{"name": {"Missing data for required field."}}, errorMessages{})

	env := requireError(t, w, http.StatusUnprocessableEntity, CodeValidationError)
	assert.Equal(t, "N/A", env.Error.RequestID)
	assert.Equal(t, map[string][]string{"name": {"Missing data for required field."}}, fieldDetails(t, env))
}

func TestRespondError_InputError(t *testing.T) {
	w := httptest.NewRecorder()
	c := testutils.GetTestGinContext(w, httptest.NewRequest(http.MethodDelete, "/users", nil))

	_, err := validation.ParseIDList(validation.Payload{}, "users")
	respondError(c, err, errorMessages{})

	env := requireError(t, w, http.StatusBadRequest, CodeInvalidInput)
	assert.Equal(t, "A list of 'users' IDs is required.", env.Error.Message)
	assert.JSONEq(t, `"No additional details provided."`, string(env.Error.Details))
}
