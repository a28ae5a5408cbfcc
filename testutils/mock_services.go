package testutils

import (
	"taskpro/api/database"
	"taskpro/api/models"
	"taskpro/api/validation"

	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserServiceInterface for testing
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUsers(db *database.Database) ([]models.User, error) {
	args := m.Called(db)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) CreateUser(db *database.Database, payload validation.Payload) (models.User, error) {
	args := m.Called(db, payload)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) GetUserById(db *database.Database, id uint) (models.User, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(db *database.Database, id uint, body validation.PayloadSource) (models.User, error) {
	args := m.Called(db, id, body)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(db *database.Database, id uint) error {
	args := m.Called(db, id)
	return args.Error(0)
}

func (m *MockUserService) DeleteUsers(db *database.Database, payload validation.Payload) (int, error) {
	args := m.Called(db, payload)
	return args.Int(0), args.Error(1)
}

// MockTaskService mocks the TaskServiceInterface for testing
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) GetTasks(db *database.Database, userID uint) ([]models.Task, error) {
	args := m.Called(db, userID)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) CreateTask(db *database.Database, userID uint, body validation.PayloadSource) (models.Task, error) {
	args := m.Called(db, userID, body)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) GetTaskById(db *database.Database, userID, taskID uint) (models.Task, error) {
	args := m.Called(db, userID, taskID)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(db *database.Database, userID, taskID uint, body validation.PayloadSource) (models.Task, error) {
	args := m.Called(db, userID, taskID, body)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(db *database.Database, userID, taskID uint) error {
	args := m.Called(db, userID, taskID)
	return args.Error(0)
}

func (m *MockTaskService) DeleteTasks(db *database.Database, userID uint, body validation.PayloadSource) (int, error) {
	args := m.Called(db, userID, body)
	return args.Int(0), args.Error(1)
}
