package services

import (
	"errors"
	"sort"
	"time"

	"taskpro/api/broker"
	"taskpro/api/database"
	"taskpro/api/models"
	"taskpro/api/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskServiceInterface covers tasks nested under their owner. Every method
// checks the owner exists before looking at the task or reading the body.
type TaskServiceInterface interface {
	GetTasks(db *database.Database, userID uint) ([]models.Task, error)
	CreateTask(db *database.Database, userID uint, body validation.PayloadSource) (models.Task, error)
	GetTaskById(db *database.Database, userID, taskID uint) (models.Task, error)
	UpdateTask(db *database.Database, userID, taskID uint, body validation.PayloadSource) (models.Task, error)
	DeleteTask(db *database.Database, userID, taskID uint) error
	DeleteTasks(db *database.Database, userID uint, body validation.PayloadSource) (int, error)
}

type TaskService struct {
	events broker.Publisher
	now    func() time.Time
}

func NewTaskService(events broker.Publisher) *TaskService {
	return &TaskService{events: events, now: time.Now}
}

func findUser(tx *gorm.DB, id uint) (models.User, error) {
	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// findOwnedTask treats a task owned by someone else exactly like a missing one.
func findOwnedTask(tx *gorm.DB, userID, taskID uint) (models.Task, error) {
	var task models.Task
	if err := tx.Where("user_id = ?", userID).First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

func (s *TaskService) GetTasks(db *database.Database, userID uint) ([]models.Task, error) {
	user, err := findUser(db.DB, userID)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := db.DB.Where("user_id = ?", userID).Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].Owner = &user
	}
	return tasks, nil
}

func (s *TaskService) CreateTask(db *database.Database, userID uint, body validation.PayloadSource) (models.Task, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	user, err := findUser(tx, userID)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	payload, err := body.Read()
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	input, err := validation.DecodeCreateTask(payload)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	now := s.now().UTC()
	task := models.Task{
		Date:        now,
		Name:        *input.Name,
		Description: input.Description,
		Priority:    models.DefaultPriority,
		Deadline:    models.DefaultDeadline(now),
		UserID:      user.ID,
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Deadline != nil {
		task.Deadline = *input.Deadline
	}

	if err := tx.Omit(clause.Associations).Create(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return models.Task{}, err
	}

	task.Owner = &user
	publishEvent(s.events, broker.TaskEventsSubject, broker.TaskCreated, "task", "create", user.ID, map[string]interface{}{
		"task_id":  task.ID,
		"user_id":  task.UserID,
		"name":     task.Name,
		"priority": task.Priority,
	})

	return task, nil
}

// GetTaskById separates a missing task (ErrTaskNotFound) from one owned by
// another user (ErrAccessDenied). Update and delete do not make that
// distinction.
func (s *TaskService) GetTaskById(db *database.Database, userID, taskID uint) (models.Task, error) {
	user, err := findUser(db.DB, userID)
	if err != nil {
		return models.Task{}, err
	}

	var task models.Task
	if err := db.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if task.UserID != user.ID {
		return models.Task{}, ErrAccessDenied
	}

	task.Owner = &user
	return task, nil
}

func (s *TaskService) UpdateTask(db *database.Database, userID, taskID uint, body validation.PayloadSource) (models.Task, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	user, err := findUser(tx, userID)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	task, err := findOwnedTask(tx, user.ID, taskID)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	payload, err := body.Read()
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	input, err := validation.DecodeUpdateTask(payload)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		task.Name = *input.Name
		updates["name"] = task.Name
	}
	if input.Description != nil {
		task.Description = input.Description
		updates["description"] = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
		updates["priority"] = task.Priority
	}
	if input.Deadline != nil {
		task.Deadline = *input.Deadline
		updates["deadline"] = task.Deadline
	}

	if len(updates) > 0 {
		if err := tx.Model(&task).Updates(updates).Error; err != nil {
			tx.Rollback()
			return models.Task{}, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return models.Task{}, err
	}

	task.Owner = &user
	publishEvent(s.events, broker.TaskEventsSubject, broker.TaskUpdated, "task", "update", user.ID, map[string]interface{}{
		"task_id": task.ID,
		"user_id": task.UserID,
		"fields":  updatedFields(updates),
	})

	return task, nil
}

func (s *TaskService) DeleteTask(db *database.Database, userID, taskID uint) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	user, err := findUser(tx, userID)
	if err != nil {
		tx.Rollback()
		return err
	}

	task, err := findOwnedTask(tx, user.ID, taskID)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&task).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	publishEvent(s.events, broker.TaskEventsSubject, broker.TaskDeleted, "task", "delete", user.ID, map[string]interface{}{
		"task_id": task.ID,
		"user_id": task.UserID,
	})

	return nil
}

// DeleteTasks removes every task listed under "tasks" when all of them
// exist and belong to userID, and nothing otherwise.
func (s *TaskService) DeleteTasks(db *database.Database, userID uint, body validation.PayloadSource) (int, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	user, err := findUser(tx, userID)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	payload, err := body.Read()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	ids, err := validation.ParseIDList(payload, "tasks")
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	var count int64
	if err := tx.Model(&models.Task{}).Where("id IN ? AND user_id = ?", ids, user.ID).Count(&count).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	if count != int64(len(ids)) {
		tx.Rollback()
		return 0, ErrResourceMismatch
	}

	// Both filters again: this statement must never reach another user's rows.
	if err := tx.Where("id IN ? AND user_id = ?", ids, user.ID).Delete(&models.Task{}).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	publishEvent(s.events, broker.TaskEventsSubject, broker.TasksBulkDeleted, "task", "bulk_delete", user.ID, map[string]interface{}{
		"task_ids": ids,
		"user_id":  user.ID,
	})

	return len(ids), nil
}

func updatedFields(updates map[string]interface{}) []string {
	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

var _ TaskServiceInterface = (*TaskService)(nil)
