package services

import (
	"errors"

	"taskpro/api/broker"
	"taskpro/api/database"
	"taskpro/api/models"
	"taskpro/api/validation"

	"gorm.io/gorm"
)

type UserServiceInterface interface {
	GetUsers(db *database.Database) ([]models.User, error)
	CreateUser(db *database.Database, payload validation.Payload) (models.User, error)
	GetUserById(db *database.Database, id uint) (models.User, error)
	UpdateUser(db *database.Database, id uint, body validation.PayloadSource) (models.User, error)
	DeleteUser(db *database.Database, id uint) error
	DeleteUsers(db *database.Database, payload validation.Payload) (int, error)
}

type UserService struct {
	hasher PasswordHasher
	events broker.Publisher
}

func NewUserService(hasher PasswordHasher, events broker.Publisher) *UserService {
	return &UserService{hasher: hasher, events: events}
}

func (s *UserService) GetUsers(db *database.Database) ([]models.User, error) {
	var users []models.User
	if err := db.DB.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) CreateUser(db *database.Database, payload validation.Payload) (models.User, error) {
	if len(payload) == 0 {
		return models.User{}, validation.ErrEmptyPayload
	}

	input, err := validation.DecodeCreateUser(payload)
	if err != nil {
		return models.User{}, err
	}

	hash, err := s.hasher.HashPassword(*input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username:     *input.Username,
		PasswordHash: hash,
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return models.User{}, translateUserWriteError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return models.User{}, translateUserWriteError(err)
	}

	publishEvent(s.events, broker.UserEventsSubject, broker.UserCreated, "user", "create", user.ID, map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})

	return user, nil
}

func (s *UserService) GetUserById(db *database.Database, id uint) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateUser reads the body only once the user is known to exist.
func (s *UserService) UpdateUser(db *database.Database, id uint, body validation.PayloadSource) (models.User, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	payload, err := body.Read()
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}
	if len(payload) == 0 {
		tx.Rollback()
		return models.User{}, validation.ErrEmptyPayload
	}

	input, err := validation.DecodeUpdateUser(payload)
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	updates := map[string]interface{}{}
	if input.Username != nil {
		user.Username = *input.Username
		updates["username"] = user.Username
	}
	if input.Password != nil {
		hash, err := s.hasher.HashPassword(*input.Password)
		if err != nil {
			tx.Rollback()
			return models.User{}, err
		}
		user.PasswordHash = hash
		updates["password_hash"] = hash
	}

	if len(updates) > 0 {
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			tx.Rollback()
			return models.User{}, translateUserWriteError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return models.User{}, translateUserWriteError(err)
	}

	publishEvent(s.events, broker.UserEventsSubject, broker.UserUpdated, "user", "update", user.ID, map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})

	return user, nil
}

func (s *UserService) DeleteUser(db *database.Database, id uint) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var user models.User
	if err := tx.First(&user, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// The tasks foreign key cascades as well; deleting explicitly keeps the
	// behaviour on stores where the constraint is not enforced.
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Task{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	publishEvent(s.events, broker.UserEventsSubject, broker.UserDeleted, "user", "delete", user.ID, map[string]interface{}{
		"user_id": user.ID,
	})

	return nil
}

// DeleteUsers removes every user listed under "users", or none of them
// when any id does not exist.
func (s *UserService) DeleteUsers(db *database.Database, payload validation.Payload) (int, error) {
	ids, err := validation.ParseIDList(payload, "users")
	if err != nil {
		return 0, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	var count int64
	if err := tx.Model(&models.User{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		tx.Rollback()
		return 0, err
	}
	if count != int64(len(ids)) {
		tx.Rollback()
		return 0, ErrResourceMismatch
	}

	if err := tx.Where("user_id IN ?", ids).Delete(&models.Task{}).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Where("id IN ?", ids).Delete(&models.User{}).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	publishEvent(s.events, broker.UserEventsSubject, broker.UsersBulkDeleted, "user", "bulk_delete", 0, map[string]interface{}{
		"user_ids": ids,
	})

	return len(ids), nil
}

var _ UserServiceInterface = (*UserService)(nil)
