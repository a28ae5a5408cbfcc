package models

import (
	"time"
)

const (
	MinPriority     = 1
	MaxPriority     = 3
	DefaultPriority = MinPriority
)

type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        time.Time `gorm:"not null" json:"date"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Priority    int       `gorm:"not null;default:1;check:priority_range,priority >= 1 AND priority <= 3" json:"priority"`
	Deadline    time.Time `gorm:"not null" json:"deadline"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Owner       *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

type TaskResponse struct {
	ID          uint         `json:"id"`
	Date        Timestamp    `json:"date"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Priority    int          `json:"priority"`
	Deadline    Timestamp    `json:"deadline"`
	UserID      uint         `json:"user_id"`
	Owner       *UserSummary `json:"owner"`
	Links       []Link       `json:"links"`
}

// DefaultDeadline returns the day after now at 23:59 UTC.
func DefaultDeadline(now time.Time) time.Time {
	tomorrow := now.UTC().AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 23, 59, 0, 0, time.UTC)
}
