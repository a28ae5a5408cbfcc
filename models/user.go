package models

// User owns tasks. PasswordHash never leaves the service: handlers render
// users through UserResponse, which has no password field.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:80;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
}

// UserSummary is the reduced user shape nested inside task responses.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Links    []Link `json:"links"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}
