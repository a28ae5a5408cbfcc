package models

// Link is one hypermedia control attached to a response.
type Link struct {
	Rel    string `json:"rel"`
	Href   string `json:"href"`
	Method string `json:"method"`
}

// UserListResponse is the body of GET /users.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Links []Link         `json:"links"`
}

// TaskListResponse is the body of GET /users/{id}/tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Links []Link         `json:"links"`
}
