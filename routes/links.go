package routes

import (
	"fmt"
	"net/http"
	"strings"

	"taskpro/api/models"
)

// Linker renders hypermedia links below an optional path prefix.
type Linker struct {
	prefix string
}

func NewLinker(prefix string) Linker {
	prefix = strings.TrimRight(prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return Linker{prefix: prefix}
}

func (l Linker) href(format string, args ...interface{}) string {
	return l.prefix + fmt.Sprintf(format, args...)
}

func (l Linker) UsersPath() string {
	return l.href("/users")
}

func (l Linker) UserPath(userID uint) string {
	return l.href("/users/%d", userID)
}

func (l Linker) TasksPath(userID uint) string {
	return l.href("/users/%d/tasks", userID)
}

func (l Linker) TaskPath(userID, taskID uint) string {
	return l.href("/users/%d/tasks/%d", userID, taskID)
}

func collectionLinks(href string) []models.Link {
	return []models.Link{
		{Rel: "self", Href: href, Method: http.MethodGet},
		{Rel: "bulk_delete", Href: href, Method: http.MethodDelete},
	}
}

func (l Linker) User(user models.User) models.UserResponse {
	self := l.UserPath(user.ID)
	return models.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Links: []models.Link{
			{Rel: "self", Href: self, Method: http.MethodGet},
			{Rel: "update", Href: self, Method: http.MethodPatch},
			{Rel: "delete", Href: self, Method: http.MethodDelete},
			{Rel: "tasks", Href: l.TasksPath(user.ID), Method: http.MethodGet},
		},
	}
}

func (l Linker) Users(users []models.User) models.UserListResponse {
	items := make([]models.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, l.User(user))
	}
	return models.UserListResponse{Users: items, Links: collectionLinks(l.UsersPath())}
}

func (l Linker) Task(task models.Task) models.TaskResponse {
	self := l.TaskPath(task.UserID, task.ID)
	resp := models.TaskResponse{
		ID:          task.ID,
		Date:        models.Timestamp(task.Date),
		Name:        task.Name,
		Description: task.Description,
		Priority:    task.Priority,
		Deadline:    models.Timestamp(task.Deadline),
		UserID:      task.UserID,
		Links: []models.Link{
			{Rel: "self", Href: self, Method: http.MethodGet},
			{Rel: "update", Href: self, Method: http.MethodPatch},
			{Rel: "delete", Href: self, Method: http.MethodDelete},
			{Rel: "owner", Href: l.UserPath(task.UserID), Method: http.MethodGet},
		},
	}
	if task.Owner != nil {
		owner := task.Owner.Summary()
		resp.Owner = &owner
	}
	return resp
}

func (l Linker) Tasks(userID uint, tasks []models.Task) models.TaskListResponse {
	items := make([]models.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, l.Task(task))
	}
	return models.TaskListResponse{Tasks: items, Links: collectionLinks(l.TasksPath(userID))}
}
