package broker

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	UserCreated      EventType = "user.created"
	UserUpdated      EventType = "user.updated"
	UserDeleted      EventType = "user.deleted"
	UsersBulkDeleted EventType = "users.bulk_deleted"

	TaskCreated      EventType = "task.created"
	TaskUpdated      EventType = "task.updated"
	TaskDeleted      EventType = "task.deleted"
	TasksBulkDeleted EventType = "tasks.bulk_deleted"
)

const (
	UserEventsSubject = "users"
	TaskEventsSubject = "tasks"
)

// Subject joins the configured prefix with a resource subject, e.g.
// "taskpro.tasks".
func Subject(prefix, resource string) string {
	if prefix == "" {
		return resource
	}
	return prefix + "." + resource
}
