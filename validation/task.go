package validation

import "time"

var taskSchema = schema{
	writable: []string{"name", "description", "priority", "deadline"},
	readOnly: []string{"id", "date", "user_id", "owner", "links"},
}

type CreateTaskInput struct {
	Name        *string    `json:"name" validate:"required,min=1,max=100"`
	Description *string    `json:"description"`
	Priority    *int       `json:"priority" validate:"omitnil,priority"`
	Deadline    *time.Time `json:"deadline"`
}

type UpdateTaskInput struct {
	Name        *string    `json:"name" validate:"omitnil,min=1,max=100"`
	Description *string    `json:"description"`
	Priority    *int       `json:"priority" validate:"omitnil,priority"`
	Deadline    *time.Time `json:"deadline"`
}

func DecodeCreateTask(p Payload) (CreateTaskInput, error) {
	errs := Errors{}
	taskSchema.checkFields(p, modeCreate, errs)

	input := CreateTaskInput{
		Name:        decodeString(p, "name", errs),
		Description: decodeString(p, "description", errs),
		Priority:    decodeInt(p, "priority", errs),
		Deadline:    decodeTimestamp(p, "deadline", errs),
	}
	check(input, errs)

	return input, errs.orNil()
}

func DecodeUpdateTask(p Payload) (UpdateTaskInput, error) {
	errs := Errors{}
	taskSchema.checkFields(p, modeUpdate, errs)

	input := UpdateTaskInput{
		Name:        decodeString(p, "name", errs),
		Description: decodeString(p, "description", errs),
		Priority:    decodeInt(p, "priority", errs),
		Deadline:    decodeTimestamp(p, "deadline", errs),
	}
	check(input, errs)

	return input, errs.orNil()
}
