package validation

var userSchema = schema{
	writable: []string{"username", "password"},
	readOnly: []string{"id", "links"},
}

type CreateUserInput struct {
	Username *string `json:"username" validate:"required,min=3,max=80"`
	Password *string `json:"password" validate:"required,min=8"`
}

type UpdateUserInput struct {
	Username *string `json:"username" validate:"omitnil,min=3,max=80"`
	Password *string `json:"password" validate:"omitnil,min=8"`
}

func DecodeCreateUser(p Payload) (CreateUserInput, error) {
	errs := Errors{}
	userSchema.checkFields(p, modeCreate, errs)

	input := CreateUserInput{
		Username: decodeString(p, "username", errs),
		Password: decodeString(p, "password", errs),
	}
	check(input, errs)

	return input, errs.orNil()
}

func DecodeUpdateUser(p Payload) (UpdateUserInput, error) {
	errs := Errors{}
	userSchema.checkFields(p, modeUpdate, errs)

	input := UpdateUserInput{
		Username: decodeString(p, "username", errs),
		Password: decodeString(p, "password", errs),
	}
	check(input, errs)

	return input, errs.orNil()
}
