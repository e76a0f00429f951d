package request

type Register struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type Login struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RecoverPassword struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdatePassword struct {
	Password string `json:"password" validate:"required,min=6"`
}
