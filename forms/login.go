package forms

import "github.com/andrewpaige1/coursemap-api/models"

// LoginForm is the draft of the login view.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Submit validates the draft and returns the user to log in. The password is
// only checked for presence.
func (f LoginForm) Submit() (models.User, error) {
	if err := validateStruct(f, "Please enter your email and password."); err != nil {
		return models.User{}, err
	}
	return models.User{Email: f.Email}, nil
}
