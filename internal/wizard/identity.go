package wizard

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/sharanb/careerforge-cli/internal/careerforge"
)

// Identity carries the fields collected before the wizard starts. It is
// validated locally and never sent over the network until registration.
type Identity struct {
	FirstName       string `validate:"required"`
	LastName        string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8,strongpassword"`
	ConfirmPassword string `validate:"eqfield=Password"`
	Phone           string
	LinkedIn        string
	GitHub          string
	Preferences     careerforge.Preferences
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Upper, lower, and digit required; length is covered by the min tag.
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		var upper, lower, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return upper && lower && digit
	})
	return v
}

var identityMessages = map[string]map[string]string{
	"FirstName": {"required": "First name is required"},
	"LastName":  {"required": "Last name is required"},
	"Email": {
		"required": "Email is required",
		"email":    "Email is invalid",
	},
	"Password": {
		"required":       "Password is required",
		"min":            "Password must be at least 8 characters",
		"strongpassword": "Password must contain uppercase, lowercase, and number",
	},
	"ConfirmPassword": {"eqfield": "Passwords do not match"},
}

// Validate checks the identity fields and returns a field-to-message map.
// An empty map means the identity is acceptable.
func (id *Identity) Validate() map[string]string {
	problems := make(map[string]string)

	err := validate.Struct(id)
	if err == nil {
		return problems
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		problems["general"] = err.Error()
		return problems
	}

	for _, fe := range errs {
		if msg, ok := identityMessages[fe.Field()][fe.Tag()]; ok {
			problems[fe.Field()] = msg
			continue
		}
		problems[fe.Field()] = fe.Error()
	}

	return problems
}

// Name joins the name parts the way the registration payload expects.
func (id *Identity) Name() string {
	return strings.TrimSpace(id.FirstName + " " + id.LastName)
}
