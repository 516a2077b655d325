// Package forms validates user input locally before any network call, so a
// malformed submission never costs a round trip. Failures come back as
// api.ValidationError with the message the UI shows.
package forms

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/citysafe/citysafe-go/internal/api"
)

const (
	MinPostText = 10
	MaxPostText = 500
	MaxTags     = 5
	MaxImages   = 5
	MinPassword = 6
)

// userIDPattern matches the account schema: lowercase letters, digits and
// underscore only.
var userIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// emailPattern is the strict check used at registration and login.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("userid", func(fl validator.FieldLevel) bool {
		return userIDPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("strictemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

type AddPost struct {
	Text     string   `validate:"required"`
	Type     string   `validate:"required"`
	Location string   `validate:"required"`
	Tags     []string `validate:"min=1,max=5"`
	Images   int      `validate:"min=1,max=5"`
}

// ValidateAddPost applies the add-post rules: all fields present, text
// between 10 and 500 characters, one to five tags, one to five images.
func ValidateAddPost(f AddPost) error {
	if err := validate.Struct(f); err != nil {
		return addPostMessage(err)
	}
	if len(strings.TrimSpace(f.Text)) < MinPostText {
		return &api.ValidationError{Field: "text", Message: "enter more than 10 letters"}
	}
	if len(f.Text) > MaxPostText {
		return &api.ValidationError{Field: "text", Message: "post text is limited to 500 characters"}
	}
	return nil
}

func addPostMessage(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &api.ValidationError{Message: "please fill in all required fields"}
	}
	fe := verrs[0]
	switch fe.StructField() {
	case "Tags":
		if fe.Tag() == "max" {
			return &api.ValidationError{Field: "tags", Message: "maximum 5 tags allowed"}
		}
		return &api.ValidationError{Field: "tags", Message: "add at least one tag"}
	case "Images":
		if fe.Tag() == "max" {
			return &api.ValidationError{Field: "images", Message: "maximum 5 images allowed"}
		}
		return &api.ValidationError{Field: "images", Message: "select at least one image"}
	default:
		return &api.ValidationError{Message: "please fill in all required fields"}
	}
}

type Register struct {
	Name     string `validate:"required"`
	UserID   string `validate:"required,userid"`
	Password string `validate:"required,min=6"`
	Confirm  string `validate:"required,eqfield=Password"`
	Email    string `validate:"required,strictemail"`
}

// ValidateRegister applies the sign-up rules. UserID is checked after
// lowercasing and trimming, the same canonical form the request sends.
func ValidateRegister(f Register) error {
	f.UserID = strings.TrimSpace(strings.ToLower(f.UserID))
	f.Email = strings.TrimSpace(strings.ToLower(f.Email))
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return &api.ValidationError{Message: "please fill in all required fields"}
		}
		fe := verrs[0]
		switch fe.StructField() {
		case "UserID":
			if fe.Tag() == "userid" {
				return &api.ValidationError{Field: "userId", Message: "use lowercase letters, numbers and underscore only"}
			}
			return &api.ValidationError{Field: "userId", Message: "user id is required"}
		case "Email":
			return &api.ValidationError{Field: "email", Message: "please enter a valid email"}
		case "Password":
			if fe.Tag() == "min" {
				return &api.ValidationError{Field: "password", Message: "password must be at least 6 characters"}
			}
			return &api.ValidationError{Field: "password", Message: "password is required"}
		case "Confirm":
			return &api.ValidationError{Field: "confirmPassword", Message: "passwords do not match"}
		default:
			return &api.ValidationError{Message: "please fill in all required fields"}
		}
	}
	return nil
}

type Login struct {
	Email    string `validate:"required,strictemail"`
	Password string `validate:"required"`
}

func ValidateLogin(f Login) error {
	f.Email = strings.TrimSpace(strings.ToLower(f.Email))
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].StructField() == "Email" {
			return &api.ValidationError{Field: "email", Message: "please enter a valid email"}
		}
		return &api.ValidationError{Message: "email and password are required"}
	}
	return nil
}

type EditProfile struct {
	Name     string `validate:"required"`
	Username string `validate:"required,userid"`
}

func ValidateEditProfile(f EditProfile) error {
	f.Username = strings.TrimSpace(strings.ToLower(f.Username))
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].StructField() == "Username" && verrs[0].Tag() == "userid" {
			return &api.ValidationError{Field: "username", Message: "use lowercase letters, numbers and underscore only"}
		}
		return &api.ValidationError{Message: "name and username are required"}
	}
	return nil
}
