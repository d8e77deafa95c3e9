package services

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/go-playground/validator/v10"
)

// Limits on credential input. Passwords are capped at bcrypt's input size.
const (
	MaxUserNameBytes = 100
	MaxPasswordBytes = 72
)

type credentials struct {
	UserName string `name:"username" validate:"required,maxbytes=100"`
	Password string `name:"password" validate:"required,maxbytes=72"`
}

// InvalidArgumentError carries a client-facing description of bad input.
// It matches common.ErrInvalidArgument with errors.Is.
type InvalidArgumentError struct {
	Message string
}

func (e *InvalidArgumentError) Error() string { return e.Message }

func (e *InvalidArgumentError) Unwrap() error { return common.ErrInvalidArgument }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("name")
	})
	// max counts runes; byte length is what the store and bcrypt care about
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic("services: register maxbytes validation: " + err.Error())
	}
	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

func validateCredentials(username, password string) error {
	err := validate.Struct(credentials{UserName: username, Password: password})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &InvalidArgumentError{Message: err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "maxbytes":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s bytes", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return &InvalidArgumentError{Message: strings.Join(msgs, "; ")}
}
