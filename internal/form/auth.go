package form

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/naveenspark/yogapath/pkg/domain"
)

// Field names shared by the auth forms.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Login is the sign-in form.
type Login struct {
	Email    string `form:"email" validate:"required,email_simple"`
	Password string `form:"password" validate:"required,min=6"`
}

// Set returns a copy of l with field set to value. Unknown fields are ignored.
func (l Login) Set(field, value string) Login {
	switch field {
	case FieldEmail:
		l.Email = value
	case FieldPassword:
		l.Password = value
	}
	return l
}

// Value returns the current value of field.
func (l Login) Value(field string) string {
	switch field {
	case FieldEmail:
		return l.Email
	case FieldPassword:
		return l.Password
	}
	return ""
}

func (l Login) Validate() Errors {
	errs := Errors{}
	check(l, errs, authMessage)
	return errs
}

func (l Login) Request() domain.LoginRequest {
	return domain.LoginRequest{Email: strings.TrimSpace(l.Email), Password: l.Password}
}

// Register is the sign-up form.
type Register struct {
	Name     string `form:"name" validate:"required,min=2,max=100"`
	Email    string `form:"email" validate:"required,email_simple"`
	Password string `form:"password" validate:"required,min=6"`
}

func (r Register) Set(field, value string) Register {
	switch field {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldPassword:
		r.Password = value
	}
	return r
}

func (r Register) Value(field string) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldPassword:
		return r.Password
	}
	return ""
}

func (r Register) Validate() Errors {
	errs := Errors{}
	check(r, errs, authMessage)
	return errs
}

func (r Register) Request() domain.RegisterRequest {
	return domain.RegisterRequest{
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.TrimSpace(r.Email),
		Password: r.Password,
	}
}

func authMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case FieldEmail:
		if fe.Tag() == "required" {
			return "Email is required"
		}
		return "Invalid email format"
	case FieldPassword:
		if fe.Tag() == "required" {
			return "Password is required"
		}
		return "Password must be at least 6 characters"
	case FieldName:
		switch fe.Tag() {
		case "required":
			return "Name is required"
		case "min":
			return "Name must be at least 2 characters"
		default:
			return "Name must be less than 100 characters"
		}
	}
	return "Invalid value"
}
