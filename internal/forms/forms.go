// Package forms defines the typed input forms and their validation rules.
//
// Each form is a plain struct bound from POST form values. Validation is
// stateless per request: a submission either produces a fully typed form or
// a field-to-message error map that the handler renders back inline.
package forms

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the form field name, not the Go field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Errors maps a form field name to a human-readable validation message.
type Errors map[string]string

// Any reports whether any field failed validation.
func (e Errors) Any() bool { return len(e) > 0 }

type RegisterForm struct {
	Username string `form:"username" validate:"required,max=100"`
	Password string `form:"password" validate:"required,max=72"`
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type BookForm struct {
	Title      string `form:"title" validate:"required,max=200"`
	TotalPages int    `form:"total_pages" validate:"required,min=1"`
	PagesRead  int    `form:"pages_read" validate:"min=0"`
}

// ParseRegisterForm binds and validates the registration form.
func ParseRegisterForm(c *gin.Context) (RegisterForm, Errors) {
	f := RegisterForm{
		Username: strings.TrimSpace(c.PostForm("username")),
		Password: c.PostForm("password"),
	}
	return f, check(f, nil)
}

// ParseLoginForm binds and validates the login form.
func ParseLoginForm(c *gin.Context) (LoginForm, Errors) {
	f := LoginForm{
		Username: strings.TrimSpace(c.PostForm("username")),
		Password: c.PostForm("password"),
	}
	return f, check(f, nil)
}

// ParseBookForm binds and validates the book progress form. Integer fields
// must be present and parse as whole numbers; pages_read accepts 0.
func ParseBookForm(c *gin.Context) (BookForm, Errors) {
	errs := Errors{}
	f := BookForm{
		Title:      strings.TrimSpace(c.PostForm("title")),
		TotalPages: parseIntField(c, "total_pages", errs),
		PagesRead:  parseIntField(c, "pages_read", errs),
	}
	return f, check(f, errs)
}

// check runs struct validation and merges results into errs without
// overwriting messages already recorded during binding.
func check(form any, errs Errors) Errors {
	if errs == nil {
		errs = Errors{}
	}
	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		errs["form"] = "Invalid submission."
		return errs
	}

	for _, fe := range fieldErrors {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = message(fe)
		}
	}
	return errs
}

func parseIntField(c *gin.Context, name string, errs Errors) int {
	raw, ok := c.GetPostForm(name)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		errs[name] = "This field is required."
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs[name] = "Must be a whole number."
		return 0
	}
	return n
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		if fe.Kind() == reflect.String {
			return "Must be at least " + fe.Param() + " characters."
		}
		return "Must be at least " + fe.Param() + "."
	case "max":
		if fe.Kind() == reflect.String {
			return "Must be at most " + fe.Param() + " characters."
		}
		return "Must be at most " + fe.Param() + "."
	}
	return "Invalid value."
}
