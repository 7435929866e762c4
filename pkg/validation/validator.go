package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// loginHandle is the non-email form of a login.
var loginHandle = regexp.MustCompile(`^[_.@A-Za-z0-9-]+$`)

var (
	plain    = validator.New()
	initOnce sync.Once
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the login tag and alias tags used by request payloads.
func Init() {
	initOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			Register(v)
		}
	})
}

// Register applies the custom tags to v. Split from Init so tests can use a private instance.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("login", validateLogin)
	v.RegisterAlias("accountemail", "min=5,max=254,email")
	v.RegisterAlias("langkey", "min=2,max=10")
}

// IsValidLogin reports whether s is either an email address or a handle of [_.@A-Za-z0-9-].
func IsValidLogin(s string) bool {
	if s == "" || len(s) > 50 {
		return false
	}
	if loginHandle.MatchString(s) {
		return true
	}
	return plain.Var(s, "email") == nil
}

func validateLogin(fl validator.FieldLevel) bool {
	return IsValidLogin(fl.Field().String())
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email", "accountemail":
		return "must be a valid email"
	case "login":
		return "must be an email address or contain only letters, digits and _.@-"
	case "min":
		return "must be at least " + param + " characters long"
	case "max":
		return "must be at most " + param + " characters long"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "langkey":
		return "must be between 2 and 10 characters long"
	case "url":
		return "must be a valid URL"
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", fe.Tag(), param)
		}
		return fmt.Sprintf("validation failed for '%s'", fe.Tag())
	}
}
