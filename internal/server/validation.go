package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"teamtasks/internal/models"
)

var validatorsOnce sync.Once

// registerValidators adds the enum tags used by request structs and makes
// validation errors report JSON field names.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		// Blank values mean "not given"; required catches them where needed.
		_ = v.RegisterValidation("task_status", func(fl validator.FieldLevel) bool {
			raw := fl.Field().String()
			if strings.TrimSpace(raw) == "" {
				return true
			}
			_, err := models.ParseTaskStatus(raw)
			return err == nil
		})
		_ = v.RegisterValidation("task_priority", func(fl validator.FieldLevel) bool {
			raw := fl.Field().String()
			if strings.TrimSpace(raw) == "" {
				return true
			}
			_, err := models.ParseTaskPriority(raw)
			return err == nil
		})
	})
}

// bindingMessages turns a ShouldBind error into one message per field.
func bindingMessages(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldMessage(fe))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []string{fmt.Sprintf("%s: must be a %s", typeErr.Field, typeErr.Type.String())}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []string{"body: malformed JSON"}
	}
	return []string{err.Error()}
}

// fieldMessage formats one validator failure as "field: problem".
func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + ": is required"
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s: must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s: must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s: must be at most %s", field, fe.Param())
	case "task_status":
		return fmt.Sprintf("%s: invalid status, allowed values: ToDo, InProgress, Blocked, Completed", field)
	case "task_priority":
		return fmt.Sprintf("%s: invalid priority, allowed values: Low, Medium, High", field)
	default:
		return fmt.Sprintf("%s: failed %s validation", field, fe.Tag())
	}
}
