package handler

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/BloggingApp/vanguard/pkg/emoji"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators adds the emoji tag to gin's validator and makes field
// errors report json names.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return field.Name
		})

		_ = v.RegisterValidation("emoji", func(fl validator.FieldLevel) bool {
			return emoji.IsEmoji(fl.Field().String())
		})
	})
}

// bindingErrors converts a binding failure into a field to message map.
func bindingErrors(err error) map[string]string {
	fields := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["body"] = "malformed request"
		return fields
	}

	for _, fe := range verrs {
		fields[fieldPath(fe)] = fieldMessage(fe)
	}

	return fields
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "emoji":
		return "must be an emoji"
	case "email":
		return "must be an email address"
	case "url":
		return "must be a URL"
	case "uuid":
		return "must be a UUID"
	case "min", "len", "max":
		return "must have " + fe.Tag() + " length " + fe.Param()
	default:
		return "is invalid"
	}
}
