package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON binds the request body into out and, on failure, writes a 400
// with a message naming the offending fields. Returns false when the
// handler should stop.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		RespondBadRequest(ctx, bindErrorMessage(err))
		return false
	}

	return true
}

func bindErrorMessage(err error) string {
	var validatorErrs validator.ValidationErrors

	if errors.As(err, &validatorErrs) {
		parts := make([]string, 0, len(validatorErrs))

		for _, fe := range validatorErrs {
			parts = append(parts, fieldName(fe)+" "+validationMessage(fe.Tag(), fe.Param()))
		}

		return strings.Join(parts, "; ")
	}

	var syntaxErr *json.SyntaxError

	if errors.As(err, &syntaxErr) {
		return "Request body is not valid JSON"
	}

	var typeErr *json.UnmarshalTypeError

	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return field + " must be of type " + typeErr.Type.String()
	}

	return "Invalid request body"
}

func fieldName(fe validator.FieldError) string {
	// Field() is the Go name; the JSON surface is lower-cased per our DTOs.
	return strings.ToLower(fe.Field())
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "gte":
		return "must be " + param + " or more"
	default:
		if param != "" {
			return "failed " + rule + " validation (" + param + ")"
		}
		return "failed " + rule + " validation"
	}
}
