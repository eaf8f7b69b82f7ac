package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"reflect"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-playground/validator/v10"
	"philcali.me/inventory/internal/exceptions"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func checkContentType(event events.APIGatewayV2HTTPRequest) error {
	contentType, ok := event.Headers["content-type"]
	if !ok || contentType == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return exceptions.InvalidInput(fmt.Sprintf("Unsupported content type %s, expected application/json", contentType))
	}
	return nil
}

// Bind decodes the request body, rejecting malformed JSON and mistyped
// fields as unprocessable. A body sent as anything other than JSON is
// invalid input.
func Bind(event events.APIGatewayV2HTTPRequest, payload interface{}) error {
	if err := checkContentType(event); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(event.Body), payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return exceptions.Unprocessable("Validation failed", exceptions.FieldError{
				Field: typeErr.Field,
				Error: fmt.Sprintf("must be of type %s", typeErr.Type.String()),
			})
		}
		return exceptions.Unprocessable(fmt.Sprintf("Invalid request body: %s", err.Error()))
	}
	return nil
}

// BindAndValidate is Bind followed by the payload's `validate` tags.
func BindAndValidate(event events.APIGatewayV2HTTPRequest, payload interface{}) error {
	if err := Bind(event, payload); err != nil {
		return err
	}
	if err := validate.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		fields := make([]exceptions.FieldError, 0, len(validationErrors))
		for _, fe := range validationErrors {
			msg := fe.Tag()
			if fe.Tag() == "required" {
				msg = "is required"
			}
			fields = append(fields, exceptions.FieldError{
				Field: fe.Field(),
				Error: msg,
			})
		}
		return exceptions.Unprocessable("Validation failed", fields...)
	}
	return nil
}
