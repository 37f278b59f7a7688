package http

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by all handlers. validator.Validate is safe for
// concurrent use.
var validate = validator.New()

// validationMessage flattens field errors into one readable line.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid payload"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+" failed rule "+fe.Tag())
	}
	return strings.Join(parts, "; ")
}
