package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts the first failure
// into a fiber 400 error with a readable message.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		first := validationErrors[0]
		return fiber.NewError(
			fiber.StatusBadRequest,
			fmt.Sprintf("field '%s' failed validation on '%s'", first.Field(), first.Tag()),
		)
	}
	return nil
}
