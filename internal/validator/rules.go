package validator

import (
	"github.com/go-playground/validator/v10"

	"vlinky_backend/internal/models"
)

// registerCustomRules wires the domain-specific validation tags.
func registerCustomRules(v *validator.Validate) {
	// order_type: one of the known request order types
	_ = v.RegisterValidation("order_type", func(fl validator.FieldLevel) bool {
		return models.ValidOrderType(models.OrderType(fl.Field().String()))
	})

	// content_rights: one of the known content-rights assertions
	_ = v.RegisterValidation("content_rights", func(fl validator.FieldLevel) bool {
		return models.ValidContentRights(models.ContentRights(fl.Field().String()))
	})
}
