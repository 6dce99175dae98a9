package handlers

import (
	"github.com/cajacentral/caja_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerCustomValidators installs the currencycode rule on gin's binding
// engine so malformed currency fields fail at bind time with the other
// field errors instead of surfacing one by one from the services.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseCurrency(fl.Field().String())
			return err == nil
		})
	}
}
