package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/syscompta/ledger/internal/core/domain"
)

// RegisterCustomValidators attaches domain validation rules to the gin
// binding engine. Must run once before routes are served.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accountnumber", func(fl validator.FieldLevel) bool {
			return domain.ValidAccountNumber(fl.Field().String())
		})
	}
}
