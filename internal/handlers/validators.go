package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// trnValidator checks the FTA tax registration number format: exactly 15 digits.
func trnValidator(fl validator.FieldLevel) bool {
	trn := fl.Field().String()
	if len(trn) != 15 {
		return false
	}
	for _, r := range trn {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// registerCustomValidators attaches domain validations to gin's binding engine.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("trn", trnValidator)
	}
}
