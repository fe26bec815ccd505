package request

import (
	"equipment-reservation/internal/domain/reservation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding tags on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("reservation_status", validateReservationStatus)
}

func validateReservationStatus(fl validator.FieldLevel) bool {
	_, err := reservation.ParseStatus(fl.Field().String())
	return err == nil
}
