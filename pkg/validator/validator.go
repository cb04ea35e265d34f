package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/agendly/booking-api/internal/model"
)

// RegisterBookingFormats adds the date and time-of-day formats used by
// booking requests to gin's binding validator.
func RegisterBookingFormats() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("booking_date", validDate); err != nil {
		return err
	}
	return v.RegisterValidation("booking_time", validTimeOfDay)
}

func validDate(fl validator.FieldLevel) bool {
	if d, ok := fl.Field().Interface().(model.Date); ok {
		return !d.IsZero()
	}
	_, err := model.ParseDate(fl.Field().String())
	return err == nil
}

func validTimeOfDay(fl validator.FieldLevel) bool {
	if _, ok := fl.Field().Interface().(model.TimeOfDay); ok {
		return true
	}
	_, err := model.ParseTimeOfDay(fl.Field().String())
	return err == nil
}
