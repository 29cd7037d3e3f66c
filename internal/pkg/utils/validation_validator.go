package utils

import (
	"hospital-service/internal/pkg/constvars"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("clock", validateClock)
	validate.RegisterValidation("calendar_date", validateCalendarDate)
	validate.RegisterValidation("not_past_date", validateNotPastDate)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := ParseClock(fl.Field().String())
	return err == nil
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := time.ParseInLocation(constvars.DateLayout, fl.Field().String(), time.Local)
	return err == nil
}

// validateNotPastDate compares calendar days, so today is accepted.
func validateNotPastDate(fl validator.FieldLevel) bool {
	date, err := ParseCalendarDate(fl.Field().String())
	if err != nil {
		return false
	}
	today, _ := DayBounds(time.Now())
	return !date.Before(today)
}
