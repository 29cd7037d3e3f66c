package utils

import (
	"hospital-service/internal/pkg/dto/requests"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_CreateAppointmentRequest(t *testing.T) {
	tomorrow := FormatCalendarDate(time.Now().AddDate(0, 0, 1))
	valid := func() *requests.CreateAppointmentRequest {
		return &requests.CreateAppointmentRequest{
			DoctorID: "65a1b2c3d4e5f60718293a4b",
			Date:     tomorrow,
			Time:     "9:30",
		}
	}

	t.Run("Valid Request", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(valid()))
	})

	t.Run("Today Is Not In The Past", func(t *testing.T) {
		request := valid()
		request.Date = FormatCalendarDate(time.Now())
		assert.NoError(t, ValidateStruct(request))
	})

	cases := []struct {
		name   string
		mutate func(r *requests.CreateAppointmentRequest)
		field  string
		tag    string
	}{
		{"Missing Doctor", func(r *requests.CreateAppointmentRequest) { r.DoctorID = "" }, "doctorId", "required"},
		{"Short Doctor Id", func(r *requests.CreateAppointmentRequest) { r.DoctorID = "abc" }, "doctorId", "len"},
		{"Bad Date Format", func(r *requests.CreateAppointmentRequest) { r.Date = "2030/01/07" }, "date", "calendar_date"},
		{"Past Date", func(r *requests.CreateAppointmentRequest) { r.Date = "2001-01-01" }, "date", "not_past_date"},
		{"Bad Clock", func(r *requests.CreateAppointmentRequest) { r.Time = "25:00" }, "time", "clock"},
		{"Negative Amount", func(r *requests.CreateAppointmentRequest) { amount := -1.0; r.PaymentAmount = &amount }, "paymentAmount", "gte"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			request := valid()
			tc.mutate(request)

			err := ValidateStruct(request)

			var validationErrors validator.ValidationErrors
			require.ErrorAs(t, err, &validationErrors)
			assert.Equal(t, tc.field, validationErrors[0].Field(), "field name should come from the json tag")
			assert.Equal(t, tc.tag, validationErrors[0].Tag())
		})
	}
}

func TestValidateUrlParamID(t *testing.T) {
	assert.NoError(t, ValidateUrlParamID("65a1b2c3d4e5f60718293a4b"))
	assert.Error(t, ValidateUrlParamID(""))
	assert.Error(t, ValidateUrlParamID("not-an-object-id"))
}
