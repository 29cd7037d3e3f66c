package utils

import (
	"hospital-service/internal/pkg/dto/requests"
	"strings"
)

func trimStringPointer(value *string) {
	if value != nil {
		*value = strings.TrimSpace(*value)
	}
}

func SanitizeCreateAppointmentRequest(input *requests.CreateAppointmentRequest) {
	input.PatientID = strings.TrimSpace(input.PatientID)
	input.DoctorID = strings.TrimSpace(input.DoctorID)
	input.Date = strings.TrimSpace(input.Date)
	input.Time = strings.TrimSpace(input.Time)
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	input.Description = strings.TrimSpace(input.Description)
}

func SanitizeUpdateAppointmentRequest(input *requests.UpdateAppointmentRequest) {
	for _, field := range []*string{
		input.DoctorID, input.PatientID, input.Date, input.Time, input.Description,
		input.Diagnosis, input.Prescription, input.Notes, input.FollowUpDate,
	} {
		trimStringPointer(field)
	}
	for _, field := range []*string{input.Type, input.Status, input.PaymentStatus} {
		if field != nil {
			*field = strings.ToLower(strings.TrimSpace(*field))
		}
	}
}
