package appointments

import (
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/dto/responses"
	"hospital-service/internal/pkg/utils"
)

func toAppointmentResponse(appointment *models.Appointment) *responses.Appointment {
	response := &responses.Appointment{
		ID:            appointment.ID.Hex(),
		PatientID:     appointment.PatientID.Hex(),
		DoctorID:      appointment.DoctorID.Hex(),
		Date:          appointment.DateString(),
		Time:          appointment.Time,
		Status:        string(appointment.Status),
		Type:          string(appointment.Type),
		Description:   appointment.Description,
		Symptoms:      appointment.Symptoms,
		Diagnosis:     appointment.Diagnosis,
		Prescription:  appointment.Prescription,
		Notes:         appointment.Notes,
		PaymentStatus: string(appointment.PaymentStatus),
		PaymentAmount: appointment.PaymentAmount,
		CreatedAt:     appointment.CreatedAt,
		UpdatedAt:     appointment.UpdatedAt,
	}
	if appointment.FollowUpDate != nil {
		response.FollowUpDate = utils.FormatCalendarDate(*appointment.FollowUpDate)
	}
	return response
}

func toAppointmentResponses(appointments []models.Appointment) []responses.Appointment {
	out := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		out = append(out, *toAppointmentResponse(&appointments[i]))
	}
	return out
}
