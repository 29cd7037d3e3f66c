package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	GetAvailableSlotsSuccessMessage = "get available slots successfully"
	CreateAppointmentSuccessMessage = "appointment booked successfully"
	UpdateAppointmentSuccessMessage = "appointment updated successfully"
	GetAppointmentSuccessMessage    = "get appointment successfully"
	ListAppointmentsSuccessMessage  = "get appointments successfully"
)
