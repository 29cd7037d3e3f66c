package constvars

const (
	URLParamDoctorID      = "doctorId"
	URLParamAppointmentID = "appointmentId"
)

const (
	URLQueryParamPage      = "page"
	URLQueryParamPageSize  = "page_size"
	URLQueryParamDate      = "date"
	URLQueryParamStatus    = "status"
	URLQueryParamDoctorID  = "doctorId"
	URLQueryParamPatientID = "patientId"
)
