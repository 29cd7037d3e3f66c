package requests

type CreateAppointmentRequest struct {
	PatientID     string   `json:"patientId" validate:"omitempty,len=24,hexadecimal"`
	DoctorID      string   `json:"doctorId" validate:"required,len=24,hexadecimal"`
	Date          string   `json:"date" validate:"required,calendar_date,not_past_date"`
	Time          string   `json:"time" validate:"required,clock"`
	Type          string   `json:"type"`
	Description   string   `json:"description" validate:"max=2000"`
	Symptoms      Symptoms `json:"symptoms"`
	PaymentAmount *float64 `json:"paymentAmount" validate:"omitempty,gte=0"`
}

// UpdateAppointmentRequest is a partial patch; nil fields are untouched.
type UpdateAppointmentRequest struct {
	DoctorID  *string `json:"doctorId"`
	PatientID *string `json:"patientId"`

	Date        *string   `json:"date" validate:"omitempty,calendar_date"`
	Time        *string   `json:"time" validate:"omitempty,clock"`
	Type        *string   `json:"type"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Symptoms    *Symptoms `json:"symptoms"`

	Status *string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled no-show"`

	Diagnosis    *string `json:"diagnosis"`
	Prescription *string `json:"prescription"`
	Notes        *string `json:"notes"`
	FollowUpDate *string `json:"followUpDate" validate:"omitempty,calendar_date"`

	PaymentStatus *string  `json:"paymentStatus" validate:"omitempty,oneof=pending paid cancelled"`
	PaymentAmount *float64 `json:"paymentAmount" validate:"omitempty,gte=0"`
}

func (r *UpdateAppointmentRequest) IsEmpty() bool {
	return r.DoctorID == nil && r.PatientID == nil &&
		r.Date == nil && r.Time == nil && r.Type == nil && r.Description == nil && r.Symptoms == nil &&
		r.Status == nil &&
		r.Diagnosis == nil && r.Prescription == nil && r.Notes == nil && r.FollowUpDate == nil &&
		r.PaymentStatus == nil && r.PaymentAmount == nil
}

type ListAppointmentsQuery struct {
	DoctorID   string `validate:"omitempty,len=24,hexadecimal"`
	PatientID  string `validate:"omitempty,len=24,hexadecimal"`
	Date       string `validate:"omitempty,calendar_date"`
	Status     string `validate:"omitempty,oneof=scheduled completed cancelled no-show"`
	Pagination Pagination
}

type ListAvailableSlotsRequest struct {
	DoctorID string `validate:"required,len=24,hexadecimal"`
	Date     string `validate:"required,calendar_date"`
}
