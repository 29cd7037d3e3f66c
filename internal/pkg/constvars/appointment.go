package constvars

const (
	// AppointmentSlotLockKeyFormat is doctor id, calendar day (YYYY-MM-DD) and slot start (HH:MM).
	AppointmentSlotLockKeyFormat = "appointment:slot:%s:%s:%s"

	DefaultSlotMinutes            = 30
	DefaultSlotLockTTLInSeconds   = 10
	DefaultRequestTimeoutInSecond = 10
)

const (
	AppointmentEventBooked        = "appointment.booked"
	AppointmentEventUpdated       = "appointment.updated"
	AppointmentEventStatusChanged = "appointment.status_changed"
)

const (
	// MongoIndexActiveSlot enforces one active appointment per doctor, day and slot.
	MongoIndexActiveSlot  = "uniq_active_doctor_date_time"
	MongoIndexPatientDate = "idx_patient_date"
)
