package responses

import "time"

type Appointment struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patientId"`
	DoctorID      string    `json:"doctorId"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	Symptoms      string    `json:"symptoms"`
	Diagnosis     string    `json:"diagnosis,omitempty"`
	Prescription  string    `json:"prescription,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	FollowUpDate  string    `json:"followUpDate,omitempty"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentAmount float64   `json:"paymentAmount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type AvailableSlots struct {
	DoctorID    string   `json:"doctorId"`
	Date        string   `json:"date"`
	Weekday     string   `json:"weekday"`
	SlotMinutes int      `json:"slotMinutes"`
	Slots       []string `json:"slots"`
	Booked      []string `json:"booked"`
	Available   []string `json:"available"`
}
