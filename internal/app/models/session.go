package models

import (
	"hospital-service/internal/pkg/constvars"
	"time"
)

type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	PatientID string    `json:"patient_id,omitempty"`
	DoctorID  string    `json:"doctor_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// CallerIdentity resolves the session into the identity used for ownership checks.
// Patients and doctors are identified by their clinical record id; admins by user id.
func (s *Session) CallerIdentity() (CallerIdentity, bool) {
	switch s.Role {
	case constvars.RolePatient:
		if s.PatientID == "" {
			return CallerIdentity{}, false
		}
		return CallerIdentity{ID: s.PatientID, Role: s.Role}, true
	case constvars.RoleDoctor:
		if s.DoctorID == "" {
			return CallerIdentity{}, false
		}
		return CallerIdentity{ID: s.DoctorID, Role: s.Role}, true
	case constvars.RoleAdmin:
		return CallerIdentity{ID: s.UserID, Role: s.Role}, true
	}
	return CallerIdentity{}, false
}

type CallerIdentity struct {
	ID   string
	Role string
}

func (c CallerIdentity) IsPatient() bool { return c.Role == constvars.RolePatient }
func (c CallerIdentity) IsDoctor() bool  { return c.Role == constvars.RoleDoctor }
func (c CallerIdentity) IsAdmin() bool   { return c.Role == constvars.RoleAdmin }

// Owns reports whether the caller is the patient or doctor of the appointment.
func (c CallerIdentity) Owns(appointment *Appointment) bool {
	switch c.Role {
	case constvars.RolePatient:
		return appointment.PatientID.Hex() == c.ID
	case constvars.RoleDoctor:
		return appointment.DoctorID.Hex() == c.ID
	}
	return false
}
