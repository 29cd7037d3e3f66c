package models

import (
	"fmt"
	"hospital-service/internal/pkg/constvars"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no-show"
)

// ActiveAppointmentStatuses hold their slot.
var ActiveAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusScheduled,
	AppointmentStatusCompleted,
}

func ParseAppointmentStatus(value string) (AppointmentStatus, bool) {
	switch status := AppointmentStatus(value); status {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return status, true
	}
	return "", false
}

func (s AppointmentStatus) IsActive() bool {
	return s == AppointmentStatusScheduled || s == AppointmentStatusCompleted
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled || s == AppointmentStatusNoShow
}

type AppointmentType string

const (
	AppointmentTypeRegular      AppointmentType = "regular"
	AppointmentTypeFollowUp     AppointmentType = "follow-up"
	AppointmentTypeEmergency    AppointmentType = "emergency"
	AppointmentTypeConsultation AppointmentType = "consultation"
)

func ParseAppointmentType(value string) (AppointmentType, bool) {
	switch appointmentType := AppointmentType(value); appointmentType {
	case AppointmentTypeRegular, AppointmentTypeFollowUp, AppointmentTypeEmergency, AppointmentTypeConsultation:
		return appointmentType, true
	}
	return "", false
}

// AppointmentTypeOrDefault falls back to consultation for unknown input.
func AppointmentTypeOrDefault(value string) AppointmentType {
	if appointmentType, ok := ParseAppointmentType(value); ok {
		return appointmentType
	}
	return AppointmentTypeConsultation
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

func ParsePaymentStatus(value string) (PaymentStatus, bool) {
	switch status := PaymentStatus(value); status {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusCancelled:
		return status, true
	}
	return "", false
}

type Appointment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	PatientID     primitive.ObjectID `bson:"patient"`
	DoctorID      primitive.ObjectID `bson:"doctor"`
	Date          time.Time          `bson:"date"`
	Time          string             `bson:"time"`
	Status        AppointmentStatus  `bson:"status"`
	Type          AppointmentType    `bson:"type"`
	Description   string             `bson:"description"`
	Symptoms      string             `bson:"symptoms"`
	Diagnosis     string             `bson:"diagnosis,omitempty"`
	Prescription  string             `bson:"prescription,omitempty"`
	Notes         string             `bson:"notes,omitempty"`
	FollowUpDate  *time.Time         `bson:"followUpDate,omitempty"`
	PaymentStatus PaymentStatus      `bson:"paymentStatus"`
	PaymentAmount float64            `bson:"paymentAmount"`
	TimeModel     `bson:",inline"`
}

func (a *Appointment) DateString() string {
	return a.Date.In(time.Local).Format(constvars.DateLayout)
}

// SlotLockKey names the serialization point for the appointment's (doctor, date, time).
func (a *Appointment) SlotLockKey() string {
	return SlotLockKey(a.DoctorID.Hex(), a.DateString(), a.Time)
}

func SlotLockKey(doctorID, date, clock string) string {
	return fmt.Sprintf(constvars.AppointmentSlotLockKeyFormat, doctorID, date, clock)
}

// AppointmentUpdate is the validated set of fields written by one update.
// Nil fields are left untouched.
type AppointmentUpdate struct {
	Date          *time.Time
	Time          *string
	Type          *AppointmentType
	Description   *string
	Symptoms      *string
	Status        *AppointmentStatus
	Diagnosis     *string
	Prescription  *string
	Notes         *string
	FollowUpDate  *time.Time
	PaymentStatus *PaymentStatus
	PaymentAmount *float64
}

func (u *AppointmentUpdate) IsEmpty() bool {
	return len(u.ConvertToBsonM()) == 0
}

// ChangesSlot reports whether the update moves the appointment to another date or time.
func (u *AppointmentUpdate) ChangesSlot(current *Appointment) bool {
	if u.Date != nil && !u.Date.Equal(current.Date) {
		return true
	}
	return u.Time != nil && *u.Time != current.Time
}

func (u *AppointmentUpdate) ConvertToBsonM() bson.M {
	result := bson.M{}
	if u.Date != nil {
		result["date"] = *u.Date
	}
	if u.Time != nil {
		result["time"] = *u.Time
	}
	if u.Type != nil {
		result["type"] = *u.Type
	}
	if u.Description != nil {
		result["description"] = *u.Description
	}
	if u.Symptoms != nil {
		result["symptoms"] = *u.Symptoms
	}
	if u.Status != nil {
		result["status"] = *u.Status
	}
	if u.Diagnosis != nil {
		result["diagnosis"] = *u.Diagnosis
	}
	if u.Prescription != nil {
		result["prescription"] = *u.Prescription
	}
	if u.Notes != nil {
		result["notes"] = *u.Notes
	}
	if u.FollowUpDate != nil {
		result["followUpDate"] = *u.FollowUpDate
	}
	if u.PaymentStatus != nil {
		result["paymentStatus"] = *u.PaymentStatus
	}
	if u.PaymentAmount != nil {
		result["paymentAmount"] = *u.PaymentAmount
	}
	return result
}

// ApplyTo copies the update onto an in-memory appointment.
func (u *AppointmentUpdate) ApplyTo(a *Appointment) {
	if u.Date != nil {
		a.Date = *u.Date
	}
	if u.Time != nil {
		a.Time = *u.Time
	}
	if u.Type != nil {
		a.Type = *u.Type
	}
	if u.Description != nil {
		a.Description = *u.Description
	}
	if u.Symptoms != nil {
		a.Symptoms = *u.Symptoms
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.Diagnosis != nil {
		a.Diagnosis = *u.Diagnosis
	}
	if u.Prescription != nil {
		a.Prescription = *u.Prescription
	}
	if u.Notes != nil {
		a.Notes = *u.Notes
	}
	if u.FollowUpDate != nil {
		followUpDate := *u.FollowUpDate
		a.FollowUpDate = &followUpDate
	}
	if u.PaymentStatus != nil {
		a.PaymentStatus = *u.PaymentStatus
	}
	if u.PaymentAmount != nil {
		a.PaymentAmount = *u.PaymentAmount
	}
}

// AppointmentFilter scopes ListAppointments queries. Zero values are ignored.
type AppointmentFilter struct {
	DoctorID  string
	PatientID string
	Date      *time.Time
	Status    AppointmentStatus
	Offset    int64
	Limit     int64
}
