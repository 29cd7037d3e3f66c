package appointments

import (
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/requests"
	"hospital-service/internal/pkg/exceptions"
	"hospital-service/internal/pkg/utils"
	"slices"
)

var statusTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.AppointmentStatusScheduled: {
		models.AppointmentStatusCompleted,
		models.AppointmentStatusCancelled,
		models.AppointmentStatusNoShow,
	},
}

func CanTransition(from, to models.AppointmentStatus) bool {
	return slices.Contains(statusTransitions[from], to)
}

// AppointmentStateMachine turns a patch into a single update, or rejects the whole patch.
type AppointmentStateMachine struct {
	matrix *AuthorizationMatrix
}

func NewAppointmentStateMachine(matrix *AuthorizationMatrix) *AppointmentStateMachine {
	if matrix == nil {
		matrix = DefaultAuthorizationMatrix()
	}
	return &AppointmentStateMachine{matrix: matrix}
}

func (sm *AppointmentStateMachine) Matrix() *AuthorizationMatrix {
	return sm.matrix
}

type touchedField struct {
	group FieldGroup
	name  string
}

// Plan checks ownership, reassignment, transition legality and the authorization matrix,
// in that order, and returns the update to write. No field is written when any check fails.
func (sm *AppointmentStateMachine) Plan(caller models.CallerIdentity, current *models.Appointment, patch *requests.UpdateAppointmentRequest) (*models.AppointmentUpdate, error) {
	if !caller.IsAdmin() && !caller.Owns(current) {
		return nil, exceptions.ErrAppointmentNotOwned(caller.ID, caller.Role, current.ID.Hex())
	}

	if patch.DoctorID != nil && *patch.DoctorID != current.DoctorID.Hex() {
		return nil, exceptions.ErrReassignNotAllowed()
	}
	if patch.PatientID != nil && *patch.PatientID != current.PatientID.Hex() {
		return nil, exceptions.ErrReassignNotAllowed()
	}

	update := &models.AppointmentUpdate{}
	var touched []touchedField

	if patch.Status != nil {
		target, ok := models.ParseAppointmentStatus(*patch.Status)
		if !ok {
			return nil, exceptions.ErrInvalidField("status", "must be one of [scheduled, completed, cancelled, no-show]")
		}
		if current.Status.IsTerminal() {
			return nil, exceptions.ErrAppointmentAlreadyFinalized(current.ID.Hex(), string(current.Status))
		}
		if !CanTransition(current.Status, target) {
			return nil, exceptions.ErrIllegalStatusTarget(string(current.Status), string(target))
		}
		update.Status = &target
		if target == models.AppointmentStatusCancelled {
			touched = append(touched, touchedField{FieldGroupCancellation, "status"})
		} else {
			touched = append(touched, touchedField{FieldGroupClinical, "status"})
		}
	}

	schedulingFields, err := planScheduling(patch, update)
	if err != nil {
		return nil, err
	}
	touched = append(touched, schedulingFields...)

	clinicalFields, err := planClinical(patch, update)
	if err != nil {
		return nil, err
	}
	touched = append(touched, clinicalFields...)

	paymentFields, err := planPayment(patch, update)
	if err != nil {
		return nil, err
	}
	touched = append(touched, paymentFields...)

	if len(touched) == 0 {
		return nil, exceptions.ErrInvalidField("request", "must change at least one field")
	}

	for _, field := range touched {
		if !sm.matrix.Allows(caller, field.group, current) {
			return nil, exceptions.ErrFieldNotWritable(caller.Role, string(field.group), string(current.Status), field.name)
		}
	}
	return update, nil
}

func planScheduling(patch *requests.UpdateAppointmentRequest, update *models.AppointmentUpdate) ([]touchedField, error) {
	var touched []touchedField

	if patch.Date != nil {
		date, err := utils.ParseCalendarDate(*patch.Date)
		if err != nil {
			return nil, exceptions.ErrInvalidField("date", constvars.CustomValidationErrorMessages["calendar_date"])
		}
		update.Date = &date
		touched = append(touched, touchedField{FieldGroupScheduling, "date"})
	}
	if patch.Time != nil {
		clock, err := utils.NormalizeClock(*patch.Time)
		if err != nil {
			return nil, exceptions.ErrInvalidField("time", constvars.CustomValidationErrorMessages["clock"])
		}
		update.Time = &clock
		touched = append(touched, touchedField{FieldGroupScheduling, "time"})
	}
	if patch.Type != nil {
		appointmentType, ok := models.ParseAppointmentType(*patch.Type)
		if !ok {
			return nil, exceptions.ErrInvalidField("type", "must be one of [regular, follow-up, emergency, consultation]")
		}
		update.Type = &appointmentType
		touched = append(touched, touchedField{FieldGroupScheduling, "type"})
	}
	if patch.Description != nil {
		update.Description = patch.Description
		touched = append(touched, touchedField{FieldGroupScheduling, "description"})
	}
	if patch.Symptoms != nil {
		symptoms := patch.Symptoms.String()
		update.Symptoms = &symptoms
		touched = append(touched, touchedField{FieldGroupScheduling, "symptoms"})
	}
	return touched, nil
}

func planClinical(patch *requests.UpdateAppointmentRequest, update *models.AppointmentUpdate) ([]touchedField, error) {
	var touched []touchedField

	if patch.Diagnosis != nil {
		update.Diagnosis = patch.Diagnosis
		touched = append(touched, touchedField{FieldGroupClinical, "diagnosis"})
	}
	if patch.Prescription != nil {
		update.Prescription = patch.Prescription
		touched = append(touched, touchedField{FieldGroupClinical, "prescription"})
	}
	if patch.Notes != nil {
		update.Notes = patch.Notes
		touched = append(touched, touchedField{FieldGroupClinical, "notes"})
	}
	if patch.FollowUpDate != nil {
		followUpDate, err := utils.ParseCalendarDate(*patch.FollowUpDate)
		if err != nil {
			return nil, exceptions.ErrInvalidField("followUpDate", constvars.CustomValidationErrorMessages["calendar_date"])
		}
		update.FollowUpDate = &followUpDate
		touched = append(touched, touchedField{FieldGroupClinical, "followUpDate"})
	}
	return touched, nil
}

func planPayment(patch *requests.UpdateAppointmentRequest, update *models.AppointmentUpdate) ([]touchedField, error) {
	var touched []touchedField

	if patch.PaymentStatus != nil {
		paymentStatus, ok := models.ParsePaymentStatus(*patch.PaymentStatus)
		if !ok {
			return nil, exceptions.ErrInvalidField("paymentStatus", "must be one of [pending, paid, cancelled]")
		}
		update.PaymentStatus = &paymentStatus
		touched = append(touched, touchedField{FieldGroupPayment, "paymentStatus"})
	}
	if patch.PaymentAmount != nil {
		if *patch.PaymentAmount < 0 {
			return nil, exceptions.ErrInvalidField("paymentAmount", "must be greater than or equal to 0")
		}
		update.PaymentAmount = patch.PaymentAmount
		touched = append(touched, touchedField{FieldGroupPayment, "paymentAmount"})
	}
	return touched, nil
}
