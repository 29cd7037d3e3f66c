package appointments

import (
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"slices"
)

// FieldGroup is a set of appointment fields that share one write permission.
type FieldGroup string

const (
	// FieldGroupScheduling covers date, time, type, description and symptoms.
	FieldGroupScheduling FieldGroup = "scheduling"
	// FieldGroupCancellation covers status -> cancelled.
	FieldGroupCancellation FieldGroup = "cancellation"
	// FieldGroupClinical covers status -> completed or no-show, diagnosis, prescription, notes and followUpDate.
	FieldGroupClinical FieldGroup = "clinical"
	// FieldGroupPayment covers paymentStatus and paymentAmount.
	FieldGroupPayment FieldGroup = "payment"
)

// AuthorizationRule grants Role write access to Group while the appointment is in one of States.
type AuthorizationRule struct {
	Role              string
	Group             FieldGroup
	States            []models.AppointmentStatus
	RequiresOwnership bool
}

// AuthorizationMatrix is the table of (role, field group, state) cells that may be written.
// Anything not granted by a rule is denied.
type AuthorizationMatrix struct {
	rules []AuthorizationRule
}

func NewAuthorizationMatrix(rules ...AuthorizationRule) *AuthorizationMatrix {
	return &AuthorizationMatrix{rules: rules}
}

func DefaultAuthorizationMatrix() *AuthorizationMatrix {
	scheduledOnly := []models.AppointmentStatus{models.AppointmentStatusScheduled}

	return NewAuthorizationMatrix(
		AuthorizationRule{Role: constvars.RolePatient, Group: FieldGroupScheduling, States: scheduledOnly, RequiresOwnership: true},
		AuthorizationRule{Role: constvars.RolePatient, Group: FieldGroupCancellation, States: scheduledOnly, RequiresOwnership: true},

		AuthorizationRule{Role: constvars.RoleDoctor, Group: FieldGroupClinical, States: scheduledOnly, RequiresOwnership: true},

		AuthorizationRule{Role: constvars.RoleAdmin, Group: FieldGroupScheduling, States: scheduledOnly},
		AuthorizationRule{Role: constvars.RoleAdmin, Group: FieldGroupCancellation, States: scheduledOnly},
		AuthorizationRule{Role: constvars.RoleAdmin, Group: FieldGroupClinical, States: scheduledOnly},
		// settling the bill happens after the visit
		AuthorizationRule{Role: constvars.RoleAdmin, Group: FieldGroupPayment, States: []models.AppointmentStatus{
			models.AppointmentStatusScheduled,
			models.AppointmentStatusCompleted,
		}},
	)
}

// Rules returns a copy of the matrix rows.
func (m *AuthorizationMatrix) Rules() []AuthorizationRule {
	out := make([]AuthorizationRule, len(m.rules))
	for i, rule := range m.rules {
		rule.States = slices.Clone(rule.States)
		out[i] = rule
	}
	return out
}

// Allows reports whether caller may write group on the appointment in its current state.
func (m *AuthorizationMatrix) Allows(caller models.CallerIdentity, group FieldGroup, appointment *models.Appointment) bool {
	for _, rule := range m.rules {
		if rule.Role != caller.Role || rule.Group != group {
			continue
		}
		if !slices.Contains(rule.States, appointment.Status) {
			continue
		}
		if rule.RequiresOwnership && !caller.Owns(appointment) {
			continue
		}
		return true
	}
	return false
}
