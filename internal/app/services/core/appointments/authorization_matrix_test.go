package appointments

import (
	"hospital-service/internal/app/models"
	"hospital-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAuthorizationMatrix_Allows(t *testing.T) {
	matrix := DefaultAuthorizationMatrix()

	cases := []struct {
		name   string
		role   string
		group  FieldGroup
		status models.AppointmentStatus
		want   bool
	}{
		{"patient scheduling while scheduled", constvars.RolePatient, FieldGroupScheduling, models.AppointmentStatusScheduled, true},
		{"patient cancellation while scheduled", constvars.RolePatient, FieldGroupCancellation, models.AppointmentStatusScheduled, true},
		{"patient clinical", constvars.RolePatient, FieldGroupClinical, models.AppointmentStatusScheduled, false},
		{"patient payment", constvars.RolePatient, FieldGroupPayment, models.AppointmentStatusScheduled, false},
		{"patient scheduling after completion", constvars.RolePatient, FieldGroupScheduling, models.AppointmentStatusCompleted, false},
		{"doctor clinical while scheduled", constvars.RoleDoctor, FieldGroupClinical, models.AppointmentStatusScheduled, true},
		{"doctor scheduling", constvars.RoleDoctor, FieldGroupScheduling, models.AppointmentStatusScheduled, false},
		{"doctor cancellation", constvars.RoleDoctor, FieldGroupCancellation, models.AppointmentStatusScheduled, false},
		{"doctor clinical after completion", constvars.RoleDoctor, FieldGroupClinical, models.AppointmentStatusCompleted, false},
		{"admin scheduling while scheduled", constvars.RoleAdmin, FieldGroupScheduling, models.AppointmentStatusScheduled, true},
		{"admin clinical while scheduled", constvars.RoleAdmin, FieldGroupClinical, models.AppointmentStatusScheduled, true},
		{"admin payment after completion", constvars.RoleAdmin, FieldGroupPayment, models.AppointmentStatusCompleted, true},
		{"admin payment after cancellation", constvars.RoleAdmin, FieldGroupPayment, models.AppointmentStatusCancelled, false},
		{"admin scheduling after no-show", constvars.RoleAdmin, FieldGroupScheduling, models.AppointmentStatusNoShow, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appointment := &models.Appointment{
				ID:        primitive.NewObjectID(),
				DoctorID:  primitive.NewObjectID(),
				PatientID: primitive.NewObjectID(),
				Status:    tc.status,
			}
			caller := models.CallerIdentity{ID: "admin-1", Role: tc.role}
			switch tc.role {
			case constvars.RolePatient:
				caller.ID = appointment.PatientID.Hex()
			case constvars.RoleDoctor:
				caller.ID = appointment.DoctorID.Hex()
			}
			assert.Equal(t, tc.want, matrix.Allows(caller, tc.group, appointment))
		})
	}

	t.Run("Ownership Required For Patients And Doctors", func(t *testing.T) {
		appointment := &models.Appointment{
			DoctorID:  primitive.NewObjectID(),
			PatientID: primitive.NewObjectID(),
			Status:    models.AppointmentStatusScheduled,
		}
		assert.False(t, matrix.Allows(models.CallerIdentity{ID: primitive.NewObjectID().Hex(), Role: constvars.RolePatient}, FieldGroupScheduling, appointment))
		assert.False(t, matrix.Allows(models.CallerIdentity{ID: primitive.NewObjectID().Hex(), Role: constvars.RoleDoctor}, FieldGroupClinical, appointment))
	})

	t.Run("Unknown Role Is Denied", func(t *testing.T) {
		appointment := &models.Appointment{Status: models.AppointmentStatusScheduled}
		assert.False(t, matrix.Allows(models.CallerIdentity{ID: "x", Role: "nurse"}, FieldGroupScheduling, appointment))
	})
}

func TestAuthorizationMatrix_Rules(t *testing.T) {
	matrix := DefaultAuthorizationMatrix()

	rules := matrix.Rules()
	rules[0].States[0] = models.AppointmentStatusCancelled
	rules[0].Role = constvars.RoleDoctor

	fresh := matrix.Rules()
	assert.Equal(t, constvars.RolePatient, fresh[0].Role)
	assert.Equal(t, models.AppointmentStatusScheduled, fresh[0].States[0], "Rules should return a copy")
	assert.Len(t, fresh, 7)

	custom := NewAuthorizationMatrix(AuthorizationRule{Role: constvars.RolePatient, Group: FieldGroupPayment, States: []models.AppointmentStatus{models.AppointmentStatusScheduled}})
	sm := NewAppointmentStateMachine(custom)
	assert.Same(t, custom, sm.Matrix())
}
