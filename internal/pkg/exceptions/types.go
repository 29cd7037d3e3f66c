package exceptions

import (
	"fmt"
	"hospital-service/internal/pkg/constvars"
)

var (
	ErrURLParamIDValidation = func(err error, paramName string) *CustomError {
		return buildKindError(KindValidation, err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamIDValidation, paramName))
	}
	ErrInputValidation = func(err error) *CustomError {
		return buildKindError(KindValidation, err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrInvalidField = func(field, reason string) *CustomError {
		return buildKindError(KindValidation, nil, constvars.StatusBadRequest, field+" "+reason, constvars.ErrDevInvalidInput)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return buildKindError(KindValidation, err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}
	ErrMissingSessionData = func(err error) *CustomError {
		return buildKindError(KindUnauthenticated, err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevMissingSessionData)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return buildKindError(KindValidation, err, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrClientTooManyRequests)
	}

	// Auth
	ErrTokenMissing = func(err error) *CustomError {
		return buildKindError(KindUnauthenticated, err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalid = func(err error) *CustomError {
		return buildKindError(KindUnauthenticated, err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalid)
	}
	ErrTokenSigningMethod = func(err error) *CustomError {
		return buildKindError(KindUnauthenticated, err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthSigningMethod)
	}
	ErrInvalidSession = func(err error) *CustomError {
		return buildKindError(KindUnauthenticated, err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthInvalidSession)
	}
	ErrInvalidSessionRole = func(err error) *CustomError {
		return buildKindError(KindAuthorization, err, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthInvalidRole)
	}

	// Scheduling
	ErrDoctorNotFound = func(doctorID string) *CustomError {
		return buildKindError(KindNotFound, nil, constvars.StatusNotFound, constvars.ErrClientDoctorNotFound, fmt.Sprintf(constvars.ErrDevDoctorNotFound, doctorID))
	}
	ErrPatientNotFound = func(patientID string) *CustomError {
		return buildKindError(KindNotFound, nil, constvars.StatusNotFound, constvars.ErrClientPatientNotFound, fmt.Sprintf(constvars.ErrDevPatientNotFound, patientID))
	}
	ErrAppointmentNotFound = func(appointmentID string) *CustomError {
		return buildKindError(KindNotFound, nil, constvars.StatusNotFound, constvars.ErrClientAppointmentNotFound, fmt.Sprintf(constvars.ErrDevAppointmentNotFound, appointmentID))
	}
	ErrClosedDay = func(doctorID, weekday string) *CustomError {
		return buildKindError(KindClosedDay, nil, constvars.StatusUnprocessableEntity, fmt.Sprintf(constvars.ErrClientDoctorClosedDay, weekday), fmt.Sprintf(constvars.ErrDevDoctorClosedDay, doctorID, weekday))
	}
	ErrDoctorWorkingHoursInvalid = func(err error, doctorID string) *CustomError {
		return buildKindError(KindValidation, err, constvars.StatusUnprocessableEntity, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevDoctorWorkingHoursInvalid, doctorID))
	}
	ErrSlotNotOffered = func(slot, doctorID, date string) *CustomError {
		return buildKindError(KindValidation, nil, constvars.StatusBadRequest, constvars.ErrClientSlotNotOffered, fmt.Sprintf(constvars.ErrDevSlotNotOffered, slot, doctorID, date))
	}
	ErrSlotTaken = func(err error, slotKey string) *CustomError {
		return buildKindError(KindSlotTaken, err, constvars.StatusConflict, constvars.ErrClientSlotTaken, fmt.Sprintf(constvars.ErrDevSlotTaken, slotKey))
	}
	ErrSlotLockBusy = func(slotKey string) *CustomError {
		return buildKindError(KindSlotTaken, nil, constvars.StatusConflict, constvars.ErrClientSlotTaken, fmt.Sprintf(constvars.ErrDevSlotLockBusy, slotKey))
	}
	ErrFieldNotWritable = func(role, group, status, fieldName string) *CustomError {
		return buildKindError(KindAuthorization, nil, constvars.StatusForbidden, fmt.Sprintf(constvars.ErrClientFieldNotWritable, fieldName), fmt.Sprintf(constvars.ErrDevFieldNotWritable, role, group, status))
	}
	ErrAppointmentNotOwned = func(callerID, role, appointmentID string) *CustomError {
		return buildKindError(KindAuthorization, nil, constvars.StatusForbidden, constvars.ErrClientAppointmentNotOwned, fmt.Sprintf(constvars.ErrDevAppointmentNotOwned, callerID, role, appointmentID))
	}
	ErrReassignNotAllowed = func() *CustomError {
		return buildKindError(KindAuthorization, nil, constvars.StatusForbidden, constvars.ErrClientReassignNotAllowed, constvars.ErrDevReassignNotAllowed)
	}
	ErrBookingRoleNotAllowed = func(role string) *CustomError {
		return buildKindError(KindAuthorization, nil, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevBookingRoleNotAllowed, role))
	}
	ErrBookingForeignPatient = func(callerID, patientID string) *CustomError {
		return buildKindError(KindAuthorization, nil, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevBookingForeignPatient, callerID, patientID))
	}
	ErrPaymentOverrideNotAllowed = func(role string) *CustomError {
		return buildKindError(KindAuthorization, nil, constvars.StatusForbidden, fmt.Sprintf(constvars.ErrClientFieldNotWritable, "paymentAmount"), fmt.Sprintf(constvars.ErrDevPaymentOverrideNotAllowed, role))
	}
	ErrAppointmentAlreadyFinalized = func(appointmentID, status string) *CustomError {
		return buildKindError(KindStateTransition, nil, constvars.StatusConflict, fmt.Sprintf(constvars.ErrClientAppointmentAlreadyFinalized, status), fmt.Sprintf(constvars.ErrDevAppointmentAlreadyFinalized, appointmentID, status))
	}
	ErrIllegalStatusTarget = func(from, to string) *CustomError {
		return buildKindError(KindStateTransition, nil, constvars.StatusConflict, fmt.Sprintf(constvars.ErrClientIllegalStatusTarget, to), fmt.Sprintf(constvars.ErrDevIllegalStatusTarget, from, to))
	}
	ErrStaleAppointmentStatus = func(appointmentID string) *CustomError {
		return buildKindError(KindStateTransition, nil, constvars.StatusConflict, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevStaleStatus, appointmentID))
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBCountDocuments = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCountDocuments)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments)
	}
	ErrMongoDBNotObjectID = func(err error) *CustomError {
		return buildKindError(KindValidation, err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevDBStringNotObjectID)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBCreateIndex = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCreateIndex)
	}

	// Redis
	ErrRedisGetNoData = func(err error, redisKey string) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGetNoData, redisKey))
	}
	ErrRedisSet = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDelete)
	}
	ErrRedisExpire = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisExpire)
	}
	ErrRedisUnlock = func(err error) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisUnlock)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return buildKindError(KindInternal, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName))
	}
)
