package constvars

// Validation messages for request payloads, mapped by validator tag
var CustomValidationErrorMessages = map[string]string{
	"required":      "is required",
	"min":           "must be at least %s",
	"max":           "maximum at %s",
	"gte":           "must be greater than or equal to %s",
	"oneof":         "must be one of [%s]",
	"len":           "must be %s characters long",
	"clock":         "must be a time of day formatted as HH:MM",
	"calendar_date": "must be a date formatted as YYYY-MM-DD",
	"not_past_date": "date cannot be in the past",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gte":   true,
	"len":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientTooManyRequests               = "too many requests, please slow down"

	ErrClientDoctorNotFound              = "doctor not found"
	ErrClientPatientNotFound             = "patient not found"
	ErrClientAppointmentNotFound         = "appointment not found"
	ErrClientDoctorClosedDay             = "the doctor does not work on %s"
	ErrClientSlotNotOffered              = "the requested time is not one of the doctor's slots for that day"
	ErrClientSlotTaken                   = "the requested slot has already been booked, please choose another slot"
	ErrClientFieldNotWritable            = "you are not allowed to change %s on this appointment"
	ErrClientAppointmentNotOwned         = "this appointment does not belong to you"
	ErrClientReassignNotAllowed          = "the doctor or patient of an appointment cannot be changed"
	ErrClientAppointmentAlreadyFinalized = "the appointment is already %s and its status cannot change anymore"
	ErrClientIllegalStatusTarget         = "status cannot be changed to %s"
)

// Error messages for developers
const (
	ErrDevInvalidInput          = "invalid input"
	ErrDevCannotParseJSON       = "cannot parse JSON"
	ErrDevValidationFailed      = "validation failed"
	ErrDevInvalidRequestPayload = "invalid request payload"
	ErrDevURLParamIDValidation  = "url param %s failed validation"
	ErrDevMissingRequestID      = "request id missing from context"
	ErrDevMissingSessionData    = "session data missing from context"

	ErrDevAuthSigningMethod  = "unexpected signing method"
	ErrDevAuthTokenInvalid   = "invalid token"
	ErrDevAuthTokenMissing   = "token missing"
	ErrDevAuthInvalidSession = "invalid session"
	ErrDevAuthInvalidRole    = "session role is not one of patient, doctor, admin"

	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToCountDocuments   = "failed to count documents on database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents on database"
	ErrDevDBFailedToCreateIndex      = "failed to create index on database"
	ErrDevDBStringNotObjectID        = "given ID is not valid object ID"

	ErrDevRedisGetNoData = "failed to get data from redis for key %s"
	ErrDevRedisSetData   = "failed to set data into redis"
	ErrDevRedisDelete    = "failed to delete data from redis"
	ErrDevRedisExpire    = "failed to set expiration on redis key"
	ErrDevRedisUnlock    = "failed to release redis lock"

	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"
	ErrDevCannotMarshalJSON      = "cannot marshal JSON"

	ErrDevServerProcess          = "server failed to process request"
	ErrDevServerDeadlineExceeded = "deadline exceeded"

	ErrDevDoctorNotFound              = "doctor %s not found"
	ErrDevPatientNotFound             = "patient %s not found"
	ErrDevAppointmentNotFound         = "appointment %s not found"
	ErrDevDoctorClosedDay             = "doctor %s has no working hours on %s"
	ErrDevDoctorWorkingHoursInvalid   = "doctor %s has malformed working hours"
	ErrDevSlotNotOffered              = "time %s is not a generated slot for doctor %s on %s"
	ErrDevSlotTaken                   = "slot %s is already held by an active appointment"
	ErrDevSlotLockBusy                = "slot lock %s is held by a concurrent request"
	ErrDevSlotDuplicateKey            = "unique slot index rejected write"
	ErrDevFieldNotWritable            = "role %s cannot write field group %s while appointment is %s"
	ErrDevAppointmentNotOwned         = "caller %s (%s) does not own appointment %s"
	ErrDevReassignNotAllowed          = "patch attempted to reassign doctor or patient"
	ErrDevAppointmentAlreadyFinalized = "appointment %s is in terminal status %s"
	ErrDevIllegalStatusTarget         = "illegal status transition %s -> %s"
	ErrDevStaleStatus                 = "appointment %s changed status concurrently"
	ErrDevBookingRoleNotAllowed       = "role %s cannot book appointments"
	ErrDevBookingForeignPatient       = "patient %s attempted to book for patient %s"
	ErrDevPaymentOverrideNotAllowed   = "role %s cannot override payment amount"
)
