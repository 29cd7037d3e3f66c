package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "HSPTL_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	DefaultPageSize        = 10
	MaxPageSize            = 100
)

const (
	MongoCollectionAppointments = "appointments"
	MongoCollectionDoctors      = "doctors"
	MongoCollectionPatients     = "patients"
)

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)
