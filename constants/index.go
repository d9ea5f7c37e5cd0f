package constants

const (
	ROLE_ADMIN = "ADMIN"
	ROLE_USER  = "USER"
)

const (
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_INPUT                = "Invalid input"
	ERROR_PARSE_DATA_TO_LOCALS = "Could not read request data"
	DATA_INPUT_IS_NOT_NUMBER   = "Parameter must be a number"
	NOT_ADMIN                  = "Administrator role required"
	MISSING_TOKEN              = "Missing token"
	INVALID_TOKEN              = "Invalid token"

	MISSING_LOGIN_INPUT   = "Username and password are required"
	INVALID_USERNAME      = "Username does not exist"
	INVALID_PASSWORD      = "Password does not match"
	USERNAME_EXISTS       = "Username already taken"
	CAN_NOT_HASH_PASSWORD = "Could not hash password"
)

const (
	MOVIE_NOT_FOUND   = "Movie not found"
	THEATER_NOT_FOUND = "Theater not found"
	ADDRESS_NOT_FOUND = "Address not found"
	SESSION_NOT_FOUND = "Session not found"

	SESSION_IN_PAST        = "A session cannot be created in the past"
	SESSION_ALREADY_BEGUN  = "Only sessions that have not started can be cancelled"
	SESSION_ROOM_OCCUPIED  = "Room occupied by: %s (%s - %s to %s)"
	SESSION_ROOM_NOT_EXIST = "Room %d does not exist in theater %s"

	MOVIE_HAS_FUTURE_SESSIONS = "The movie has upcoming sessions and cannot be deleted"
	MOVIE_DURATION_LOCKED     = "The duration cannot change once sessions reference the movie"
	CONFIRM_HARD_DELETE       = "CONFIRM_HARD_DELETE"

	THEATER_HAS_FUTURE_SESSIONS = "The theater has upcoming sessions and cannot be deleted"
	ADDRESS_LINKED_TO_THEATER   = "The address cannot be deleted while it is linked to theater: %s"
	ADDRESS_ALREADY_LINKED      = "The address is already linked to theater: %s"

	IMPORT_CRITICAL_ERROR = "Critical import error: %s"
	IMPORT_SUCCESS        = "%d movies imported."
	SCHEDULE_RUNNING      = "A generation run is already in progress"
	IMPORT_RUNNING        = "An import run is already in progress"
)
