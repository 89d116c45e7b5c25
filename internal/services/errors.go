package services

import "errors"

// Validation
var (
	ErrMissingFields    = errors.New("all fields are required")
	ErrTaskTextRequired = errors.New("task text is required")
)

// Not found
var (
	ErrInstanceNotFound = errors.New("instance not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskUnavailable  = errors.New("task does not exist or is already taken")
)

// Unauthorized. Unknown admin and wrong password share one error.
var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
)

// Forbidden
var (
	ErrForeignSession       = errors.New("session does not belong to this instance")
	ErrNotTaskOwner         = errors.New("only the current owner can change a taken task")
	ErrTaskPermissionDenied = errors.New("only the creator or an admin can edit this task")
	ErrAdminOnly            = errors.New("only an admin can delete tasks")
)

// Server
var (
	ErrFailedToHashPassword   = errors.New("failed to hash password")
	ErrFailedToCreateInstance = errors.New("failed to create instance")
	ErrFailedToIssueSession   = errors.New("failed to issue session")
)
