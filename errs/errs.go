package errs

import "errors"

var (
	ErrEmailRequired          = errors.New("E0001: email is required")
	ErrPasswordRequired       = errors.New("E0002: password is required")
	ErrInvalidEmailOrPassword = errors.New("E0003: invalid email or password")
	ErrDatabase               = errors.New("E0004: database error")
	ErrCryptographic          = errors.New("E0005: cryptographic failure")
	ErrJWT                    = errors.New("E0006: JWT failure")
	ErrNameRequired           = errors.New("E0007: name is required")
	ErrEmailAddressFormat     = errors.New("E0008: email address format incorrect")
	ErrCollegeRequired        = errors.New("E0009: college is required")
	ErrAlreadyExists          = errors.New("E0010: user already registered")
	ErrTokenExpired           = errors.New("E0011: token expired")
	ErrUnauthorized           = errors.New("E0012: unauthorized")
	ErrNotFound               = errors.New("E0013: not found")
	ErrInvalidID              = errors.New("E0014: invalid ID")
	ErrNotAdmin               = errors.New("E0015: not admin")
	ErrForbidden              = errors.New("E0016: not the event owner")
	ErrDuplicateRegistration  = errors.New("E0017: already registered for event")
	ErrInvalidTeamSize        = errors.New("E0018: invalid team size")
	ErrEventFull              = errors.New("E0019: event is full")
	ErrEventNotOpen           = errors.New("E0020: event not open for registration")
	ErrRegistrationClosed     = errors.New("E0021: registration window closed")
	ErrInvalidStatus          = errors.New("E0022: invalid status transition")
	ErrTitleRequired          = errors.New("E0023: title is required")
	ErrInvalidCapacity        = errors.New("E0024: invalid capacity")
)
