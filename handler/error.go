package handler

import (
	"net/http"

	"campuseventhub-backend/errs"

	"github.com/gin-gonic/gin"
)

// writeError maps a sentinel from errs to a status code and a stable
// JSON body. Nothing internal leaks past the sentinel message.
func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func abortError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch err {
	case errs.ErrEmailRequired, errs.ErrPasswordRequired, errs.ErrNameRequired,
		errs.ErrEmailAddressFormat, errs.ErrCollegeRequired, errs.ErrInvalidID,
		errs.ErrInvalidTeamSize, errs.ErrInvalidStatus, errs.ErrTitleRequired,
		errs.ErrInvalidCapacity:
		return http.StatusBadRequest
	case errs.ErrInvalidEmailOrPassword, errs.ErrTokenExpired, errs.ErrUnauthorized, errs.ErrJWT:
		return http.StatusUnauthorized
	case errs.ErrNotAdmin, errs.ErrForbidden:
		return http.StatusForbidden
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrAlreadyExists, errs.ErrDuplicateRegistration, errs.ErrEventFull,
		errs.ErrEventNotOpen, errs.ErrRegistrationClosed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
