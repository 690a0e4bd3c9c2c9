package common

import (
	"errors"
	"net/http"

	"axiapac.com/hrms/core"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const genericFailure = "failed to process request, try again later"

// RespondError writes the response for err and aborts the chain. Upstream
// failures are logged and hidden behind a generic message.
func RespondError(c *gin.Context, err error) {
	var ve *core.ValidationError
	var se *core.StatusError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, NewFieldErrorResponse("validation failed", ve.Fields))
	case errors.As(err, &se):
		c.AbortWithStatusJSON(http.StatusBadRequest, NewFieldErrorResponse(se.Error(), map[string]string{"status": se.Error()}))
	case errors.Is(err, core.ErrInvalidStatus):
		c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse(err.Error()))
	case errors.Is(err, core.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, NewErrorResponse(err.Error()))
	case errors.Is(err, core.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, NewErrorResponse("invalid credentials"))
	default:
		Logger(c).WithError(err).Error("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, NewErrorResponse(genericFailure))
	}
}

// RespondBindingError answers a request whose body or form could not be bound.
func RespondBindingError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, NewFieldErrorResponse(FormatBindingError(err), FieldErrors(err)))
}

const loggerKey = "logger"

func SetLogger(c *gin.Context, log *logrus.Entry) {
	c.Set(loggerKey, log)
}

// Logger returns the request scoped logger, or the standard logger outside a request.
func Logger(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(*logrus.Entry); ok {
			return log
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
