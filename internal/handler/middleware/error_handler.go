package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/mindthevirt/binge-master-api/internal/domain/user"
	"github.com/mindthevirt/binge-master-api/internal/handler/dto"
	"github.com/mindthevirt/binge-master-api/internal/ierr"
	"go.uber.org/zap"
)

// ErrorHandlerMiddleware turns errors attached to the gin context into the
// {"error": ...} wire shape. Storage failures keep the taxonomy message;
// raw driver text never reaches the caller.
func ErrorHandlerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("ErrorHandler")
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log.Error("Request failed", zap.Error(err))

		status := http.StatusInternalServerError
		message := "An unexpected error occurred"

		var ve validator.ValidationErrors

		if errors.As(err, &ve) {
			status = http.StatusBadRequest
			message = buildValidationMessage(ve)
		} else {
			switch {
			case errors.Is(err, ierr.ErrValidation):
				status = http.StatusBadRequest
				message = err.Error()
			case errors.Is(err, ierr.ErrUnauthorized):
				status = http.StatusUnauthorized
				message = "Authentication required or failed"
			case errors.Is(err, user.ErrAlreadyRegistered):
				status = http.StatusConflict
				message = "User already registered"
			case errors.Is(err, ierr.ErrConflict):
				status = http.StatusConflict
				message = err.Error()
			case errors.Is(err, ierr.ErrNotFound):
				status = http.StatusNotFound
				message = "The requested resource was not found"
			case errors.Is(err, ierr.ErrKeyGeneration):
				status = http.StatusInternalServerError
				message = "Failed to generate API key"
			}
		}

		c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
	}
}

func buildValidationMessage(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return "Input validation failed"
	}

	fe := ve[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' is required", fe.Field())
	case "email":
		return fmt.Sprintf("Field '%s' must be a valid email address", fe.Field())
	case "gte":
		return fmt.Sprintf("Field '%s' must be greater than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Field '%s' failed validation on the '%s' tag", fe.Field(), fe.Tag())
	}
}
