package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const httpStatusCodeInternalError = 600

// Wrap converts a controller into gin handler, which responds the result or
// error in the BusinessError envelope.
func Wrap(controller func(c *gin.Context) (interface{}, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := controller(c)
		if err != nil {
			c.JSON(errorResponse(err))
		} else if result == nil {
			c.JSON(http.StatusOK, ErrNil)
		} else {
			c.JSON(http.StatusOK, ErrNil.WithData(result))
		}
	}
}

func errorResponse(err error) (int, *BusinessError) {
	var businessErr *BusinessError
	if errors.As(err, &businessErr) {
		// custom business error
		return http.StatusOK, businessErr
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		// binding error
		return http.StatusOK, ErrValidation.WithData(validationErrs.Error())
	}

	// internal server error
	return httpStatusCodeInternalError, ErrInternal.WithData(err.Error())
}
