package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"clothing-store/middleware"
	"clothing-store/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var statusByKind = map[models.ErrorKind]int{
	models.KindValidation:          http.StatusBadRequest,
	models.KindConflict:            http.StatusBadRequest,
	models.KindAuth:                http.StatusUnauthorized,
	models.KindForbidden:           http.StatusForbidden,
	models.KindNotFound:            http.StatusNotFound,
	models.KindRateLimited:         http.StatusTooManyRequests,
	models.KindPaymentVerification: http.StatusBadRequest,
	models.KindUpstream:            http.StatusBadGateway,
	models.KindServer:              http.StatusInternalServerError,
}

// RegisterValidatorTags makes validation errors report json field names.
func RegisterValidatorTags() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
}

// respondError renders err with the status of its kind. Anything that is not
// an AppError is logged and reported as a bare 500.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		middleware.Logger(c, log).WithError(err).Error("Unhandled error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   "Internal server error",
		})
		return
	}

	status, ok := statusByKind[appErr.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if appErr.Err != nil {
		middleware.Logger(c, log).WithError(appErr.Err).WithField("kind", appErr.Kind).Error(appErr.Message)
	}

	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error:   appErr.Message,
		Details: appErr.Fields,
	})
}

// bindJSON binds the body into dest and writes a 400 with per-field
// details when it does not validate.
func bindJSON(c *gin.Context, log logrus.FieldLogger, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		respondError(c, log, bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) *models.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return models.ErrValidation("Invalid request body")
	}

	fields := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, models.FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	return models.ErrValidation("Validation failed", fields...)
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must contain at least %s", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", name, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", name)
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.Response{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, models.Response{Success: true, Message: message, Data: data})
}

func respondPage(c *gin.Context, message string, data interface{}, meta models.PaginationMeta) {
	c.JSON(http.StatusOK, models.PaginationResponse{Success: true, Message: message, Data: data, Meta: meta})
}
