package handler

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/response"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/middleware"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"github.com/sangkips/servicecenter-api/pkg/utils"
)

// GetStaffID extracts the signed-in staff ID from the Gin context
func GetStaffID(c *gin.Context) *uuid.UUID {
	value, exists := c.Get(middleware.ContextStaffID)
	if !exists {
		return nil
	}
	staffID, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &staffID
}

// GetStaffRole extracts the signed-in staff role from the Gin context
func GetStaffRole(c *gin.Context) enum.StaffRole {
	value, exists := c.Get(middleware.ContextStaffRole)
	if !exists {
		return ""
	}
	role, _ := value.(enum.StaffRole)
	return role
}

// bindJSON binds the request body and writes the error response itself when
// binding fails. Validation failures are reported per field with 422.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if fieldErrors := validationFieldErrors(err); fieldErrors != nil {
		response.ValidationError(c, fieldErrors)
		return false
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		response.BadRequest(c, "Request body is required")
	case errors.As(err, &syntaxErr):
		response.BadRequest(c, "Malformed JSON in request body")
	case errors.As(err, &typeErr):
		response.ValidationError(c, []apperror.FieldError{{Field: typeErr.Field, Message: "has the wrong type"}})
	default:
		response.BadRequest(c, "Invalid request body")
	}
	return false
}

// paramID parses the :id path parameter
func paramID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads page, per_page and limit from the query string
func pageParams(c *gin.Context) *pagination.PaginationParams {
	return pagination.FromQuery(c.Query("page"), c.Query("per_page"), c.Query("limit"))
}

// optionalDate parses an optional date field, collecting a field error when
// it is malformed
func optionalDate(field string, value *string, fieldErrors *[]apperror.FieldError) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	t, err := utils.ParseDate(*value)
	if err != nil {
		*fieldErrors = append(*fieldErrors, apperror.FieldError{Field: field, Message: err.Error()})
		return nil
	}
	return &t
}

// queryDate parses an optional date from the query string
func queryDate(c *gin.Context, key string, fieldErrors *[]apperror.FieldError) *time.Time {
	value := c.Query(key)
	return optionalDate(key, &value, fieldErrors)
}
