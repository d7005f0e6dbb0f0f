package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

const (
	errTypeInvalidRequest = "invalid_request"
	errTypeNoSubjects     = "no_subjects"
	errTypeZeroPriority   = "zero_priority"
	errTypeInternal       = "internal_error"

	msgNoSubjects   = "Please enter at least one subject."
	msgZeroPriority = "All priority scores are zero. Check your difficulty and days inputs."
	msgInternal     = "Something went wrong while generating your plan."
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type planError struct {
	status  int
	errType string
	message string
}

// classifyError maps planner errors to an HTTP status, error type and a
// message fit for the user.
func classifyError(err error) planError {
	switch {
	case errors.Is(err, domain.ErrNoSubjects):
		return planError{http.StatusUnprocessableEntity, errTypeNoSubjects, msgNoSubjects}
	case errors.Is(err, domain.ErrZeroPriority):
		return planError{http.StatusUnprocessableEntity, errTypeZeroPriority, msgZeroPriority}
	case errors.Is(err, domain.ErrInvalidInput):
		return planError{http.StatusBadRequest, errTypeInvalidRequest, err.Error()}
	default:
		return planError{http.StatusInternalServerError, errTypeInternal, msgInternal}
	}
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, ErrorResponse{
		Error:   errType,
		Message: message,
	})
}
