package domain

import "errors"

var (
	ErrNoSubjects   = errors.New("add a subject")
	ErrZeroPriority = errors.New("cannot allocate: all priority scores are zero")
	ErrInvalidInput = errors.New("invalid input")
	ErrPlanNotFound = errors.New("plan not found")
)
