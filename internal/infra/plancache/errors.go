package plancache

import "errors"

var (
	ErrInvalidPlanData = errors.New("invalid plan data")
)
