package goalerrors

import (
	"net/http"

	"talenthub/internal/shared/apperror"
)

var (
	ErrGoalNotFound = apperror.New(
		apperror.CodeNotFound,
		"goal not found",
		http.StatusNotFound,
	)
	ErrKeyResultNotFound = apperror.New(
		apperror.CodeNotFound,
		"key result not found",
		http.StatusNotFound,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeValidation,
		"end date must not be before start date",
		http.StatusBadRequest,
	)
)
