package recruitmenterrors

import (
	"net/http"

	"talenthub/internal/shared/apperror"
)

var (
	ErrJobPostingNotFound = apperror.New(
		apperror.CodeNotFound,
		"job posting not found",
		http.StatusNotFound,
	)
	ErrCandidateNotFound = apperror.New(
		apperror.CodeNotFound,
		"candidate not found",
		http.StatusNotFound,
	)
	ErrDuplicateCandidate = apperror.New(
		apperror.CodeConflict,
		"candidate already applied to this job posting",
		http.StatusConflict,
	)
	ErrUnknownStatus = apperror.New(
		apperror.CodeValidation,
		"unknown candidate status",
		http.StatusBadRequest,
	)
	ErrTerminalStatus = apperror.New(
		apperror.CodeConflict,
		"candidate is already in a terminal status",
		http.StatusConflict,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeConflict,
		"candidate status transition not allowed",
		http.StatusConflict,
	)
)
