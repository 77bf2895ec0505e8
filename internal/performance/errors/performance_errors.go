package performanceerrors

import (
	"net/http"

	"talenthub/internal/shared/apperror"
)

var (
	ErrReviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"performance review not found",
		http.StatusNotFound,
	)
	ErrFeedbackNotFound = apperror.New(
		apperror.CodeNotFound,
		"feedback not found",
		http.StatusNotFound,
	)
	ErrReviewFinalized = apperror.New(
		apperror.CodeConflict,
		"finalized review can no longer be changed",
		http.StatusConflict,
	)
)
