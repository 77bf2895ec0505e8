package notificationerrors

import (
	"net/http"

	"talenthub/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrInvalidRecipient = apperror.New(
		apperror.CodeValidation,
		"invalid recipient",
		http.StatusBadRequest,
	)
)
