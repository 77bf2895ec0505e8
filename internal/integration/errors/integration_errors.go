package integrationerrors

import (
	"net/http"

	"talenthub/internal/shared/apperror"
)

var (
	ErrIntegrationNotFound = apperror.New(
		apperror.CodeNotFound,
		"integration not found",
		http.StatusNotFound,
	)
	ErrAlreadyConnected = apperror.New(
		apperror.CodeConflict,
		"provider already connected for this organization",
		http.StatusConflict,
	)
	ErrAlreadyDisconnected = apperror.New(
		apperror.CodeConflict,
		"integration is already disconnected",
		http.StatusConflict,
	)
)
