package identityerrors

import (
	"net/http"

	"talenthub/internal/shared/apperror"
)

var (
	ErrUnauthenticated = apperror.New(
		apperror.CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)
	// Identity valid tapi tidak punya organisasi — cacat konsistensi data,
	// dibedakan dari unauthenticated di log, sama-sama 401 di client.
	ErrNoOrganization = apperror.New(
		apperror.CodeUnauthorized,
		"User is not associated with any organization",
		http.StatusUnauthorized,
	)
)
