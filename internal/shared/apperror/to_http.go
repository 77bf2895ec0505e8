package apperror

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// HTTPError adalah bentuk final yang dikirim ke client.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

const pgUniqueViolation = "23505"

// ToHTTP translates any error coming out of the pipeline into one of the
// fixed client-facing codes. The mapping is total: whatever the failure
// cause, the caller always receives a stable {status, code, message}.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return HTTPError{
			Status:  http.StatusNotFound,
			Code:    CodeNotFound,
			Message: ErrNotFound.Message,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return HTTPError{
			Status:  http.StatusConflict,
			Code:    CodeConflict,
			Message: ErrConflict.Message,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return HTTPError{
			Status:  http.StatusInternalServerError,
			Code:    CodeInternal,
			Message: "The request was cancelled before it could complete",
		}
	}

	// Catch-all. Pesan asli tidak pernah bocor ke client.
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: ErrInternal.Message,
	}
}
