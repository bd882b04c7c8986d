package timeentryerrors

import (
	"net/http"

	"github.com/Berghsen/timeline/internal/shared/apperror"
)

var (
	ErrTimeEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Time entry not found",
		http.StatusNotFound,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"Time entry belongs to another user",
		http.StatusForbidden,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidClockTime = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid clock time, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrTimesOrStatusRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Either both clock times or a status flag is required",
		http.StatusBadRequest,
	)
	ErrConflictingStatus = apperror.New(
		apperror.CodeInvalidInput,
		"At most one status flag may be set",
		http.StatusBadRequest,
	)
	ErrInvalidTimeEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid time entry ID",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
	ErrInvalidRange = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date range",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid month, expected 1 to 12",
		http.StatusBadRequest,
	)
)
