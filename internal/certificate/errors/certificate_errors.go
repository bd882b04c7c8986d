package certificateerrors

import (
	"net/http"

	"github.com/Berghsen/timeline/internal/shared/apperror"
)

var (
	ErrCertificateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Certificate not found",
		http.StatusNotFound,
	)
	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"Certificate belongs to another user",
		http.StatusForbidden,
	)
	ErrUnsupportedFileType = apperror.New(
		apperror.CodeInvalidInput,
		"Only jpg, jpeg, png and pdf files are accepted",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"File exceeds the 10MB limit",
		http.StatusBadRequest,
	)
	ErrInvalidCertificateID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid certificate ID",
		http.StatusBadRequest,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
	ErrMissingFile = apperror.New(
		apperror.CodeInvalidInput,
		"A file upload is required",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Start and end date must be valid dates with end on or after start",
		http.StatusBadRequest,
	)
)
