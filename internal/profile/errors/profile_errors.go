package profileerrors

import (
	"net/http"

	"github.com/Berghsen/timeline/internal/shared/apperror"
)

var (
	ErrProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"Profile not found",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
	ErrInvalidTravelTime = apperror.New(
		apperror.CodeInvalidInput,
		"Travel time must be zero or more minutes",
		http.StatusBadRequest,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A profile with the same email already exists",
		http.StatusConflict,
	)
)
