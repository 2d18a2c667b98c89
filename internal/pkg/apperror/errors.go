package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeForbidden         ErrorCode = "FORBIDDEN"
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidState      ErrorCode = "INVALID_STATE"
	ErrCodeConflict          ErrorCode = "CONFLICT"
	ErrCodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeStorage           ErrorCode = "STORAGE_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeValidation, ErrCodeInsufficientFunds:
		return http.StatusBadRequest
	case ErrCodeInvalidState, ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки, если err является AppError.
func CodeOf(err error) (ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return "", false
}

func is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool          { return is(err, ErrCodeNotFound) }
func IsForbidden(err error) bool         { return is(err, ErrCodeForbidden) }
func IsValidation(err error) bool        { return is(err, ErrCodeValidation) }
func IsInvalidState(err error) bool      { return is(err, ErrCodeInvalidState) }
func IsConflict(err error) bool          { return is(err, ErrCodeConflict) }
func IsInsufficientFunds(err error) bool { return is(err, ErrCodeInsufficientFunds) }

var (
	ErrUserNotFound        = New(ErrCodeNotFound, "пользователь не найден")
	ErrCaravanNotFound     = New(ErrCodeNotFound, "караван не найден")
	ErrReservationNotFound = New(ErrCodeNotFound, "бронь не найдена")
	ErrPaymentNotFound     = New(ErrCodeNotFound, "платёж не найден")
	ErrReviewNotFound      = New(ErrCodeNotFound, "отзыв не найден")
	ErrForbidden           = New(ErrCodeForbidden, "недостаточно прав")
	ErrInsufficientFunds   = New(ErrCodeInsufficientFunds, "недостаточно средств на балансе")
	ErrDatesConflict       = New(ErrCodeConflict, "выбранные даты уже заняты")
)
