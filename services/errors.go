package services

import (
	"errors"

	"fastcard/utils"

	"go.uber.org/zap"
)

// ErrorKind вид ошибки сервиса, по нему контроллеры выбирают HTTP-статус
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error ошибка сервиса. Message безопасно показывать клиенту
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Ошибки бизнес-правил
var (
	ErrPasswordTooShort       = &Error{Kind: KindBadRequest, Message: "Password is too short"}
	ErrPasswordTooLong        = &Error{Kind: KindBadRequest, Message: "Password is too long"}
	ErrInvalidEmail           = &Error{Kind: KindBadRequest, Message: "Incorrect email format"}
	ErrInvalidUsername        = &Error{Kind: KindBadRequest, Message: "Incorrect username"}
	ErrUsernameTaken          = &Error{Kind: KindConflict, Message: "Username already taken"}
	ErrEmailTaken             = &Error{Kind: KindConflict, Message: "Email already taken"}
	ErrUserNotFound           = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrIncorrectPassword      = &Error{Kind: KindUnauthorized, Message: "Incorrect password specified"}
	ErrActivationLinkNotFound = &Error{Kind: KindBadRequest, Message: "Incorrect activation link"}
	ErrAlreadyActivated       = &Error{Kind: KindBadRequest, Message: "Account has already been activated"}
	ErrTokenRequired          = &Error{Kind: KindBadRequest, Message: "Token is required"}
	ErrInvalidToken           = &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrAccountNotActivated    = &Error{Kind: KindForbidden, Message: "User account is not activated"}
	ErrNoAccess               = &Error{Kind: KindForbidden, Message: "No access"}
	ErrApplicationExists      = &Error{Kind: KindConflict, Message: "Application has already been submitted"}
	ErrApplicationNotFound    = &Error{Kind: KindNotFound, Message: "Application not found"}
	ErrInvalidPhoneNumber     = &Error{Kind: KindBadRequest, Message: "Incorrect phone number"}
	ErrCardNotFound           = &Error{Kind: KindNotFound, Message: "Business card not found"}
	ErrCardNotActivated       = &Error{Kind: KindForbidden, Message: "Business card not activated"}
	ErrPermissionDenied       = &Error{Kind: KindForbidden, Message: "You do not have permission to perform this action"}
)

// NewBadRequest создает ошибку некорректного запроса с сообщением для клиента
func NewBadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// KindOf возвращает вид ошибки; все неизвестные ошибки считаются внутренними
func KindOf(err error) ErrorKind {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return KindInternal
}

// internalError логирует исходную ошибку и скрывает ее от клиента
func internalError(operation string, err error) error {
	utils.Log.Error("internal error", zap.String("operation", operation), zap.Error(err))
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}
