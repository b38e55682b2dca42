package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"SCHEDULING_PLATFORM_BACK-END/internal/utils"
)

// ErrorKind classifies a request failure.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthorized
	KindTooLarge
)

// Status maps the kind to its HTTP status code.
// An unknown user is reported as a client error, not 404.
func (k ErrorKind) Status() int {
	switch k {
	case KindValidation, KindNotFound:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified request failure. Message becomes the "error" field of
// the response and Detail the optional "message" field.
type Error struct {
	Kind    ErrorKind
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

var (
	ErrMissingFields      = &Error{Kind: KindValidation, Message: "Missing required fields"}
	ErrUserExists         = &Error{Kind: KindConflict, Message: "Email or Username already exists!"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "Invalid credentials"}
	ErrUnknownUser        = &Error{Kind: KindNotFound, Message: "User does not exist for the provided user_unique_id"}
)

func validationError(message, detail string) *Error {
	return &Error{Kind: KindValidation, Message: message, Detail: detail}
}

// writeError renders err. Anything that is not an *Error is an internal
// failure and its raw text is returned to the caller.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *Error
	if errors.As(err, &reqErr) {
		utils.WriteErrorResponse(w, reqErr.Kind.Status(), reqErr.Message, reqErr.Detail)
		return
	}

	log.WithError(err).WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("request failed")
	utils.WriteErrorResponse(w, http.StatusInternalServerError, err.Error(), "")
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return validationError("Invalid request body", err.Error())
	}
	return nil
}
