package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/TsepisoMotloung/360-Rating/internal/domain"
)

// ErrorCode коды ErrorResponse.error.code
type ErrorCode string

const (
	CodeSchemaMismatch ErrorCode = "SCHEMA_MISMATCH"
	CodeEmptyInput     ErrorCode = "EMPTY_INPUT"
	CodeUnknownDialect ErrorCode = "UNKNOWN_DIALECT"
	CodeUnknownQuoting ErrorCode = "UNKNOWN_QUOTING"
	CodeUnknownFormat  ErrorCode = "UNKNOWN_FORMAT"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeTooLarge       ErrorCode = "PAYLOAD_TOO_LARGE"
)

type errorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type ErrorResponse struct {
	Error errorBody `json:"error"`
}

type ErrorHTTP struct {
	Status int
	Body   *ErrorResponse
}

// errBadRequest ошибки разбора самого запроса (multipart, параметры)
var errBadRequest = errors.New("bad request")

func badRequest(code ErrorCode, message string) *ErrorHTTP {
	return &ErrorHTTP{
		Status: http.StatusBadRequest, // 400
		Body: &ErrorResponse{
			Error: errorBody{
				Code:    code,
				Message: message,
			},
		},
	}
}

// FromDomainError из ошибки домена генерируем ответ
func FromDomainError(err error) *ErrorHTTP {
	var tooLarge *http.MaxBytesError

	switch {
	case errors.Is(err, domain.ErrSchemaMismatch):
		return badRequest(CodeSchemaMismatch, err.Error())
	case errors.Is(err, domain.ErrEmptyInput):
		return badRequest(CodeEmptyInput, "csv has no header row")
	case errors.Is(err, domain.ErrUnknownDialect):
		return badRequest(CodeUnknownDialect, "dialect must be one of mssql, postgres, sqlite")
	case errors.Is(err, domain.ErrUnknownQuoting):
		return badRequest(CodeUnknownQuoting, "quoting must be escape or raw")
	case errors.Is(err, domain.ErrUnknownFormat):
		return badRequest(CodeUnknownFormat, "format must be sql or json")
	case errors.As(err, &tooLarge):
		return &ErrorHTTP{
			Status: http.StatusRequestEntityTooLarge, // 413
			Body: &ErrorResponse{
				Error: errorBody{
					Code:    CodeTooLarge,
					Message: fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit),
				},
			},
		}
	case errors.Is(err, errBadRequest):
		return badRequest(CodeBadRequest, err.Error())
	default:
		// Неописанная ошибка будет возвращать 500 без тела
		return &ErrorHTTP{
			Status: http.StatusInternalServerError,
			Body:   nil,
		}
	}
}

// WriteError утилита для хендлеров
func WriteError(w http.ResponseWriter, err error) {
	httpErr := FromDomainError(err)

	if httpErr.Body == nil {
		w.WriteHeader(httpErr.Status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Status)
	_ = json.NewEncoder(w).Encode(httpErr.Body)
}
