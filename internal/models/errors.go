package models

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind классифицирует отказ при разрешении пути или передаче файла.
type Kind int

const (
	KindUnknown Kind = iota
	KindForbidden
	KindBadRequest
	KindDirectoryCreateFailed
	KindTempFileFailed
	KindOpenFailed
	KindWriteFailed
	KindDeletePreviousFailed
	KindRenameFailed
	KindNotFound
	KindInvalidMethod
	KindInitializationFailed
)

// kindInfo — код ответа и сообщение по умолчанию для каждого вида ошибки.
var kindInfo = map[Kind]struct {
	code int
	msg  string
}{
	KindUnknown:               {http.StatusInternalServerError, "Internal error"},
	KindForbidden:             {http.StatusForbidden, "Forbidden"},
	KindBadRequest:            {http.StatusBadRequest, "Bad request"},
	KindDirectoryCreateFailed: {501, "Failed to create directory"},
	KindTempFileFailed:        {503, "Failed to create temporary file"},
	KindOpenFailed:            {504, "Failed to open stream"},
	KindWriteFailed:           {505, "Failed to write file"},
	KindDeletePreviousFailed:  {506, "Failed to delete previous file"},
	KindRenameFailed:          {507, "Failed to rename temporary file"},
	KindNotFound:              {http.StatusNotFound, "File not found"},
	KindInvalidMethod:         {http.StatusMethodNotAllowed, "Invalid method"},
	KindInitializationFailed:  {http.StatusInternalServerError, "Initialization failed"},
}

func (k Kind) String() string {
	switch k {
	case KindForbidden:
		return "forbidden"
	case KindBadRequest:
		return "bad_request"
	case KindDirectoryCreateFailed:
		return "directory_create_failed"
	case KindTempFileFailed:
		return "temp_file_failed"
	case KindOpenFailed:
		return "open_failed"
	case KindWriteFailed:
		return "write_failed"
	case KindDeletePreviousFailed:
		return "delete_previous_failed"
	case KindRenameFailed:
		return "rename_failed"
	case KindNotFound:
		return "not_found"
	case KindInvalidMethod:
		return "invalid_method"
	case KindInitializationFailed:
		return "initialization_failed"
	default:
		return "unknown"
	}
}

// Code возвращает HTTP-статус, закреплённый за видом ошибки.
func (k Kind) Code() int {
	if info, ok := kindInfo[k]; ok {
		return info.code
	}
	return http.StatusInternalServerError
}

// TransferError описывает отказ запроса: вид, код, сообщение и необязательную диагностику.
type TransferError struct {
	Kind    Kind
	Code    int
	Message string
	Detail  string
	Err     error
}

// NewTransferError собирает ошибку по виду; detail попадает в тело ответа как диагностика.
func NewTransferError(kind Kind, detail string, err error) *TransferError {
	info, ok := kindInfo[kind]
	if !ok {
		info = kindInfo[KindUnknown]
	}
	return &TransferError{
		Kind:    kind,
		Code:    info.code,
		Message: info.msg,
		Detail:  detail,
		Err:     err,
	}
}

func (e *TransferError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *TransferError) Unwrap() error { return e.Err }

// KindOf достаёт вид ошибки из цепочки; для посторонних ошибок — KindUnknown.
func KindOf(err error) Kind {
	var te *TransferError
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnknown
}

// ErrNotFound — ошибка журнала, когда для пути нет записи.
var ErrNotFound = errors.New("entry not found")
