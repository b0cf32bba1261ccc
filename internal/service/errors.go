// File: internal/service/errors.go
package service

import "errors"

// User-facing failure modes. Handlers translate these to HTTP statuses; any
// other error is an internal failure and must not reach the client verbatim.
var (
	ErrNoFile             = errors.New("no file selected")
	ErrUnsupportedType    = errors.New("only CSV/XLSX/XLS files are allowed")
	ErrTooLarge           = errors.New("file exceeds the maximum allowed size")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProtectedUser      = errors.New("default admin cannot be deleted")
)
