package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that a state transition was attempted from a status that
// no longer matches the required precondition (e.g. a second executor racing on
// the same authorized transaction). Distinct from ErrNotFound: the row exists.
var ErrConflict = errors.New("state conflict")

// ErrForbidden indicates the caller lacks the capability for the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNoOpenSession indicates a register-scoped operation was attempted while no
// cash session is open.
var ErrNoOpenSession = errors.New("no open cash session")

// ErrSessionAlreadyOpen indicates an open was attempted while a session is
// already open. At most one session may be open system-wide.
var ErrSessionAlreadyOpen = errors.New("a cash session is already open")

// ErrSessionClosed indicates an operation targeted a session that is already closed.
var ErrSessionClosed = errors.New("cash session is already closed")

// ErrTransferIncomplete indicates the credit leg of a transfer could not be
// persisted after retries. Callers must surface this to an operator; it is never
// to be collapsed into a generic error.
var ErrTransferIncomplete = errors.New("transfer could not be completed")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
