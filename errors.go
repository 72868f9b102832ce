// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2013 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysql

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Error taxonomy, per spec.md §7: TransportError and ProtocolError poison
// the connection; QueryError does not (the server rejected a statement but
// the socket and sequence counter are still aligned); BinlogDumpError
// carries a transport failure mid-stream; ColumnLookupError is raised by
// the getServerVariable consumer path when the expected row/column is
// missing.

// TransportError wraps a socket open/read/write/close failure. Carries an
// SQLSTATE "08000"-class (connection exception) code.
type TransportError struct {
	SQLState string
	cause    error
}

func newTransportError(cause error) *TransportError {
	return &TransportError{SQLState: "08000", cause: errors.WithStack(cause)}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mysql: transport error (%s): %v", e.SQLState, e.cause)
}

func (e *TransportError) Unwrap() error { return e.cause }

// QueryError is a server-sent Error packet.
type QueryError struct {
	Message  string
	Number   uint16
	SQLState string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("mysql: error %d (%s): %s", e.Number, e.SQLState, e.Message)
}

// ProtocolError indicates an unexpected packet type, malformed length, bad
// sequence number, or unknown result type. Poisons the connection.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return "mysql: protocol error: " + e.Message
}

func newProtocolError(format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{Message: fmt.Sprintf(format, args...)}
}

// BinlogDumpError is a transport failure during a binlog dump stream; the
// caller restarts the dump, there is no recovery within the core.
type BinlogDumpError struct {
	cause error
}

func (e *BinlogDumpError) Error() string {
	return fmt.Sprintf("mysql: binlog dump error: %v", e.cause)
}

func (e *BinlogDumpError) Unwrap() error { return e.cause }

// ColumnLookupError is raised when a requested column is not present in a
// result set (used by the getServerVariable consumer path).
type ColumnLookupError struct {
	Name string
}

func (e *ColumnLookupError) Error() string {
	return "mysql: column lookup failed: " + e.Name
}

// Various sentinel errors the core might return. Can change between
// versions.
var (
	ErrInvalidConn = newProtocolError("invalid connection")
	ErrMalformPkt  = newProtocolError("malformed packet")
	ErrBusyBuffer  = errors.New("mysql: busy buffer")
	ErrOldProtocol = newProtocolError("server does not advertise CLIENT_PROTOCOL_41")

	errPktSync    = newProtocolError("commands out of sync: unexpected packet sequence number")
	errPktSyncMul = newProtocolError("commands out of sync: did you run multiple statements at once?")

	// errBadConnNoWrite marks a failure where nothing was written to the
	// socket yet. Kept as a distinct sentinel (rather than folded into
	// TransportError immediately) so callers one layer up can tell "safe to
	// retry" apart from "socket is in an unknown state".
	errBadConnNoWrite = errors.New("mysql: bad connection, nothing written yet")
)

// Logger is used to log critical error messages. The default
// implementation is zap-backed (see logging.go); callers may still plug in
// their own via SetLogger, same seam the teacher repo exposes.
type Logger interface {
	Print(v ...interface{})
}

var errLog Logger = newZapLogger()

// SetLogger overrides the logger used for critical error messages.
func SetLogger(logger Logger) error {
	if logger == nil {
		return errors.New("mysql: logger is nil")
	}
	errLog = logger
	return nil
}

// combineErrors folds zero or more errors (some possibly nil) into a single
// error via go-multierror. Used by Close to report both the COM_QUIT send
// failure and the socket teardown failure instead of discarding one.
func combineErrors(errs ...error) error {
	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if merr == nil {
		return nil
	}
	return merr.ErrorOrNil()
}
