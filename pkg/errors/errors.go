/*
 * Copyright 2022 CECTC, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/cectc/dbcli/pkg/constant"
)

var (
	ErrNotConnected      = NewSQLError(constant.CRNotConnected, constant.SSConnectionNotOpen, "not connected")
	ErrCursorClosed      = NewSQLError(constant.CRCursorClosed, constant.SSConnectionNotOpen, "cursor is closed")
	ErrNotQuery          = NewSQLError(constant.CRNotQuery, constant.SSInvalidCursorState, "the executed statement does not return rows")
	ErrWrongValueType    = NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType, "value does not match the variable type")
	ErrBindCountMismatch = NewSQLError(constant.CRBindCountMismatch, constant.SSCountMismatch, "number of bound values does not match the number of parameters")
	ErrInvalidatedValue  = NewSQLError(constant.CRInvalidatedValue, constant.SSFunctionSequence, "value refers to a released object")
	ErrOutOfMemory       = NewSQLError(constant.CROutOfMemory, constant.SSMemoryAllocation, "buffer allocation failed")
	ErrPoisonedVariable  = NewSQLError(constant.CRPoisonedVariable, constant.SSUnknownSQLState, "variable lost its binding after resize")
	ErrNotSupported      = NewSQLError(constant.CRNotSupported, constant.SSOptionalFeature, "optional feature not implemented")
	ErrInvalidArgument   = NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument, "invalid argument")
	ErrFunctionSequence  = NewSQLError(constant.CRFunctionSequence, constant.SSFunctionSequence, "function sequence error")
	ErrBufferBorrowed    = NewSQLError(constant.CRBufferBorrowed, constant.SSFunctionSequence, "buffer is borrowed by a binding")
	ErrInvalidHandle     = NewSQLError(constant.CRInvalidHandle, constant.SSUnknownSQLState, "invalid handle")
	ErrUnknownObjectType = NewSQLError(constant.CRUnknownObjectType, constant.SSInvalidArgument, "unknown object type")
	ErrInvalidOption     = NewSQLError(constant.CRInvalidOption, constant.SSInvalidAttribute, "invalid option")
	ErrValueOutOfRange   = NewSQLError(constant.CRValueOutOfRange, constant.SSNumericOutOfRange, "value out of range")
	ErrEncodingFailed    = NewSQLError(constant.CREncodingFailed, constant.SSInvalidCharacter, "character conversion failed")
	ErrNoResultSet       = NewSQLError(constant.CRNoResultSetDefined, constant.SSInvalidCursorState, "no result set is open")
)

// SQLError is the error returned by every engine operation. Number is either a
// native error number reported by the server or one of the local CR* numbers.
type SQLError struct {
	Number  int
	State   string
	Message string
	Class   constant.ErrorClass
	Query   string
}

// NewSQLError creates a new SQLError. The class is derived from the number and state.
// If sqlState is left empty, it will default to "HY000" (general error).
func NewSQLError(number int, sqlState string, format string, args ...interface{}) *SQLError {
	if sqlState == "" {
		sqlState = constant.SSUnknownSQLState
	}
	return &SQLError{
		Number:  number,
		State:   sqlState,
		Message: fmt.Sprintf(format, args...),
		Class:   Classify(number, sqlState),
	}
}

// NewWarning creates a SQLError of the warning class.
func NewWarning(number int, sqlState string, format string, args ...interface{}) *SQLError {
	err := NewSQLError(number, sqlState, format, args...)
	err.Class = constant.ClassWarning
	return err
}

// Error implements the error interface
func (se *SQLError) Error() string {
	buf := &strings.Builder{}
	buf.WriteString(se.Class.String())
	buf.WriteString(": ")
	buf.WriteString(se.Message)

	fmt.Fprintf(buf, " (errno %v) (sqlstate %v)", se.Number, se.State)

	if se.Query != "" {
		fmt.Fprintf(buf, " during query: %s", se.Query)
	}

	return buf.String()
}

// Is matches errors carrying the same number, so formatted errors compare
// equal to the package sentinels.
func (se *SQLError) Is(target error) bool {
	t, ok := target.(*SQLError)
	if !ok {
		return false
	}
	return se.Number == t.Number
}

// WithQuery returns a copy of the error that records the statement text.
func (se *SQLError) WithQuery(query string) *SQLError {
	cp := *se
	cp.Query = query
	return &cp
}

// IsFatal reports whether the error leaves the resource unusable.
func (se *SQLError) IsFatal() bool {
	return se.Class == constant.ClassResource
}

// Classify maps a native error number to its class through constant.CodeRanges,
// falling back to the SQLSTATE class when no range matches.
func Classify(number int, sqlState string) constant.ErrorClass {
	for _, r := range constant.CodeRanges {
		if number >= r.Low && number <= r.High {
			return r.Class
		}
	}
	switch {
	case strings.HasPrefix(sqlState, "01"):
		return constant.ClassWarning
	case strings.HasPrefix(sqlState, "23"):
		return constant.ClassIntegrity
	case strings.HasPrefix(sqlState, "08"), strings.HasPrefix(sqlState, "HYT"):
		return constant.ClassOperational
	case strings.HasPrefix(sqlState, "42"), strings.HasPrefix(sqlState, "07"):
		return constant.ClassProgramming
	case sqlState == constant.SSMemoryAllocation:
		return constant.ClassResource
	}
	return constant.ClassDatabase
}

// ClassOf returns the class of err, or ClassDatabase when err is not a SQLError.
func ClassOf(err error) constant.ErrorClass {
	var se *SQLError
	if errors.As(err, &se) {
		return se.Class
	}
	return constant.ClassDatabase
}

// Is reports whether err belongs to class.
func Is(err error, class constant.ErrorClass) bool {
	if err == nil {
		return false
	}
	return ClassOf(err) == class
}
