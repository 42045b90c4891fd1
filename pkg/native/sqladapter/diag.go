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

package sqladapter

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/cectc/dbcli/pkg/constant"
	err2 "github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/native"
)

var mysqlStates = map[uint16]string{
	1022: constant.SSIntegrityViolation,
	1048: constant.SSIntegrityViolation,
	1062: constant.SSIntegrityViolation,
	1169: constant.SSIntegrityViolation,
	1216: constant.SSIntegrityViolation,
	1217: constant.SSIntegrityViolation,
	1451: constant.SSIntegrityViolation,
	1452: constant.SSIntegrityViolation,
	1054: "42S22",
	1064: constant.SSSyntaxError,
	1146: "42S02",
	1205: constant.SSTimeout,
	1213: "40001",
}

func record(state string, code int, format string, args ...interface{}) native.DiagRecord {
	return native.DiagRecord{SQLState: state, NativeCode: code, Message: fmt.Sprintf(format, args...)}
}

func errorf(state string, code int, format string, args ...interface{}) error {
	return err2.NewSQLError(code, state, format, args...)
}

func notSupported(format string, args ...interface{}) native.DiagRecord {
	return record(constant.SSOptionalFeature, constant.CRNotSupported, format, args...)
}

// diagnose converts a driver error into a diagnostic record carrying the
// server error number, so error classification sees native codes.
func diagnose(err error) native.DiagRecord {
	var se *err2.SQLError
	if errors.As(err, &se) {
		return record(se.State, se.Number, "%s", se.Message)
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		state, ok := mysqlStates[myErr.Number]
		if !ok {
			state = constant.SSUnknownSQLState
		}
		return record(state, int(myErr.Number), "%s", myErr.Message)
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		state := constant.SSUnknownSQLState
		switch liteErr.Code {
		case sqlite3.ErrConstraint:
			state = constant.SSIntegrityViolation
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			state = constant.SSTimeout
		case sqlite3.ErrRange:
			state = constant.SSInvalidDescriptorIdx
		}
		return record(state, int(liteErr.Code), "%s", liteErr.Error())
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return record(constant.SSTimeout, constant.CRUnknownError, "%v", err)
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone), errors.Is(err, mysql.ErrInvalidConn):
		return record(constant.SSConnectionFailure, constant.CRNotConnected, "%v", err)
	}
	return record(constant.SSUnknownSQLState, constant.CRNativeCallFailed, "%v", err)
}
