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

package sql

import (
	"context"
	"database/sql/driver"
	"strconv"

	dbdriver "github.com/cectc/dbcli/pkg/driver"
)

var (
	_ driver.Stmt             = (*Stmt)(nil)
	_ driver.StmtExecContext  = (*Stmt)(nil)
	_ driver.StmtQueryContext = (*Stmt)(nil)
)

// Stmt keeps its statement prepared on one cursor. Queries run on a
// cursor of their own so rows stay readable while the statement is reused.
type Stmt struct {
	conn   *Conn
	cursor *dbdriver.Cursor
	query  string
}

func (s *Stmt) Close() error {
	return s.cursor.Close()
}

func (s *Stmt) NumInput() int {
	return s.cursor.NumParams()
}

func (s *Stmt) Exec(args []driver.Value) (driver.Result, error) {
	return s.ExecContext(context.Background(), namedValues(args))
}

func (s *Stmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	values, outs, err := bindArgs(ctx, s.cursor, args)
	if err != nil {
		return nil, err
	}
	defer freeOuts(outs)
	if err = s.cursor.Execute(ctx, s.query, values...); err != nil {
		return nil, driverErr(err)
	}
	if err = assignOuts(ctx, outs); err != nil {
		return nil, err
	}
	result := &Result{rowsAffected: s.cursor.RowCount()}
	if id, err := strconv.ParseInt(s.cursor.LastRowID(), 10, 64); err == nil {
		result.lastInsertID, result.hasInsertID = id, true
	}
	return result, nil
}

func (s *Stmt) Query(args []driver.Value) (driver.Rows, error) {
	return s.QueryContext(context.Background(), namedValues(args))
}

func (s *Stmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	return s.conn.QueryContext(ctx, s.query, args)
}

func runQuery(ctx context.Context, cur *dbdriver.Cursor, query string, args []driver.NamedValue) (*Rows, error) {
	values, outs, err := bindArgs(ctx, cur, args)
	if err != nil {
		return nil, err
	}
	defer freeOuts(outs)
	if err = cur.Execute(ctx, query, values...); err != nil {
		return nil, driverErr(err)
	}
	if err = assignOuts(ctx, outs); err != nil {
		return nil, err
	}
	return newRows(ctx, cur), nil
}

func namedValues(args []driver.Value) []driver.NamedValue {
	named := make([]driver.NamedValue, len(args))
	for i, arg := range args {
		named[i] = driver.NamedValue{Ordinal: i + 1, Value: arg}
	}
	return named
}

// Result reports the counters of the last execute.
type Result struct {
	rowsAffected int64
	lastInsertID int64
	hasInsertID  bool
}

func (r *Result) LastInsertId() (int64, error) {
	if !r.hasInsertID {
		return 0, errNoInsertID
	}
	return r.lastInsertID, nil
}

func (r *Result) RowsAffected() (int64, error) {
	if r.rowsAffected < 0 {
		return 0, errNoRowCount
	}
	return r.rowsAffected, nil
}
