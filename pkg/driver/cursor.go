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

package driver

import (
	"context"
	"fmt"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/native"
	"github.com/cectc/dbcli/pkg/variable"
)

// State is the position of a cursor in its prepare, bind, execute and
// fetch cycle.
type State uint8

const (
	StateClosed State = iota
	StatePrepared
	StateBound
	StateExecuted
	StateResultSetOpen
	StateFetching
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StatePrepared:
		return "PREPARED"
	case StateBound:
		return "BOUND"
	case StateExecuted:
		return "EXECUTED"
	case StateResultSetOpen:
		return "RESULT_SET_OPEN"
	case StateFetching:
		return "FETCHING"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Cursor drives one native statement. A cursor is not safe for
// concurrent use and stays reusable after Close.
type Cursor struct {
	conn  *Connection
	stmt  native.Statement
	state State
	query string

	paramDescs []*native.ParamDesc
	params     []*variable.Variable
	// external marks parameter variables the caller owns.
	external   []bool
	inputSizes bool

	columns     []*Column
	cols        []*variable.Variable
	needsDefine bool

	rowCount   int64
	rowNum     int64
	fetched    int64
	bufferRows int
	bufferPos  int
	exhausted  bool

	arraySize        int
	bindArraySize    int
	outputSize       int
	outputSizeColumn int
	streamOutput     bool

	kind        constant.StatementKind
	lastRowID   string
	executionID string
	warning     *errors.SQLError
	streams     [][]interface{}
	// refCursors are cursors bound as values the server opens a result on.
	refCursors []*Cursor
}

func (c *Cursor) State() State {
	return c.state
}

func (c *Cursor) Connection() *Connection {
	return c.conn
}

// NativeStatement exposes the statement handle, binding a cursor as a
// ref cursor parameter passes it to the server. The handle is allocated
// when the cursor has none yet.
func (c *Cursor) NativeStatement() (native.Statement, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if c.stmt == nil {
		stmt, err := c.conn.allocStatement()
		if err != nil {
			return nil, err
		}
		c.stmt = stmt
	}
	return unwrap(c.stmt), nil
}

// attachResult makes the result set the server opened on the statement
// of the cursor fetchable.
func (c *Cursor) attachResult() {
	c.closeResultSet(false)
	c.clearResult()
	c.kind = constant.StatementSelect
	c.needsDefine = true
	c.state = StateExecuted
}

func (c *Cursor) ArraySize() int {
	return c.arraySize
}

func (c *Cursor) SetArraySize(n int) error {
	if n < 1 {
		return errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
			"array size must be positive, got %d", n)
	}
	c.arraySize = n
	return nil
}

func (c *Cursor) BindArraySize() int {
	return c.bindArraySize
}

func (c *Cursor) SetBindArraySize(n int) error {
	if n < 1 {
		return errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
			"bind array size must be positive, got %d", n)
	}
	c.bindArraySize = n
	return nil
}

// SetStreamOutput switches output parameters to be collected through
// ParamData after execute.
func (c *Cursor) SetStreamOutput(enabled bool) {
	c.streamOutput = enabled
}

// SetOutputSize overrides the row size of variable length result
// columns, of every column when column is 0.
func (c *Cursor) SetOutputSize(size, column int) {
	c.outputSize = size
	c.outputSizeColumn = column
}

// Query is the currently prepared statement text.
func (c *Cursor) Query() string {
	return c.query
}

// NumParams is the number of parameter markers of the prepared statement.
func (c *Cursor) NumParams() int {
	return len(c.paramDescs)
}

// Description describes the columns of the open result set, nil when
// no result set is open.
func (c *Cursor) Description() []*Column {
	return c.columns
}

// RowCount is the number of rows the last statement changed, or the
// number of rows its result set holds when the server reports it.
func (c *Cursor) RowCount() int64 {
	return c.rowCount
}

// RowNumber is the number of rows fetched from the open result set so far.
func (c *Cursor) RowNumber() int64 {
	return c.rowNum
}

// LastRowID identifies the row the last DML statement touched.
func (c *Cursor) LastRowID() string {
	return c.lastRowID
}

func (c *Cursor) ExecutionID() string {
	return c.executionID
}

func (c *Cursor) StatementKind() constant.StatementKind {
	return c.kind
}

// Warning returns the diagnostics the last call left behind, nil when
// it had none.
func (c *Cursor) Warning() *errors.SQLError {
	return c.warning
}

// OutputStreams returns the values collected per parameter position in
// stream output mode, nil entries for input parameters.
func (c *Cursor) OutputStreams() [][]interface{} {
	return c.streams
}

// BindVars returns the parameter variables of the last bind.
func (c *Cursor) BindVars() []*variable.Variable {
	return c.params
}

// FetchVars returns the column variables of the open result set.
func (c *Cursor) FetchVars() []*variable.Variable {
	return c.cols
}

func (c *Cursor) check() error {
	if c.conn == nil {
		return errors.ErrCursorClosed
	}
	return c.conn.check()
}

// Prepare sends query to the server and describes its parameters.
func (c *Cursor) Prepare(ctx context.Context, query string) error {
	if err := c.check(); err != nil {
		return err
	}
	if c.stmt == nil {
		stmt, err := c.conn.allocStatement()
		if err != nil {
			return err
		}
		c.stmt = stmt
	}
	c.closeResultSet(true)
	c.clearResult()
	c.paramDescs = nil
	if !c.inputSizes {
		c.freeParams()
	}
	c.query = ""
	c.state = StateClosed

	if ret := c.stmt.Prepare(ctx, query); !ret.Succeeded() {
		return c.fail(native.Error(c.stmt, ret, "prepare"), query)
	}
	c.query = query
	c.state = StatePrepared
	return c.describeParams(query)
}

func (c *Cursor) describeParams(query string) error {
	n, ret := c.stmt.NumParams()
	if !ret.Succeeded() {
		return c.fail(native.Error(c.stmt, ret, "count parameters"), query)
	}
	c.paramDescs = make([]*native.ParamDesc, n)
	for pos := 1; pos <= n; pos++ {
		desc, ret := c.stmt.DescribeParam(pos)
		if ret.Succeeded() {
			d := desc
			c.paramDescs[pos-1] = &d
			continue
		}
		err := native.Error(c.stmt, ret, "describe parameter")
		if err.State == constant.SSOptionalFeature {
			// values decide the types on their own
			c.conn.logger.Debugf("parameters of %q are not described: %s", query, err.Message)
			break
		}
		return c.fail(err, query)
	}
	return nil
}

func (c *Cursor) paramDesc(i int) *native.ParamDesc {
	if i < 0 || i >= len(c.paramDescs) {
		return nil
	}
	return c.paramDescs[i]
}

// fail keeps err as the cursor warning before it is returned.
func (c *Cursor) fail(err *errors.SQLError, query string) error {
	c.warning = errors.NewWarning(err.Number, err.State, "%s", err.Message)
	return err.WithQuery(query)
}

func (c *Cursor) clearResult() {
	c.rowCount = -1
	c.rowNum = 0
	c.kind = constant.StatementUnknown
	c.lastRowID = ""
	c.executionID = ""
	c.warning = nil
	c.streams = nil
}

// closeResultSet frees the column variables. The native cursor is only
// closed when closeNative is set, moving to the next result set keeps it.
func (c *Cursor) closeResultSet(closeNative bool) {
	for _, v := range c.cols {
		v.Free()
	}
	hadColumns := c.cols != nil
	c.cols = nil
	c.columns = nil
	c.needsDefine = false
	c.fetched = 0
	c.bufferRows = 0
	c.bufferPos = 0
	c.exhausted = false
	if c.stmt == nil || c.conn.check() != nil {
		return
	}
	if hadColumns {
		c.stmt.UnbindCols()
	}
	if closeNative {
		c.stmt.CloseCursor()
	}
}

func (c *Cursor) freeParams() {
	for i, v := range c.params {
		if v != nil && !c.isExternal(i) {
			v.Free()
		} else if v != nil {
			v.Unbind()
		}
	}
	c.params = nil
	c.external = nil
	c.inputSizes = false
}

func (c *Cursor) isExternal(i int) bool {
	return i < len(c.external) && c.external[i]
}

// Close releases the statement and every variable. The cursor can be
// prepared again afterwards.
func (c *Cursor) Close() error {
	if c.conn == nil {
		return nil
	}
	c.closeResultSet(true)
	c.freeParams()
	var err error
	if c.stmt != nil && c.conn.check() == nil {
		if ret := c.stmt.Free(); !ret.Succeeded() {
			err = native.Error(c.stmt, ret, "free statement")
		}
	}
	c.stmt = nil
	c.query = ""
	c.paramDescs = nil
	c.clearResult()
	c.state = StateClosed
	return err
}

// SetInputSizes fixes the types of the parameters of the next execute.
// A nil token leaves the position to be typed by its value.
func (c *Cursor) SetInputSizes(tokens ...interface{}) ([]*variable.Variable, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	c.freeParams()
	vars := make([]*variable.Variable, len(tokens))
	for i, token := range tokens {
		if token == nil {
			continue
		}
		typ, size, err := variable.TypeByToken(token)
		if err != nil {
			freeAll(vars)
			return nil, err
		}
		v, err := variable.NewVariable(c.conn, typ, c.bindArraySize, size)
		if err != nil {
			freeAll(vars)
			return nil, err
		}
		vars[i] = v
	}
	c.params = vars
	c.external = make([]bool, len(vars))
	c.inputSizes = true
	return vars, nil
}

// Var creates a variable the caller owns and frees, bindable as a
// parameter value. rows defaults to the bind array size.
func (c *Cursor) Var(token interface{}, size, rows int) (*variable.Variable, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	typ, tokenSize, err := variable.TypeByToken(token)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = tokenSize
	}
	if rows <= 0 {
		rows = c.bindArraySize
	}
	return variable.NewVariable(c.conn, typ, rows, size)
}

// ArrayVar creates a caller owned variable holding values, one per row.
func (c *Cursor) ArrayVar(ctx context.Context, token interface{}, values []interface{}) (*variable.Variable, error) {
	v, err := c.Var(token, 0, len(values))
	if err != nil {
		return nil, err
	}
	for i, value := range values {
		if err := v.SetValue(ctx, i, value); err != nil {
			v.Free()
			return nil, err
		}
	}
	v.SetPopulated(len(values))
	return v, nil
}

func freeAll(vars []*variable.Variable) {
	for _, v := range vars {
		if v != nil {
			v.Free()
		}
	}
}
