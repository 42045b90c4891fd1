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
	"time"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/misc"
	"github.com/cectc/dbcli/pkg/native"
)

// Execute binds params as one row and executes query. An empty query
// executes the statement prepared last, a different text is prepared first.
func (c *Cursor) Execute(ctx context.Context, query string, params ...interface{}) error {
	if err := c.prepareFor(ctx, query); err != nil {
		return err
	}
	if params == nil {
		params = []interface{}{}
	}
	return c.execute(ctx, [][]interface{}{params})
}

// ExecuteMany binds rows as one parameter set and executes query once.
// An empty rows prepares query and leaves the row count at 0.
func (c *Cursor) ExecuteMany(ctx context.Context, query string, rows [][]interface{}) error {
	if err := c.prepareFor(ctx, query); err != nil {
		return err
	}
	if len(rows) == 0 {
		c.rowCount = 0
		return nil
	}
	return c.execute(ctx, rows)
}

// ExecuteDirect executes query without parameters and without a
// separate prepare round trip.
func (c *Cursor) ExecuteDirect(ctx context.Context, query string) error {
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
	c.freeParams()
	c.paramDescs = nil
	c.query = query
	c.state = StatePrepared

	start := time.Now()
	ret := c.stmt.ExecDirect(ctx, query)
	if ret == constant.NeedData || ret == constant.ParamDataAvailable {
		return c.abort(errors.NewSQLError(constant.CRFunctionSequence, constant.SSFunctionSequence,
			"statement executed directly asks for parameter data"), start)
	}
	if !ret.Succeeded() {
		return c.abort(native.Error(c.stmt, ret, "execute"), start)
	}
	if ret == constant.SuccessWithInfo {
		c.warning = native.Warning(c.stmt)
	}
	return c.afterExecute(ctx, start)
}

// prepareFor makes query the prepared statement, keeping the prepared
// handle when the text did not change.
func (c *Cursor) prepareFor(ctx context.Context, query string) error {
	if err := c.check(); err != nil {
		return err
	}
	if query == "" {
		if c.query == "" || c.state == StateClosed {
			return errors.NewSQLError(constant.CRFunctionSequence, constant.SSFunctionSequence,
				"no statement prepared")
		}
		query = c.query
	}
	if query != c.query || c.state == StateClosed || c.stmt == nil {
		return c.Prepare(ctx, query)
	}
	c.closeResultSet(true)
	c.clearResult()
	c.state = StatePrepared
	return nil
}

func (c *Cursor) execute(ctx context.Context, rows [][]interface{}) error {
	start := time.Now()
	c.refCursors = nil
	if err := c.bind(ctx, rows); err != nil {
		c.discardParams()
		c.state = StatePrepared
		c.conn.collector.ObserveExecute(misc.StatementKindOf(c.query), start, err)
		return err
	}
	c.inputSizes = false

	stream := c.streamOutput && c.hasOutputParams()
	if len(c.params) > 0 {
		value := int64(0)
		if stream {
			value = 1
		}
		if ret := c.stmt.SetAttr(constant.AttrStreamOutput, value); !ret.Succeeded() {
			return c.abort(native.Error(c.stmt, ret, "set stream output"), start)
		}
	}

	ret := c.stmt.Execute(ctx)
	var err *errors.SQLError
	for err == nil {
		switch ret {
		case constant.NeedData:
			ret, err = c.putData(ctx)
			continue
		case constant.ParamDataAvailable:
			ret, err = c.collectOutput(ctx)
			continue
		}
		break
	}
	if err == nil && !ret.Succeeded() {
		err = native.Error(c.stmt, ret, "execute")
	}
	if err != nil {
		return c.abort(err, start)
	}
	if ret == constant.SuccessWithInfo {
		c.warning = native.Warning(c.stmt)
	}
	return c.afterExecute(ctx, start)
}

func (c *Cursor) hasOutputParams() bool {
	for _, v := range c.params {
		if v != nil && v.Direction().IsOutput() {
			return true
		}
	}
	return false
}

// putData answers every NeedData request with the streamed bytes of the
// requested row, one PutData per value.
func (c *Cursor) putData(ctx context.Context) (constant.Return, *errors.SQLError) {
	pos, row, ret := c.stmt.ParamData(ctx)
	for ret == constant.NeedData {
		if pos < 1 || pos > len(c.params) || c.params[pos-1] == nil {
			return ret, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidDescriptorIdx,
				"data requested for unknown parameter %d", pos)
		}
		data, ok := c.params[pos-1].LongValue(row)
		var put constant.Return
		if ok {
			put = c.stmt.PutData(ctx, data, int64(len(data)))
		} else {
			put = c.stmt.PutData(ctx, nil, constant.NullData)
		}
		if !put.Succeeded() {
			return put, native.Error(c.stmt, put, "put data")
		}
		pos, row, ret = c.stmt.ParamData(ctx)
	}
	return ret, nil
}

// collectOutput drains the output values the server streams after
// execute, one list per parameter position.
func (c *Cursor) collectOutput(ctx context.Context) (constant.Return, *errors.SQLError) {
	c.streams = make([][]interface{}, len(c.params))
	for {
		pos, row, ret := c.stmt.ParamData(ctx)
		for ret == constant.ParamDataAvailable {
			if pos < 1 || pos > len(c.params) || c.params[pos-1] == nil {
				return ret, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidDescriptorIdx,
					"output streamed for unknown parameter %d", pos)
			}
			v := c.params[pos-1]
			if row < 0 || row >= v.Rows() {
				return ret, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidDescriptorIdx,
					"output streamed for row %d of parameter %d with %d rows", row, pos, v.Rows())
			}
			d, got := c.stmt.GetOutputData(ctx, pos)
			if !got.Succeeded() {
				return got, native.Error(c.stmt, got, "get output data")
			}
			if err := v.LoadDatum(row, d); err != nil {
				return constant.Error, asSQLError(err)
			}
			value, err := v.GetValue(ctx, row)
			if err != nil {
				return constant.Error, asSQLError(err)
			}
			c.streams[pos-1] = append(c.streams[pos-1], value)
			pos, row, ret = c.stmt.ParamData(ctx)
		}
		if ret != constant.NoData {
			if ret.Succeeded() {
				return ret, nil
			}
			return ret, native.Error(c.stmt, ret, "param data")
		}
		more := c.stmt.MoreResults(ctx)
		if more == constant.NoData {
			return constant.Success, nil
		}
		if !more.Succeeded() {
			return more, native.Error(c.stmt, more, "more results")
		}
	}
}

func asSQLError(err error) *errors.SQLError {
	if se, ok := err.(*errors.SQLError); ok {
		return se
	}
	return errors.NewSQLError(constant.CRUnknownError, constant.SSUnknownSQLState, "%v", err)
}

// abort finalizes every Variable of the failed attempt and leaves the
// cursor prepared for another execute.
func (c *Cursor) abort(err *errors.SQLError, start time.Time) error {
	c.discardParams()
	c.closeResultSet(true)
	c.state = StatePrepared
	if c.query == "" {
		c.state = StateClosed
	}
	c.conn.collector.ObserveExecute(misc.StatementKindOf(c.query), start, err)
	return c.fail(err, c.query)
}

func (c *Cursor) discardParams() {
	c.freeParams()
	if c.stmt != nil && c.conn.check() == nil {
		c.stmt.ResetParams()
	}
}

// afterExecute records what the statement did, releases the parameter
// bindings and defines the result set if one was produced.
func (c *Cursor) afterExecute(ctx context.Context, start time.Time) error {
	c.kind = c.statementKind()
	c.rowNum = 0
	if n, ret := c.stmt.RowCount(); ret.Succeeded() {
		c.rowCount = n
	}
	if c.kind.IsDML() {
		if id, ret := c.stmt.DiagString(constant.DiagRowID); ret.Succeeded() {
			c.lastRowID = id
		}
	}
	if id, ret := c.stmt.DiagString(constant.DiagExecutionID); ret.Succeeded() {
		c.executionID = id
	}
	if len(c.params) > 0 {
		for _, v := range c.params {
			if v != nil {
				v.Unbind()
			}
		}
		c.stmt.ResetParams()
	}
	for _, rc := range c.refCursors {
		rc.attachResult()
	}
	c.refCursors = nil
	c.state = StateExecuted
	c.conn.collector.ObserveExecute(c.kind, start, nil)

	n, ret := c.stmt.NumResultCols()
	if !ret.Succeeded() {
		return c.fail(native.Error(c.stmt, ret, "count result columns"), c.query)
	}
	if n == 0 {
		return nil
	}
	if err := c.define(ctx, n); err != nil {
		c.closeResultSet(true)
		c.state = StateExecuted
		return err
	}
	return nil
}

func (c *Cursor) statementKind() constant.StatementKind {
	if kind, ret := c.stmt.DiagInt(constant.DiagStatementKind); ret.Succeeded() &&
		constant.StatementKind(kind) != constant.StatementUnknown {
		return constant.StatementKind(kind)
	}
	return misc.StatementKindOf(c.query)
}
