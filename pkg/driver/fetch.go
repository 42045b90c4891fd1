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
	"io"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/native"
	"github.com/cectc/dbcli/pkg/variable"
)

// defaultLongSize is the row size of long columns the server reports no
// display size for.
const defaultLongSize = 128 * 1024

// define allocates and binds one Variable per result column.
func (c *Cursor) define(ctx context.Context, n int) error {
	opts := c.conn.opts.typeOptions()
	cols := make([]*variable.Variable, 0, n)
	columns := make([]*Column, 0, n)
	for pos := 1; pos <= n; pos++ {
		desc, ret := c.stmt.DescribeCol(pos)
		if !ret.Succeeded() {
			freeAll(cols)
			return c.fail(native.Error(c.stmt, ret, "describe column"), c.query)
		}
		typ, err := variable.TypeByColumn(&desc, opts)
		if err != nil {
			freeAll(cols)
			return err
		}
		v, err := variable.NewVariable(c.conn, typ, c.arraySize, c.columnSize(pos, &desc, typ))
		if err != nil {
			freeAll(cols)
			return err
		}
		if err := v.PreDefine(ctx, &desc); err != nil {
			v.Free()
			freeAll(cols)
			return err
		}
		if err := v.BindColumn(c.stmt, pos); err != nil {
			v.Free()
			freeAll(cols)
			return err
		}
		cols = append(cols, v)
		columns = append(columns, newColumn(&desc, typ))
	}
	if ret := c.stmt.SetAttr(constant.AttrRowArraySize, int64(c.arraySize)); !ret.Succeeded() {
		freeAll(cols)
		return c.fail(native.Error(c.stmt, ret, "set row array size"), c.query)
	}
	if c.rowCount < 0 {
		if count, ret := c.stmt.RowCount(); ret.Succeeded() {
			c.rowCount = count
		}
	}
	c.cols = cols
	c.columns = columns
	c.needsDefine = false
	c.fetched = 0
	c.bufferRows = 0
	c.bufferPos = 0
	c.exhausted = false
	c.state = StateResultSetOpen
	return nil
}

// columnSize is the row size of the Variable of column pos, 0 lets the
// type decide.
func (c *Cursor) columnSize(pos int, desc *native.ColumnDesc, typ variable.Type) int {
	if typ.IsHandle() || !typ.IsVariableLength() {
		return 0
	}
	if c.outputSize > 0 && (c.outputSizeColumn <= 0 || c.outputSizeColumn == pos) {
		return c.outputSize
	}
	size := desc.DisplaySize
	if size <= 0 {
		size = desc.Precision
	}
	if typ.IsCharData() {
		size *= constant.BytesPerChar
	}
	if typ.IsLong() && size < defaultLongSize {
		size = defaultLongSize
	}
	return size
}

// verifyFetch fails unless a result set is open, defining the columns
// of a ref cursor on first use.
func (c *Cursor) verifyFetch(ctx context.Context) error {
	if err := c.check(); err != nil {
		return err
	}
	if c.stmt == nil || c.state == StateClosed {
		return errors.ErrCursorClosed
	}
	if c.needsDefine {
		n, ret := c.stmt.NumResultCols()
		if !ret.Succeeded() {
			return c.fail(native.Error(c.stmt, ret, "count result columns"), c.query)
		}
		c.needsDefine = false
		if n > 0 {
			if err := c.define(ctx, n); err != nil {
				return err
			}
		}
	}
	if c.cols == nil {
		return errors.ErrNotQuery
	}
	return nil
}

// moreRows makes sure the buffer holds an unread row, fetching the next
// batch when the current one is consumed.
func (c *Cursor) moreRows(ctx context.Context) (bool, error) {
	if c.bufferPos < c.bufferRows {
		return true, nil
	}
	if c.exhausted {
		return false, nil
	}
	if c.rowCount >= 0 && c.fetched >= c.rowCount {
		c.exhausted = true
		return false, nil
	}
	for _, v := range c.cols {
		if err := v.PreFetch(); err != nil {
			return false, err
		}
	}
	c.bufferRows = 0
	c.bufferPos = 0
	ret := c.stmt.Fetch(ctx)
	if ret == constant.NoData {
		c.exhausted = true
		return false, nil
	}
	if !ret.Succeeded() {
		return false, c.fail(native.Error(c.stmt, ret, "fetch"), c.query)
	}
	if ret == constant.SuccessWithInfo {
		c.warning = native.Warning(c.stmt)
	}
	n, ret := c.stmt.GetAttr(constant.AttrRowsFetched)
	if !ret.Succeeded() {
		return false, c.fail(native.Error(c.stmt, ret, "rows fetched"), c.query)
	}
	for _, v := range c.cols {
		v.SetPopulated(int(n))
	}
	c.bufferRows = int(n)
	c.fetched += n
	if n < int64(c.arraySize) {
		c.exhausted = true
	}
	c.conn.collector.AddFetched(int(n))
	c.state = StateFetching
	return n > 0, nil
}

func (c *Cursor) currentRow(ctx context.Context) ([]interface{}, error) {
	row := make([]interface{}, len(c.cols))
	for i, v := range c.cols {
		value, err := v.GetValue(ctx, c.bufferPos)
		if err != nil {
			return nil, err
		}
		row[i] = value
	}
	c.bufferPos++
	c.rowNum++
	return row, nil
}

// FetchOne returns the next row, io.EOF once every row was returned.
func (c *Cursor) FetchOne(ctx context.Context) ([]interface{}, error) {
	if err := c.verifyFetch(ctx); err != nil {
		return nil, err
	}
	ok, err := c.moreRows(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, io.EOF
	}
	return c.currentRow(ctx)
}

// FetchMany returns up to n rows, ArraySize rows when n is not positive.
// The result is empty once every row was returned.
func (c *Cursor) FetchMany(ctx context.Context, n int) ([][]interface{}, error) {
	if n <= 0 {
		n = c.arraySize
	}
	return c.fetchRows(ctx, n)
}

// FetchAll returns every remaining row.
func (c *Cursor) FetchAll(ctx context.Context) ([][]interface{}, error) {
	return c.fetchRows(ctx, -1)
}

func (c *Cursor) fetchRows(ctx context.Context, limit int) ([][]interface{}, error) {
	if err := c.verifyFetch(ctx); err != nil {
		return nil, err
	}
	rows := make([][]interface{}, 0)
	for limit < 0 || len(rows) < limit {
		ok, err := c.moreRows(ctx)
		if err != nil {
			return rows, err
		}
		if !ok {
			break
		}
		row, err := c.currentRow(ctx)
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// NextResultSet closes the current result set and opens the next one.
// It reports false when the statement has no more results.
func (c *Cursor) NextResultSet(ctx context.Context) (bool, error) {
	if err := c.check(); err != nil {
		return false, err
	}
	if c.stmt == nil || c.state < StateExecuted {
		return false, nil
	}
	c.closeResultSet(false)
	ret := c.stmt.MoreResults(ctx)
	if ret == constant.NoData {
		c.state = StateExecuted
		return false, nil
	}
	if !ret.Succeeded() {
		c.state = StateExecuted
		return false, c.fail(native.Error(c.stmt, ret, "more results"), c.query)
	}
	c.rowNum = 0
	c.rowCount = -1
	if count, ret := c.stmt.RowCount(); ret.Succeeded() {
		c.rowCount = count
	}
	n, ret := c.stmt.NumResultCols()
	if !ret.Succeeded() {
		return false, c.fail(native.Error(c.stmt, ret, "count result columns"), c.query)
	}
	c.state = StateExecuted
	if n > 0 {
		if err := c.define(ctx, n); err != nil {
			return false, err
		}
	}
	return true, nil
}
