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
	"io"
	"reflect"

	dbdriver "github.com/cectc/dbcli/pkg/driver"
)

var (
	_ driver.Rows                           = (*Rows)(nil)
	_ driver.RowsNextResultSet              = (*Rows)(nil)
	_ driver.RowsColumnTypeScanType         = (*Rows)(nil)
	_ driver.RowsColumnTypeDatabaseTypeName = (*Rows)(nil)
	_ driver.RowsColumnTypeLength           = (*Rows)(nil)
	_ driver.RowsColumnTypeNullable         = (*Rows)(nil)
	_ driver.RowsColumnTypePrecisionScale   = (*Rows)(nil)
)

type Rows struct {
	ctx     context.Context
	cursor  *dbdriver.Cursor
	columns []*dbdriver.Column
	owned   bool
}

func newRows(ctx context.Context, cur *dbdriver.Cursor) *Rows {
	return &Rows{ctx: ctx, cursor: cur, columns: cur.Description()}
}

func (r *Rows) Columns() []string {
	names := make([]string, len(r.columns))
	for i, col := range r.columns {
		names[i] = col.Name
	}
	return names
}

func (r *Rows) Close() error {
	if !r.owned {
		return nil
	}
	return r.cursor.Close()
}

func (r *Rows) Next(dest []driver.Value) error {
	if len(r.columns) == 0 {
		return io.EOF
	}
	row, err := r.cursor.FetchOne(r.ctx)
	if err != nil {
		return err
	}
	for i := range dest {
		if dest[i], err = toDriverValue(r.ctx, row[i]); err != nil {
			return err
		}
	}
	return nil
}

// HasNextResultSet cannot look ahead, NextResultSet reports io.EOF at the end.
func (r *Rows) HasNextResultSet() bool {
	return true
}

func (r *Rows) NextResultSet() error {
	ok, err := r.cursor.NextResultSet(r.ctx)
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	r.columns = r.cursor.Description()
	return nil
}

func (r *Rows) ColumnTypeScanType(index int) reflect.Type {
	return r.columns[index].ScanType()
}

func (r *Rows) ColumnTypeDatabaseTypeName(index int) string {
	return r.columns[index].TypeDatabaseName()
}

func (r *Rows) ColumnTypeLength(index int) (int64, bool) {
	return r.columns[index].Length()
}

func (r *Rows) ColumnTypeNullable(index int) (bool, bool) {
	return r.columns[index].Nullable, true
}

func (r *Rows) ColumnTypePrecisionScale(index int) (int64, int64, bool) {
	return r.columns[index].DecimalSize()
}
