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
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/log"
	"github.com/cectc/dbcli/pkg/misc"
	"github.com/cectc/dbcli/pkg/native"
)

type pending struct {
	pos int
	row int
}

type stmt struct {
	conn  *Conn
	freed bool
	diag  []native.DiagRecord

	query    string
	kind     constant.StatementKind
	prepared *sql.Stmt
	numInput int
	params   map[int]*native.Binding
	cols     map[int]*native.Binding
	attrs    map[constant.Attr]int64

	needData  bool
	waiting   []pending
	current   int
	collected map[pending][]byte

	rows        *sql.Rows
	columns     []*sql.ColumnType
	rowCount    int64
	rowsFetched int64
	rowID       string
	executionID string
}

func newStmt(c *Conn) *stmt {
	return &stmt{
		conn:   c,
		params: make(map[int]*native.Binding),
		cols:   make(map[int]*native.Binding),
		attrs:  map[constant.Attr]int64{constant.AttrParamsetSize: 1, constant.AttrRowArraySize: 1},
	}
}

func (s *stmt) Diagnostics() []native.DiagRecord {
	return s.diag
}

func (s *stmt) begin() constant.Return {
	s.diag = nil
	if s.freed || s.conn.closed.Load() {
		return constant.InvalidHandle
	}
	return constant.Success
}

func (s *stmt) fail(rec native.DiagRecord) constant.Return {
	s.diag = append(s.diag, rec)
	return constant.Error
}

func (s *stmt) failErr(err error) constant.Return {
	return s.fail(diagnose(err))
}

func (s *stmt) Free() constant.Return {
	if s.freed {
		return constant.InvalidHandle
	}
	s.closeRows()
	s.closePrepared()
	s.freed = true
	return constant.Success
}

func (s *stmt) closeRows() {
	if s.rows != nil {
		if err := s.rows.Close(); err != nil {
			log.Debugf("close rows of %q: %v", s.query, err)
		}
		s.rows = nil
		s.columns = nil
	}
}

func (s *stmt) closePrepared() {
	if s.prepared != nil {
		if err := s.prepared.Close(); err != nil {
			log.Debugf("close statement %q: %v", s.query, err)
		}
		s.prepared = nil
	}
}

func (s *stmt) Prepare(ctx context.Context, query string) constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	s.closeRows()
	s.closePrepared()
	s.needData = false
	s.query = ""
	text, _ := misc.UnwrapCallEscape(query)
	numInput := -1
	err := s.conn.conn.Raw(func(driverConn interface{}) error {
		dc, ok := driverConn.(driver.Conn)
		if !ok {
			return nil
		}
		ds, err := dc.Prepare(text)
		if err != nil {
			return err
		}
		numInput = ds.NumInput()
		return ds.Close()
	})
	if err != nil {
		return s.failErr(err)
	}
	prepared, err := s.conn.conn.PrepareContext(ctx, text)
	if err != nil {
		return s.failErr(err)
	}
	if numInput < 0 {
		numInput = strings.Count(text, "?")
	}
	s.prepared = prepared
	s.numInput = numInput
	s.query = text
	s.kind = misc.StatementKindOf(text)
	return constant.Success
}

func (s *stmt) ExecDirect(ctx context.Context, query string) constant.Return {
	if ret := s.Prepare(ctx, query); !ret.Succeeded() {
		return ret
	}
	return s.Execute(ctx)
}

func (s *stmt) Execute(ctx context.Context) constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	if s.prepared == nil {
		return s.fail(record(constant.SSFunctionSequence, constant.CRFunctionSequence, "no statement prepared"))
	}
	s.closeRows()
	s.rowCount = 0
	s.rowID = ""
	s.collected = make(map[pending][]byte)
	s.waiting = s.waiting[:0]
	for _, pos := range s.positions() {
		b := s.params[pos]
		if b.Direction.IsOutput() {
			return s.fail(notSupported("%s has no output parameters, parameter %d", s.conn.driverName, pos))
		}
		for row := 0; row < s.paramsetSize() && row < b.Rows(); row++ {
			if b.Indicators[row] == constant.DataAtExec {
				s.waiting = append(s.waiting, pending{pos: pos, row: row})
			}
		}
	}
	if len(s.waiting) > 0 {
		s.needData = true
		s.current = -1
		return constant.NeedData
	}
	return s.run(ctx)
}

func (s *stmt) paramsetSize() int {
	n := int(s.attrs[constant.AttrParamsetSize])
	if n < 1 {
		n = 1
	}
	return n
}

func (s *stmt) positions() []int {
	positions := make([]int, 0, len(s.params))
	for pos := range s.params {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}

// run executes once per parameter row, queries accept a single row.
func (s *stmt) run(ctx context.Context) constant.Return {
	s.needData = false
	s.executionID = uuid.NewString()
	size := s.paramsetSize()
	s.attrs[constant.AttrParamsProcessed] = 0

	if s.kind == constant.StatementSelect {
		if size > 1 {
			return s.fail(record(constant.SSInvalidAttribute, constant.CRInvalidArgument,
				"queries cannot be executed with %d parameter rows", size))
		}
		args, err := s.args(0)
		if err != nil {
			return s.failErr(err)
		}
		rows, err := s.prepared.QueryContext(ctx, args...)
		if err != nil {
			return s.failErr(err)
		}
		columns, err := rows.ColumnTypes()
		if err != nil {
			rows.Close()
			return s.failErr(err)
		}
		s.rows = rows
		s.columns = columns
		s.rowCount = -1
		s.rowsFetched = 0
		s.attrs[constant.AttrParamsProcessed] = 1
		return constant.Success
	}

	for row := 0; row < size; row++ {
		args, err := s.args(row)
		if err != nil {
			return s.failErr(err)
		}
		res, err := s.prepared.ExecContext(ctx, args...)
		if err != nil {
			rec := diagnose(err)
			if size > 1 {
				rec.Message = "row " + strconv.Itoa(row) + ": " + rec.Message
			}
			return s.fail(rec)
		}
		s.attrs[constant.AttrParamsProcessed] = int64(row + 1)
		if n, err := res.RowsAffected(); err == nil {
			s.rowCount += n
		}
		if id, err := res.LastInsertId(); err == nil && s.kind == constant.StatementInsert && id > 0 {
			s.rowID = strconv.FormatInt(id, 10)
		}
	}
	return constant.Success
}

// args decodes parameter row into driver values.
func (s *stmt) args(row int) ([]interface{}, error) {
	positions := s.positions()
	if len(positions) != s.numInput {
		return nil, errorf(constant.SSCountMismatch, constant.CRBindCountMismatch,
			"statement has %d parameters, %d bound", s.numInput, len(positions))
	}
	args := make([]interface{}, 0, len(positions))
	for i, pos := range positions {
		if pos != i+1 {
			return nil, errorf(constant.SSCountMismatch, constant.CRBindCountMismatch,
				"parameter %d is not bound", i+1)
		}
		b := s.params[pos]
		if row >= b.Rows() {
			return nil, errorf(constant.SSInvalidArgument, constant.CRInvalidArgument,
				"parameter %d has %d rows, row %d requested", pos, b.Rows(), row)
		}
		d := b.Datum(row)
		if data, ok := s.collected[pending{pos: pos, row: row}]; ok {
			d = native.Datum{Bytes: data, Null: data == nil}
		}
		value, err := s.hostValue(b, d)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	return args, nil
}

func (s *stmt) hostValue(b *native.Binding, d native.Datum) (interface{}, error) {
	if d.Null {
		return nil, nil
	}
	if b.CType == constant.CHandle {
		l, ok := d.Handle.(*lob)
		if !ok {
			return nil, errorf(constant.SSRestrictedDataType, constant.CRWrongValueType,
				"cannot send %T to %s", d.Handle, s.conn.driverName)
		}
		if l.freed {
			return nil, errorf(constant.SSFunctionSequence, constant.CRInvalidatedValue, "large object was released")
		}
		if l.sqlType.IsText() {
			return s.conn.codec.DecodeText(l.data)
		}
		return append([]byte(nil), l.data...), nil
	}
	return s.conn.codec.Decode(b.CType, d.Bytes)
}

func (s *stmt) NumParams() (int, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return 0, ret
	}
	if s.prepared == nil {
		return 0, s.fail(record(constant.SSFunctionSequence, constant.CRFunctionSequence, "no statement prepared"))
	}
	return s.numInput, constant.Success
}

// DescribeParam is not available through database/sql.
func (s *stmt) DescribeParam(pos int) (native.ParamDesc, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return native.ParamDesc{}, ret
	}
	return native.ParamDesc{}, s.fail(notSupported("%s does not describe parameters", s.conn.driverName))
}

func (s *stmt) NumResultCols() (int, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return 0, ret
	}
	return len(s.columns), constant.Success
}

func (s *stmt) DescribeCol(pos int) (native.ColumnDesc, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return native.ColumnDesc{}, ret
	}
	if pos < 1 || pos > len(s.columns) {
		return native.ColumnDesc{}, s.fail(record(constant.SSInvalidDescriptorIdx, constant.CRInvalidArgument,
			"column %d out of range", pos))
	}
	return columnDesc(s.columns[pos-1], s.conn.driverName), constant.Success
}

func (s *stmt) BindParameter(pos int, b *native.Binding) constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	if pos < 1 {
		return s.fail(record(constant.SSInvalidDescriptorIdx, constant.CRInvalidArgument, "parameter %d out of range", pos))
	}
	s.params[pos] = b
	return constant.Success
}

func (s *stmt) ResetParams() constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	s.params = make(map[int]*native.Binding)
	return constant.Success
}

func (s *stmt) BindCol(pos int, b *native.Binding) constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	if pos < 1 {
		return s.fail(record(constant.SSInvalidDescriptorIdx, constant.CRInvalidArgument, "column %d out of range", pos))
	}
	s.cols[pos] = b
	return constant.Success
}

func (s *stmt) UnbindCols() constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	s.cols = make(map[int]*native.Binding)
	return constant.Success
}

// SetAttr accepts every attribute. Output streaming is never reported
// since neither backend returns output parameters.
func (s *stmt) SetAttr(attr constant.Attr, value int64) constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	s.attrs[attr] = value
	return constant.Success
}

func (s *stmt) GetAttr(attr constant.Attr) (int64, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return 0, ret
	}
	if attr == constant.AttrRowsFetched {
		return s.rowsFetched, constant.Success
	}
	return s.attrs[attr], constant.Success
}

func (s *stmt) Fetch(ctx context.Context) constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	if s.rows == nil {
		return s.fail(record(constant.SSInvalidCursorState, constant.CRNoResultSetDefined, "no open result set"))
	}
	size := int(s.attrs[constant.AttrRowArraySize])
	if size < 1 {
		size = 1
	}
	values := make([]interface{}, len(s.columns))
	dest := make([]interface{}, len(s.columns))
	for i := range values {
		dest[i] = &values[i]
	}
	n, warning := 0, false
	for n < size {
		if err := ctx.Err(); err != nil {
			return s.failErr(err)
		}
		if !s.rows.Next() {
			break
		}
		if err := s.rows.Scan(dest...); err != nil {
			return s.failErr(err)
		}
		for pos, b := range s.cols {
			if pos > len(values) || n >= b.Rows() {
				continue
			}
			truncated, err := s.store(b, n, pos, values[pos-1])
			if err != nil {
				return s.failErr(err)
			}
			if truncated {
				s.diag = append(s.diag, record(constant.SSStringTruncated, 0,
					"string data, right truncated in column %d", pos))
				warning = true
			}
		}
		n++
	}
	if err := s.rows.Err(); err != nil {
		return s.failErr(err)
	}
	s.rowsFetched = int64(n)
	if n == 0 {
		return constant.NoData
	}
	if warning {
		return constant.SuccessWithInfo
	}
	return constant.Success
}

// store encodes one scanned value into row of b.
func (s *stmt) store(b *native.Binding, row, pos int, value interface{}) (bool, error) {
	if value == nil {
		b.SetDatum(row, native.Datum{Null: true})
		return false, nil
	}
	if b.CType == constant.CHandle {
		var data []byte
		var err error
		switch v := value.(type) {
		case []byte:
			data = v
		case string:
			data, err = s.conn.codec.EncodeText(v)
		default:
			data, err = s.conn.codec.Encode(constant.CChar, v)
		}
		if err != nil {
			return false, err
		}
		return b.SetDatum(row, native.Datum{Handle: newLob(b.SQLType, data)}), nil
	}
	if u, ok := value.(uint64); ok && b.CType == constant.CChar {
		value = strconv.FormatUint(u, 10)
	}
	data, err := s.conn.codec.Encode(b.CType, value)
	if err != nil {
		return false, errorf(constant.SSRestrictedDataType, constant.CRWrongValueType, "column %d: %v", pos, err)
	}
	return b.SetDatum(row, native.Datum{Bytes: data}), nil
}

func (s *stmt) RowCount() (int64, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return 0, ret
	}
	return s.rowCount, constant.Success
}

func (s *stmt) MoreResults(ctx context.Context) constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	if s.rows == nil {
		return constant.NoData
	}
	if !s.rows.NextResultSet() {
		err := s.rows.Err()
		s.closeRows()
		if err != nil {
			return s.failErr(err)
		}
		return constant.NoData
	}
	columns, err := s.rows.ColumnTypes()
	if err != nil {
		return s.failErr(err)
	}
	s.columns = columns
	s.rowCount = -1
	s.rowsFetched = 0
	return constant.Success
}

func (s *stmt) ParamData(ctx context.Context) (int, int, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return 0, 0, ret
	}
	if !s.needData {
		return 0, 0, s.fail(record(constant.SSFunctionSequence, constant.CRFunctionSequence, "no data requested"))
	}
	s.current++
	if s.current < len(s.waiting) {
		p := s.waiting[s.current]
		return p.pos, p.row, constant.NeedData
	}
	return 0, 0, s.run(ctx)
}

func (s *stmt) PutData(ctx context.Context, data []byte, length int64) constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	if !s.needData || s.current < 0 || s.current >= len(s.waiting) {
		return s.fail(record(constant.SSFunctionSequence, constant.CRFunctionSequence, "no parameter waits for data"))
	}
	p := s.waiting[s.current]
	if length == constant.NullData {
		s.collected[p] = nil
		return constant.Success
	}
	if s.collected[p] == nil {
		s.collected[p] = make([]byte, 0, len(data))
	}
	s.collected[p] = append(s.collected[p], data...)
	return constant.Success
}

func (s *stmt) GetOutputData(ctx context.Context, pos int) (native.Datum, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return native.Datum{}, ret
	}
	return native.Datum{}, s.fail(notSupported("%s has no output parameters", s.conn.driverName))
}

func (s *stmt) DiagInt(field constant.DiagField) (int64, constant.Return) {
	if s.freed {
		return 0, constant.InvalidHandle
	}
	switch field {
	case constant.DiagRowCount:
		return s.rowCount, constant.Success
	case constant.DiagNumber:
		return int64(len(s.diag)), constant.Success
	case constant.DiagStatementKind:
		return int64(s.kind), constant.Success
	}
	return 0, constant.NoData
}

func (s *stmt) DiagString(field constant.DiagField) (string, constant.Return) {
	if s.freed {
		return "", constant.InvalidHandle
	}
	switch field {
	case constant.DiagRowID:
		if s.rowID == "" {
			return "", constant.NoData
		}
		return s.rowID, constant.Success
	case constant.DiagExecutionID:
		if s.executionID == "" {
			return "", constant.NoData
		}
		return s.executionID, constant.Success
	}
	return "", constant.NoData
}

func (s *stmt) CloseCursor() constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	s.closeRows()
	return constant.Success
}
