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

package nativetest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/native"
)

type phase uint8

const (
	phaseIdle phase = iota
	phaseNeedData
	phaseStreaming
)

type pending struct {
	pos int
	row int
}

type stmt struct {
	conn   *Conn
	server *Server
	freed  bool
	diag   []native.DiagRecord

	query  string
	script *Script
	params map[int]*native.Binding
	cols   map[int]*native.Binding
	attrs  map[constant.Attr]int64

	phase     phase
	waiting   []pending
	current   int
	collected map[pending][]byte

	rounds      [][]StreamValue
	round       int
	streamIndex int

	results     []*ResultSet
	result      int
	cursor      int
	rowCount    int64
	rowsFetched int64
	warning     bool
}

func newStmt(c *Conn) *stmt {
	return &stmt{
		conn:   c,
		server: c.server,
		params: make(map[int]*native.Binding),
		cols:   make(map[int]*native.Binding),
		attrs:  map[constant.Attr]int64{constant.AttrParamsetSize: 1, constant.AttrRowArraySize: 1},
		result: -1,
	}
}

func (s *stmt) Diagnostics() []native.DiagRecord {
	return s.diag
}

func (s *stmt) begin() constant.Return {
	s.diag = nil
	if s.freed || s.conn.closed {
		return constant.InvalidHandle
	}
	return constant.Success
}

func (s *stmt) fail(state string, code int, format string, args ...interface{}) constant.Return {
	s.diag = append(s.diag, diag(state, code, format, args...))
	return constant.Error
}

func (s *stmt) Free() constant.Return {
	if s.freed {
		return constant.InvalidHandle
	}
	s.freed = true
	s.server.Calls.FreeStatement.Inc()
	s.server.live.Dec()
	return constant.Success
}

func (s *stmt) Prepare(ctx context.Context, query string) constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	s.server.Calls.Prepare.Inc()
	s.query = query
	s.script = s.server.script(query)
	s.results = nil
	s.result = -1
	s.phase = phaseIdle
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
	if s.script == nil {
		return s.fail(constant.SSFunctionSequence, constant.CRFunctionSequence, "no statement prepared")
	}
	if err := ctx.Err(); err != nil {
		return s.fail(constant.SSTimeout, constant.CRUnknownError, "%v", err)
	}
	s.server.Calls.Execute.Inc()
	s.results = nil
	s.result = -1
	s.warning = false
	s.collected = make(map[pending][]byte)
	s.waiting = s.waiting[:0]
	for _, pos := range s.paramPositions() {
		b := s.params[pos]
		for row := 0; row < s.paramsetSize() && row < b.Rows(); row++ {
			if b.Indicators[row] == constant.DataAtExec {
				s.waiting = append(s.waiting, pending{pos: pos, row: row})
			}
		}
	}
	if len(s.waiting) > 0 {
		s.phase = phaseNeedData
		s.current = -1
		return constant.NeedData
	}
	return s.finish(ctx)
}

func (s *stmt) paramsetSize() int {
	n := int(s.attrs[constant.AttrParamsetSize])
	if n < 1 {
		n = 1
	}
	return n
}

func (s *stmt) paramPositions() []int {
	positions := make([]int, 0, len(s.params))
	for pos := range s.params {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}

// finish runs the statement once every parameter value is available.
func (s *stmt) finish(ctx context.Context) constant.Return {
	s.phase = phaseIdle
	sc := s.script
	size := s.paramsetSize()
	s.recordExecution(size)
	if sc.Err != nil {
		s.diag = append(s.diag, *sc.Err)
		return constant.Error
	}
	s.attrs[constant.AttrParamsProcessed] = int64(size)

	switch {
	case sc.Kind.IsDML():
		per := sc.RowsPerIteration
		if per == 0 {
			per = 1
		}
		s.rowCount = per * int64(size)
		s.server.Calls.AppliedRows.Add(int64(size))
	case len(sc.ResultSets) > 0 && !sc.UnknownRowCount:
		s.rowCount = int64(len(sc.ResultSets[0].Rows))
	default:
		s.rowCount = -1
		if len(sc.ResultSets) == 0 {
			s.rowCount = 0
		}
	}

	for pos, value := range sc.OutValues {
		b, ok := s.params[pos]
		if !ok || !b.Direction.IsOutput() {
			continue
		}
		if err := s.writeOutput(b, 0, value); err != nil {
			return s.fail(constant.SSRestrictedDataType, constant.CRWrongValueType, "output %d: %v", pos, err)
		}
	}

	if len(sc.ResultSets) > 0 {
		s.results = sc.ResultSets
		s.openResult(0)
	}

	if s.attrs[constant.AttrStreamOutput] != 0 && len(sc.Streams) > 0 {
		s.phase = phaseStreaming
		s.rounds = sc.Streams
		s.round = 0
		s.streamIndex = 0
		return constant.ParamDataAvailable
	}
	if s.warning {
		return constant.SuccessWithInfo
	}
	return constant.Success
}

func (s *stmt) openResult(i int) {
	s.result = i
	s.cursor = 0
	s.rowsFetched = 0
}

func (s *stmt) recordExecution(size int) {
	e := Execution{Query: s.query}
	positions := s.paramPositions()
	for row := 0; row < size; row++ {
		values := make([]interface{}, 0, len(positions))
		for _, pos := range positions {
			b := s.params[pos]
			if !b.Direction.IsInput() || row >= b.Rows() {
				values = append(values, nil)
				continue
			}
			if data, ok := s.collected[pending{pos: pos, row: row}]; ok {
				values = append(values, s.server.hostValue(b.CType, native.Datum{Bytes: data}))
				continue
			}
			values = append(values, s.server.hostValue(b.CType, b.Datum(row)))
		}
		e.Params = append(e.Params, values)
	}
	s.server.record(e)
}

// writeOutput encodes value into row of b.
func (s *stmt) writeOutput(b *native.Binding, row int, value interface{}) error {
	if value == nil {
		b.SetDatum(row, native.Datum{Null: true})
		return nil
	}
	if rs, ok := value.(*ResultSet); ok {
		target, isStmt := b.Handles[row].(*stmt)
		if !isStmt {
			return fmt.Errorf("no statement bound for a ref cursor")
		}
		target.results = []*ResultSet{rs}
		target.rowCount = int64(len(rs.Rows))
		target.openResult(0)
		b.Indicators[row] = 0
		return nil
	}
	if b.CType == constant.CHandle {
		d, err := s.handleDatum(b.SQLType, "", value)
		if err != nil {
			return err
		}
		b.SetDatum(row, d)
		return nil
	}
	data, err := s.server.codec.Encode(b.CType, value)
	if err != nil {
		return err
	}
	if b.SetDatum(row, native.Datum{Bytes: data}) {
		s.truncated(row)
	}
	return nil
}

func (s *stmt) handleDatum(sqlType constant.SQLType, typeName string, value interface{}) (native.Datum, error) {
	if h, ok := value.(native.Handle); ok {
		return native.Datum{Handle: h}, nil
	}
	switch sqlType {
	case constant.SQLClob, constant.SQLNClob, constant.SQLBlob:
		data, err := s.server.codec.Encode(constant.CBinary, value)
		if err != nil {
			return native.Datum{}, err
		}
		return native.Datum{Handle: s.server.newLob(sqlType, data)}, nil
	case constant.SQLStruct, constant.SQLArray:
		typ, ok := s.server.objectType(typeName)
		if !ok {
			return native.Datum{}, fmt.Errorf("unknown object type %q", typeName)
		}
		values, _ := value.([]interface{})
		obj, err := s.server.buildObject(typ, values)
		if err != nil {
			return native.Datum{}, err
		}
		return native.Datum{Handle: obj}, nil
	}
	return native.Datum{}, fmt.Errorf("cannot store %T as %s", value, sqlType)
}

func (s *stmt) truncated(row int) {
	s.warning = true
	s.diag = append(s.diag, diag(constant.SSStringTruncated, 0, "string data, right truncated in row %d", row))
}

func (s *stmt) NumParams() (int, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return 0, ret
	}
	if s.script != nil && len(s.script.Params) > 0 {
		return len(s.script.Params), constant.Success
	}
	return strings.Count(s.query, "?"), constant.Success
}

func (s *stmt) DescribeParam(pos int) (native.ParamDesc, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return native.ParamDesc{}, ret
	}
	s.server.Calls.DescribeParam.Inc()
	if s.script == nil || len(s.script.Params) == 0 {
		return native.ParamDesc{}, s.fail(constant.SSOptionalFeature, constant.CRNotSupported,
			"parameter description not available")
	}
	if pos < 1 || pos > len(s.script.Params) {
		return native.ParamDesc{}, s.fail(constant.SSInvalidDescriptorIdx, constant.CRInvalidArgument,
			"parameter %d out of range", pos)
	}
	return s.script.Params[pos-1], constant.Success
}

func (s *stmt) currentResult() *ResultSet {
	if s.result < 0 || s.result >= len(s.results) {
		return nil
	}
	return s.results[s.result]
}

func (s *stmt) NumResultCols() (int, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return 0, ret
	}
	rs := s.currentResult()
	if rs == nil {
		return 0, constant.Success
	}
	return len(rs.Columns), constant.Success
}

func (s *stmt) DescribeCol(pos int) (native.ColumnDesc, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return native.ColumnDesc{}, ret
	}
	rs := s.currentResult()
	if rs == nil || pos < 1 || pos > len(rs.Columns) {
		return native.ColumnDesc{}, s.fail(constant.SSInvalidDescriptorIdx, constant.CRInvalidArgument,
			"column %d out of range", pos)
	}
	return rs.Columns[pos-1], constant.Success
}

func (s *stmt) BindParameter(pos int, b *native.Binding) constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	s.server.Calls.BindParameter.Inc()
	if pos < 1 {
		return s.fail(constant.SSInvalidDescriptorIdx, constant.CRInvalidArgument, "parameter %d out of range", pos)
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
	s.server.Calls.BindCol.Inc()
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
	s.server.Calls.Fetch.Inc()
	rs := s.currentResult()
	if rs == nil {
		return s.fail(constant.SSInvalidCursorState, constant.CRNoResultSetDefined, "no open result set")
	}
	size := int(s.attrs[constant.AttrRowArraySize])
	if size < 1 {
		size = 1
	}
	n := len(rs.Rows) - s.cursor
	if n > size {
		n = size
	}
	if n <= 0 {
		s.rowsFetched = 0
		return constant.NoData
	}
	warning := false
	for i := 0; i < n; i++ {
		row := rs.Rows[s.cursor+i]
		for pos, b := range s.cols {
			if pos < 1 || pos > len(row) || i >= b.Rows() {
				continue
			}
			col := rs.Columns[pos-1]
			value := row[pos-1]
			if value == nil {
				b.SetDatum(i, native.Datum{Null: true})
				continue
			}
			if b.CType == constant.CHandle {
				if nested, ok := value.(*ResultSet); ok {
					target, isStmt := b.Handles[i].(*stmt)
					if !isStmt {
						return s.fail(constant.SSRestrictedDataType, constant.CRWrongValueType, "no statement bound for column %d", pos)
					}
					target.results = []*ResultSet{nested}
					target.rowCount = int64(len(nested.Rows))
					target.openResult(0)
					b.Indicators[i] = 0
					continue
				}
				d, err := s.handleDatum(col.SQLType, col.TypeName, value)
				if err != nil {
					return s.fail(constant.SSRestrictedDataType, constant.CRWrongValueType, "column %d: %v", pos, err)
				}
				b.SetDatum(i, d)
				continue
			}
			data, err := s.server.codec.Encode(b.CType, value)
			if err != nil {
				return s.fail(constant.SSRestrictedDataType, constant.CRWrongValueType, "column %d: %v", pos, err)
			}
			if b.SetDatum(i, native.Datum{Bytes: data}) {
				s.truncated(s.cursor + i)
				warning = true
			}
		}
	}
	s.cursor += n
	s.rowsFetched = int64(n)
	if warning {
		return constant.SuccessWithInfo
	}
	return constant.Success
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
	s.server.Calls.MoreResults.Inc()
	if s.phase == phaseStreaming {
		if s.round+1 < len(s.rounds) {
			s.round++
			s.streamIndex = 0
			return constant.Success
		}
		s.phase = phaseIdle
		return constant.NoData
	}
	if s.result+1 < len(s.results) {
		s.openResult(s.result + 1)
		s.rowCount = int64(len(s.results[s.result].Rows))
		return constant.Success
	}
	s.results = nil
	s.result = -1
	return constant.NoData
}

func (s *stmt) ParamData(ctx context.Context) (int, int, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return 0, 0, ret
	}
	s.server.Calls.ParamData.Inc()
	switch s.phase {
	case phaseNeedData:
		s.current++
		if s.current < len(s.waiting) {
			p := s.waiting[s.current]
			return p.pos, p.row, constant.NeedData
		}
		return 0, 0, s.finish(ctx)
	case phaseStreaming:
		values := s.rounds[s.round]
		if s.streamIndex >= len(values) {
			return 0, 0, constant.NoData
		}
		v := values[s.streamIndex]
		return v.Pos, v.Row, constant.ParamDataAvailable
	}
	return 0, 0, s.fail(constant.SSFunctionSequence, constant.CRFunctionSequence, "no data requested")
}

func (s *stmt) PutData(ctx context.Context, data []byte, length int64) constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	s.server.Calls.PutData.Inc()
	if s.phase != phaseNeedData || s.current < 0 || s.current >= len(s.waiting) {
		return s.fail(constant.SSFunctionSequence, constant.CRFunctionSequence, "no parameter waits for data")
	}
	p := s.waiting[s.current]
	if length == constant.NullData {
		s.collected[p] = nil
		return constant.Success
	}
	s.collected[p] = append(s.collected[p], data...)
	return constant.Success
}

func (s *stmt) GetOutputData(ctx context.Context, pos int) (native.Datum, constant.Return) {
	if ret := s.begin(); ret != constant.Success {
		return native.Datum{}, ret
	}
	s.server.Calls.GetOutputData.Inc()
	if s.phase != phaseStreaming {
		return native.Datum{}, s.fail(constant.SSFunctionSequence, constant.CRFunctionSequence, "no output data available")
	}
	values := s.rounds[s.round]
	if s.streamIndex >= len(values) || values[s.streamIndex].Pos != pos {
		return native.Datum{}, s.fail(constant.SSInvalidDescriptorIdx, constant.CRInvalidArgument,
			"parameter %d has no output data", pos)
	}
	v := values[s.streamIndex]
	s.streamIndex++
	if v.Value == nil {
		return native.Datum{Null: true}, constant.Success
	}
	b, ok := s.params[pos]
	if !ok {
		return native.Datum{}, s.fail(constant.SSInvalidDescriptorIdx, constant.CRInvalidArgument,
			"parameter %d is not bound", pos)
	}
	if b.CType == constant.CHandle {
		d, err := s.handleDatum(b.SQLType, "", v.Value)
		if err != nil {
			return native.Datum{}, s.fail(constant.SSRestrictedDataType, constant.CRWrongValueType, "%v", err)
		}
		return d, constant.Success
	}
	data, err := s.server.codec.Encode(b.CType, v.Value)
	if err != nil {
		return native.Datum{}, s.fail(constant.SSRestrictedDataType, constant.CRWrongValueType, "%v", err)
	}
	return native.Datum{Bytes: data}, constant.Success
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
		if s.script == nil {
			return int64(constant.StatementUnknown), constant.Success
		}
		return int64(s.script.Kind), constant.Success
	case constant.DiagServerStatus:
		return 0, constant.Success
	}
	return 0, constant.NoData
}

func (s *stmt) DiagString(field constant.DiagField) (string, constant.Return) {
	if s.freed {
		return "", constant.InvalidHandle
	}
	switch field {
	case constant.DiagRowID:
		if s.script == nil || s.script.RowID == "" {
			return "", constant.NoData
		}
		return s.script.RowID, constant.Success
	case constant.DiagExecutionID:
		return fmt.Sprintf("exec-%d", s.server.Calls.Execute.Load()), constant.Success
	}
	return "", constant.NoData
}

func (s *stmt) CloseCursor() constant.Return {
	if ret := s.begin(); ret != constant.Success {
		return ret
	}
	s.results = nil
	s.result = -1
	s.cursor = 0
	return constant.Success
}
