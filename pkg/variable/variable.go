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

package variable

import (
	"context"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/log"
	"github.com/cectc/dbcli/pkg/native"
)

// Owner is the connection context a Variable converts values in.
type Owner interface {
	NativeConn() native.Conn
	Codec() *native.Codec
	Logger() *log.Logger
	// ObjectType resolves a structured type by name, nested member types included.
	ObjectType(ctx context.Context, name string) (*native.ObjectType, error)
	// NewCursorFromStatement wraps a statement returned by a ref cursor row.
	NewCursorFromStatement(stmt native.Statement) (interface{}, error)
}

type bindKind uint8

const (
	bindNone bindKind = iota
	bindParam
	bindColumn
)

type boundTo struct {
	stmt native.Statement
	pos  int
	kind bindKind
}

// Variable is a typed array of rows bound to a statement parameter or a
// result column.
type Variable struct {
	typ       Type
	owner     Owner
	sqlType   constant.SQLType
	direction constant.Direction
	size      int
	scale     int
	rows      int
	populated int

	buf        *RowBuffer
	indicators []int64
	lengths    []int64
	handles    []native.Handle
	// borrowed marks handle rows the Variable must not free.
	borrowed []bool
	longs    [][]byte

	objType *native.ObjectType
	bound   *boundTo
	err     error
	freed   bool
}

// NewVariable allocates rows rows of typ. For variable length types size
// is the row size in bytes and defaults from the type when not positive.
func NewVariable(owner Owner, typ Type, rows, size int) (*Variable, error) {
	if typ == nil {
		return nil, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
			"variable needs a type")
	}
	if rows < 1 {
		rows = 1
	}
	size = defaultSize(typ, size)
	buf, err := NewRowBuffer(rows, size)
	if err != nil {
		return nil, err
	}
	v := &Variable{
		typ:        typ,
		owner:      owner,
		sqlType:    typ.SQLType(),
		direction:  constant.ParamInput,
		size:       size,
		rows:       rows,
		buf:        buf,
		indicators: make([]int64, rows),
		lengths:    make([]int64, rows),
	}
	for i := range v.indicators {
		v.indicators[i] = constant.NullData
	}
	if typ.IsHandle() {
		v.handles = make([]native.Handle, rows)
		v.borrowed = make([]bool, rows)
	}
	if typ.IsLong() {
		v.longs = make([][]byte, rows)
	}
	if err := typ.initialize(v); err != nil {
		typ.finalize(v)
		return nil, err
	}
	return v, nil
}

func defaultSize(typ Type, size int) int {
	if typ.Size() > 0 {
		return typ.Size()
	}
	if typ.IsHandle() {
		return 0
	}
	if size > 0 {
		return size
	}
	switch typ {
	case NumberAsText, BigIntAsText:
		return constant.MaxNumberChars
	}
	return constant.DefaultColumnSize
}

func (v *Variable) Type() Type {
	return v.typ
}

// Size is the row size in bytes.
func (v *Variable) Size() int {
	return v.size
}

func (v *Variable) Rows() int {
	return v.rows
}

// Populated is the number of leading rows holding values.
func (v *Variable) Populated() int {
	return v.populated
}

// SetPopulated records how many rows a fetch or execute filled in.
func (v *Variable) SetPopulated(n int) {
	if n > v.rows {
		n = v.rows
	}
	v.populated = n
}

func (v *Variable) SQLType() constant.SQLType {
	return v.sqlType
}

// SetSQLType overrides the wire type announced when binding.
func (v *Variable) SetSQLType(t constant.SQLType) {
	v.sqlType = t
}

func (v *Variable) SetScale(scale int) {
	v.scale = scale
}

func (v *Variable) Direction() constant.Direction {
	return v.direction
}

func (v *Variable) SetDirection(d constant.Direction) {
	v.direction = d
}

func (v *Variable) ObjectType() *native.ObjectType {
	return v.objType
}

func (v *Variable) SetObjectType(t *native.ObjectType) {
	v.objType = t
	if t != nil && t.IsCollection {
		v.sqlType = constant.SQLArray
	}
}

// Err returns the error that poisoned the Variable, if any.
func (v *Variable) Err() error {
	return v.err
}

func (v *Variable) usable() error {
	if v.freed {
		return errors.ErrInvalidHandle
	}
	return v.err
}

func (v *Variable) checkRow(row int) error {
	if row < 0 || row >= v.rows {
		return errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
			"row %d out of range, variable has %d rows", row, v.rows)
	}
	return nil
}

// SetValue converts value into row. A nil value stores NULL.
func (v *Variable) SetValue(ctx context.Context, row int, value interface{}) error {
	if err := v.usable(); err != nil {
		return err
	}
	if err := v.checkRow(row); err != nil {
		return err
	}
	if v.longs != nil {
		v.longs[row] = nil
	}
	if value == nil {
		v.setNull(row)
	} else if err := v.typ.setValue(ctx, v, row, value); err != nil {
		return err
	}
	if row >= v.populated {
		v.populated = row + 1
	}
	return nil
}

// GetValue converts row back into a host value, nil for NULL.
func (v *Variable) GetValue(ctx context.Context, row int) (interface{}, error) {
	if err := v.usable(); err != nil {
		return nil, err
	}
	if err := v.checkRow(row); err != nil {
		return nil, err
	}
	if v.typ.isNull(v, row) {
		return nil, nil
	}
	return v.typ.getValue(ctx, v, row)
}

// Values converts every populated row.
func (v *Variable) Values(ctx context.Context) ([]interface{}, error) {
	result := make([]interface{}, v.populated)
	for i := 0; i < v.populated; i++ {
		value, err := v.GetValue(ctx, i)
		if err != nil {
			return nil, err
		}
		result[i] = value
	}
	return result, nil
}

func (v *Variable) IsNull(row int) bool {
	if v.checkRow(row) != nil {
		return true
	}
	return v.typ.isNull(v, row)
}

// Resize grows the row size. A bound Variable is unbound first and bound
// again at the same position, every stored row is kept. When binding
// again fails the Variable is poisoned.
func (v *Variable) Resize(size int) error {
	if err := v.usable(); err != nil {
		return err
	}
	if v.typ.Size() > 0 || v.typ.IsHandle() || size <= v.size {
		return nil
	}
	bound := v.bound
	if bound != nil {
		v.buf.Release()
	}
	if err := v.buf.Resize(size); err != nil {
		if bound != nil {
			v.buf.Borrow()
		}
		return err
	}
	v.size = size
	if bound == nil {
		return nil
	}
	if v.owner != nil {
		v.owner.Logger().Debugf("resized %s variable at %d to %d bytes", v.typ.Name(), bound.pos, size)
	}
	if err := v.bind(bound.stmt, bound.pos, bound.kind); err != nil {
		v.bound = nil
		v.err = errors.NewSQLError(constant.CRPoisonedVariable, constant.SSUnknownSQLState,
			"binding position %d again after resize failed: %v", bound.pos, err)
		return v.err
	}
	return nil
}

// Binding describes the buffers of the Variable for a native bind call.
func (v *Variable) Binding() *native.Binding {
	return &native.Binding{
		CType:         v.typ.CType(),
		SQLType:       v.sqlType,
		ColumnSize:    v.columnSize(),
		DecimalDigits: v.scale,
		Direction:     v.direction,
		Buffer:        v.buf.data,
		Stride:        v.buf.Stride(),
		Indicators:    v.indicators,
		Lengths:       v.lengths,
		Handles:       v.handles,
	}
}

func (v *Variable) columnSize() int {
	if !v.typ.IsLong() {
		return v.size
	}
	size := v.size
	for _, data := range v.longs {
		if len(data) > size {
			size = len(data)
		}
	}
	return size
}

// BindParam binds the Variable to parameter pos of stmt.
func (v *Variable) BindParam(stmt native.Statement, pos int) error {
	if err := v.usable(); err != nil {
		return err
	}
	return v.bind(stmt, pos, bindParam)
}

// BindColumn binds the Variable to result column pos of stmt.
func (v *Variable) BindColumn(stmt native.Statement, pos int) error {
	if err := v.usable(); err != nil {
		return err
	}
	return v.bind(stmt, pos, bindColumn)
}

func (v *Variable) bind(stmt native.Statement, pos int, kind bindKind) error {
	if v.bound != nil {
		v.Unbind()
	}
	b := v.Binding()
	b.Buffer = v.buf.Borrow()
	var ret constant.Return
	if kind == bindParam {
		ret = stmt.BindParameter(pos, b)
	} else {
		ret = stmt.BindCol(pos, b)
	}
	if !ret.Succeeded() {
		v.buf.Release()
		action := "bind parameter"
		if kind == bindColumn {
			action = "bind column"
		}
		return native.Error(stmt, ret, action)
	}
	v.bound = &boundTo{stmt: stmt, pos: pos, kind: kind}
	return nil
}

// Unbind ends the current binding. The statement side is reset by the caller.
func (v *Variable) Unbind() {
	if v.bound == nil {
		return
	}
	v.buf.Release()
	v.bound = nil
}

func (v *Variable) Bound() bool {
	return v.bound != nil
}

// LongValue returns the streamed bytes of row, if the row streams.
func (v *Variable) LongValue(row int) ([]byte, bool) {
	if v.longs == nil || row < 0 || row >= v.rows {
		return nil, false
	}
	if v.indicators[row] != constant.DataAtExec {
		return nil, false
	}
	return v.longs[row], true
}

// LoadDatum stores an already encoded value into row. Handles become
// owned by the Variable.
func (v *Variable) LoadDatum(row int, d native.Datum) error {
	if err := v.usable(); err != nil {
		return err
	}
	if err := v.checkRow(row); err != nil {
		return err
	}
	if d.Null {
		v.setNull(row)
	} else if v.typ.IsHandle() {
		v.setHandle(row, d.Handle, false)
	} else if v.typ.IsLong() && len(d.Bytes) > v.size {
		v.setLong(row, d.Bytes)
	} else if err := v.setBytes(row, d.Bytes); err != nil {
		return err
	}
	if row >= v.populated {
		v.populated = row + 1
	}
	return nil
}

// Datum returns row in its encoded form.
func (v *Variable) Datum(row int) native.Datum {
	if v.typ.isNull(v, row) {
		return native.Datum{Null: true}
	}
	if v.typ.IsHandle() {
		return native.Datum{Handle: v.handles[row]}
	}
	if data, ok := v.LongValue(row); ok {
		return native.Datum{Bytes: append([]byte(nil), data...)}
	}
	return native.Datum{Bytes: append([]byte(nil), v.rowBytes(row)...)}
}

// PreDefine prepares a column Variable before it is bound.
func (v *Variable) PreDefine(ctx context.Context, col *native.ColumnDesc) error {
	if err := v.usable(); err != nil {
		return err
	}
	v.direction = constant.ParamResultCol
	return v.typ.preDefine(ctx, v, col)
}

// PreFetch resets the rows a fetch is about to overwrite.
func (v *Variable) PreFetch() error {
	if err := v.usable(); err != nil {
		return err
	}
	if err := v.typ.preFetch(v); err != nil {
		return err
	}
	for i := range v.indicators {
		if !v.typ.IsHandle() {
			v.indicators[i] = constant.NullData
			v.lengths[i] = 0
		}
	}
	v.populated = 0
	return nil
}

// BindNested stores row into member ordinal of obj.
func (v *Variable) BindNested(row int, obj native.Object, ordinal int) error {
	if err := v.usable(); err != nil {
		return err
	}
	if err := v.checkRow(row); err != nil {
		return err
	}
	if v.typ.isNull(v, row) {
		if ret := obj.Set(ordinal, native.Datum{Null: true}); !ret.Succeeded() {
			return native.Error(obj, ret, "set object member")
		}
		return nil
	}
	return v.typ.bindNested(v, row, obj, ordinal)
}

// Free releases every owned handle. The Variable cannot be used afterwards.
func (v *Variable) Free() {
	if v.freed {
		return
	}
	v.Unbind()
	v.typ.finalize(v)
	v.freed = true
}

func (v *Variable) codec() *native.Codec {
	if v.owner == nil || v.owner.Codec() == nil {
		return native.MustCodec("", nil)
	}
	return v.owner.Codec()
}

func (v *Variable) conn() (native.Conn, error) {
	if v.owner == nil || v.owner.NativeConn() == nil || !v.owner.NativeConn().Connected() {
		return nil, errors.ErrNotConnected
	}
	return v.owner.NativeConn(), nil
}

func (v *Variable) setNull(row int) {
	if v.handles != nil {
		v.releaseHandle(row)
	}
	v.indicators[row] = constant.NullData
	v.lengths[row] = 0
}

// setBytes stores data inline, growing the rows when data does not fit.
func (v *Variable) setBytes(row int, data []byte) error {
	if len(data) > v.size {
		if err := v.Resize(len(data)); err != nil {
			return err
		}
	}
	n := copy(v.buf.Row(row), data)
	v.indicators[row] = int64(len(data))
	v.lengths[row] = int64(n)
	return nil
}

// setLong keeps data out of line, it is streamed at execute.
func (v *Variable) setLong(row int, data []byte) {
	v.longs[row] = data
	v.indicators[row] = constant.DataAtExec
	v.lengths[row] = int64(len(data))
}

func (v *Variable) rowBytes(row int) []byte {
	n := v.lengths[row]
	if n > int64(v.buf.Stride()) {
		n = int64(v.buf.Stride())
	}
	if n < 0 {
		n = 0
	}
	return v.buf.Row(row)[:n]
}

// setHandle stores h into row, freeing the handle it replaces.
func (v *Variable) setHandle(row int, h native.Handle, borrowed bool) {
	if v.handles[row] != nil && v.handles[row] != h {
		v.releaseHandle(row)
	}
	v.handles[row] = h
	v.borrowed[row] = borrowed
	if h == nil {
		v.indicators[row] = constant.NullData
	} else {
		v.indicators[row] = 0
	}
}

// takeHandle moves the handle of row out of the Variable.
func (v *Variable) takeHandle(row int) native.Handle {
	h := v.handles[row]
	v.handles[row] = nil
	v.borrowed[row] = false
	v.indicators[row] = constant.NullData
	return h
}

func (v *Variable) releaseHandle(row int) {
	h := v.handles[row]
	if h != nil && !v.borrowed[row] {
		if ret := h.Free(); !ret.Succeeded() && v.owner != nil {
			v.owner.Logger().Warnf("free %s handle of row %d returned %s", v.typ.Name(), row, ret)
		}
	}
	v.handles[row] = nil
	v.borrowed[row] = false
}

func (v *Variable) releaseHandles() {
	for i := range v.handles {
		v.releaseHandle(i)
		v.indicators[i] = constant.NullData
	}
}
