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
	"github.com/cectc/dbcli/pkg/native"
)

// StatementHolder is implemented by cursors that can be bound as a ref
// cursor parameter.
type StatementHolder interface {
	NativeStatement() (native.Statement, error)
}

func handleIsNull(v *Variable, row int) bool {
	return v.handles[row] == nil || v.indicators[row] == constant.NullData
}

// transferNested hands the handle of row over to obj.
func transferNested(v *Variable, row int, obj native.Object, ordinal int) error {
	h := v.handles[row]
	if ret := obj.Set(ordinal, native.Datum{Handle: h}); !ret.Succeeded() {
		return native.Error(obj, ret, "set object member")
	}
	if !v.borrowed[row] {
		v.takeHandle(row)
	}
	return nil
}

type lobType struct {
	base
}

func (t *lobType) isNull(v *Variable, row int) bool {
	return handleIsNull(v, row)
}

func (t *lobType) finalize(v *Variable) {
	v.releaseHandles()
}

func (t *lobType) preFetch(v *Variable) error {
	v.releaseHandles()
	return nil
}

func (t *lobType) setValue(ctx context.Context, v *Variable, row int, value interface{}) error {
	var data []byte
	switch val := value.(type) {
	case *Lob:
		h, err := val.handle()
		if err != nil {
			return err
		}
		v.setHandle(row, h, true)
		return nil
	case native.Lob:
		v.setHandle(row, val, true)
		return nil
	case string:
		if t.charData {
			encoded, err := v.codec().EncodeText(val)
			if err != nil {
				return err
			}
			data = encoded
		} else {
			data = []byte(val)
		}
	case []byte:
		data = val
	default:
		return wrongType(t, value)
	}
	conn, err := v.conn()
	if err != nil {
		return err
	}
	lob, ret := conn.NewLob(t.sqlType)
	if !ret.Succeeded() {
		return native.Error(conn, ret, "create temporary lob")
	}
	if len(data) > 0 {
		if _, ret = lob.Write(ctx, 0, data); !ret.Succeeded() {
			err := native.Error(lob, ret, "write temporary lob")
			lob.Free()
			return err
		}
	}
	v.setHandle(row, lob, false)
	return nil
}

// getValue transfers the locator of row to the returned Lob.
func (t *lobType) getValue(ctx context.Context, v *Variable, row int) (interface{}, error) {
	borrowed := v.borrowed[row]
	h := v.handles[row]
	lob, ok := h.(native.Lob)
	if !ok {
		return nil, errors.NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType,
			"row %d of %s holds %T", row, t.name, h)
	}
	if borrowed {
		return newLob(lob, v.codec(), false), nil
	}
	v.takeHandle(row)
	return newLob(lob, v.codec(), true), nil
}

func (t *lobType) bindNested(v *Variable, row int, obj native.Object, ordinal int) error {
	return transferNested(v, row, obj, ordinal)
}

// lobValueType defines a locator per row like lobType but returns the
// whole value, so columns are never cut at an inline buffer size.
type lobValueType struct {
	lobType
}

func (t *lobValueType) getValue(ctx context.Context, v *Variable, row int) (interface{}, error) {
	value, err := t.lobType.getValue(ctx, v, row)
	if err != nil {
		return nil, err
	}
	lob := value.(*Lob)
	var result interface{}
	if t.charData {
		result, err = lob.Text(ctx)
	} else {
		result, err = lob.ReadAll(ctx)
	}
	if closeErr := lob.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

type cursorType struct {
	base
}

func (t *cursorType) isNull(v *Variable, row int) bool {
	return handleIsNull(v, row)
}

// initialize reserves one statement per row for the server to open a
// cursor on.
func (t *cursorType) initialize(v *Variable) error {
	conn, err := v.conn()
	if err != nil {
		return err
	}
	for i := range v.handles {
		stmt, ret := conn.AllocStatement()
		if !ret.Succeeded() {
			return native.Error(conn, ret, "allocate ref cursor statement")
		}
		v.handles[i] = stmt
		v.borrowed[i] = false
	}
	return nil
}

func (t *cursorType) finalize(v *Variable) {
	v.releaseHandles()
}

func (t *cursorType) preFetch(v *Variable) error {
	v.releaseHandles()
	return t.initialize(v)
}

func (t *cursorType) setValue(ctx context.Context, v *Variable, row int, value interface{}) error {
	var stmt native.Statement
	switch val := value.(type) {
	case StatementHolder:
		held, err := val.NativeStatement()
		if err != nil {
			return err
		}
		stmt = held
	case native.Statement:
		stmt = val
	default:
		return wrongType(t, value)
	}
	if stmt == nil {
		return errors.ErrCursorClosed
	}
	v.setHandle(row, stmt, true)
	return nil
}

// getValue wraps the statement of row in a new cursor which takes ownership.
func (t *cursorType) getValue(ctx context.Context, v *Variable, row int) (interface{}, error) {
	stmt, ok := v.handles[row].(native.Statement)
	if !ok {
		return nil, errors.NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType,
			"row %d of %s holds %T", row, t.name, v.handles[row])
	}
	if v.owner == nil {
		return nil, errors.ErrNotConnected
	}
	if v.borrowed[row] {
		return v.owner.NewCursorFromStatement(stmt)
	}
	v.takeHandle(row)
	cursor, err := v.owner.NewCursorFromStatement(stmt)
	if err != nil {
		stmt.Free()
		return nil, err
	}
	return cursor, nil
}

func (t *cursorType) bindNested(v *Variable, row int, obj native.Object, ordinal int) error {
	return errors.NewSQLError(constant.CRNotSupported, constant.SSOptionalFeature,
		"cursors cannot be stored in %s", obj.Type().FullName())
}

type objectType struct {
	base
}

func (t *objectType) isNull(v *Variable, row int) bool {
	return handleIsNull(v, row)
}

func (t *objectType) finalize(v *Variable) {
	v.releaseHandles()
}

func (t *objectType) preFetch(v *Variable) error {
	v.releaseHandles()
	return nil
}

func (t *objectType) preDefine(ctx context.Context, v *Variable, col *native.ColumnDesc) error {
	if v.objType != nil {
		return nil
	}
	if v.owner == nil {
		return errors.ErrNotConnected
	}
	typ, err := v.owner.ObjectType(ctx, col.TypeName)
	if err != nil {
		return err
	}
	v.SetObjectType(typ)
	return nil
}

func (t *objectType) setValue(ctx context.Context, v *Variable, row int, value interface{}) error {
	switch val := value.(type) {
	case *Record:
		if val.freed {
			return errors.ErrInvalidatedValue
		}
		if v.objType == nil {
			v.SetObjectType(val.typ)
		}
		obj, err := FromHost(ctx, v.owner, v.objType, val)
		if err != nil {
			return err
		}
		v.setHandle(row, obj, false)
		return nil
	case native.Object:
		if v.objType == nil {
			v.SetObjectType(val.Type())
		}
		v.setHandle(row, val, true)
		return nil
	case []interface{}, map[string]interface{}:
		if v.objType == nil {
			return errors.NewSQLError(constant.CRUnknownObjectType, constant.SSInvalidArgument,
				"no object type known for %T", value)
		}
		obj, err := FromHost(ctx, v.owner, v.objType, val)
		if err != nil {
			return err
		}
		v.setHandle(row, obj, false)
		return nil
	}
	return wrongType(t, value)
}

// getValue converts row into a *Record, which takes ownership of the
// object, or into a []interface{} for collections.
func (t *objectType) getValue(ctx context.Context, v *Variable, row int) (interface{}, error) {
	obj, ok := v.handles[row].(native.Object)
	if !ok {
		return nil, errors.NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType,
			"row %d of %s holds %T", row, t.name, v.handles[row])
	}
	value, err := ToHost(ctx, v.owner, obj)
	if err != nil {
		return nil, err
	}
	if rec, isRecord := value.(*Record); isRecord && !v.borrowed[row] {
		v.takeHandle(row)
		rec.obj = obj
	}
	return value, nil
}

func (t *objectType) bindNested(v *Variable, row int, obj native.Object, ordinal int) error {
	return transferNested(v, row, obj, ordinal)
}
