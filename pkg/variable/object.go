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
	"strings"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/native"
)

// Record is the host form of a structured object. A Record built from a
// fetched row owns the native object until Free.
type Record struct {
	typ    *native.ObjectType
	values []interface{}
	obj    native.Object
	freed  bool
}

// NewRecord builds a Record of typ, values are assigned to the members in
// order. Missing members are null and excess values are ignored.
func NewRecord(typ *native.ObjectType, values ...interface{}) (*Record, error) {
	if typ == nil || typ.IsCollection {
		return nil, errors.ErrUnknownObjectType
	}
	return &Record{typ: typ, values: fitMembers(typ, values)}, nil
}

func fitMembers(typ *native.ObjectType, values []interface{}) []interface{} {
	result := make([]interface{}, len(typ.Members))
	copy(result, values)
	return result
}

func (r *Record) Type() *native.ObjectType {
	return r.typ
}

func (r *Record) Len() int {
	return len(r.values)
}

func (r *Record) memberIndex(name string) (int, error) {
	for i, m := range r.typ.Members {
		if strings.EqualFold(m.Name, name) {
			return i, nil
		}
	}
	return -1, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
		"%s has no member %q", r.typ.FullName(), name)
}

// Get returns the member called name.
func (r *Record) Get(name string) (interface{}, error) {
	if r.freed {
		return nil, errors.ErrInvalidatedValue
	}
	i, err := r.memberIndex(name)
	if err != nil {
		return nil, err
	}
	return r.values[i], nil
}

// Index returns member i.
func (r *Record) Index(i int) (interface{}, error) {
	if r.freed {
		return nil, errors.ErrInvalidatedValue
	}
	if i < 0 || i >= len(r.values) {
		return nil, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
			"member %d out of range", i)
	}
	return r.values[i], nil
}

func (r *Record) Set(name string, value interface{}) error {
	if r.freed {
		return errors.ErrInvalidatedValue
	}
	i, err := r.memberIndex(name)
	if err != nil {
		return err
	}
	r.values[i] = value
	return nil
}

// Values returns a copy of the members in declaration order.
func (r *Record) Values() ([]interface{}, error) {
	if r.freed {
		return nil, errors.ErrInvalidatedValue
	}
	result := make([]interface{}, len(r.values))
	copy(result, r.values)
	return result, nil
}

// Free releases the native object. The Record cannot be used afterwards.
func (r *Record) Free() {
	if r.freed {
		return
	}
	r.freed = true
	if r.obj != nil {
		r.obj.Free()
		r.obj = nil
	}
	r.values = nil
}

func memberType(m *native.ObjectMember) (Type, error) {
	if m.SQLType == constant.SQLRefCursor {
		return nil, errors.NewSQLError(constant.CRNotSupported, constant.SSOptionalFeature,
			"member %s of ref cursor type cannot be converted", m.Name)
	}
	return TypeByWire(m.SQLType, m.Precision, false, Options{NumbersAsText: true, LobAsHandle: true})
}

func memberObjectType(ctx context.Context, owner Owner, m *native.ObjectMember) (*native.ObjectType, error) {
	if m.Type != nil {
		return m.Type, nil
	}
	if owner == nil {
		return nil, errors.ErrNotConnected
	}
	typ, err := owner.ObjectType(ctx, m.TypeName)
	if err != nil {
		return nil, err
	}
	m.Type = typ
	return typ, nil
}

// ToHost converts obj into a *Record, or a []interface{} for collections.
// Nested objects are converted recursively and stay owned by obj.
func ToHost(ctx context.Context, owner Owner, obj native.Object) (interface{}, error) {
	typ := obj.Type()
	if typ == nil {
		return nil, errors.ErrUnknownObjectType
	}
	if typ.IsCollection {
		n := obj.Len()
		result := make([]interface{}, n)
		for i := 0; i < n; i++ {
			d, ret := obj.Get(i)
			if !ret.Succeeded() {
				return nil, native.Error(obj, ret, "get collection element")
			}
			value, err := memberToHost(ctx, owner, typ.Element, d)
			if err != nil {
				return nil, err
			}
			result[i] = value
		}
		return result, nil
	}
	rec := &Record{typ: typ, values: make([]interface{}, len(typ.Members))}
	for i, m := range typ.Members {
		d, ret := obj.Get(i)
		if !ret.Succeeded() {
			return nil, native.Error(obj, ret, "get object member")
		}
		value, err := memberToHost(ctx, owner, m, d)
		if err != nil {
			return nil, err
		}
		rec.values[i] = value
	}
	return rec, nil
}

func memberToHost(ctx context.Context, owner Owner, m *native.ObjectMember, d native.Datum) (interface{}, error) {
	if d.Null {
		return nil, nil
	}
	if m.IsComposite() {
		nested, ok := d.Handle.(native.Object)
		if !ok {
			return nil, errors.NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType,
				"member %s holds %T", m.Name, d.Handle)
		}
		return ToHost(ctx, owner, nested)
	}
	typ, err := memberType(m)
	if err != nil {
		return nil, err
	}
	scratch, err := NewVariable(owner, typ, 1, len(d.Bytes))
	if err != nil {
		return nil, err
	}
	defer scratch.Free()
	if typ.IsHandle() {
		// the object keeps its locator
		scratch.setHandle(0, d.Handle, true)
		scratch.populated = 1
	} else if err := scratch.LoadDatum(0, d); err != nil {
		return nil, err
	}
	return scratch.GetValue(ctx, 0)
}

// FromHost builds a native object of typ from a *Record, a positional
// []interface{} or a map keyed by member name. Collections take a
// []interface{} of elements.
func FromHost(ctx context.Context, owner Owner, typ *native.ObjectType, value interface{}) (native.Object, error) {
	if typ == nil {
		return nil, errors.ErrUnknownObjectType
	}
	if owner == nil || owner.NativeConn() == nil {
		return nil, errors.ErrNotConnected
	}
	conn := owner.NativeConn()
	obj, ret := conn.NewObject(typ)
	if !ret.Succeeded() {
		return nil, native.Error(conn, ret, "create object")
	}
	if err := fillObject(ctx, owner, typ, obj, value); err != nil {
		obj.Free()
		return nil, err
	}
	return obj, nil
}

func fillObject(ctx context.Context, owner Owner, typ *native.ObjectType, obj native.Object, value interface{}) error {
	if typ.IsCollection {
		items, ok := value.([]interface{})
		if !ok {
			return errors.NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType,
				"collection %s expects a []interface{}, got %T", typ.FullName(), value)
		}
		for _, item := range items {
			d, err := memberFromHost(ctx, owner, typ.Element, item)
			if err != nil {
				return err
			}
			if ret := obj.Append(d); !ret.Succeeded() {
				if d.Handle != nil {
					d.Handle.Free()
				}
				return native.Error(obj, ret, "append collection element")
			}
		}
		return nil
	}
	values, err := recordValues(typ, value)
	if err != nil {
		return err
	}
	for i, m := range typ.Members {
		if err := setMember(ctx, owner, m, obj, i, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func recordValues(typ *native.ObjectType, value interface{}) ([]interface{}, error) {
	switch val := value.(type) {
	case *Record:
		if val.freed {
			return nil, errors.ErrInvalidatedValue
		}
		if val.typ.FullName() != typ.FullName() {
			return nil, errors.NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType,
				"expecting an object of type %s, got %s", typ.FullName(), val.typ.FullName())
		}
		return val.values, nil
	case []interface{}:
		return fitMembers(typ, val), nil
	case map[string]interface{}:
		values := make([]interface{}, len(typ.Members))
		for i, m := range typ.Members {
			for key, v := range val {
				if strings.EqualFold(key, m.Name) {
					values[i] = v
				}
			}
		}
		return values, nil
	}
	return nil, errors.NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType,
		"cannot convert %T to %s", value, typ.FullName())
}

// setMember converts value through a one row Variable and stores it into obj.
func setMember(ctx context.Context, owner Owner, m *native.ObjectMember, obj native.Object, ordinal int, value interface{}) error {
	if value == nil {
		if ret := obj.Set(ordinal, native.Datum{Null: true}); !ret.Succeeded() {
			return native.Error(obj, ret, "set object member")
		}
		return nil
	}
	if m.IsComposite() {
		d, err := memberFromHost(ctx, owner, m, value)
		if err != nil {
			return err
		}
		if ret := obj.Set(ordinal, d); !ret.Succeeded() {
			d.Handle.Free()
			return native.Error(obj, ret, "set object member")
		}
		return nil
	}
	typ, err := memberType(m)
	if err != nil {
		return err
	}
	scratch, err := NewVariable(owner, typ, 1, 0)
	if err != nil {
		return err
	}
	defer scratch.Free()
	if err := scratch.SetValue(ctx, 0, value); err != nil {
		return err
	}
	return scratch.BindNested(0, obj, ordinal)
}

func memberFromHost(ctx context.Context, owner Owner, m *native.ObjectMember, value interface{}) (native.Datum, error) {
	if value == nil {
		return native.Datum{Null: true}, nil
	}
	if m.IsComposite() {
		nestedType, err := memberObjectType(ctx, owner, m)
		if err != nil {
			return native.Datum{}, err
		}
		nested, err := FromHost(ctx, owner, nestedType, value)
		if err != nil {
			return native.Datum{}, err
		}
		return native.Datum{Handle: nested}, nil
	}
	typ, err := memberType(m)
	if err != nil {
		return native.Datum{}, err
	}
	scratch, err := NewVariable(owner, typ, 1, 0)
	if err != nil {
		return native.Datum{}, err
	}
	defer scratch.Free()
	if err := scratch.SetValue(ctx, 0, value); err != nil {
		return native.Datum{}, err
	}
	d := scratch.Datum(0)
	if typ.IsHandle() && !scratch.borrowed[0] {
		scratch.takeHandle(0)
	}
	return d, nil
}
