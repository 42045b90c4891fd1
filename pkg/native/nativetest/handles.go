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

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/native"
)

type lob struct {
	server  *Server
	sqlType constant.SQLType
	data    []byte
	freed   bool
	diag    []native.DiagRecord
}

func (s *Server) newLob(sqlType constant.SQLType, data []byte) *lob {
	s.live.Inc()
	return &lob{server: s, sqlType: sqlType, data: append([]byte(nil), data...)}
}

func (l *lob) Diagnostics() []native.DiagRecord {
	return l.diag
}

func (l *lob) check() constant.Return {
	l.diag = nil
	if l.freed {
		return constant.InvalidHandle
	}
	return constant.Success
}

func (l *lob) SQLType() constant.SQLType {
	return l.sqlType
}

func (l *lob) Length(ctx context.Context) (int64, constant.Return) {
	if ret := l.check(); ret != constant.Success {
		return 0, ret
	}
	return int64(len(l.data)), constant.Success
}

func (l *lob) Read(ctx context.Context, offset int64, amount int64) ([]byte, constant.Return) {
	if ret := l.check(); ret != constant.Success {
		return nil, ret
	}
	if offset >= int64(len(l.data)) {
		return nil, constant.NoData
	}
	end := offset + amount
	if end > int64(len(l.data)) {
		end = int64(len(l.data))
	}
	return append([]byte(nil), l.data[offset:end]...), constant.Success
}

func (l *lob) Write(ctx context.Context, offset int64, data []byte) (int64, constant.Return) {
	if ret := l.check(); ret != constant.Success {
		return 0, ret
	}
	if offset < 0 || offset > int64(len(l.data)) {
		l.diag = []native.DiagRecord{diag(constant.SSInvalidArgument, 22, "offset %d beyond end %d", offset, len(l.data))}
		return 0, constant.Error
	}
	end := offset + int64(len(data))
	if end > int64(len(l.data)) {
		grown := make([]byte, end)
		copy(grown, l.data)
		l.data = grown
	}
	copy(l.data[offset:end], data)
	return int64(len(data)), constant.Success
}

func (l *lob) Truncate(ctx context.Context, size int64) constant.Return {
	if ret := l.check(); ret != constant.Success {
		return ret
	}
	if size < int64(len(l.data)) {
		l.data = l.data[:size]
	}
	return constant.Success
}

func (l *lob) Free() constant.Return {
	if l.freed {
		return constant.InvalidHandle
	}
	l.freed = true
	l.server.live.Dec()
	return constant.Success
}

type object struct {
	server *Server
	typ    *native.ObjectType
	values []native.Datum
	freed  bool
	diag   []native.DiagRecord
}

func (s *Server) newObject(typ *native.ObjectType) *object {
	s.live.Inc()
	obj := &object{server: s, typ: typ}
	if !typ.IsCollection {
		obj.values = make([]native.Datum, len(typ.Members))
		for i := range obj.values {
			obj.values[i] = native.Datum{Null: true}
		}
	}
	return obj
}

func (o *object) Diagnostics() []native.DiagRecord {
	return o.diag
}

func (o *object) Type() *native.ObjectType {
	return o.typ
}

func (o *object) Len() int {
	return len(o.values)
}

func (o *object) Get(idx int) (native.Datum, constant.Return) {
	o.diag = nil
	if o.freed {
		return native.Datum{}, constant.InvalidHandle
	}
	if idx < 0 || idx >= len(o.values) {
		o.diag = []native.DiagRecord{diag(constant.SSInvalidDescriptorIdx, 22, "index %d out of range", idx)}
		return native.Datum{}, constant.Error
	}
	d := o.values[idx]
	if d.Bytes != nil {
		d.Bytes = append([]byte(nil), d.Bytes...)
	}
	return d, constant.Success
}

func (o *object) Set(idx int, d native.Datum) constant.Return {
	o.diag = nil
	if o.freed {
		return constant.InvalidHandle
	}
	if o.typ.IsCollection || idx < 0 || idx >= len(o.values) {
		o.diag = []native.DiagRecord{diag(constant.SSInvalidDescriptorIdx, 22, "index %d out of range", idx)}
		return constant.Error
	}
	if old := o.values[idx].Handle; old != nil && old != d.Handle {
		old.Free()
	}
	o.values[idx] = copyDatum(d)
	return constant.Success
}

func (o *object) Append(d native.Datum) constant.Return {
	o.diag = nil
	if o.freed {
		return constant.InvalidHandle
	}
	if !o.typ.IsCollection {
		o.diag = []native.DiagRecord{diag(constant.SSFunctionSequence, 22, "%s is not a collection", o.typ.FullName())}
		return constant.Error
	}
	o.values = append(o.values, copyDatum(d))
	return constant.Success
}

// Free releases the object together with every nested handle it holds.
func (o *object) Free() constant.Return {
	if o.freed {
		return constant.InvalidHandle
	}
	o.freed = true
	for _, d := range o.values {
		if d.Handle != nil {
			d.Handle.Free()
		}
	}
	o.server.live.Dec()
	return constant.Success
}

func copyDatum(d native.Datum) native.Datum {
	if d.Bytes != nil {
		d.Bytes = append([]byte(nil), d.Bytes...)
	}
	return d
}

// buildObject creates an object of typ from positional host values.
func (s *Server) buildObject(typ *native.ObjectType, values []interface{}) (*object, error) {
	obj := s.newObject(typ)
	for i, value := range values {
		member := typ.Element
		if !typ.IsCollection {
			member = typ.Members[i]
		}
		d, err := s.memberDatum(member, value)
		if err != nil {
			obj.Free()
			return nil, err
		}
		if typ.IsCollection {
			obj.values = append(obj.values, d)
		} else {
			obj.values[i] = d
		}
	}
	return obj, nil
}

func (s *Server) memberDatum(m *native.ObjectMember, value interface{}) (native.Datum, error) {
	if value == nil {
		return native.Datum{Null: true}, nil
	}
	if m.IsComposite() {
		if h, ok := value.(native.Handle); ok {
			return native.Datum{Handle: h}, nil
		}
		nestedType := m.Type
		if nestedType == nil {
			nestedType, _ = s.objectType(m.TypeName)
		}
		values, _ := value.([]interface{})
		nested, err := s.buildObject(nestedType, values)
		if err != nil {
			return native.Datum{}, err
		}
		return native.Datum{Handle: nested}, nil
	}
	switch m.SQLType {
	case constant.SQLClob, constant.SQLNClob, constant.SQLBlob:
		data, err := s.codec.Encode(constant.CBinary, value)
		if err != nil {
			return native.Datum{}, err
		}
		return native.Datum{Handle: s.newLob(m.SQLType, data)}, nil
	}
	data, err := s.codec.Encode(memberCType(m.SQLType), value)
	if err != nil {
		return native.Datum{}, err
	}
	return native.Datum{Bytes: data}, nil
}

// memberCType is the layout the server stores scalar members in.
func memberCType(t constant.SQLType) constant.CType {
	switch t {
	case constant.SQLTinyInt, constant.SQLSmallInt, constant.SQLInteger:
		return constant.CSLong
	case constant.SQLBigInt:
		return constant.CSBigInt
	case constant.SQLFloat, constant.SQLReal, constant.SQLDouble:
		return constant.CDouble
	case constant.SQLBit, constant.SQLBoolean:
		return constant.CBit
	case constant.SQLDate:
		return constant.CDate
	case constant.SQLTime, constant.SQLTimeTZ:
		return constant.CTime
	case constant.SQLTimestamp:
		return constant.CTimestamp
	case constant.SQLTimestampTZ:
		return constant.CTimestampTZ
	case constant.SQLInterval:
		return constant.CInterval
	case constant.SQLBinary, constant.SQLVarBinary, constant.SQLLongVarBinary:
		return constant.CBinary
	}
	return constant.CChar
}

// hostValue converts a handle or datum back into a comparable host value.
func (s *Server) hostValue(ctype constant.CType, d native.Datum) interface{} {
	if d.Null {
		return nil
	}
	switch h := d.Handle.(type) {
	case *lob:
		if h.sqlType == constant.SQLBlob {
			return append([]byte(nil), h.data...)
		}
		return string(h.data)
	case *object:
		return s.objectValues(h)
	case *stmt:
		return h
	}
	value, err := s.codec.Decode(ctype, d.Bytes)
	if err != nil {
		return d.Bytes
	}
	return value
}

func (s *Server) objectValues(o *object) []interface{} {
	result := make([]interface{}, len(o.values))
	for i, d := range o.values {
		member := o.typ.Element
		if !o.typ.IsCollection {
			member = o.typ.Members[i]
		}
		result[i] = s.hostValue(memberCType(member.SQLType), d)
	}
	return result
}
