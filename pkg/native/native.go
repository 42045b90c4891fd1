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

//go:generate mockgen -destination=../../testdata/mock_native.go -package=testdata . Conn,Statement,Lob,Object

// Package native describes the handle based call level interface the
// binding engine drives. Implementations own the wire protocol. Every
// method reports a constant.Return and details are read back through
// Diagnostics.
package native

import (
	"context"

	"github.com/cectc/dbcli/pkg/constant"
)

// Handle is a native resource that can be stored in a handle row.
type Handle interface {
	Free() constant.Return
}

// Diagnoser exposes the diagnostic records of the last call on a handle.
type Diagnoser interface {
	Diagnostics() []DiagRecord
}

type DiagRecord struct {
	SQLState   string
	NativeCode int
	Message    string
}

type Conn interface {
	Diagnoser

	AllocStatement() (Statement, constant.Return)
	Connected() bool
	// DescribeType returns the member layout of a named structured type.
	// Nested member types are reported by name only.
	DescribeType(ctx context.Context, name string) (*ObjectType, constant.Return)
	NewObject(typ *ObjectType) (Object, constant.Return)
	NewLob(sqlType constant.SQLType) (Lob, constant.Return)
	Close() constant.Return
}

type Statement interface {
	Handle
	Diagnoser

	Prepare(ctx context.Context, query string) constant.Return
	ExecDirect(ctx context.Context, query string) constant.Return
	Execute(ctx context.Context) constant.Return

	NumParams() (int, constant.Return)
	// DescribeParam and DescribeCol take 1-based positions.
	DescribeParam(pos int) (ParamDesc, constant.Return)
	NumResultCols() (int, constant.Return)
	DescribeCol(pos int) (ColumnDesc, constant.Return)

	BindParameter(pos int, b *Binding) constant.Return
	ResetParams() constant.Return
	BindCol(pos int, b *Binding) constant.Return
	UnbindCols() constant.Return

	SetAttr(attr constant.Attr, value int64) constant.Return
	GetAttr(attr constant.Attr) (int64, constant.Return)

	// Fetch fills at most AttrRowArraySize rows of every bound column,
	// the number of rows written is read from AttrRowsFetched.
	Fetch(ctx context.Context) constant.Return
	RowCount() (int64, constant.Return)
	MoreResults(ctx context.Context) constant.Return

	// ParamData reports the parameter position and row the native layer
	// waits on (NeedData) or has output ready for (ParamDataAvailable).
	ParamData(ctx context.Context) (pos int, row int, ret constant.Return)
	PutData(ctx context.Context, data []byte, length int64) constant.Return
	GetOutputData(ctx context.Context, pos int) (Datum, constant.Return)

	DiagInt(field constant.DiagField) (int64, constant.Return)
	DiagString(field constant.DiagField) (string, constant.Return)

	CloseCursor() constant.Return
}

// Lob is a large object locator. Offsets are 0-based byte positions.
type Lob interface {
	Handle
	Diagnoser

	SQLType() constant.SQLType
	Length(ctx context.Context) (int64, constant.Return)
	Read(ctx context.Context, offset int64, amount int64) ([]byte, constant.Return)
	Write(ctx context.Context, offset int64, data []byte) (int64, constant.Return)
	Truncate(ctx context.Context, size int64) constant.Return
}

// Object is an instance of a structured record or collection type.
type Object interface {
	Handle
	Diagnoser

	Type() *ObjectType
	Len() int
	Get(idx int) (Datum, constant.Return)
	Set(idx int, d Datum) constant.Return
	Append(d Datum) constant.Return
}

// Datum is one scalar or handle value encoded in the buffer layout of its type.
type Datum struct {
	Bytes  []byte
	Handle Handle
	Null   bool
}

type ParamDesc struct {
	SQLType   constant.SQLType
	Precision int
	Scale     int
	Nullable  bool
	Direction constant.Direction
	Name      string
	TypeName  string
}

type ColumnDesc struct {
	Name        string
	SQLType     constant.SQLType
	DisplaySize int
	Precision   int
	Scale       int
	Nullable    bool
	Unsigned    bool
	TypeName    string
}

// ObjectMember describes one attribute of a record or the element of a collection.
type ObjectMember struct {
	Name      string
	SQLType   constant.SQLType
	Precision int
	Scale     int
	TypeName  string
	// Type is filled in once a nested structured type has been resolved.
	Type *ObjectType
}

// IsComposite reports whether the member holds a nested object.
func (m *ObjectMember) IsComposite() bool {
	return m.SQLType == constant.SQLStruct || m.SQLType == constant.SQLArray
}

type ObjectType struct {
	Schema       string
	Name         string
	IsCollection bool
	// Members lists record attributes in order, collections carry Element instead.
	Members []*ObjectMember
	Element *ObjectMember
}

// FullName returns schema.name, or name when no schema is set.
func (t *ObjectType) FullName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// Binding is the buffer description handed to BindParameter and BindCol.
// Row i occupies Buffer[i*Stride:(i+1)*Stride], Indicators[i] holds the
// value length or a NullData / DataAtExec sentinel, Lengths[i] holds the
// number of bytes actually stored. Handle typed bindings use Handles
// instead of Buffer.
type Binding struct {
	CType         constant.CType
	SQLType       constant.SQLType
	ColumnSize    int
	DecimalDigits int
	Direction     constant.Direction
	Buffer        []byte
	Stride        int
	Indicators    []int64
	Lengths       []int64
	Handles       []Handle
}

// Rows returns the number of rows the binding can hold.
func (b *Binding) Rows() int {
	return len(b.Indicators)
}

// Row returns the buffer slice of row i.
func (b *Binding) Row(i int) []byte {
	if b.Stride == 0 {
		return nil
	}
	start := i * b.Stride
	return b.Buffer[start : start+b.Stride : start+b.Stride]
}

// Datum returns row i as a Datum. Handle rows keep their handle.
func (b *Binding) Datum(i int) Datum {
	if b.CType == constant.CHandle {
		h := b.Handles[i]
		return Datum{Handle: h, Null: h == nil}
	}
	ind := b.Indicators[i]
	if ind == constant.NullData {
		return Datum{Null: true}
	}
	n := b.Lengths[i]
	if n > int64(b.Stride) {
		n = int64(b.Stride)
	}
	data := make([]byte, n)
	copy(data, b.Row(i))
	return Datum{Bytes: data}
}

// SetDatum stores d into row i, truncating to the stride. It reports
// whether the value had to be truncated.
func (b *Binding) SetDatum(i int, d Datum) bool {
	if d.Null {
		b.Indicators[i] = constant.NullData
		b.Lengths[i] = 0
		if b.CType == constant.CHandle {
			b.Handles[i] = nil
		}
		return false
	}
	if b.CType == constant.CHandle {
		b.Handles[i] = d.Handle
		b.Indicators[i] = 0
		b.Lengths[i] = 0
		return false
	}
	n := copy(b.Row(i), d.Bytes)
	b.Indicators[i] = int64(len(d.Bytes))
	b.Lengths[i] = int64(n)
	return n < len(d.Bytes)
}
