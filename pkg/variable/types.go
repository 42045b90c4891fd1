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

// Type describes one buffer layout and the conversions of its rows. The
// set of implementations is closed, every value is one of the package
// level variables below.
type Type interface {
	Name() string
	SQLType() constant.SQLType
	CType() constant.CType
	// Size is the fixed row size in bytes, 0 for variable length types.
	Size() int
	IsCharData() bool
	IsVariableLength() bool
	IsLong() bool
	IsHandle() bool

	initialize(v *Variable) error
	finalize(v *Variable)
	preDefine(ctx context.Context, v *Variable, col *native.ColumnDesc) error
	preFetch(v *Variable) error
	isNull(v *Variable, row int) bool
	setValue(ctx context.Context, v *Variable, row int, value interface{}) error
	getValue(ctx context.Context, v *Variable, row int) (interface{}, error)
	bindNested(v *Variable, row int, obj native.Object, ordinal int) error
}

// TypeToken names a Type in explicit type hints.
type TypeToken string

type base struct {
	name           string
	sqlType        constant.SQLType
	cType          constant.CType
	size           int
	charData       bool
	variableLength bool
	long           bool
	handle         bool
}

func (b *base) Name() string {
	return b.name
}

func (b *base) SQLType() constant.SQLType {
	return b.sqlType
}

func (b *base) CType() constant.CType {
	return b.cType
}

func (b *base) Size() int {
	return b.size
}

func (b *base) IsCharData() bool {
	return b.charData
}

func (b *base) IsVariableLength() bool {
	return b.variableLength
}

func (b *base) IsLong() bool {
	return b.long
}

func (b *base) IsHandle() bool {
	return b.handle
}

func (b *base) String() string {
	return b.name
}

func (b *base) initialize(v *Variable) error {
	return nil
}

func (b *base) finalize(v *Variable) {
}

func (b *base) preDefine(ctx context.Context, v *Variable, col *native.ColumnDesc) error {
	return nil
}

func (b *base) preFetch(v *Variable) error {
	return nil
}

func (b *base) isNull(v *Variable, row int) bool {
	return v.indicators[row] == constant.NullData
}

// bindNested pushes the encoded row into the member at ordinal.
func (b *base) bindNested(v *Variable, row int, obj native.Object, ordinal int) error {
	d := v.Datum(row)
	if ret := obj.Set(ordinal, d); !ret.Succeeded() {
		return native.Error(obj, ret, "set object member")
	}
	return nil
}

var (
	Int32 Type = &integerType{base: base{
		name: "INT32", sqlType: constant.SQLInteger, cType: constant.CSLong, size: constant.SizeSLong,
	}, bits: 32}

	Int64 Type = &integerType{base: base{
		name: "INT64", sqlType: constant.SQLBigInt, cType: constant.CSBigInt, size: constant.SizeSBigInt,
	}, bits: 64}

	BigIntAsText Type = &bigIntTextType{base: base{
		name: "BIGINT_TEXT", sqlType: constant.SQLBigInt, cType: constant.CChar, variableLength: true,
	}}

	Double Type = &doubleType{base: base{
		name: "DOUBLE", sqlType: constant.SQLDouble, cType: constant.CDouble, size: constant.SizeDouble,
	}}

	NumberAsText Type = &numberTextType{base: base{
		name: "NUMBER_TEXT", sqlType: constant.SQLNumeric, cType: constant.CChar, variableLength: true,
	}}

	Boolean Type = &booleanType{base: base{
		name: "BOOLEAN", sqlType: constant.SQLBit, cType: constant.CBit, size: constant.SizeBit,
	}}

	String Type = &textType{base: base{
		name: "STRING", sqlType: constant.SQLVarChar, cType: constant.CChar, charData: true, variableLength: true,
	}}

	FixedChar Type = &textType{base: base{
		name: "FIXED_CHAR", sqlType: constant.SQLChar, cType: constant.CChar, charData: true, variableLength: true,
	}}

	LongString Type = &textType{base: base{
		name: "LONG_STRING", sqlType: constant.SQLLongVarChar, cType: constant.CChar, charData: true,
		variableLength: true, long: true,
	}}

	Binary Type = &binaryType{base: base{
		name: "BINARY", sqlType: constant.SQLVarBinary, cType: constant.CBinary, variableLength: true,
	}}

	LongBinary Type = &binaryType{base: base{
		name: "LONG_BINARY", sqlType: constant.SQLLongVarBinary, cType: constant.CBinary,
		variableLength: true, long: true,
	}}

	Date Type = &dateTimeType{base: base{
		name: "DATE", sqlType: constant.SQLDate, cType: constant.CDate, size: constant.SizeDate,
	}}

	Time Type = &dateTimeType{base: base{
		name: "TIME", sqlType: constant.SQLTime, cType: constant.CTime, size: constant.SizeTime,
	}}

	Timestamp Type = &dateTimeType{base: base{
		name: "TIMESTAMP", sqlType: constant.SQLTimestamp, cType: constant.CTimestamp, size: constant.SizeTimestamp,
	}}

	TimestampTZ Type = &dateTimeType{base: base{
		name: "TIMESTAMP_TZ", sqlType: constant.SQLTimestampTZ, cType: constant.CTimestampTZ,
		size: constant.SizeTimestampTZ,
	}}

	Interval Type = &intervalType{base: base{
		name: "INTERVAL", sqlType: constant.SQLInterval, cType: constant.CInterval, size: constant.SizeInterval,
	}}

	Clob Type = &lobType{base: base{
		name: "CLOB", sqlType: constant.SQLClob, cType: constant.CHandle, charData: true, handle: true,
	}}

	NClob Type = &lobType{base: base{
		name: "NCLOB", sqlType: constant.SQLNClob, cType: constant.CHandle, charData: true, handle: true,
	}}

	Blob Type = &lobType{base: base{
		name: "BLOB", sqlType: constant.SQLBlob, cType: constant.CHandle, handle: true,
	}}

	// ClobAsText, NClobAsText and BlobAsBytes fetch lob columns through a
	// locator and materialize the full value.
	ClobAsText Type = &lobValueType{lobType{base{
		name: "CLOB_AS_TEXT", sqlType: constant.SQLClob, cType: constant.CHandle, charData: true, handle: true,
	}}}

	NClobAsText Type = &lobValueType{lobType{base{
		name: "NCLOB_AS_TEXT", sqlType: constant.SQLNClob, cType: constant.CHandle, charData: true, handle: true,
	}}}

	BlobAsBytes Type = &lobValueType{lobType{base{
		name: "BLOB_AS_BYTES", sqlType: constant.SQLBlob, cType: constant.CHandle, handle: true,
	}}}

	Cursor Type = &cursorType{base: base{
		name: "CURSOR", sqlType: constant.SQLRefCursor, cType: constant.CHandle, handle: true,
	}}

	Object Type = &objectType{base: base{
		name: "OBJECT", sqlType: constant.SQLStruct, cType: constant.CHandle, handle: true,
	}}
)

var allTypes = []Type{
	Int32, Int64, BigIntAsText, Double, NumberAsText, Boolean, String, FixedChar, LongString,
	Binary, LongBinary, Date, Time, Timestamp, TimestampTZ, Interval, Clob, NClob, Blob,
	ClobAsText, NClobAsText, BlobAsBytes, Cursor, Object,
}

var typeAliases = map[string]Type{
	"INTEGER":   Int64,
	"INT":       Int32,
	"BIGINT":    Int64,
	"FLOAT":     Double,
	"NUMBER":    NumberAsText,
	"DECIMAL":   NumberAsText,
	"BOOL":      Boolean,
	"VARCHAR":   String,
	"CHAR":      FixedChar,
	"TEXT":      LongString,
	"LONG":      LongString,
	"RAW":       Binary,
	"VARBINARY": Binary,
	"LONG_RAW":  LongBinary,
	"DATETIME":  Timestamp,
	"REFCURSOR": Cursor,
	"STRUCT":    Object,
	"ARRAY":     Object,
}

// Types returns every Type in declaration order.
func Types() []Type {
	result := make([]Type, len(allTypes))
	copy(result, allTypes)
	return result
}

// TypeByName looks a Type up by name or alias, ignoring case.
func TypeByName(name string) (Type, bool) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for _, t := range allTypes {
		if t.Name() == key {
			return t, true
		}
	}
	t, ok := typeAliases[key]
	return t, ok
}

// longVariant returns the streamed variant of an inline text/binary type.
func longVariant(t Type) Type {
	switch t {
	case String, FixedChar:
		return LongString
	case Binary:
		return LongBinary
	}
	return t
}

func wrongType(t Type, value interface{}) error {
	return errors.NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType,
		"expecting a value for %s, got %T", t.Name(), value)
}
