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
	"fmt"
	"math"
	"math/big"
	"time"
	"unicode/utf8"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/native"
)

// Options select between the representations a wire type leaves open.
type Options struct {
	// NumbersAsText maps fixed point numbers to NumberAsText instead of Double.
	NumbersAsText bool
	// LobAsHandle keeps large objects as locators instead of materialized values.
	LobAsHandle bool
}

// TypeByWire maps a server declared type to a Type.
func TypeByWire(sqlType constant.SQLType, precision int, unsigned bool, opts Options) (Type, error) {
	switch sqlType {
	case constant.SQLTinyInt, constant.SQLSmallInt:
		return Int32, nil
	case constant.SQLInteger:
		if unsigned {
			return Int64, nil
		}
		return Int32, nil
	case constant.SQLBigInt:
		if unsigned && precision > 19 {
			return BigIntAsText, nil
		}
		return Int64, nil
	case constant.SQLNumeric, constant.SQLDecimal:
		if opts.NumbersAsText {
			return NumberAsText, nil
		}
		return Double, nil
	case constant.SQLFloat, constant.SQLReal, constant.SQLDouble:
		return Double, nil
	case constant.SQLChar, constant.SQLWChar:
		return FixedChar, nil
	case constant.SQLVarChar, constant.SQLWVarChar:
		if precision > constant.MaxStringChars {
			return LongString, nil
		}
		return String, nil
	case constant.SQLLongVarChar, constant.SQLWLongVarChar:
		return LongString, nil
	case constant.SQLBinary, constant.SQLVarBinary:
		if precision > constant.MaxBinaryBytes {
			return LongBinary, nil
		}
		return Binary, nil
	case constant.SQLLongVarBinary:
		return LongBinary, nil
	case constant.SQLBoolean, constant.SQLBit:
		return Boolean, nil
	case constant.SQLDate:
		return Date, nil
	case constant.SQLTime, constant.SQLTimeTZ:
		return Time, nil
	case constant.SQLTimestamp:
		return Timestamp, nil
	case constant.SQLTimestampTZ:
		return TimestampTZ, nil
	case constant.SQLInterval:
		return Interval, nil
	case constant.SQLClob:
		if opts.LobAsHandle {
			return Clob, nil
		}
		return LongString, nil
	case constant.SQLNClob:
		if opts.LobAsHandle {
			return NClob, nil
		}
		return LongString, nil
	case constant.SQLBlob:
		if opts.LobAsHandle {
			return Blob, nil
		}
		return LongBinary, nil
	case constant.SQLRefCursor:
		return Cursor, nil
	case constant.SQLStruct, constant.SQLArray:
		return Object, nil
	}
	return nil, errors.NewSQLError(constant.CRNotSupported, constant.SSOptionalFeature,
		"no variable type handles %s", sqlType)
}

// TypeByColumn maps a result column to a Type. Lob columns always fetch
// through a locator; without LobAsHandle the value is read in full.
func TypeByColumn(col *native.ColumnDesc, opts Options) (Type, error) {
	if !opts.LobAsHandle {
		switch col.SQLType {
		case constant.SQLClob:
			return ClobAsText, nil
		case constant.SQLNClob:
			return NClobAsText, nil
		case constant.SQLBlob:
			return BlobAsBytes, nil
		}
	}
	return TypeByWire(col.SQLType, col.Precision, col.Unsigned, opts)
}

// TypeByValue infers the Type and row size in bytes of a host value. A
// nil value yields a nil Type.
func TypeByValue(value interface{}) (Type, int, error) {
	switch v := value.(type) {
	case nil:
		return nil, 0, nil
	case *Variable:
		return v.Type(), v.Size(), nil
	case string:
		if utf8.RuneCountInString(v) > constant.MaxStringChars {
			return LongString, len(v), nil
		}
		return String, nonZero(len(v)), nil
	case []byte:
		if len(v) > constant.MaxBinaryBytes {
			return LongBinary, len(v), nil
		}
		return Binary, nonZero(len(v)), nil
	case bool:
		return Boolean, 0, nil
	case int8, int16, int32, uint8, uint16:
		return Int32, 0, nil
	case int, int64, uint32:
		i, _ := integerValue(v)
		if i < math.MinInt32 || i > math.MaxInt32 {
			return Int64, 0, nil
		}
		return Int32, 0, nil
	case uint, uint64:
		if _, ok := integerValue(v); ok {
			return Int64, 0, nil
		}
		return BigIntAsText, 0, nil
	case *big.Int:
		if v.IsInt64() {
			return Int64, 0, nil
		}
		return BigIntAsText, len(v.String()), nil
	case float32, float64:
		return Double, 0, nil
	case Decimal:
		return NumberAsText, nonZero(len(v)), nil
	case *big.Rat:
		return NumberAsText, 0, nil
	case time.Time:
		return Timestamp, 0, nil
	case time.Duration:
		return Interval, 0, nil
	case *Lob:
		switch v.SQLType() {
		case constant.SQLNClob:
			return NClob, 0, nil
		case constant.SQLBlob:
			return Blob, 0, nil
		}
		return Clob, 0, nil
	case native.Lob:
		switch v.SQLType() {
		case constant.SQLNClob:
			return NClob, 0, nil
		case constant.SQLBlob:
			return Blob, 0, nil
		}
		return Clob, 0, nil
	case *Record, native.Object, []interface{}:
		return Object, 0, nil
	case StatementHolder, native.Statement:
		return Cursor, 0, nil
	}
	return nil, 0, errors.NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType,
		"cannot bind a value of type %T", value)
}

func nonZero(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// TypeByToken resolves an explicit type hint: a Type, a type name or a
// maximum text length in characters.
func TypeByToken(token interface{}) (Type, int, error) {
	switch t := token.(type) {
	case Type:
		return t, 0, nil
	case TypeToken:
		return typeByName(string(t))
	case string:
		return typeByName(t)
	case int:
		if t <= 0 {
			return nil, 0, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
				"invalid text length %d", t)
		}
		if t > constant.MaxStringChars {
			return LongString, t * constant.BytesPerChar, nil
		}
		return String, t * constant.BytesPerChar, nil
	}
	return nil, 0, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
		"cannot derive a variable type from %T", token)
}

func typeByName(name string) (Type, int, error) {
	typ, ok := TypeByName(name)
	if !ok {
		return nil, 0, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
			"unknown variable type %q", name)
	}
	return typ, 0, nil
}

// Widen merges the Types inferred for two rows of one batch column.
func Widen(a, b Type) Type {
	if a == nil {
		return b
	}
	if b == nil || a == b {
		return a
	}
	rank := map[Type]int{Int32: 1, Int64: 2, BigIntAsText: 3, Double: 4, NumberAsText: 5}
	ra, oka := rank[a]
	rb, okb := rank[b]
	if oka && okb {
		if (a == Double && b == BigIntAsText) || (a == BigIntAsText && b == Double) {
			return NumberAsText
		}
		if ra > rb {
			return a
		}
		return b
	}
	switch {
	case isTextType(a) && isTextType(b):
		if a.IsLong() || b.IsLong() {
			return LongString
		}
		return String
	case isBinaryType(a) && isBinaryType(b):
		return LongBinary
	case (a == Timestamp || a == TimestampTZ) && (b == Timestamp || b == TimestampTZ):
		return TimestampTZ
	}
	return a
}

func isTextType(t Type) bool {
	return t == String || t == FixedChar || t == LongString
}

func isBinaryType(t Type) bool {
	return t == Binary || t == LongBinary
}

// ParamRequest carries what is known about one parameter position.
type ParamRequest struct {
	Position int
	// Desc is nil when the server does not describe parameters.
	Desc *native.ParamDesc
	// ValueType is the widest Type inferred from the values, nil when all are NULL.
	ValueType Type
	Size      int
	BatchSize int
}

// Resolution is the Type chosen for a parameter position.
type Resolution struct {
	Type    Type
	Size    int
	SQLType constant.SQLType
	// Coercions describes every rule that changed the inferred Type.
	Coercions []string
}

// ResolveParam reconciles the value inferred Type with the server
// declared type. The declared text/binary family wins over the value,
// integers bound as a batch against a fixed point column become Double
// (or NumberAsText), and NumbersAsText turns Double into NumberAsText
// for fixed point columns.
func ResolveParam(req ParamRequest, opts Options) (Resolution, error) {
	desc := req.Desc
	wire := constant.SQLUnknown
	if desc != nil {
		wire = desc.SQLType
	}

	if req.ValueType == nil {
		if wire == constant.SQLUnknown {
			return Resolution{Type: String, Size: 1, SQLType: constant.SQLVarChar}, nil
		}
		typ, err := TypeByWire(wire, desc.Precision, false, Options{
			NumbersAsText: opts.NumbersAsText,
			LobAsHandle:   opts.LobAsHandle && desc.Direction.IsOutput(),
		})
		if err != nil {
			return Resolution{}, err
		}
		size := desc.Precision
		if typ.IsCharData() && !typ.IsHandle() {
			size *= constant.BytesPerChar
		}
		return Resolution{Type: typ, Size: nonZero(size), SQLType: wire}, nil
	}

	res := Resolution{Type: req.ValueType, Size: req.Size, SQLType: req.ValueType.SQLType()}
	if wire == constant.SQLUnknown {
		return res, nil
	}
	res.SQLType = wire

	valueFamily := isTextType(res.Type) || isBinaryType(res.Type)
	if valueFamily && (wire.IsText() || wire.IsBinary()) {
		wt, err := TypeByWire(wire, desc.Precision, false, Options{})
		if err != nil {
			return Resolution{}, err
		}
		if res.Type.IsLong() && !wt.IsLong() {
			wt = longVariant(wt)
		}
		if wt != res.Type {
			res.Coercions = append(res.Coercions,
				fmt.Sprintf("position %d: declared %s binds as %s instead of %s", req.Position, wire, wt.Name(), res.Type.Name()))
			res.Type = wt
		}
		if desc.Precision > res.Size && !wt.IsLong() {
			res.Size = desc.Precision
		}
	}

	if wire.IsNumeric() && req.BatchSize > 1 && (res.Type == Int32 || res.Type == Int64) {
		target := Double
		if opts.NumbersAsText {
			target = NumberAsText
		}
		res.Coercions = append(res.Coercions,
			fmt.Sprintf("position %d: integers in a batch against %s bind as %s", req.Position, wire, target.Name()))
		res.Type = target
		res.Size = 0
	}

	if opts.NumbersAsText && wire.IsNumeric() && res.Type == Double {
		res.Coercions = append(res.Coercions,
			fmt.Sprintf("position %d: %s binds as %s", req.Position, wire, NumberAsText.Name()))
		res.Type = NumberAsText
		res.Size = 0
	}
	return res, nil
}
