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

package driver

import (
	"database/sql"
	"math/big"
	"reflect"
	"time"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/native"
	"github.com/cectc/dbcli/pkg/variable"
)

var (
	scanTypeFloat64    = reflect.TypeOf(float64(0))
	scanTypeInt64      = reflect.TypeOf(int64(0))
	scanTypeBool       = reflect.TypeOf(false)
	scanTypeString     = reflect.TypeOf("")
	scanTypeTime       = reflect.TypeOf(time.Time{})
	scanTypeDuration   = reflect.TypeOf(time.Duration(0))
	scanTypeNullFloat  = reflect.TypeOf(sql.NullFloat64{})
	scanTypeNullInt    = reflect.TypeOf(sql.NullInt64{})
	scanTypeNullBool   = reflect.TypeOf(sql.NullBool{})
	scanTypeNullString = reflect.TypeOf(sql.NullString{})
	scanTypeNullTime   = reflect.TypeOf(sql.NullTime{})
	scanTypeRawBytes   = reflect.TypeOf(sql.RawBytes{})
	scanTypeBigInt     = reflect.TypeOf(new(big.Int))
	scanTypeDecimal    = reflect.TypeOf(variable.Decimal(""))
	scanTypeLob        = reflect.TypeOf(new(variable.Lob))
	scanTypeCursor     = reflect.TypeOf(new(Cursor))
	scanTypeUnknown    = reflect.TypeOf(new(interface{}))
)

// Column describes one column of the open result set.
type Column struct {
	Name        string
	Type        variable.Type
	SQLType     constant.SQLType
	DisplaySize int
	Precision   int
	Scale       int
	Nullable    bool
	Unsigned    bool
	TypeName    string
}

func newColumn(desc *native.ColumnDesc, typ variable.Type) *Column {
	return &Column{
		Name:        desc.Name,
		Type:        typ,
		SQLType:     desc.SQLType,
		DisplaySize: desc.DisplaySize,
		Precision:   desc.Precision,
		Scale:       desc.Scale,
		Nullable:    desc.Nullable,
		Unsigned:    desc.Unsigned,
		TypeName:    desc.TypeName,
	}
}

// TypeDatabaseName is the server side type name, the structured type
// name for object columns.
func (col *Column) TypeDatabaseName() string {
	if col.TypeName != "" {
		return col.TypeName
	}
	switch col.SQLType {
	case constant.SQLBigInt:
		if col.Unsigned {
			return "BIGINT UNSIGNED"
		}
	case constant.SQLInteger:
		if col.Unsigned {
			return "INTEGER UNSIGNED"
		}
	}
	return col.SQLType.String()
}

// Length is the display size of variable length columns.
func (col *Column) Length() (int64, bool) {
	if col.Type == nil || !col.Type.IsVariableLength() || col.Type.IsHandle() {
		return 0, false
	}
	return int64(col.DisplaySize), true
}

// DecimalSize reports precision and scale of fixed point columns.
func (col *Column) DecimalSize() (int64, int64, bool) {
	if !col.SQLType.IsNumeric() {
		return 0, 0, false
	}
	return int64(col.Precision), int64(col.Scale), true
}

// ScanType is the Go type values of the column are returned as.
func (col *Column) ScanType() reflect.Type {
	switch col.Type {
	case variable.Int32, variable.Int64:
		if !col.Nullable {
			return scanTypeInt64
		}
		return scanTypeNullInt
	case variable.Double:
		if !col.Nullable {
			return scanTypeFloat64
		}
		return scanTypeNullFloat
	case variable.Boolean:
		if !col.Nullable {
			return scanTypeBool
		}
		return scanTypeNullBool
	case variable.String, variable.FixedChar, variable.LongString, variable.ClobAsText, variable.NClobAsText:
		if !col.Nullable {
			return scanTypeString
		}
		return scanTypeNullString
	case variable.Binary, variable.LongBinary, variable.BlobAsBytes:
		return scanTypeRawBytes
	case variable.Date, variable.Time, variable.Timestamp, variable.TimestampTZ:
		if !col.Nullable {
			return scanTypeTime
		}
		return scanTypeNullTime
	case variable.Interval:
		return scanTypeDuration
	case variable.BigIntAsText:
		return scanTypeBigInt
	case variable.NumberAsText:
		return scanTypeDecimal
	case variable.Clob, variable.NClob, variable.Blob:
		return scanTypeLob
	case variable.Cursor:
		return scanTypeCursor
	default:
		return scanTypeUnknown
	}
}
