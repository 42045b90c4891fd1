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

package constant

import (
	"fmt"
)

// SQLType is the column/parameter type code reported by the server.
type SQLType int16

const (
	SQLUnknown       SQLType = 0
	SQLChar          SQLType = 1
	SQLNumeric       SQLType = 2
	SQLDecimal       SQLType = 3
	SQLInteger       SQLType = 4
	SQLSmallInt      SQLType = 5
	SQLFloat         SQLType = 6
	SQLReal          SQLType = 7
	SQLDouble        SQLType = 8
	SQLVarChar       SQLType = 12
	SQLBoolean       SQLType = 16
	SQLDate          SQLType = 91
	SQLTime          SQLType = 92
	SQLTimestamp     SQLType = 93
	SQLTimeTZ        SQLType = 94
	SQLTimestampTZ   SQLType = 95
	SQLInterval      SQLType = 110
	SQLLongVarChar   SQLType = -1
	SQLBinary        SQLType = -2
	SQLVarBinary     SQLType = -3
	SQLLongVarBinary SQLType = -4
	SQLBigInt        SQLType = -5
	SQLTinyInt       SQLType = -6
	SQLBit           SQLType = -7
	SQLWChar         SQLType = -8
	SQLWVarChar      SQLType = -9
	SQLWLongVarChar  SQLType = -10
	SQLClob          SQLType = 40
	SQLBlob          SQLType = 30
	SQLNClob         SQLType = 41
	SQLRefCursor     SQLType = -405
	SQLStruct        SQLType = 2002
	SQLArray         SQLType = 2003
)

var sqlTypeNames = map[SQLType]string{
	SQLUnknown:       "UNKNOWN",
	SQLChar:          "CHAR",
	SQLNumeric:       "NUMERIC",
	SQLDecimal:       "DECIMAL",
	SQLInteger:       "INTEGER",
	SQLSmallInt:      "SMALLINT",
	SQLFloat:         "FLOAT",
	SQLReal:          "REAL",
	SQLDouble:        "DOUBLE",
	SQLVarChar:       "VARCHAR",
	SQLBoolean:       "BOOLEAN",
	SQLDate:          "DATE",
	SQLTime:          "TIME",
	SQLTimestamp:     "TIMESTAMP",
	SQLTimeTZ:        "TIME WITH TIME ZONE",
	SQLTimestampTZ:   "TIMESTAMP WITH TIME ZONE",
	SQLInterval:      "INTERVAL",
	SQLLongVarChar:   "LONG VARCHAR",
	SQLBinary:        "BINARY",
	SQLVarBinary:     "VARBINARY",
	SQLLongVarBinary: "LONG VARBINARY",
	SQLBigInt:        "BIGINT",
	SQLTinyInt:       "TINYINT",
	SQLBit:           "BIT",
	SQLWChar:         "NCHAR",
	SQLWVarChar:      "NVARCHAR",
	SQLWLongVarChar:  "LONG NVARCHAR",
	SQLClob:          "CLOB",
	SQLBlob:          "BLOB",
	SQLNClob:         "NCLOB",
	SQLRefCursor:     "REF CURSOR",
	SQLStruct:        "STRUCT",
	SQLArray:         "ARRAY",
}

func (t SQLType) String() string {
	if name, ok := sqlTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("SQLType(%d)", int16(t))
}

// IsText reports whether t belongs to the character family, large objects included.
func (t SQLType) IsText() bool {
	switch t {
	case SQLChar, SQLVarChar, SQLLongVarChar, SQLWChar, SQLWVarChar, SQLWLongVarChar,
		SQLClob, SQLNClob:
		return true
	}
	return false
}

// IsBinary reports whether t belongs to the binary family, large objects included.
func (t SQLType) IsBinary() bool {
	switch t {
	case SQLBinary, SQLVarBinary, SQLLongVarBinary, SQLBlob:
		return true
	}
	return false
}

// IsLong reports whether values of t are exchanged out of line.
func (t SQLType) IsLong() bool {
	switch t {
	case SQLLongVarChar, SQLWLongVarChar, SQLLongVarBinary, SQLClob, SQLNClob, SQLBlob:
		return true
	}
	return false
}

// IsNumeric reports whether t is a fixed point numeric type.
func (t SQLType) IsNumeric() bool {
	return t == SQLNumeric || t == SQLDecimal
}

// CType is the layout of one row inside a bound buffer.
type CType int16

const (
	// CChar holds encoded text, the length lives in the indicator.
	CChar CType = 1
	// CSLong holds a little endian int32.
	CSLong CType = 4
	// CDouble holds little endian float64 bits.
	CDouble CType = 8
	// CBit holds one byte, 0 or 1.
	CBit CType = -7
	// CSBigInt holds a little endian int64.
	CSBigInt CType = -25
	// CBinary holds raw bytes, the length lives in the indicator.
	CBinary CType = -2
	// CDate holds year(int16) month(uint8) day(uint8).
	CDate CType = 91
	// CTime holds hour minute second (uint8 each) and nanoseconds (uint32).
	CTime CType = 92
	// CTimestamp holds a CDate followed by a CTime.
	CTimestamp CType = 93
	// CTimestampTZ holds a CTimestamp followed by the zone offset in minutes (int16).
	CTimestampTZ CType = 95
	// CInterval holds a little endian int64 of nanoseconds.
	CInterval CType = 110
	// CHandle rows carry native handles instead of bytes.
	CHandle CType = 999
)

var cTypeNames = map[CType]string{
	CChar:        "CHAR",
	CSLong:       "SLONG",
	CDouble:      "DOUBLE",
	CBit:         "BIT",
	CSBigInt:     "SBIGINT",
	CBinary:      "BINARY",
	CDate:        "DATE",
	CTime:        "TIME",
	CTimestamp:   "TIMESTAMP",
	CTimestampTZ: "TIMESTAMP_TZ",
	CInterval:    "INTERVAL",
	CHandle:      "HANDLE",
}

func (t CType) String() string {
	if name, ok := cTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CType(%d)", int16(t))
}

// Fixed element sizes of the buffer layouts.
const (
	SizeSLong       = 4
	SizeDouble      = 8
	SizeBit         = 1
	SizeSBigInt     = 8
	SizeDate        = 4
	SizeTime        = 7
	SizeTimestamp   = SizeDate + SizeTime
	SizeTimestampTZ = SizeTimestamp + 2
	SizeInterval    = 8
)

// Flag information.
const (
	NotNullFlag  uint = 1 << 0 /* Field can't be NULL */
	UnsignedFlag uint = 1 << 5 /* Field is unsigned */
)

// HasNotNullFlag checks if NotNullFlag is set.
func HasNotNullFlag(flag uint) bool {
	return (flag & NotNullFlag) > 0
}

// HasUnsignedFlag checks if UnsignedFlag is set.
func HasUnsignedFlag(flag uint) bool {
	return (flag & UnsignedFlag) > 0
}
