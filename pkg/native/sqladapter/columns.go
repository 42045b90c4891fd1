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

package sqladapter

import (
	"database/sql"
	"math"
	"strconv"
	"strings"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/native"
)

const defaultDisplaySize = 255

// columnDesc maps the declared type database/sql reports to a wire type.
// SQLite reports the declaration verbatim, lengths are taken from it.
func columnDesc(ct *sql.ColumnType, driverName string) native.ColumnDesc {
	desc := native.ColumnDesc{Name: ct.Name(), Nullable: true}
	if nullable, ok := ct.Nullable(); ok {
		desc.Nullable = nullable
	}

	name := strings.ToUpper(strings.TrimSpace(ct.DatabaseTypeName()))
	if strings.Contains(name, "UNSIGNED") {
		desc.Unsigned = true
		name = strings.TrimSpace(strings.ReplaceAll(name, "UNSIGNED", ""))
	}
	var declared []int
	if idx := strings.IndexByte(name, '('); idx >= 0 {
		declared = declaredSizes(name[idx:])
		name = strings.TrimSpace(name[:idx])
	}
	if length, ok := ct.Length(); ok && length > 0 && length < math.MaxInt32 {
		desc.DisplaySize = int(length)
	} else if len(declared) > 0 {
		desc.DisplaySize = declared[0]
	}

	switch name {
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "YEAR":
		desc.SQLType = constant.SQLInteger
		desc.Precision = 10
		// SQLite integers are always 64 bit
		if driverName == "sqlite3" {
			desc.SQLType = constant.SQLBigInt
			desc.Precision = 19
		}
	case "BIGINT", "INT8":
		desc.SQLType = constant.SQLBigInt
		desc.Precision = 19
		if desc.Unsigned {
			desc.Precision = 20
		}
	case "DECIMAL", "NUMERIC":
		desc.SQLType = constant.SQLDecimal
		if precision, scale, ok := ct.DecimalSize(); ok {
			desc.Precision, desc.Scale = int(precision), int(scale)
		} else if len(declared) > 0 {
			desc.Precision = declared[0]
			if len(declared) > 1 {
				desc.Scale = declared[1]
			}
		}
		desc.DisplaySize = desc.Precision + 2
	case "FLOAT", "DOUBLE", "REAL", "DOUBLE PRECISION":
		desc.SQLType = constant.SQLDouble
		desc.Precision = 15
	case "BOOL", "BOOLEAN":
		desc.SQLType = constant.SQLBoolean
	case "CHAR", "NCHAR", "CHARACTER":
		desc.SQLType = constant.SQLChar
	case "TEXT", "MEDIUMTEXT", "LONGTEXT", "CLOB", "JSON":
		desc.SQLType = constant.SQLClob
	case "BINARY", "VARBINARY", "BIT":
		desc.SQLType = constant.SQLVarBinary
	case "BLOB", "TINYBLOB", "MEDIUMBLOB", "LONGBLOB":
		desc.SQLType = constant.SQLBlob
	case "DATE":
		desc.SQLType = constant.SQLDate
	case "TIME":
		desc.SQLType = constant.SQLTime
	case "DATETIME", "TIMESTAMP":
		desc.SQLType = constant.SQLTimestamp
	default:
		desc.SQLType = constant.SQLVarChar
	}

	if desc.SQLType.IsText() || desc.SQLType.IsBinary() {
		if desc.DisplaySize == 0 {
			desc.DisplaySize = defaultDisplaySize
			if name == "" {
				desc.DisplaySize = constant.MaxStringChars
			}
		}
		desc.Precision = desc.DisplaySize
	}
	return desc
}

// declaredSizes parses "(10,2)".
func declaredSizes(s string) []int {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil
		}
		sizes = append(sizes, n)
	}
	return sizes
}
