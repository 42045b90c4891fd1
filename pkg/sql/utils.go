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

package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/cectc/dbcli/pkg/constant"
	dbdriver "github.com/cectc/dbcli/pkg/driver"
	"github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/variable"
)

var (
	errNoInsertID = errors.NewSQLError(constant.CRNotSupported, constant.SSOptionalFeature, "no row id was reported")
	errNoRowCount = errors.NewSQLError(constant.CRNotSupported, constant.SSOptionalFeature, "row count is unknown")
	errTxDone     = errors.NewSQLError(constant.CRFunctionSequence, constant.SSFunctionSequence, "transaction has already been committed or rolled back")

	scannerType  = reflect.TypeOf((*sql.Scanner)(nil)).Elem()
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
)

type outParam struct {
	v    *variable.Variable
	dest interface{}
}

// bindArgs turns sql.Out arguments into output variables of the cursor.
func bindArgs(ctx context.Context, cur *dbdriver.Cursor, args []driver.NamedValue) ([]interface{}, []outParam, error) {
	values := make([]interface{}, len(args))
	var outs []outParam
	for i, arg := range args {
		out, ok := arg.Value.(sql.Out)
		if !ok {
			values[i] = arg.Value
			continue
		}
		v, err := outVariable(ctx, cur, out)
		if err != nil {
			freeOuts(outs)
			return nil, nil, err
		}
		values[i] = v
		outs = append(outs, outParam{v: v, dest: out.Dest})
	}
	return values, outs, nil
}

func outVariable(ctx context.Context, cur *dbdriver.Cursor, out sql.Out) (*variable.Variable, error) {
	dest := reflect.ValueOf(out.Dest)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return nil, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
			"sql.Out destination must be a non nil pointer, got %T", out.Dest)
	}
	typ, size := outType(dest.Type().Elem())
	v, err := cur.Var(typ, size, 1)
	if err != nil {
		return nil, err
	}
	v.SetDirection(constant.ParamOutput)
	if out.In {
		v.SetDirection(constant.ParamInputOutput)
		in := dest.Elem().Interface()
		if valuer, ok := in.(driver.Valuer); ok {
			if in, err = valuer.Value(); err != nil {
				v.Free()
				return nil, err
			}
		}
		if err = v.SetValue(ctx, 0, in); err != nil {
			v.Free()
			return nil, err
		}
	}
	return v, nil
}

// outType picks the variable type an output destination is filled from.
func outType(t reflect.Type) (variable.Type, int) {
	if reflect.PtrTo(t).Implements(scannerType) {
		return variable.String, constant.MaxStringChars * constant.BytesPerChar
	}
	switch t {
	case timeType:
		return variable.Timestamp, 0
	case durationType:
		return variable.Interval, 0
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return variable.Int64, 0
	case reflect.Uint, reflect.Uint64:
		return variable.BigIntAsText, 0
	case reflect.Float32, reflect.Float64:
		return variable.Double, 0
	case reflect.Bool:
		return variable.Boolean, 0
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return variable.Binary, constant.MaxBinaryBytes
		}
	}
	return variable.String, constant.MaxStringChars * constant.BytesPerChar
}

func assignOuts(ctx context.Context, outs []outParam) error {
	for _, out := range outs {
		value, err := out.v.GetValue(ctx, 0)
		if err != nil {
			return err
		}
		if value, err = toDriverValue(ctx, value); err != nil {
			return err
		}
		if err = assign(out.dest, value); err != nil {
			return err
		}
	}
	return nil
}

func freeOuts(outs []outParam) {
	for _, out := range outs {
		out.v.Free()
	}
}

func assign(dest interface{}, value interface{}) error {
	if scanner, ok := dest.(sql.Scanner); ok {
		return scanner.Scan(value)
	}
	dv := reflect.ValueOf(dest).Elem()
	if value == nil {
		dv.Set(reflect.Zero(dv.Type()))
		return nil
	}
	sv := reflect.ValueOf(value)
	switch {
	case sv.Type().AssignableTo(dv.Type()):
		dv.Set(sv)
	case dv.Kind() == reflect.String:
		dv.SetString(fmt.Sprint(value))
	case sv.Kind() != reflect.String && sv.Type().ConvertibleTo(dv.Type()):
		dv.Set(sv.Convert(dv.Type()))
	default:
		return errors.NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType,
			"cannot store %T in %s", value, dv.Type())
	}
	return nil
}

// toDriverValue converts engine values to driver values. Large objects are
// read and released, cursors and structured values pass unchanged and
// scan into interface{} destinations only.
func toDriverValue(ctx context.Context, value interface{}) (driver.Value, error) {
	switch v := value.(type) {
	case variable.Decimal:
		return string(v), nil
	case *big.Int:
		return v.String(), nil
	case time.Duration:
		return int64(v), nil
	case *variable.Lob:
		defer v.Close()
		if v.SQLType().IsText() {
			return v.Text(ctx)
		}
		return v.ReadAll(ctx)
	}
	return value, nil
}
