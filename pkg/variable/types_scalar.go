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
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/misc"
	"github.com/cectc/dbcli/pkg/native"
)

type integerType struct {
	base
	bits int
}

func integerValue(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if uint64(v) <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case *big.Int:
		if v.IsInt64() {
			return v.Int64(), true
		}
	}
	return 0, false
}

func (t *integerType) setValue(ctx context.Context, v *Variable, row int, value interface{}) error {
	i, ok := integerValue(value)
	if !ok {
		if b, isBool := value.(bool); isBool {
			i, ok = 0, true
			if b {
				i = 1
			}
		}
	}
	if !ok {
		return wrongType(t, value)
	}
	data := v.buf.Row(row)
	if t.bits == 32 {
		if i < math.MinInt32 || i > math.MaxInt32 {
			return errors.NewSQLError(constant.CRValueOutOfRange, constant.SSNumericOutOfRange,
				"value %d out of range for %s", i, t.name)
		}
		misc.WriteInt32(data, 0, int32(i))
	} else {
		misc.WriteInt64(data, 0, i)
	}
	v.indicators[row] = int64(t.size)
	v.lengths[row] = int64(t.size)
	return nil
}

func (t *integerType) getValue(ctx context.Context, v *Variable, row int) (interface{}, error) {
	return v.codec().Decode(t.cType, v.buf.Row(row))
}

type bigIntTextType struct {
	base
}

func (t *bigIntTextType) setValue(ctx context.Context, v *Variable, row int, value interface{}) error {
	var text string
	switch val := value.(type) {
	case *big.Int:
		text = val.String()
	case big.Int:
		text = val.String()
	case uint64:
		text = strconv.FormatUint(val, 10)
	case uint:
		text = strconv.FormatUint(uint64(val), 10)
	case string:
		if _, ok := new(big.Int).SetString(val, 10); !ok {
			return errors.NewSQLError(constant.CRWrongValueType, constant.SSInvalidCharacter,
				"invalid integer %q", val)
		}
		text = val
	default:
		i, ok := integerValue(value)
		if !ok {
			return wrongType(t, value)
		}
		text = strconv.FormatInt(i, 10)
	}
	return v.setBytes(row, []byte(text))
}

func (t *bigIntTextType) getValue(ctx context.Context, v *Variable, row int) (interface{}, error) {
	text := string(v.rowBytes(row))
	i, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, errors.NewSQLError(constant.CRWrongValueType, constant.SSInvalidCharacter,
			"invalid integer %q", text)
	}
	return i, nil
}

type doubleType struct {
	base
}

func (t *doubleType) setValue(ctx context.Context, v *Variable, row int, value interface{}) error {
	var f float64
	switch val := value.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case Decimal:
		parsed, err := val.Float64()
		if err != nil {
			return err
		}
		f = parsed
	case *big.Rat:
		f, _ = val.Float64()
	default:
		i, ok := integerValue(value)
		if !ok {
			return wrongType(t, value)
		}
		f = float64(i)
	}
	misc.WriteFloat64(v.buf.Row(row), 0, f)
	v.indicators[row] = int64(t.size)
	v.lengths[row] = int64(t.size)
	return nil
}

func (t *doubleType) getValue(ctx context.Context, v *Variable, row int) (interface{}, error) {
	return v.codec().Decode(t.cType, v.buf.Row(row))
}

type numberTextType struct {
	base
}

func (t *numberTextType) setValue(ctx context.Context, v *Variable, row int, value interface{}) error {
	var d Decimal
	switch val := value.(type) {
	case Decimal:
		checked, err := NewDecimal(string(val))
		if err != nil {
			return err
		}
		d = checked
	case string:
		checked, err := NewDecimal(val)
		if err != nil {
			return err
		}
		d = checked
	case *big.Rat:
		d = DecimalFromRat(val)
	case *big.Int:
		d = Decimal(val.String())
	case float64:
		d = DecimalFromFloat(val)
	case float32:
		d = Decimal(strconv.FormatFloat(float64(val), 'f', -1, 32))
	default:
		i, ok := integerValue(value)
		if !ok {
			return wrongType(t, value)
		}
		d = Decimal(strconv.FormatInt(i, 10))
	}
	return v.setBytes(row, []byte(d))
}

func (t *numberTextType) getValue(ctx context.Context, v *Variable, row int) (interface{}, error) {
	return NewDecimal(string(v.rowBytes(row)))
}

type booleanType struct {
	base
}

func (t *booleanType) setValue(ctx context.Context, v *Variable, row int, value interface{}) error {
	b, ok := value.(bool)
	if !ok {
		return wrongType(t, value)
	}
	data := v.buf.Row(row)
	data[0] = 0
	if b {
		data[0] = 1
	}
	v.indicators[row] = int64(t.size)
	v.lengths[row] = int64(t.size)
	return nil
}

func (t *booleanType) getValue(ctx context.Context, v *Variable, row int) (interface{}, error) {
	return v.buf.Row(row)[0] != 0, nil
}

type textType struct {
	base
}

func (t *textType) setValue(ctx context.Context, v *Variable, row int, value interface{}) error {
	var s string
	switch val := value.(type) {
	case string:
		s = val
	case []byte:
		s = string(val)
	default:
		return wrongType(t, value)
	}
	data, err := v.codec().EncodeText(s)
	if err != nil {
		return err
	}
	if t.long {
		v.setLong(row, data)
		return nil
	}
	return v.setBytes(row, data)
}

func (t *textType) getValue(ctx context.Context, v *Variable, row int) (interface{}, error) {
	if data, ok := v.LongValue(row); ok {
		return v.codec().DecodeText(data)
	}
	s, err := v.codec().DecodeText(v.rowBytes(row))
	if err != nil {
		return nil, err
	}
	if t == FixedChar {
		return misc.TrimRightSpaces(s), nil
	}
	return s, nil
}

type binaryType struct {
	base
}

func (t *binaryType) setValue(ctx context.Context, v *Variable, row int, value interface{}) error {
	var data []byte
	switch val := value.(type) {
	case []byte:
		data = append([]byte(nil), val...)
	case string:
		data = []byte(val)
	default:
		return wrongType(t, value)
	}
	if t.long {
		v.setLong(row, data)
		return nil
	}
	return v.setBytes(row, data)
}

func (t *binaryType) getValue(ctx context.Context, v *Variable, row int) (interface{}, error) {
	if data, ok := v.LongValue(row); ok {
		return append([]byte(nil), data...), nil
	}
	return append([]byte(nil), v.rowBytes(row)...), nil
}

type dateTimeType struct {
	base
}

func (t *dateTimeType) setValue(ctx context.Context, v *Variable, row int, value interface{}) error {
	tm, ok := value.(time.Time)
	if !ok {
		return wrongType(t, value)
	}
	loc := v.codec().Location()
	data := v.buf.Row(row)
	switch t.cType {
	case constant.CDate:
		native.PutDate(data, tm.In(loc))
	case constant.CTime:
		native.PutTime(data, tm.In(loc))
	case constant.CTimestamp:
		native.PutTimestamp(data, tm.In(loc))
	default:
		native.PutTimestampTZ(data, tm)
	}
	v.indicators[row] = int64(t.size)
	v.lengths[row] = int64(t.size)
	return nil
}

func (t *dateTimeType) getValue(ctx context.Context, v *Variable, row int) (interface{}, error) {
	return v.codec().Decode(t.cType, v.buf.Row(row))
}

type intervalType struct {
	base
}

func (t *intervalType) setValue(ctx context.Context, v *Variable, row int, value interface{}) error {
	d, ok := value.(time.Duration)
	if !ok {
		return wrongType(t, value)
	}
	misc.WriteInt64(v.buf.Row(row), 0, int64(d))
	v.indicators[row] = int64(t.size)
	v.lengths[row] = int64(t.size)
	return nil
}

func (t *intervalType) getValue(ctx context.Context, v *Variable, row int) (interface{}, error) {
	return v.codec().Decode(t.cType, v.buf.Row(row))
}
