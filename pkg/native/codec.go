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

package native

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/misc"
)

var timeLayouts = []string{
	misc.TimestampFormat,
	time.RFC3339Nano,
	misc.TimeFormat,
	misc.DateFormat,
	"15:04:05.999999999",
}

// Codec converts between host values and the row buffer layouts. Text is
// stored in the connection character set, temporal values as wall clock
// fields in the connection location.
type Codec struct {
	charset string
	enc     encoding.Encoding
	loc     *time.Location
}

// NewCodec resolves charset by its WHATWG name ("utf-8", "gbk", "latin1", ...).
func NewCodec(charset string, loc *time.Location) (*Codec, error) {
	if charset == "" {
		charset = constant.DefaultEncoding
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, errors.NewSQLError(constant.CRInvalidOption, constant.SSInvalidAttribute,
			"unknown character set %q", charset)
	}
	name, _ := htmlindex.Name(enc)
	if loc == nil {
		loc = time.UTC
	}
	return &Codec{charset: name, enc: enc, loc: loc}, nil
}

// MustCodec is NewCodec for well known character sets.
func MustCodec(charset string, loc *time.Location) *Codec {
	c, err := NewCodec(charset, loc)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Codec) Charset() string {
	return c.charset
}

func (c *Codec) Location() *time.Location {
	return c.loc
}

func (c *Codec) isUTF8() bool {
	return c.charset == "utf-8"
}

// EncodeText converts s into the connection character set.
func (c *Codec) EncodeText(s string) ([]byte, error) {
	if c.isUTF8() {
		return []byte(s), nil
	}
	data, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, errors.NewSQLError(constant.CREncodingFailed, constant.SSInvalidCharacter,
			"cannot encode text in %s: %v", c.charset, err)
	}
	return data, nil
}

// DecodeText converts data from the connection character set.
func (c *Codec) DecodeText(data []byte) (string, error) {
	if c.isUTF8() {
		return string(data), nil
	}
	s, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.NewSQLError(constant.CREncodingFailed, constant.SSInvalidCharacter,
			"cannot decode text from %s: %v", c.charset, err)
	}
	return string(s), nil
}

// PutDate writes year(int16) month day.
func PutDate(data []byte, t time.Time) {
	pos := misc.WriteInt16(data, 0, int16(t.Year()))
	pos = misc.WriteByte(data, pos, byte(t.Month()))
	misc.WriteByte(data, pos, byte(t.Day()))
}

// GetDate reads a date written by PutDate.
func GetDate(data []byte, loc *time.Location) time.Time {
	year, _, _ := misc.ReadInt16(data, 0)
	return time.Date(int(year), time.Month(data[2]), int(data[3]), 0, 0, 0, 0, loc)
}

// PutTime writes hour minute second and nanoseconds.
func PutTime(data []byte, t time.Time) {
	pos := misc.WriteByte(data, 0, byte(t.Hour()))
	pos = misc.WriteByte(data, pos, byte(t.Minute()))
	pos = misc.WriteByte(data, pos, byte(t.Second()))
	misc.WriteUint32(data, pos, uint32(t.Nanosecond()))
}

// GetTime reads a time of day written by PutTime, on January 1st of year 0.
func GetTime(data []byte, loc *time.Location) time.Time {
	nanos, _, _ := misc.ReadUint32(data, 3)
	return time.Date(0, time.January, 1, int(data[0]), int(data[1]), int(data[2]), int(nanos), loc)
}

func PutTimestamp(data []byte, t time.Time) {
	PutDate(data, t)
	PutTime(data[constant.SizeDate:], t)
}

func GetTimestamp(data []byte, loc *time.Location) time.Time {
	d := GetDate(data, loc)
	tm := GetTime(data[constant.SizeDate:], loc)
	return time.Date(d.Year(), d.Month(), d.Day(), tm.Hour(), tm.Minute(), tm.Second(), tm.Nanosecond(), loc)
}

// PutTimestampTZ writes the wall clock of t followed by its offset in minutes.
func PutTimestampTZ(data []byte, t time.Time) {
	PutTimestamp(data, t)
	misc.WriteInt16(data, constant.SizeTimestamp, misc.ZoneOffsetMinutes(t))
}

func GetTimestampTZ(data []byte) time.Time {
	offset, _, _ := misc.ReadInt16(data, constant.SizeTimestamp)
	return GetTimestamp(data, misc.FixedZone(offset))
}

// ElementSize returns the fixed row size of ctype, 0 for variable length layouts.
func ElementSize(ctype constant.CType) int {
	switch ctype {
	case constant.CSLong:
		return constant.SizeSLong
	case constant.CSBigInt:
		return constant.SizeSBigInt
	case constant.CDouble:
		return constant.SizeDouble
	case constant.CBit:
		return constant.SizeBit
	case constant.CDate:
		return constant.SizeDate
	case constant.CTime:
		return constant.SizeTime
	case constant.CTimestamp:
		return constant.SizeTimestamp
	case constant.CTimestampTZ:
		return constant.SizeTimestampTZ
	case constant.CInterval:
		return constant.SizeInterval
	default:
		return 0
	}
}

// Encode converts a driver level value (int64, float64, bool, string,
// []byte, time.Time, time.Duration and the other integer kinds) into the
// layout of ctype.
func (c *Codec) Encode(ctype constant.CType, value interface{}) ([]byte, error) {
	switch ctype {
	case constant.CChar:
		switch v := value.(type) {
		case string:
			return c.EncodeText(v)
		case []byte:
			return c.EncodeText(string(v))
		case time.Time:
			return c.EncodeText(misc.FormatValue(v.In(c.loc)))
		case bool:
			if v {
				return []byte("1"), nil
			}
			return []byte("0"), nil
		case float32:
			return []byte(strconv.FormatFloat(float64(v), 'g', -1, 32)), nil
		case float64:
			return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
		case time.Duration:
			return []byte(strconv.FormatInt(int64(v), 10)), nil
		default:
			i, err := ToInt64(value)
			if err != nil {
				return nil, err
			}
			return []byte(strconv.FormatInt(i, 10)), nil
		}
	case constant.CBinary:
		switch v := value.(type) {
		case []byte:
			return v, nil
		case string:
			return []byte(v), nil
		}
		return nil, wrongType(ctype, value)
	case constant.CSLong:
		i, err := ToInt64(value)
		if err != nil {
			return nil, err
		}
		if i < math.MinInt32 || i > math.MaxInt32 {
			return nil, errors.NewSQLError(constant.CRValueOutOfRange, constant.SSNumericOutOfRange,
				"value %d out of range for a 32 bit integer", i)
		}
		data := make([]byte, constant.SizeSLong)
		misc.WriteInt32(data, 0, int32(i))
		return data, nil
	case constant.CSBigInt:
		i, err := ToInt64(value)
		if err != nil {
			return nil, err
		}
		data := make([]byte, constant.SizeSBigInt)
		misc.WriteInt64(data, 0, i)
		return data, nil
	case constant.CDouble:
		f, err := ToFloat64(value)
		if err != nil {
			return nil, err
		}
		data := make([]byte, constant.SizeDouble)
		misc.WriteFloat64(data, 0, f)
		return data, nil
	case constant.CBit:
		b, err := ToBool(value)
		if err != nil {
			return nil, err
		}
		if b {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case constant.CDate, constant.CTime, constant.CTimestamp, constant.CTimestampTZ:
		t, err := c.ToTime(value)
		if err != nil {
			return nil, err
		}
		data := make([]byte, ElementSize(ctype))
		switch ctype {
		case constant.CDate:
			PutDate(data, t.In(c.loc))
		case constant.CTime:
			PutTime(data, t.In(c.loc))
		case constant.CTimestamp:
			PutTimestamp(data, t.In(c.loc))
		default:
			PutTimestampTZ(data, t)
		}
		return data, nil
	case constant.CInterval:
		var d int64
		switch v := value.(type) {
		case time.Duration:
			d = int64(v)
		default:
			i, err := ToInt64(value)
			if err != nil {
				return nil, err
			}
			d = i
		}
		data := make([]byte, constant.SizeInterval)
		misc.WriteInt64(data, 0, d)
		return data, nil
	}
	return nil, wrongType(ctype, value)
}

// Decode converts a row in the layout of ctype into its canonical host
// value: int64, float64, bool, string, []byte, time.Time or time.Duration.
func (c *Codec) Decode(ctype constant.CType, data []byte) (interface{}, error) {
	if size := ElementSize(ctype); size > 0 && len(data) < size {
		return nil, errors.NewSQLError(constant.CRDataTruncated, constant.SSStringTruncated,
			"%s value needs %d bytes, got %d", ctype, size, len(data))
	}
	switch ctype {
	case constant.CChar:
		return c.DecodeText(data)
	case constant.CBinary:
		result := make([]byte, len(data))
		copy(result, data)
		return result, nil
	case constant.CSLong:
		v, _, _ := misc.ReadInt32(data, 0)
		return int64(v), nil
	case constant.CSBigInt:
		v, _, _ := misc.ReadInt64(data, 0)
		return v, nil
	case constant.CDouble:
		v, _, _ := misc.ReadFloat64(data, 0)
		return v, nil
	case constant.CBit:
		return data[0] != 0, nil
	case constant.CDate:
		return GetDate(data, c.loc), nil
	case constant.CTime:
		return GetTime(data, c.loc), nil
	case constant.CTimestamp:
		return GetTimestamp(data, c.loc), nil
	case constant.CTimestampTZ:
		return GetTimestampTZ(data), nil
	case constant.CInterval:
		v, _, _ := misc.ReadInt64(data, 0)
		return time.Duration(v), nil
	}
	return nil, errors.NewSQLError(constant.CRNotSupported, constant.SSOptionalFeature,
		"cannot decode %s rows", ctype)
}

func wrongType(ctype constant.CType, value interface{}) error {
	return errors.NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType,
		"cannot convert %T to %s", value, ctype)
}

// ToInt64 converts the integer kinds, integral floats, booleans and
// numeric text to int64.
func ToInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return uintToInt64(uint64(v))
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		return uintToInt64(v)
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		return parseInt64(v)
	case []byte:
		return parseInt64(string(v))
	}
	return 0, errors.NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType,
		"cannot convert %T to an integer", value)
}

func uintToInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, errors.NewSQLError(constant.CRValueOutOfRange, constant.SSNumericOutOfRange,
			"value %d out of range for a 64 bit integer", v)
	}
	return int64(v), nil
}

func floatToInt64(v float64) (int64, error) {
	if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, errors.NewSQLError(constant.CRValueOutOfRange, constant.SSNumericOutOfRange,
			"value %v is not a 64 bit integer", v)
	}
	return int64(v), nil
}

func parseInt64(s string) (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.NewSQLError(constant.CRWrongValueType, constant.SSInvalidCharacter,
			"invalid integer %q", s)
	}
	return i, nil
}

// ToFloat64 converts the numeric kinds and numeric text to float64.
func ToFloat64(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case string:
		return parseFloat64(v)
	case []byte:
		return parseFloat64(string(v))
	case uint64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	}
	i, err := ToInt64(value)
	if err != nil {
		return 0, err
	}
	return float64(i), nil
}

func parseFloat64(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.NewSQLError(constant.CRWrongValueType, constant.SSInvalidCharacter,
			"invalid number %q", s)
	}
	return f, nil
}

// ToBool converts booleans, integers and "true"/"false"/"1"/"0" text.
func ToBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return parseBool(v)
	case []byte:
		return parseBool(string(v))
	}
	i, err := ToInt64(value)
	if err != nil {
		return false, err
	}
	return i != 0, nil
}

func parseBool(s string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, errors.NewSQLError(constant.CRWrongValueType, constant.SSInvalidCharacter,
			"invalid boolean %q", s)
	}
	return b, nil
}

// ToTime converts time.Time and the common textual layouts. Text without a
// zone is read in the connection location.
func (c *Codec) ToTime(value interface{}) (time.Time, error) {
	var s string
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return time.Time{}, errors.NewSQLError(constant.CRWrongValueType, constant.SSRestrictedDataType,
			"cannot convert %T to a time", value)
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(s), c.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewSQLError(constant.CRWrongValueType, constant.SSInvalidCharacter,
		"invalid time %q", s)
}
