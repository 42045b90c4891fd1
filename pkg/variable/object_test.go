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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cectc/dbcli/pkg/constant"
	err2 "github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/native"
)

func registerPersonTypes(owner *testOwner) {
	owner.server.RegisterType(&native.ObjectType{Schema: "HR", Name: "ADDRESS", Members: []*native.ObjectMember{
		{Name: "STREET", SQLType: constant.SQLVarChar, Precision: 40},
		{Name: "ZIP", SQLType: constant.SQLInteger},
	}})
	owner.server.RegisterType(&native.ObjectType{Schema: "HR", Name: "PHONES", IsCollection: true,
		Element: &native.ObjectMember{Name: "PHONE", SQLType: constant.SQLVarChar, Precision: 20}})
	owner.server.RegisterType(&native.ObjectType{Schema: "HR", Name: "PERSON", Members: []*native.ObjectMember{
		{Name: "NAME", SQLType: constant.SQLVarChar, Precision: 30},
		{Name: "SALARY", SQLType: constant.SQLNumeric, Precision: 10, Scale: 2},
		{Name: "HOME", SQLType: constant.SQLStruct, TypeName: "HR.ADDRESS"},
		{Name: "PHONES", SQLType: constant.SQLArray, TypeName: "HR.PHONES"},
		{Name: "BIO", SQLType: constant.SQLClob},
	}})
}

func TestObjectRoundTrip(t *testing.T) {
	ctx := context.Background()
	owner := newTestOwner()
	registerPersonTypes(owner)
	typ, err := owner.ObjectType(ctx, "hr.person")
	require.NoError(t, err)

	home, err := NewRecord(typ.Members[2].Type, "Main St", int64(12345))
	require.NoError(t, err)
	person, err := NewRecord(typ, "Ann", Decimal("1234.50"), home, []interface{}{"555-1", nil, "555-3"}, nil)
	require.NoError(t, err)

	v, err := NewVariable(owner, Object, 1, 0)
	require.NoError(t, err)
	v.SetObjectType(typ)
	require.NoError(t, v.SetValue(ctx, 0, person))
	assert.Equal(t, int64(3), owner.server.Live())

	value, err := v.GetValue(ctx, 0)
	require.NoError(t, err)
	got := value.(*Record)
	assert.True(t, v.IsNull(0), "the object moved to the record")

	name, err := got.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "Ann", name)
	salary, err := got.Get("SALARY")
	require.NoError(t, err)
	assert.Equal(t, Decimal("1234.50"), salary)
	bio, err := got.Get("BIO")
	require.NoError(t, err)
	assert.Nil(t, bio)

	nested, err := got.Get("HOME")
	require.NoError(t, err)
	homeValues, err := nested.(*Record).Values()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Main St", int64(12345)}, homeValues)

	phones, err := got.Index(3)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"555-1", nil, "555-3"}, phones)

	v.Free()
	assert.Equal(t, int64(3), owner.server.Live())
	got.Free()
	assert.Equal(t, int64(0), owner.server.Live())

	_, err = got.Get("NAME")
	assert.True(t, errors.Is(err, err2.ErrInvalidatedValue))
}

func TestObjectFromPositionalValues(t *testing.T) {
	ctx := context.Background()
	owner := newTestOwner()
	registerPersonTypes(owner)
	typ, err := owner.ObjectType(ctx, "HR.ADDRESS")
	require.NoError(t, err)

	cases := map[string]struct {
		value    interface{}
		expected []interface{}
		err      error
	}{
		"slice":       {[]interface{}{"Elm St", int64(7)}, []interface{}{"Elm St", int64(7)}, nil},
		"map":         {map[string]interface{}{"zip": int64(9)}, []interface{}{nil, int64(9)}, nil},
		"short slice": {[]interface{}{"Elm St"}, []interface{}{"Elm St", nil}, nil},
		"long slice":  {[]interface{}{"Elm St", int64(7), "extra"}, []interface{}{"Elm St", int64(7)}, nil},
		"bad member":  {[]interface{}{"Elm St", "nine"}, nil, err2.ErrWrongValueType},
	}

	for caseTitle, tc := range cases {
		t.Run(caseTitle, func(t *testing.T) {
			obj, err := FromHost(ctx, owner, typ, tc.value)
			if tc.err != nil {
				assert.True(t, errors.Is(err, tc.err), "got %v", err)
				assert.Equal(t, int64(0), owner.server.Live())
				return
			}
			require.NoError(t, err)
			value, err := ToHost(ctx, owner, obj)
			require.NoError(t, err)
			values, err := value.(*Record).Values()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, values)
			obj.Free()
		})
	}
}

func TestNewRecordArity(t *testing.T) {
	ctx := context.Background()
	owner := newTestOwner()
	registerPersonTypes(owner)
	typ, err := owner.ObjectType(ctx, "HR.ADDRESS")
	require.NoError(t, err)

	cases := map[string]struct {
		values   []interface{}
		expected []interface{}
	}{
		"exact":   {[]interface{}{"Elm St", int64(7)}, []interface{}{"Elm St", int64(7)}},
		"missing": {[]interface{}{"Elm St"}, []interface{}{"Elm St", nil}},
		"none":    {nil, []interface{}{nil, nil}},
		"excess":  {[]interface{}{"Elm St", int64(7), "extra", int64(8)}, []interface{}{"Elm St", int64(7)}},
	}

	for caseTitle, tc := range cases {
		t.Run(caseTitle, func(t *testing.T) {
			rec, err := NewRecord(typ, tc.values...)
			require.NoError(t, err)
			assert.Equal(t, 2, rec.Len())
			values, err := rec.Values()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, values)
		})
	}
}

func TestObjectTypeMismatch(t *testing.T) {
	ctx := context.Background()
	owner := newTestOwner()
	registerPersonTypes(owner)
	address, err := owner.ObjectType(ctx, "HR.ADDRESS")
	require.NoError(t, err)
	person, err := owner.ObjectType(ctx, "HR.PERSON")
	require.NoError(t, err)

	rec, err := NewRecord(address, "Main St", int64(1))
	require.NoError(t, err)
	v, err := NewVariable(owner, Object, 1, 0)
	require.NoError(t, err)
	defer v.Free()
	v.SetObjectType(person)

	err = v.SetValue(ctx, 0, rec)
	assert.True(t, errors.Is(err, err2.ErrWrongValueType))

	rec.Free()
	err = v.SetValue(ctx, 0, rec)
	assert.True(t, errors.Is(err, err2.ErrInvalidatedValue))
}

func TestObjectPreDefine(t *testing.T) {
	ctx := context.Background()
	owner := newTestOwner()
	registerPersonTypes(owner)

	v, err := NewVariable(owner, Object, 1, 0)
	require.NoError(t, err)
	defer v.Free()
	require.NoError(t, v.PreDefine(ctx, &native.ColumnDesc{Name: "PHONES", SQLType: constant.SQLArray, TypeName: "HR.PHONES"}))
	require.NotNil(t, v.ObjectType())
	assert.True(t, v.ObjectType().IsCollection)
	assert.Equal(t, constant.SQLArray, v.SQLType())
	assert.Equal(t, constant.ParamResultCol, v.Direction())

	err = v.PreDefine(ctx, &native.ColumnDesc{Name: "X", SQLType: constant.SQLStruct, TypeName: "HR.NOPE"})
	assert.NoError(t, err, "the type is resolved once")

	other, err := NewVariable(owner, Object, 1, 0)
	require.NoError(t, err)
	defer other.Free()
	err = other.PreDefine(ctx, &native.ColumnDesc{Name: "X", SQLType: constant.SQLStruct, TypeName: "HR.NOPE"})
	require.Error(t, err)
	assert.Equal(t, 4043, err.(*err2.SQLError).Number)
}

func TestCollectionVariable(t *testing.T) {
	ctx := context.Background()
	owner := newTestOwner()
	registerPersonTypes(owner)
	phones, err := owner.ObjectType(ctx, "HR.PHONES")
	require.NoError(t, err)

	v, err := NewVariable(owner, Object, 1, 0)
	require.NoError(t, err)
	v.SetObjectType(phones)
	require.NoError(t, v.SetValue(ctx, 0, []interface{}{"1", "2"}))

	value, err := v.GetValue(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"1", "2"}, value)
	assert.False(t, v.IsNull(0), "collections stay with the variable")

	v.Free()
	assert.Equal(t, int64(0), owner.server.Live())
}
