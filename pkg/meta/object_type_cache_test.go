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

package meta

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/native"
	"github.com/cectc/dbcli/pkg/native/nativetest"
)

func newServer() *nativetest.Server {
	server := nativetest.NewServer()
	server.RegisterType(&native.ObjectType{Schema: "HR", Name: "ADDRESS", Members: []*native.ObjectMember{
		{Name: "STREET", SQLType: constant.SQLVarChar, Precision: 40},
	}})
	server.RegisterType(&native.ObjectType{Schema: "HR", Name: "PERSON", Members: []*native.ObjectMember{
		{Name: "NAME", SQLType: constant.SQLVarChar, Precision: 30},
		{Name: "HOME", SQLType: constant.SQLStruct, TypeName: "HR.ADDRESS"},
	}})
	server.RegisterType(&native.ObjectType{Schema: "HR", Name: "PEOPLE", IsCollection: true,
		Element: &native.ObjectMember{Name: "PERSON", SQLType: constant.SQLStruct, TypeName: "HR.PERSON"}})
	return server
}

func TestGetObjectType(t *testing.T) {
	ctx := context.Background()
	server := newServer()
	conn := server.Connect()
	c := NewObjectTypeCache()

	typ, err := c.GetObjectType(ctx, conn, "hr.people")
	require.NoError(t, err)
	assert.True(t, typ.IsCollection)
	person := typ.Element.Type
	require.NotNil(t, person)
	assert.Equal(t, "HR.PERSON", person.FullName())
	require.NotNil(t, person.Members[1].Type)
	assert.Equal(t, "ADDRESS", person.Members[1].Type.Name)
	assert.Equal(t, int64(3), server.Calls.DescribeType.Load())
	assert.Equal(t, 3, c.Len())

	again, err := c.GetObjectType(ctx, conn, `"HR"."PERSON"`)
	require.NoError(t, err)
	assert.Same(t, person, again)
	assert.Equal(t, int64(3), server.Calls.DescribeType.Load())

	c.Invalidate("HR.PERSON")
	_, err = c.GetObjectType(ctx, conn, "HR.PERSON")
	require.NoError(t, err)
	assert.Equal(t, int64(4), server.Calls.DescribeType.Load(), "the address is still cached")
}

func TestGetObjectTypeErrors(t *testing.T) {
	ctx := context.Background()
	server := newServer()
	server.RegisterType(&native.ObjectType{Schema: "HR", Name: "BROKEN", Members: []*native.ObjectMember{
		{Name: "X", SQLType: constant.SQLStruct, TypeName: "HR.MISSING"},
	}})
	c := NewObjectTypeCache()

	_, err := c.GetObjectType(ctx, server.Connect(), "")
	assert.Error(t, err)
	_, err = c.GetObjectType(ctx, server.Connect(), "HR.MISSING")
	assert.Error(t, err)
	_, err = c.GetObjectType(ctx, server.Connect(), "HR.BROKEN")
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	server := newServer()
	conn := server.Connect()
	c := NewObjectTypeCache()

	before, err := c.GetObjectType(ctx, conn, "HR.ADDRESS")
	require.NoError(t, err)
	require.NoError(t, c.Refresh(ctx, conn))
	same, err := c.GetObjectType(ctx, conn, "HR.ADDRESS")
	require.NoError(t, err)
	assert.Same(t, before, same, "unchanged types are kept")

	server.RegisterType(&native.ObjectType{Schema: "HR", Name: "ADDRESS", Members: []*native.ObjectMember{
		{Name: "STREET", SQLType: constant.SQLVarChar, Precision: 40},
		{Name: "CITY", SQLType: constant.SQLVarChar, Precision: 40},
	}})
	require.NoError(t, c.Refresh(ctx, conn))
	after, err := c.GetObjectType(ctx, conn, "HR.ADDRESS")
	require.NoError(t, err)
	assert.Len(t, after.Members, 2)
}

func TestGetCacheKey(t *testing.T) {
	c := NewObjectTypeCache()
	assert.Equal(t, "HR.PERSON", c.GetCacheKey(" hr.person "))
	assert.Equal(t, "HR.PERSON", c.GetCacheKey("`hr`.`person`"))
	assert.Equal(t, "PERSON", c.GetCacheKey(`"Person"`))
}
