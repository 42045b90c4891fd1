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
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/native"
	"github.com/cectc/dbcli/pkg/native/nativetest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("github.com/patrickmn/go-cache.(*janitor).Run"))
}

func newTestConnection(t *testing.T, options ...func(*Options)) (*nativetest.Server, *Connection) {
	server := nativetest.NewServer()
	opts := DefaultOptions()
	for _, option := range options {
		option(&opts)
	}
	conn, err := NewConnection(server.Connect(), "test", opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
	})
	return server, conn
}

func newTestCursor(t *testing.T, options ...func(*Options)) (*nativetest.Server, *Cursor) {
	server, conn := newTestConnection(t, options...)
	cur, err := conn.Cursor()
	require.NoError(t, err)
	t.Cleanup(func() {
		cur.Close()
	})
	return server, cur
}

func employeeColumns() []native.ColumnDesc {
	return []native.ColumnDesc{
		{Name: "EMP_NO", SQLType: constant.SQLInteger, Precision: 10},
		{Name: "NAME", SQLType: constant.SQLVarChar, DisplaySize: 20, Precision: 20, Nullable: true},
	}
}

func employeeRows(n int) [][]interface{} {
	rows := make([][]interface{}, n)
	for i := range rows {
		rows[i] = []interface{}{int64(i + 1), string(rune('a' + i%26))}
	}
	return rows
}
