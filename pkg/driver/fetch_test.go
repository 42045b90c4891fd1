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
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/native"
	"github.com/cectc/dbcli/pkg/native/nativetest"
	"github.com/cectc/dbcli/pkg/variable"
)

const selectEmployees = "SELECT emp_no, name FROM employees"

func handleEmployees(server *nativetest.Server, n int, unknownCount bool) {
	server.Handle(selectEmployees, &nativetest.Script{
		Kind:            constant.StatementSelect,
		ResultSets:      []*nativetest.ResultSet{{Columns: employeeColumns(), Rows: employeeRows(n)}},
		UnknownRowCount: unknownCount,
	})
}

func TestFetchArraySizes(t *testing.T) {
	cases := map[string]struct {
		rows         int
		arraySize    int
		unknownCount bool
		fetches      int64
	}{
		"exact batches":          {rows: 6, arraySize: 3, fetches: 2},
		"partial last batch":     {rows: 7, arraySize: 3, fetches: 3},
		"single batch":           {rows: 5, arraySize: 10, fetches: 1},
		"one row per fetch":      {rows: 3, arraySize: 1, fetches: 3},
		"empty result":           {rows: 0, arraySize: 5, fetches: 0},
		"unknown count":          {rows: 6, arraySize: 3, unknownCount: true, fetches: 3},
		"unknown count, partial": {rows: 7, arraySize: 3, unknownCount: true, fetches: 3},
	}

	for caseTitle, tc := range cases {
		t.Run(caseTitle, func(t *testing.T) {
			ctx := context.Background()
			server, cur := newTestCursor(t)
			handleEmployees(server, tc.rows, tc.unknownCount)
			require.NoError(t, cur.SetArraySize(tc.arraySize))

			require.NoError(t, cur.Execute(ctx, selectEmployees))
			assert.Equal(t, StateResultSetOpen, cur.State())
			rows, err := cur.FetchAll(ctx)
			require.NoError(t, err)
			assert.Equal(t, employeeRows(tc.rows), rows)
			assert.Equal(t, tc.fetches, server.Calls.Fetch.Load())

			_, err = cur.FetchOne(ctx)
			assert.Equal(t, io.EOF, err)
			rows, err = cur.FetchMany(ctx, 10)
			require.NoError(t, err)
			assert.Empty(t, rows)
			assert.NotNil(t, rows)
			assert.Equal(t, tc.fetches, server.Calls.Fetch.Load(), "reading past the end does not fetch")
			assert.Equal(t, int64(tc.rows), cur.RowNumber())
		})
	}
}

func TestFetchMixed(t *testing.T) {
	ctx := context.Background()
	server, cur := newTestCursor(t)
	handleEmployees(server, 5, false)
	require.NoError(t, cur.SetArraySize(2))
	require.NoError(t, cur.Execute(ctx, selectEmployees))
	expected := employeeRows(5)

	row, err := cur.FetchOne(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected[0], row)
	assert.Equal(t, StateFetching, cur.State())

	rows, err := cur.FetchMany(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, expected[1:4], rows)

	rows, err = cur.FetchMany(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, expected[4:], rows)

	rows, err = cur.FetchAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, int64(5), cur.RowNumber())
	assert.Equal(t, int64(5), cur.RowCount())
}

func TestEmptyResultDoesNotFetch(t *testing.T) {
	ctx := context.Background()
	server, cur := newTestCursor(t)
	handleEmployees(server, 0, false)

	require.NoError(t, cur.Execute(ctx, selectEmployees))
	_, err := cur.FetchOne(ctx)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, int64(0), server.Calls.Fetch.Load())
}

func TestDescription(t *testing.T) {
	ctx := context.Background()
	server, cur := newTestCursor(t)
	handleEmployees(server, 1, false)
	require.NoError(t, cur.Execute(ctx, selectEmployees))

	columns := cur.Description()
	require.Len(t, columns, 2)
	assert.Equal(t, "EMP_NO", columns[0].Name)
	assert.Equal(t, variable.Int32, columns[0].Type)
	assert.Equal(t, scanTypeInt64, columns[0].ScanType())
	assert.Equal(t, "NAME", columns[1].Name)
	assert.Equal(t, variable.String, columns[1].Type)
	assert.Equal(t, scanTypeNullString, columns[1].ScanType())
	length, ok := columns[1].Length()
	assert.True(t, ok)
	assert.Equal(t, int64(20), length)
	assert.Equal(t, 20*constant.BytesPerChar, cur.FetchVars()[1].Size())
	assert.Equal(t, constant.DefaultArraySize, cur.FetchVars()[0].Rows())
}

func TestOutputSizeOverride(t *testing.T) {
	cases := map[string]struct {
		column   int
		expected []int
	}{
		"every column": {column: 0, expected: []int{64, 64}},
		"one column":   {column: 2, expected: []int{20 * constant.BytesPerChar, 64}},
	}

	for caseTitle, tc := range cases {
		t.Run(caseTitle, func(t *testing.T) {
			ctx := context.Background()
			server, cur := newTestCursor(t)
			server.Handle("SELECT a, b FROM t", &nativetest.Script{
				Kind: constant.StatementSelect,
				ResultSets: []*nativetest.ResultSet{{Columns: []native.ColumnDesc{
					{Name: "A", SQLType: constant.SQLVarChar, DisplaySize: 20},
					{Name: "B", SQLType: constant.SQLVarChar, DisplaySize: 20},
				}}},
			})
			cur.SetOutputSize(64, tc.column)
			require.NoError(t, cur.Execute(ctx, "SELECT a, b FROM t"))
			for i, v := range cur.FetchVars() {
				assert.Equal(t, tc.expected[i], v.Size())
			}
		})
	}
}

func TestFetchTruncationWarning(t *testing.T) {
	ctx := context.Background()
	server, cur := newTestCursor(t)
	server.Handle("SELECT note FROM t", &nativetest.Script{
		Kind: constant.StatementSelect,
		ResultSets: []*nativetest.ResultSet{{
			Columns: []native.ColumnDesc{{Name: "NOTE", SQLType: constant.SQLVarChar, DisplaySize: 2}},
			Rows:    [][]interface{}{{"abcdefghijk"}},
		}},
	})

	require.NoError(t, cur.Execute(ctx, "SELECT note FROM t"))
	row, err := cur.FetchOne(ctx)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"abcdefgh"}, row)
	require.NotNil(t, cur.Warning())
	assert.Equal(t, constant.SSStringTruncated, cur.Warning().State)
	assert.Equal(t, constant.ClassWarning, cur.Warning().Class)
}

func TestNextResultSet(t *testing.T) {
	ctx := context.Background()
	server, cur := newTestCursor(t)
	server.Handle("{call two_results()}", &nativetest.Script{
		Kind: constant.StatementCall,
		ResultSets: []*nativetest.ResultSet{
			{Columns: employeeColumns(), Rows: employeeRows(2)},
			{Columns: []native.ColumnDesc{{Name: "TOTAL", SQLType: constant.SQLBigInt}}, Rows: [][]interface{}{{int64(2)}}},
		},
	})

	_, err := cur.CallProc(ctx, "two_results")
	require.NoError(t, err)
	rows, err := cur.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, employeeRows(2), rows)

	ok, err := cur.NextResultSet(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, cur.Description(), 1)
	assert.Equal(t, "TOTAL", cur.Description()[0].Name)
	assert.Equal(t, int64(1), cur.RowCount())
	rows, err = cur.FetchAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{{int64(2)}}, rows)

	ok, err = cur.NextResultSet(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, cur.Description())
	assert.Equal(t, StateExecuted, cur.State())
}

func TestNextResultSetWithoutExecute(t *testing.T) {
	_, cur := newTestCursor(t)
	ok, err := cur.NextResultSet(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFetchLongClob(t *testing.T) {
	const selectNotes = "SELECT id, body, raw FROM notes"
	ctx := context.Background()
	body := strings.Repeat("x", 200000)
	raw := bytes.Repeat([]byte{0xab}, defaultLongSize+1)
	server, cur := newTestCursor(t)
	server.Handle(selectNotes, &nativetest.Script{
		Kind: constant.StatementSelect,
		ResultSets: []*nativetest.ResultSet{{
			Columns: []native.ColumnDesc{
				{Name: "ID", SQLType: constant.SQLInteger, Precision: 10},
				{Name: "BODY", SQLType: constant.SQLClob, Nullable: true},
				{Name: "RAW", SQLType: constant.SQLBlob, Nullable: true},
			},
			Rows: [][]interface{}{{int64(1), body, raw}, {int64(2), nil, nil}},
		}},
	})

	require.NoError(t, cur.Execute(ctx, selectNotes))
	assert.Equal(t, variable.ClobAsText, cur.Description()[1].Type)
	assert.Equal(t, variable.BlobAsBytes, cur.Description()[2].Type)
	rows, err := cur.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0][1], 200000)
	assert.Equal(t, body, rows[0][1])
	assert.Equal(t, raw, rows[0][2])
	assert.Nil(t, rows[1][1])
	assert.Nil(t, rows[1][2])

	require.NoError(t, cur.Close())
	assert.Equal(t, int64(0), server.Live())
}
