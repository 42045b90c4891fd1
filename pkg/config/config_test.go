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

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
log:
  level: debug
cursor:
  array_size: 50
  stream_output: true
data_sources:
  - name: employees
    type: mysql
    dsn: root:123456@tcp(127.0.0.1:3306)/employees
    numbers_as_text: true
  - name: local
    type: sqlite3
    dsn: file::memory:?cache=shared
    time_zone: Asia/Shanghai
    lob_as_handle: true
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 50, cfg.Cursor.ArraySize)
	assert.True(t, cfg.Cursor.StreamOutput)
	require.Len(t, cfg.DataSources, 2)

	ds, err := cfg.DataSource("EMPLOYEES")
	require.NoError(t, err)
	assert.Equal(t, DBMysql, ds.Type)
	assert.True(t, ds.NumbersAsText)
	assert.Equal(t, "utf-8", ds.Encoding)

	ds, err = cfg.DataSource("local")
	require.NoError(t, err)
	assert.Equal(t, DBSqlite, ds.Type)
	assert.Equal(t, "sqlite3", ds.Type.String())
	assert.True(t, ds.LobAsHandle)

	_, err = cfg.DataSource("nope")
	assert.Error(t, err)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("data_sources: []\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCursor(), cfg.Cursor)
	assert.Equal(t, 100, cfg.Cursor.ArraySize)
	assert.Equal(t, 1, cfg.Cursor.BindArraySize)
	assert.Equal(t, -1, cfg.Cursor.OutputSize)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"bad type":       "data_sources:\n  - name: a\n    type: oracle\n    dsn: x\n",
		"missing dsn":    "data_sources:\n  - name: a\n",
		"missing name":   "data_sources:\n  - dsn: x\n",
		"duplicate name": "data_sources:\n  - name: a\n    dsn: x\n  - name: A\n    dsn: y\n",
		"bad array size": "cursor:\n  array_size: 0\n  bind_array_size: 1\n",
		"not yaml":       "data_sources: [",
	}

	for caseTitle, content := range cases {
		t.Run(caseTitle, func(t *testing.T) {
			_, err := Parse([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "dbcli")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(sample), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.DataSources, 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
