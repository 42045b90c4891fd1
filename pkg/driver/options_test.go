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

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cectc/dbcli/pkg/config"
	err2 "github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/native/nativetest"
)

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions("arraysize=50, stream_output=true, Output_Size=512,outputsizecolumn=2,trace=1", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 50, opts.ArraySize)
	assert.Equal(t, 1, opts.BindArraySize)
	assert.True(t, opts.StreamOutput)
	assert.Equal(t, 512, opts.OutputSize)
	assert.Equal(t, 2, opts.OutputSizeColumn)
	assert.True(t, opts.Trace)
	assert.Equal(t, "utf-8", opts.Encoding)

	opts, err = ParseOptions("", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)
}

func TestParseOptionsErrors(t *testing.T) {
	cases := map[string]string{
		"missing value":   "arraysize",
		"unknown key":     "fetch_everything=yes",
		"not a number":    "arraysize=many",
		"not a bool":      "stream_output=perhaps",
		"zero array size": "arraysize=0",
		"negative column": "output_size_column=-1",
	}

	for caseTitle, s := range cases {
		t.Run(caseTitle, func(t *testing.T) {
			opts, err := ParseOptions(s, DefaultOptions())
			assert.True(t, errors.Is(err, err2.ErrInvalidOption), "got %v", err)
			assert.Equal(t, DefaultOptions(), opts)
		})
	}
}

func TestOptionsFromConfig(t *testing.T) {
	ds := &config.DataSource{Name: "hr", TimeZone: "UTC", NumbersAsText: true, LobAsHandle: true}
	cur := &config.Cursor{ArraySize: 20, BindArraySize: 5, OutputSize: -1, StreamOutput: true}

	opts := OptionsFromConfig(ds, cur)
	assert.Equal(t, 20, opts.ArraySize)
	assert.Equal(t, 5, opts.BindArraySize)
	assert.True(t, opts.StreamOutput)
	assert.True(t, opts.NumbersAsText)
	assert.True(t, opts.LobAsHandle)
	assert.Equal(t, "UTC", opts.TimeZone)
	assert.Equal(t, "utf-8", opts.Encoding)

	assert.Equal(t, DefaultOptions(), OptionsFromConfig(nil, nil))
}

func TestNewConnectionRejectsOptions(t *testing.T) {
	_, err := NewConnection(nil, "test", DefaultOptions())
	assert.True(t, errors.Is(err, err2.ErrNotConnected))

	server := nativetest.NewServer()
	opts := DefaultOptions()
	opts.TimeZone = "Mars/Olympus_Mons"
	_, err = NewConnection(server.Connect(), "test", opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.ArraySize = 0
	_, err = NewConnection(server.Connect(), "test", opts)
	assert.True(t, errors.Is(err, err2.ErrInvalidOption))
}
