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

package log

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]struct {
		in  string
		out zapcore.Level
	}{
		"debug":   {"DEBUG", zapcore.DebugLevel},
		"warning": {"warning", zapcore.WarnLevel},
		"error":   {"error", zapcore.ErrorLevel},
		"empty":   {"", zapcore.InfoLevel},
		"unknown": {"verbose", zapcore.InfoLevel},
	}

	for caseTitle, tc := range cases {
		t.Run(caseTitle, func(t *testing.T) {
			assert.Equal(t, tc.out, parseLevel(tc.in))
		})
	}
}

func TestInitWritesRotatingFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "dbcli.log")
	Init(&Config{Level: "debug", Filename: filename, MaxSize: 1})
	defer SetLevel("info")

	child := With("conn", "c1")
	assert.True(t, child.DebugEnabled())
	child.Debugf("bind position %d", 1)
	_ = Sync()
	_ = child.Sync()

	content, err := ioutil.ReadFile(filename)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "bind position 1")
	assert.Contains(t, string(content), "c1")

	SetLevel("error")
	assert.False(t, child.DebugEnabled())
	assert.False(t, NewNop().DebugEnabled())
}
