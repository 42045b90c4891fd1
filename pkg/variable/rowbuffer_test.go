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
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	err2 "github.com/cectc/dbcli/pkg/errors"
)

func TestRowBufferResize(t *testing.T) {
	buf, err := NewRowBuffer(3, 2)
	require.NoError(t, err)
	copy(buf.Row(0), "ab")
	copy(buf.Row(2), "yz")

	require.NoError(t, buf.Resize(4))
	assert.Equal(t, 4, buf.Stride())
	assert.Equal(t, []byte{'a', 'b', 0, 0}, buf.Row(0))
	assert.Equal(t, []byte{'y', 'z', 0, 0}, buf.Row(2))

	require.NoError(t, buf.Resize(1))
	assert.Equal(t, []byte{'y'}, buf.Row(2))

	buf.Clear(2)
	assert.Equal(t, []byte{0}, buf.Row(2))
}

func TestRowBufferBorrow(t *testing.T) {
	buf, err := NewRowBuffer(2, 2)
	require.NoError(t, err)

	data := buf.Borrow()
	assert.Len(t, data, 4)
	assert.True(t, buf.Borrowed())
	err = buf.Resize(8)
	assert.True(t, errors.Is(err, err2.ErrBufferBorrowed))
	assert.Equal(t, 2, buf.Stride())

	buf.Release()
	buf.Release()
	assert.False(t, buf.Borrowed())
	assert.NoError(t, buf.Resize(8))
}

func TestRowBufferRowIsCapped(t *testing.T) {
	buf, err := NewRowBuffer(2, 2)
	require.NoError(t, err)
	row := buf.Row(0)
	row = append(row, 'x')
	assert.Equal(t, []byte{0, 0}, buf.Row(1))
	assert.Len(t, row, 3)
}

func TestNewRowBufferArguments(t *testing.T) {
	_, err := NewRowBuffer(0, 4)
	assert.True(t, errors.Is(err, err2.ErrInvalidArgument))
	_, err = NewRowBuffer(1, -1)
	assert.True(t, errors.Is(err, err2.ErrInvalidArgument))
}

func TestDecimal(t *testing.T) {
	cases := map[string]struct {
		rat      *big.Rat
		expected Decimal
	}{
		"integer":   {big.NewRat(42, 1), "42"},
		"half":      {big.NewRat(1, 2), "0.5"},
		"negative":  {big.NewRat(-5, 4), "-1.25"},
		"fifths":    {big.NewRat(3, 25), "0.12"},
		"repeating": {big.NewRat(1, 3), "0.33333333333333333333333333333333333333"},
	}

	for caseTitle, tc := range cases {
		t.Run(caseTitle, func(t *testing.T) {
			assert.Equal(t, tc.expected, DecimalFromRat(tc.rat))
		})
	}

	d, err := NewDecimal(" +1.500 ")
	require.NoError(t, err)
	assert.Equal(t, Decimal("1.500"), d)
	assert.Equal(t, 0, d.Cmp(Decimal("1.5")))
	f, err := d.Float64()
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	_, err = NewDecimal("abc")
	assert.True(t, errors.Is(err, err2.ErrWrongValueType))
	_, err = NewDecimal("")
	assert.Error(t, err)
	assert.Equal(t, Decimal("0.1"), DecimalFromFloat(0.1))
}
