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
	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/errors"
)

// RowBuffer is a byte arena of rows*stride bytes. A native binding borrows
// the arena, and Resize refuses to move it while a borrow is outstanding.
type RowBuffer struct {
	data    []byte
	stride  int
	rows    int
	borrows int
}

func NewRowBuffer(rows, stride int) (*RowBuffer, error) {
	if rows < 1 {
		return nil, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
			"row buffer needs at least one row, got %d", rows)
	}
	if stride < 0 {
		return nil, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
			"negative row size %d", stride)
	}
	data, err := allocate(rows * stride)
	if err != nil {
		return nil, err
	}
	return &RowBuffer{data: data, stride: stride, rows: rows}, nil
}

func allocate(size int) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewSQLError(constant.CROutOfMemory, constant.SSMemoryAllocation,
				"cannot allocate %d bytes: %v", size, r)
		}
	}()
	return make([]byte, size), nil
}

func (b *RowBuffer) Stride() int {
	return b.stride
}

func (b *RowBuffer) Rows() int {
	return b.rows
}

// Row returns the bytes of row i. The slice is capped at the stride.
func (b *RowBuffer) Row(i int) []byte {
	start := i * b.stride
	end := start + b.stride
	return b.data[start:end:end]
}

// Borrow hands the whole arena to a binding.
func (b *RowBuffer) Borrow() []byte {
	b.borrows++
	return b.data
}

// Release ends one borrow.
func (b *RowBuffer) Release() {
	if b.borrows > 0 {
		b.borrows--
	}
}

func (b *RowBuffer) Borrowed() bool {
	return b.borrows > 0
}

// Resize changes the stride, copying every row forward at its old stride.
func (b *RowBuffer) Resize(stride int) error {
	if b.borrows > 0 {
		return errors.ErrBufferBorrowed
	}
	if stride == b.stride {
		return nil
	}
	data, err := allocate(b.rows * stride)
	if err != nil {
		return err
	}
	keep := b.stride
	if stride < keep {
		keep = stride
	}
	for i := 0; i < b.rows; i++ {
		copy(data[i*stride:i*stride+keep], b.data[i*b.stride:i*b.stride+keep])
	}
	b.data = data
	b.stride = stride
	return nil
}

// Clear zeroes row i.
func (b *RowBuffer) Clear(i int) {
	row := b.Row(i)
	for j := range row {
		row[j] = 0
	}
}
