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

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/native"
)

const lobChunkSize = 32 * 1024

// Lob wraps a large object locator. Offsets are 0-based byte positions.
type Lob struct {
	lob    native.Lob
	codec  *native.Codec
	owned  bool
	closed bool
}

func newLob(lob native.Lob, codec *native.Codec, owned bool) *Lob {
	return &Lob{lob: lob, codec: codec, owned: owned}
}

func (l *Lob) handle() (native.Lob, error) {
	if l.closed || l.lob == nil {
		return nil, errors.ErrInvalidatedValue
	}
	return l.lob, nil
}

func (l *Lob) SQLType() constant.SQLType {
	if l.lob == nil {
		return constant.SQLUnknown
	}
	return l.lob.SQLType()
}

// Size returns the length in bytes.
func (l *Lob) Size(ctx context.Context) (int64, error) {
	h, err := l.handle()
	if err != nil {
		return 0, err
	}
	size, ret := h.Length(ctx)
	if !ret.Succeeded() {
		return 0, native.Error(h, ret, "lob length")
	}
	return size, nil
}

// Read returns at most amount bytes starting at offset, an amount of 0
// reads the rest of the value.
func (l *Lob) Read(ctx context.Context, offset, amount int64) ([]byte, error) {
	h, err := l.handle()
	if err != nil {
		return nil, err
	}
	if offset < 0 || amount < 0 {
		return nil, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
			"invalid lob range offset %d amount %d", offset, amount)
	}
	if amount == 0 {
		size, err := l.Size(ctx)
		if err != nil {
			return nil, err
		}
		if amount = size - offset; amount <= 0 {
			return []byte{}, nil
		}
	}
	data, ret := h.Read(ctx, offset, amount)
	if ret == constant.NoData {
		return []byte{}, nil
	}
	if !ret.Succeeded() {
		return nil, native.Error(h, ret, "lob read")
	}
	return data, nil
}

// ReadAll reads the whole value in chunks.
func (l *Lob) ReadAll(ctx context.Context) ([]byte, error) {
	size, err := l.Size(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]byte, 0, size)
	for offset := int64(0); offset < size; {
		chunk, err := l.Read(ctx, offset, lobChunkSize)
		if err != nil {
			return nil, err
		}
		if len(chunk) == 0 {
			break
		}
		result = append(result, chunk...)
		offset += int64(len(chunk))
	}
	return result, nil
}

// Text reads the whole value and decodes it from the connection character set.
func (l *Lob) Text(ctx context.Context) (string, error) {
	data, err := l.ReadAll(ctx)
	if err != nil {
		return "", err
	}
	return l.codec.DecodeText(data)
}

// Write stores data at offset and returns the number of bytes written.
func (l *Lob) Write(ctx context.Context, offset int64, data []byte) (int64, error) {
	h, err := l.handle()
	if err != nil {
		return 0, err
	}
	n, ret := h.Write(ctx, offset, data)
	if !ret.Succeeded() {
		return 0, native.Error(h, ret, "lob write")
	}
	return n, nil
}

func (l *Lob) WriteString(ctx context.Context, offset int64, s string) (int64, error) {
	data, err := l.codec.EncodeText(s)
	if err != nil {
		return 0, err
	}
	return l.Write(ctx, offset, data)
}

// Truncate cuts the value to size bytes and returns the resulting length.
func (l *Lob) Truncate(ctx context.Context, size int64) (int64, error) {
	h, err := l.handle()
	if err != nil {
		return 0, err
	}
	if err = native.Check(h, h.Truncate(ctx, size), "lob truncate"); err != nil {
		return 0, err
	}
	return l.Size(ctx)
}

// Close frees the locator when the Lob owns it.
func (l *Lob) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if !l.owned || l.lob == nil {
		return nil
	}
	return native.Check(l.lob, l.lob.Free(), "lob free")
}
