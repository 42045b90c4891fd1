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

package sqladapter

import (
	"context"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/native"
)

// lob holds a large object value client side. Offsets are byte positions
// in the encoded value.
type lob struct {
	sqlType constant.SQLType
	data    []byte
	freed   bool
	diag    []native.DiagRecord
}

func newLob(sqlType constant.SQLType, data []byte) *lob {
	return &lob{sqlType: sqlType, data: append([]byte(nil), data...)}
}

func (l *lob) Diagnostics() []native.DiagRecord {
	return l.diag
}

func (l *lob) check() constant.Return {
	l.diag = nil
	if l.freed {
		return constant.InvalidHandle
	}
	return constant.Success
}

func (l *lob) SQLType() constant.SQLType {
	return l.sqlType
}

func (l *lob) Length(ctx context.Context) (int64, constant.Return) {
	if ret := l.check(); ret != constant.Success {
		return 0, ret
	}
	return int64(len(l.data)), constant.Success
}

func (l *lob) Read(ctx context.Context, offset int64, amount int64) ([]byte, constant.Return) {
	if ret := l.check(); ret != constant.Success {
		return nil, ret
	}
	if offset < 0 || amount < 0 {
		l.diag = append(l.diag, record(constant.SSInvalidArgument, constant.CRInvalidArgument,
			"invalid read of %d bytes at %d", amount, offset))
		return nil, constant.Error
	}
	if offset >= int64(len(l.data)) {
		return nil, constant.NoData
	}
	end := offset + amount
	if end > int64(len(l.data)) {
		end = int64(len(l.data))
	}
	return append([]byte(nil), l.data[offset:end]...), constant.Success
}

func (l *lob) Write(ctx context.Context, offset int64, data []byte) (int64, constant.Return) {
	if ret := l.check(); ret != constant.Success {
		return 0, ret
	}
	if offset < 0 || offset > int64(len(l.data)) {
		l.diag = append(l.diag, record(constant.SSInvalidArgument, constant.CRInvalidArgument,
			"offset %d beyond end %d", offset, len(l.data)))
		return 0, constant.Error
	}
	end := offset + int64(len(data))
	if end > int64(len(l.data)) {
		grown := make([]byte, end)
		copy(grown, l.data)
		l.data = grown
	}
	copy(l.data[offset:end], data)
	return int64(len(data)), constant.Success
}

func (l *lob) Truncate(ctx context.Context, size int64) constant.Return {
	if ret := l.check(); ret != constant.Success {
		return ret
	}
	if size < int64(len(l.data)) {
		l.data = l.data[:size]
	}
	return constant.Success
}

func (l *lob) Free() constant.Return {
	if l.freed {
		return constant.InvalidHandle
	}
	l.freed = true
	l.data = nil
	return constant.Success
}
