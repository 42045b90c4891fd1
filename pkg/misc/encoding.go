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

/*
 * Copyright 2019 The Vitess Authors.
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

package misc

import (
	"encoding/binary"
	"math"
)

// This file contains the row buffer encoding and decoding functions.

//
// Encoding methods.
//
// The same assumptions are made for all the encoding functions:
// - there is enough space to write the value in the buffer. If not, we
// will panic with out of bounds.
// - all functions start writing at 'pos' in the buffer, and return the next position.

func WriteByte(data []byte, pos int, value byte) int {
	data[pos] = value
	return pos + 1
}

func WriteUint16(data []byte, pos int, value uint16) int {
	data[pos] = byte(value)
	data[pos+1] = byte(value >> 8)
	return pos + 2
}

func WriteUint32(data []byte, pos int, value uint32) int {
	data[pos] = byte(value)
	data[pos+1] = byte(value >> 8)
	data[pos+2] = byte(value >> 16)
	data[pos+3] = byte(value >> 24)
	return pos + 4
}

func WriteUint64(data []byte, pos int, value uint64) int {
	data[pos] = byte(value)
	data[pos+1] = byte(value >> 8)
	data[pos+2] = byte(value >> 16)
	data[pos+3] = byte(value >> 24)
	data[pos+4] = byte(value >> 32)
	data[pos+5] = byte(value >> 40)
	data[pos+6] = byte(value >> 48)
	data[pos+7] = byte(value >> 56)
	return pos + 8
}

func WriteInt16(data []byte, pos int, value int16) int {
	return WriteUint16(data, pos, uint16(value))
}

func WriteInt32(data []byte, pos int, value int32) int {
	return WriteUint32(data, pos, uint32(value))
}

func WriteInt64(data []byte, pos int, value int64) int {
	return WriteUint64(data, pos, uint64(value))
}

func WriteFloat64(data []byte, pos int, value float64) int {
	return WriteUint64(data, pos, math.Float64bits(value))
}

//
// Decoding methods.
//
// The same assumptions are made for all the decoding functions:
// - they return the decoded value, the new position to read from, and an 'ok' flag.
// - all functions start reading at 'pos' in the buffer, and return the next position.
//

func ReadUint16(data []byte, pos int) (uint16, int, bool) {
	if pos+1 >= len(data) {
		return 0, 0, false
	}
	return binary.LittleEndian.Uint16(data[pos : pos+2]), pos + 2, true
}

func ReadUint32(data []byte, pos int) (uint32, int, bool) {
	if pos+3 >= len(data) {
		return 0, 0, false
	}
	return binary.LittleEndian.Uint32(data[pos : pos+4]), pos + 4, true
}

func ReadUint64(data []byte, pos int) (uint64, int, bool) {
	if pos+7 >= len(data) {
		return 0, 0, false
	}
	return binary.LittleEndian.Uint64(data[pos : pos+8]), pos + 8, true
}

func ReadInt16(data []byte, pos int) (int16, int, bool) {
	v, pos, ok := ReadUint16(data, pos)
	return int16(v), pos, ok
}

func ReadInt32(data []byte, pos int) (int32, int, bool) {
	v, pos, ok := ReadUint32(data, pos)
	return int32(v), pos, ok
}

func ReadInt64(data []byte, pos int) (int64, int, bool) {
	v, pos, ok := ReadUint64(data, pos)
	return int64(v), pos, ok
}

func ReadFloat64(data []byte, pos int) (float64, int, bool) {
	v, pos, ok := ReadUint64(data, pos)
	return math.Float64frombits(v), pos, ok
}
