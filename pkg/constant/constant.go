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

package constant

import "fmt"

const (
	ConfigPathKey = "config"

	EnvDBCliConfig = "DBCLI_CONFIG_PATH"
)

// Return is the status code of a native call.
type Return int16

const (
	Success            Return = 0
	SuccessWithInfo    Return = 1
	StillExecuting     Return = 2
	NeedData           Return = 99
	NoData             Return = 100
	ParamDataAvailable Return = 101
	Error              Return = -1
	InvalidHandle      Return = -2
)

func (r Return) String() string {
	switch r {
	case Success:
		return "SUCCESS"
	case SuccessWithInfo:
		return "SUCCESS_WITH_INFO"
	case StillExecuting:
		return "STILL_EXECUTING"
	case NeedData:
		return "NEED_DATA"
	case NoData:
		return "NO_DATA"
	case ParamDataAvailable:
		return "PARAM_DATA_AVAILABLE"
	case Error:
		return "ERROR"
	case InvalidHandle:
		return "INVALID_HANDLE"
	default:
		return fmt.Sprintf("Return(%d)", int16(r))
	}
}

// Succeeded reports whether r is Success or SuccessWithInfo.
func (r Return) Succeeded() bool {
	return r == Success || r == SuccessWithInfo
}

// Indicator sentinels. A non negative indicator is the value length in bytes.
const (
	NullData   int64 = -1
	DataAtExec int64 = -2
	NoTotal    int64 = -4
)

// Direction of a bound parameter.
type Direction int16

const (
	ParamUnknown     Direction = 0
	ParamInput       Direction = 1
	ParamInputOutput Direction = 2
	ParamResultCol   Direction = 3
	ParamOutput      Direction = 4
	ParamReturnValue Direction = 5
)

func (d Direction) String() string {
	switch d {
	case ParamInput:
		return "IN"
	case ParamInputOutput:
		return "INOUT"
	case ParamResultCol:
		return "RESULT"
	case ParamOutput:
		return "OUT"
	case ParamReturnValue:
		return "RETURN"
	default:
		return "UNKNOWN"
	}
}

// IsOutput reports whether the server writes a value back into the parameter.
func (d Direction) IsOutput() bool {
	return d == ParamInputOutput || d == ParamOutput || d == ParamReturnValue
}

// IsInput reports whether the parameter value is sent to the server.
func (d Direction) IsInput() bool {
	return d == ParamInput || d == ParamInputOutput || d == ParamUnknown
}

// Attr is a statement attribute identifier.
type Attr int32

const (
	AttrQueryTimeout    Attr = 0
	AttrParamsProcessed Attr = 21
	AttrParamsetSize    Attr = 22
	AttrRowsFetched     Attr = 26
	AttrRowArraySize    Attr = 27
	AttrStreamOutput    Attr = 1014
)

// DiagField is a statement diagnostic header field.
type DiagField int16

const (
	DiagRowCount      DiagField = 1
	DiagNumber        DiagField = 2
	DiagStatementKind DiagField = 7
	DiagServerStatus  DiagField = 1001
	DiagExecutionID   DiagField = 1002
	DiagRowID         DiagField = 1003
)

func (f DiagField) String() string {
	switch f {
	case DiagRowCount:
		return "ROW_COUNT"
	case DiagNumber:
		return "NUMBER"
	case DiagStatementKind:
		return "STATEMENT_KIND"
	case DiagServerStatus:
		return "SERVER_STATUS"
	case DiagExecutionID:
		return "EXECUTION_ID"
	case DiagRowID:
		return "ROW_ID"
	default:
		return fmt.Sprintf("DiagField(%d)", int16(f))
	}
}

const (
	DefaultArraySize     = 100
	DefaultBindArraySize = 1
	DefaultOutputSize    = -1
	DefaultEncoding      = "utf-8"

	// MaxStringChars is the largest text value kept inline in a row buffer.
	MaxStringChars = 4000
	// MaxBinaryBytes is the largest binary value kept inline in a row buffer.
	MaxBinaryBytes = 8000
	// DefaultColumnSize sizes text/binary Variables whose wire size is unknown.
	DefaultColumnSize = 255
	// BytesPerChar is the worst case encoded width of one character.
	BytesPerChar = 4
	// MaxNumberChars is the widest numeric value rendered as text.
	MaxNumberChars = 172
)
