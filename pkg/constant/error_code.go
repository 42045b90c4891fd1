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

// ErrorClass is the category an error is reported under.
type ErrorClass int

const (
	ClassDatabase ErrorClass = iota
	ClassInterface
	ClassIntegrity
	ClassOperational
	ClassProgramming
	ClassResource
	ClassWarning
)

func (c ErrorClass) String() string {
	switch c {
	case ClassInterface:
		return "InterfaceError"
	case ClassIntegrity:
		return "IntegrityError"
	case ClassOperational:
		return "OperationalError"
	case ClassProgramming:
		return "ProgrammingError"
	case ClassResource:
		return "ResourceError"
	case ClassWarning:
		return "Warning"
	default:
		return "DatabaseError"
	}
}

// Locally raised error numbers.
const (
	CRUnknownError       = 3000
	CRNotConnected       = 3001
	CRCursorClosed       = 3002
	CRNotQuery           = 3003
	CRWrongValueType     = 3004
	CRBindCountMismatch  = 3005
	CRInvalidatedValue   = 3006
	CROutOfMemory        = 3007
	CRPoisonedVariable   = 3008
	CRNotSupported       = 3009
	CRInvalidArgument    = 3010
	CRFunctionSequence   = 3011
	CRBufferBorrowed     = 3012
	CRDataTruncated      = 3013
	CRInvalidHandle      = 3014
	CRNativeCallFailed   = 3015
	CRUnknownObjectType  = 3016
	CRInvalidOption      = 3017
	CRValueOutOfRange    = 3018
	CREncodingFailed     = 3019
	CRNoResultSetDefined = 3020
)

// SQLSTATE values.
const (
	SSUnknownSQLState      = "HY000"
	SSMemoryAllocation     = "HY001"
	SSInvalidArgument      = "HY009"
	SSFunctionSequence     = "HY010"
	SSInvalidAttribute     = "HY092"
	SSOptionalFeature      = "HYC00"
	SSTimeout              = "HYT00"
	SSConnectionNotOpen    = "08003"
	SSConnectionFailure    = "08S01"
	SSInvalidCursorState   = "24000"
	SSCountMismatch        = "07002"
	SSRestrictedDataType   = "07006"
	SSInvalidDescriptorIdx = "07009"
	SSStringTruncated      = "01004"
	SSGeneralWarning       = "01000"
	SSIntegrityViolation   = "23000"
	SSNumericOutOfRange    = "22003"
	SSInvalidCharacter     = "22018"
	SSSyntaxError          = "42000"
)

// CodeRange maps the native error numbers in [Low, High] to a class.
type CodeRange struct {
	Low   int
	High  int
	Class ErrorClass
}

// CodeRanges classifies native error numbers. The first matching range wins.
var CodeRanges = []CodeRange{
	// sqlite primary result codes
	{Low: 5, High: 6, Class: ClassOperational},
	{Low: 7, High: 7, Class: ClassResource},
	{Low: 10, High: 10, Class: ClassOperational},
	{Low: 13, High: 13, Class: ClassResource},
	{Low: 19, High: 19, Class: ClassIntegrity},
	{Low: 25, High: 25, Class: ClassProgramming},

	// mysql server errors
	{Low: 1022, High: 1022, Class: ClassIntegrity},
	{Low: 1040, High: 1045, Class: ClassOperational},
	{Low: 1048, High: 1048, Class: ClassIntegrity},
	{Low: 1049, High: 1049, Class: ClassOperational},
	{Low: 1050, High: 1051, Class: ClassProgramming},
	{Low: 1054, High: 1054, Class: ClassProgramming},
	{Low: 1062, High: 1062, Class: ClassIntegrity},
	{Low: 1064, High: 1064, Class: ClassProgramming},
	{Low: 1136, High: 1136, Class: ClassProgramming},
	{Low: 1146, High: 1146, Class: ClassProgramming},
	{Low: 1169, High: 1169, Class: ClassIntegrity},
	{Low: 1205, High: 1205, Class: ClassOperational},
	{Low: 1213, High: 1213, Class: ClassOperational},
	{Low: 1216, High: 1217, Class: ClassIntegrity},
	{Low: 1451, High: 1452, Class: ClassIntegrity},
	{Low: 1557, High: 1557, Class: ClassIntegrity},
	{Low: 1586, High: 1586, Class: ClassIntegrity},

	// mysql client errors
	{Low: 2000, High: 2999, Class: ClassOperational},

	// local errors
	{Low: CRNotConnected, High: CRCursorClosed, Class: ClassInterface},
	{Low: CRNotQuery, High: CRInvalidatedValue, Class: ClassProgramming},
	{Low: CROutOfMemory, High: CRPoisonedVariable, Class: ClassResource},
	{Low: CRNotSupported, High: CRNotSupported, Class: ClassDatabase},
	{Low: CRInvalidArgument, High: CRBufferBorrowed, Class: ClassProgramming},
	{Low: CRDataTruncated, High: CRDataTruncated, Class: ClassWarning},
	{Low: CRInvalidHandle, High: CRInvalidHandle, Class: ClassInterface},
	{Low: CRUnknownObjectType, High: CRNoResultSetDefined, Class: ClassProgramming},
}
