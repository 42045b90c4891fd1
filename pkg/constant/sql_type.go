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

// StatementKind is the kind of the last executed statement as reported by
// the DiagStatementKind diagnostic field.
type StatementKind int64

const (
	StatementUnknown StatementKind = iota

	StatementSelect

	StatementInsert

	StatementUpdate

	StatementDelete

	StatementMerge

	StatementCall

	StatementCreate

	StatementDrop

	StatementAlter

	StatementTruncate

	StatementBegin

	StatementCommit

	StatementRollback

	StatementSet
)

func (kind StatementKind) String() string {
	switch kind {
	case StatementSelect:
		return "SELECT"

	case StatementInsert:
		return "INSERT"

	case StatementUpdate:
		return "UPDATE"

	case StatementDelete:
		return "DELETE"

	case StatementMerge:
		return "MERGE"

	case StatementCall:
		return "CALL"

	case StatementCreate:
		return "CREATE"

	case StatementDrop:
		return "DROP"

	case StatementAlter:
		return "ALTER"

	case StatementTruncate:
		return "TRUNCATE"

	case StatementBegin:
		return "BEGIN"

	case StatementCommit:
		return "COMMIT"

	case StatementRollback:
		return "ROLLBACK"

	case StatementSet:
		return "SET"

	case StatementUnknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("%d", kind)
	}
}

// IsQuery reports whether the statement may produce a result set.
func (kind StatementKind) IsQuery() bool {
	return kind == StatementSelect || kind == StatementCall
}

// IsDML reports whether the statement changes rows and reports a row identifier.
func (kind StatementKind) IsDML() bool {
	switch kind {
	case StatementInsert, StatementUpdate, StatementDelete, StatementMerge:
		return true
	}
	return false
}

// IsDDL reports whether the statement changes the schema.
func (kind StatementKind) IsDDL() bool {
	switch kind {
	case StatementCreate, StatementDrop, StatementAlter, StatementTruncate:
		return true
	}
	return false
}
