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

package misc

import (
	"strings"
	"unicode"

	"github.com/cectc/dbcli/pkg/constant"
)

// AppendParamMarkers writes "(?,?,...)" with size markers.
func AppendParamMarkers(size int) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := 0; i < size; i++ {
		sb.WriteByte('?')
		if i < size-1 {
			sb.WriteByte(',')
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// CallProcText builds the escape sequence calling a stored procedure.
func CallProcText(name string, size int) string {
	return "{call " + name + AppendParamMarkers(size) + "}"
}

// CallFuncText builds the escape sequence calling a stored function, the
// return value is bound to the first marker.
func CallFuncText(name string, size int) string {
	return "{? = call " + name + AppendParamMarkers(size) + "}"
}

// UnwrapCallEscape rewrites "{call p(?)}" and "{? = call f(?)}" into the
// plain CALL / SELECT forms for servers without escape support. The second
// return value reports whether the text was a function call.
func UnwrapCallEscape(query string) (string, bool) {
	q := strings.TrimSpace(query)
	if !strings.HasPrefix(q, "{") || !strings.HasSuffix(q, "}") {
		return query, false
	}
	body := strings.TrimSpace(q[1 : len(q)-1])
	if strings.HasPrefix(body, "?") {
		rest := strings.TrimSpace(strings.TrimPrefix(body, "?"))
		if strings.HasPrefix(rest, "=") {
			rest = strings.TrimSpace(strings.TrimPrefix(rest, "="))
			if hasKeyword(rest, "call") {
				return "SELECT " + strings.TrimSpace(rest[len("call"):]), true
			}
		}
		return query, false
	}
	if hasKeyword(body, "call") {
		return "CALL " + strings.TrimSpace(body[len("call"):]), false
	}
	return query, false
}

func hasKeyword(s, keyword string) bool {
	return len(s) > len(keyword) && strings.EqualFold(s[:len(keyword)], keyword) &&
		unicode.IsSpace(rune(s[len(keyword)]))
}

// FirstKeyword returns the upper cased leading keyword of query, skipping
// blanks, comments and opening parentheses.
func FirstKeyword(query string) string {
	q := query
	for {
		q = strings.TrimLeftFunc(q, func(r rune) bool { return unicode.IsSpace(r) || r == '(' || r == '{' })
		switch {
		case strings.HasPrefix(q, "--"), strings.HasPrefix(q, "#"):
			idx := strings.IndexByte(q, '\n')
			if idx < 0 {
				return ""
			}
			q = q[idx+1:]
		case strings.HasPrefix(q, "/*"):
			idx := strings.Index(q, "*/")
			if idx < 0 {
				return ""
			}
			q = q[idx+2:]
		default:
			end := strings.IndexFunc(q, func(r rune) bool {
				return !unicode.IsLetter(r)
			})
			if end < 0 {
				end = len(q)
			}
			return strings.ToUpper(q[:end])
		}
	}
}

// StatementKindOf classifies query by its leading keyword.
func StatementKindOf(query string) constant.StatementKind {
	switch FirstKeyword(query) {
	case "SELECT", "WITH", "SHOW", "VALUES", "PRAGMA", "EXPLAIN", "DESCRIBE", "DESC":
		return constant.StatementSelect
	case "INSERT", "REPLACE":
		return constant.StatementInsert
	case "UPDATE":
		return constant.StatementUpdate
	case "DELETE":
		return constant.StatementDelete
	case "MERGE":
		return constant.StatementMerge
	case "CALL", "EXEC", "EXECUTE":
		return constant.StatementCall
	case "CREATE":
		return constant.StatementCreate
	case "DROP":
		return constant.StatementDrop
	case "ALTER":
		return constant.StatementAlter
	case "TRUNCATE":
		return constant.StatementTruncate
	case "BEGIN", "START":
		return constant.StatementBegin
	case "COMMIT":
		return constant.StatementCommit
	case "ROLLBACK":
		return constant.StatementRollback
	case "SET":
		return constant.StatementSet
	default:
		return constant.StatementUnknown
	}
}
