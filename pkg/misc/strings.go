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
	"unicode/utf8"
)

func FirstNonEmptyString(first string, second string, others ...string) string {
	if len(first) > 0 {
		return first
	}
	if len(second) > 0 {
		return second
	}

	for i := 0; i < len(others); i++ {
		if len(others[i]) > 0 {
			return others[i]
		}
	}
	return ""
}

// PadRight pads str with spaces up to length characters. Longer strings are
// returned unchanged.
func PadRight(str string, length int) string {
	count := utf8.RuneCountInString(str)
	if count >= length {
		return str
	}
	return str + strings.Repeat(" ", length-count)
}

// TrimRightSpaces drops the blank padding of fixed length character data.
func TrimRightSpaces(str string) string {
	return strings.TrimRight(str, " ")
}

func IsBlank(s string) bool {
	if len(s) < 1 {
		return true
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsSpace(r)
	}) == -1
}
