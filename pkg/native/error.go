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

package native

import (
	"strings"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/errors"
)

// Error converts the diagnostics of a failed call into a SQLError. The
// first record decides number and state, the messages of every record
// are joined.
func Error(h Diagnoser, ret constant.Return, action string) *errors.SQLError {
	var records []DiagRecord
	if h != nil {
		records = h.Diagnostics()
	}
	if ret == constant.InvalidHandle {
		return errors.NewSQLError(constant.CRInvalidHandle, constant.SSUnknownSQLState,
			"%s: invalid handle", action)
	}
	if len(records) == 0 {
		return errors.NewSQLError(constant.CRNativeCallFailed, constant.SSUnknownSQLState,
			"%s: native call returned %s without diagnostics", action, ret)
	}
	messages := make([]string, 0, len(records))
	for _, r := range records {
		messages = append(messages, r.Message)
	}
	return errors.NewSQLError(records[0].NativeCode, records[0].SQLState,
		"%s: %s", action, strings.Join(messages, "; "))
}

// Warning converts the diagnostics of a SuccessWithInfo call. It returns
// nil when the handle reported nothing.
func Warning(h Diagnoser) *errors.SQLError {
	if h == nil {
		return nil
	}
	records := h.Diagnostics()
	if len(records) == 0 {
		return nil
	}
	messages := make([]string, 0, len(records))
	for _, r := range records {
		messages = append(messages, r.Message)
	}
	return errors.NewWarning(records[0].NativeCode, records[0].SQLState, "%s", strings.Join(messages, "; "))
}

// Check returns nil for Success, SuccessWithInfo and NoData, and the
// converted diagnostics otherwise.
func Check(h Diagnoser, ret constant.Return, action string) error {
	if ret.Succeeded() || ret == constant.NoData {
		return nil
	}
	return Error(h, ret, action)
}
