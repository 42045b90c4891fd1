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

package sql

import (
	"context"

	"go.uber.org/atomic"
)

type Tx struct {
	closed atomic.Bool
	conn   *Conn
}

func (tx *Tx) Commit() error {
	return tx.finish("COMMIT")
}

func (tx *Tx) Rollback() error {
	return tx.finish("ROLLBACK")
}

func (tx *Tx) finish(query string) error {
	if !tx.closed.CAS(false, true) {
		return errTxDone
	}
	tx.conn.tx = nil
	return tx.conn.execDirect(context.Background(), query)
}
