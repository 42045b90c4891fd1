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
	"database/sql"
	"database/sql/driver"

	"github.com/cectc/dbcli/pkg/constant"
	dbdriver "github.com/cectc/dbcli/pkg/driver"
	"github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/log"
)

var (
	_ driver.Conn               = (*Conn)(nil)
	_ driver.ConnPrepareContext = (*Conn)(nil)
	_ driver.ConnBeginTx        = (*Conn)(nil)
	_ driver.ExecerContext      = (*Conn)(nil)
	_ driver.QueryerContext     = (*Conn)(nil)
	_ driver.Pinger             = (*Conn)(nil)
	_ driver.NamedValueChecker  = (*Conn)(nil)
)

type Conn struct {
	conn *dbdriver.Connection
	tx   *Tx
}

// Connection exposes the engine connection, for cursors beyond database/sql.
func (c *Conn) Connection() *dbdriver.Connection {
	return c.conn
}

func (c *Conn) Prepare(query string) (driver.Stmt, error) {
	return c.PrepareContext(context.Background(), query)
}

func (c *Conn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	cur, err := c.conn.Cursor()
	if err != nil {
		return nil, driverErr(err)
	}
	if err := cur.Prepare(ctx, query); err != nil {
		cur.Close()
		return nil, err
	}
	return &Stmt{conn: c, cursor: cur, query: query}, nil
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

func (c *Conn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *Conn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if c.tx != nil && !c.tx.closed.Load() {
		return nil, errors.NewSQLError(constant.CRFunctionSequence, constant.SSFunctionSequence,
			"a transaction is already open")
	}
	if opts.ReadOnly || sql.IsolationLevel(opts.Isolation) != sql.LevelDefault {
		return nil, errors.NewSQLError(constant.CRNotSupported, constant.SSOptionalFeature,
			"transaction options are not supported")
	}
	if err := c.execDirect(ctx, "BEGIN"); err != nil {
		return nil, err
	}
	c.tx = &Tx{conn: c}
	return c.tx, nil
}

func (c *Conn) execDirect(ctx context.Context, query string) error {
	cur, err := c.conn.Cursor()
	if err != nil {
		return driverErr(err)
	}
	defer cur.Close()
	return cur.ExecuteDirect(ctx, query)
}

func (c *Conn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	stmt, err := c.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()
	return stmt.(*Stmt).ExecContext(ctx, args)
}

func (c *Conn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	cur, err := c.conn.Cursor()
	if err != nil {
		return nil, driverErr(err)
	}
	rows, err := runQuery(ctx, cur, query, args)
	if err != nil {
		cur.Close()
		return nil, err
	}
	rows.owned = true
	return rows, nil
}

func (c *Conn) Ping(ctx context.Context) error {
	if c.conn.Closed() || !c.conn.NativeConn().Connected() {
		return driver.ErrBadConn
	}
	return nil
}

// CheckNamedValue passes every value through, the engine resolves types
// itself and sql.Out values become output variables.
func (c *Conn) CheckNamedValue(nv *driver.NamedValue) error {
	if nv.Name != "" {
		log.Debugf("named parameter %s bound by position %d", nv.Name, nv.Ordinal)
	}
	return nil
}

// driverErr reports a closed connection as driver.ErrBadConn so database/sql
// discards it.
func driverErr(err error) error {
	if errors.ClassOf(err) == constant.ClassInterface {
		return driver.ErrBadConn
	}
	return err
}
