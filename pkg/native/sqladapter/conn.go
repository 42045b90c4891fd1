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

// Package sqladapter implements the native call level interface on top of
// database/sql, so the binding engine can drive MySQL and SQLite.
package sqladapter

import (
	"context"
	"database/sql"
	"database/sql/driver"

	_ "github.com/go-sql-driver/mysql"
	"github.com/hashicorp/go-multierror"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/cectc/dbcli/pkg/config"
	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/log"
	"github.com/cectc/dbcli/pkg/native"
)

// Conn pins one pooled connection, session state such as temporary
// tables and in-memory SQLite databases lives as long as the Conn.
type Conn struct {
	db         *sql.DB
	conn       *sql.Conn
	driverName string
	codec      *native.Codec
	ownsDB     bool
	diag       []native.DiagRecord

	closed atomic.Bool
}

// Open connects to the configured data source.
func Open(ctx context.Context, ds *config.DataSource, codec *native.Codec) (*Conn, error) {
	db, err := sql.Open(ds.Type.String(), ds.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "open data source %s", ds.Name)
	}
	c, err := New(ctx, db, ds.Type.String(), codec)
	if err != nil {
		db.Close()
		return nil, errors.WithMessagef(err, "connect data source %s", ds.Name)
	}
	c.ownsDB = true
	log.Infof("connected to %s data source %s", ds.Type, ds.Name)
	return c, nil
}

// New pins a connection of db. The caller keeps ownership of db.
func New(ctx context.Context, db *sql.DB, driverName string, codec *native.Codec) (*Conn, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, errors.WithStack(err)
	}
	return &Conn{db: db, conn: conn, driverName: driverName, codec: codec}, nil
}

func (c *Conn) DriverName() string {
	return c.driverName
}

func (c *Conn) Diagnostics() []native.DiagRecord {
	return c.diag
}

func (c *Conn) begin() constant.Return {
	c.diag = nil
	if c.closed.Load() {
		return constant.InvalidHandle
	}
	return constant.Success
}

func (c *Conn) AllocStatement() (native.Statement, constant.Return) {
	if ret := c.begin(); ret != constant.Success {
		return nil, ret
	}
	return newStmt(c), constant.Success
}

func (c *Conn) Connected() bool {
	return !c.closed.Load()
}

// DescribeType fails, neither backend has named structured types.
func (c *Conn) DescribeType(ctx context.Context, name string) (*native.ObjectType, constant.Return) {
	if ret := c.begin(); ret != constant.Success {
		return nil, ret
	}
	c.diag = append(c.diag, notSupported("%s has no structured type %s", c.driverName, name))
	return nil, constant.Error
}

func (c *Conn) NewObject(typ *native.ObjectType) (native.Object, constant.Return) {
	if ret := c.begin(); ret != constant.Success {
		return nil, ret
	}
	c.diag = append(c.diag, notSupported("%s has no structured types", c.driverName))
	return nil, constant.Error
}

// NewLob returns a temporary large object kept in memory until it is
// bound, the value is sent inline when the statement executes.
func (c *Conn) NewLob(sqlType constant.SQLType) (native.Lob, constant.Return) {
	if ret := c.begin(); ret != constant.Success {
		return nil, ret
	}
	return newLob(sqlType, nil), constant.Success
}

func (c *Conn) Close() constant.Return {
	if !c.closed.CAS(false, true) {
		return constant.InvalidHandle
	}
	c.diag = nil
	var result *multierror.Error
	if err := c.conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) && !errors.Is(err, driver.ErrBadConn) {
		result = multierror.Append(result, err)
	}
	if c.ownsDB {
		if err := c.db.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result.ErrorOrNil() != nil {
		for _, err := range result.Errors {
			c.diag = append(c.diag, diagnose(err))
		}
		return constant.Error
	}
	return constant.Success
}
