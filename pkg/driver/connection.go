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

package driver

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"github.com/cectc/dbcli/pkg/constant"
	err2 "github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/log"
	"github.com/cectc/dbcli/pkg/meta"
	"github.com/cectc/dbcli/pkg/metrics"
	"github.com/cectc/dbcli/pkg/misc"
	"github.com/cectc/dbcli/pkg/native"
)

// Connection is the context every cursor and variable of one native
// connection shares: character encoding, time zone, logger, metrics
// and the object type cache.
type Connection struct {
	native         native.Conn
	dataSourceName string
	opts           Options
	codec          *native.Codec
	logger         *log.Logger
	collector      *metrics.Collector
	typeCache      *meta.ObjectTypeCache

	closed atomic.Bool
}

// NewConnection takes ownership of an established native connection.
func NewConnection(conn native.Conn, dataSourceName string, opts Options) (*Connection, error) {
	if conn == nil {
		return nil, err2.ErrNotConnected
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	codec, err := NewCodec(opts)
	if err != nil {
		return nil, err
	}
	return &Connection{
		native:         conn,
		dataSourceName: dataSourceName,
		opts:           opts,
		codec:          codec,
		logger:         log.With("datasource", dataSourceName),
		collector:      metrics.NewCollector(dataSourceName),
		typeCache:      meta.NewObjectTypeCache(),
	}, nil
}

// NewCodec builds the value codec for the encoding and time zone of opts.
// Native layers that decode bound buffers use the same codec.
func NewCodec(opts Options) (*native.Codec, error) {
	loc, err := misc.LoadLocation(opts.TimeZone)
	if err != nil {
		return nil, errors.Wrapf(err, "load time zone %q", opts.TimeZone)
	}
	return native.NewCodec(opts.Encoding, loc)
}

func (conn *Connection) DataSourceName() string {
	return conn.dataSourceName
}

func (conn *Connection) Options() Options {
	return conn.opts
}

func (conn *Connection) NativeConn() native.Conn {
	return conn.native
}

func (conn *Connection) Codec() *native.Codec {
	return conn.codec
}

func (conn *Connection) Logger() *log.Logger {
	return conn.logger
}

// ObjectType resolves a structured type through the connection cache.
func (conn *Connection) ObjectType(ctx context.Context, name string) (*native.ObjectType, error) {
	if err := conn.check(); err != nil {
		return nil, err
	}
	return conn.typeCache.GetObjectType(ctx, conn.native, name)
}

// RefreshObjectTypes describes every cached object type again.
func (conn *Connection) RefreshObjectTypes(ctx context.Context) error {
	if err := conn.check(); err != nil {
		return err
	}
	return conn.typeCache.Refresh(ctx, conn.native)
}

// NewCursorFromStatement wraps a statement a ref cursor value refers to.
// The cursor owns the statement and defines its columns on first fetch.
func (conn *Connection) NewCursorFromStatement(stmt native.Statement) (interface{}, error) {
	if err := conn.check(); err != nil {
		return nil, err
	}
	cur := conn.newCursor()
	cur.stmt = conn.observe(stmt)
	cur.state = StateExecuted
	cur.kind = constant.StatementSelect
	cur.needsDefine = true
	cur.rowCount = -1
	return cur, nil
}

// Cursor opens a new cursor. The statement handle is allocated on first prepare.
func (conn *Connection) Cursor() (*Cursor, error) {
	if err := conn.check(); err != nil {
		return nil, err
	}
	return conn.newCursor(), nil
}

func (conn *Connection) newCursor() *Cursor {
	return &Cursor{
		conn:             conn,
		state:            StateClosed,
		arraySize:        conn.opts.ArraySize,
		bindArraySize:    conn.opts.BindArraySize,
		outputSize:       conn.opts.OutputSize,
		outputSizeColumn: conn.opts.OutputSizeColumn,
		streamOutput:     conn.opts.StreamOutput,
		rowCount:         -1,
	}
}

func (conn *Connection) allocStatement() (native.Statement, error) {
	if err := conn.check(); err != nil {
		return nil, err
	}
	stmt, ret := conn.native.AllocStatement()
	conn.collector.ObserveCall("AllocStatement", ret)
	if !ret.Succeeded() {
		return nil, native.Error(conn.native, ret, "allocate statement")
	}
	return conn.observe(stmt), nil
}

func (conn *Connection) observe(stmt native.Statement) native.Statement {
	return observe(stmt, conn.collector, conn.logger, conn.opts.Trace)
}

// check fails without a native round trip once the connection is closed.
func (conn *Connection) check() error {
	if conn.closed.Load() || !conn.native.Connected() {
		return err2.ErrNotConnected
	}
	return nil
}

func (conn *Connection) Closed() bool {
	return conn.closed.Load()
}

// Close closes the native connection. Cursors opened from it fail from now on.
func (conn *Connection) Close() error {
	if !conn.closed.CAS(false, true) {
		return nil
	}
	ret := conn.native.Close()
	conn.collector.ObserveCall("Close", ret)
	if !ret.Succeeded() {
		return native.Error(conn.native, ret, "close connection")
	}
	conn.logger.Debugf("connection to %s closed", conn.dataSourceName)
	return nil
}
