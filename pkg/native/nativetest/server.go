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

// Package nativetest is an in memory implementation of the native call
// level interface. Statements answer from scripts registered per query
// text and every call is counted, so tests can assert on how the engine
// drives the native layer.
package nativetest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/misc"
	"github.com/cectc/dbcli/pkg/native"
)

// Calls counts native calls by kind.
type Calls struct {
	AllocStatement atomic.Int64
	FreeStatement  atomic.Int64
	Prepare        atomic.Int64
	Execute        atomic.Int64
	DescribeParam  atomic.Int64
	DescribeType   atomic.Int64
	BindParameter  atomic.Int64
	BindCol        atomic.Int64
	Fetch          atomic.Int64
	ParamData      atomic.Int64
	PutData        atomic.Int64
	GetOutputData  atomic.Int64
	MoreResults    atomic.Int64
	// AppliedRows is the number of parameter rows applied by DML statements.
	AppliedRows atomic.Int64
}

// ResultSet is one result of a scripted statement. Values are host values
// encoded in the layout of each bound column; []interface{} values of
// structured columns are built into objects of the column type.
type ResultSet struct {
	Columns []native.ColumnDesc
	Rows    [][]interface{}
}

// StreamValue is one output value delivered through ParamData.
type StreamValue struct {
	Pos   int
	Row   int
	Value interface{}
}

// Script is the canned answer of a query.
type Script struct {
	Kind constant.StatementKind
	// Params describes the parameters, DescribeParam fails when empty.
	Params     []native.ParamDesc
	ResultSets []*ResultSet
	// RowsPerIteration is the row count added per parameter row of DML, 1 when zero.
	RowsPerIteration int64
	RowID            string
	// OutValues are written into output parameters at execute, a *ResultSet
	// value opens a ref cursor on the bound statement.
	OutValues map[int]interface{}
	// Streams are delivered in rounds when stream output is enabled.
	Streams         [][]StreamValue
	Err             *native.DiagRecord
	UnknownRowCount bool
}

// Execution records the decoded parameters of one execute.
type Execution struct {
	Query  string
	Params [][]interface{}
}

type Server struct {
	mu         sync.Mutex
	scripts    map[string]*Script
	types      map[string]*native.ObjectType
	executions []Execution
	codec      *native.Codec
	live       atomic.Int64

	Calls Calls
}

func NewServer() *Server {
	return &Server{
		scripts: make(map[string]*Script),
		types:   make(map[string]*native.ObjectType),
		codec:   native.MustCodec(constant.DefaultEncoding, time.UTC),
	}
}

// Handle registers the script answering query.
func (s *Server) Handle(query string, script *Script) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts[normalize(query)] = script
}

// RegisterType makes a structured type known to DescribeType.
func (s *Server) RegisterType(typ *native.ObjectType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types[strings.ToUpper(typ.FullName())] = typ
}

// Connect opens a new connection.
func (s *Server) Connect() *Conn {
	return &Conn{server: s}
}

// Executions returns every execute so far.
func (s *Server) Executions() []Execution {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]Execution, len(s.executions))
	copy(result, s.executions)
	return result
}

// LastExecution returns the most recent execute.
func (s *Server) LastExecution() Execution {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.executions) == 0 {
		return Execution{}
	}
	return s.executions[len(s.executions)-1]
}

// Live is the number of allocated and not yet freed handles.
func (s *Server) Live() int64 {
	return s.live.Load()
}

func (s *Server) script(query string) *Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sc, ok := s.scripts[normalize(query)]; ok {
		return sc
	}
	return &Script{Kind: misc.StatementKindOf(query)}
}

func (s *Server) objectType(name string) (*native.ObjectType, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	typ, ok := s.types[strings.ToUpper(name)]
	return typ, ok
}

func (s *Server) record(e Execution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executions = append(s.executions, e)
}

func normalize(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// Conn is a connection to a Server.
type Conn struct {
	server *Server
	closed bool
	diag   []native.DiagRecord
}

func (c *Conn) Diagnostics() []native.DiagRecord {
	return c.diag
}

func (c *Conn) fail(state string, code int, format string, args ...interface{}) constant.Return {
	c.diag = []native.DiagRecord{diag(state, code, format, args...)}
	return constant.Error
}

func (c *Conn) AllocStatement() (native.Statement, constant.Return) {
	c.diag = nil
	if c.closed {
		return nil, c.fail(constant.SSConnectionNotOpen, constant.CRNotConnected, "connection is closed")
	}
	c.server.Calls.AllocStatement.Inc()
	c.server.live.Inc()
	return newStmt(c), constant.Success
}

func (c *Conn) Connected() bool {
	return !c.closed
}

// DescribeType reports nested member types by name only.
func (c *Conn) DescribeType(ctx context.Context, name string) (*native.ObjectType, constant.Return) {
	c.diag = nil
	c.server.Calls.DescribeType.Inc()
	typ, ok := c.server.objectType(name)
	if !ok {
		return nil, c.fail(constant.SSSyntaxError, 4043, "object type %s does not exist", name)
	}
	result := &native.ObjectType{Schema: typ.Schema, Name: typ.Name, IsCollection: typ.IsCollection}
	for _, m := range typ.Members {
		result.Members = append(result.Members, byName(m))
	}
	if typ.Element != nil {
		result.Element = byName(typ.Element)
	}
	return result, constant.Success
}

func byName(m *native.ObjectMember) *native.ObjectMember {
	copied := *m
	if copied.Type != nil && copied.TypeName == "" {
		copied.TypeName = copied.Type.FullName()
	}
	copied.Type = nil
	return &copied
}

func (c *Conn) NewObject(typ *native.ObjectType) (native.Object, constant.Return) {
	c.diag = nil
	if typ == nil {
		return nil, c.fail(constant.SSInvalidArgument, constant.CRUnknownObjectType, "no object type")
	}
	return c.server.newObject(typ), constant.Success
}

func (c *Conn) NewLob(sqlType constant.SQLType) (native.Lob, constant.Return) {
	c.diag = nil
	return c.server.newLob(sqlType, nil), constant.Success
}

func (c *Conn) Close() constant.Return {
	c.closed = true
	return constant.Success
}

func diag(state string, code int, format string, args ...interface{}) native.DiagRecord {
	return native.DiagRecord{SQLState: state, NativeCode: code, Message: fmt.Sprintf(format, args...)}
}
