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

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/log"
	"github.com/cectc/dbcli/pkg/metrics"
	"github.com/cectc/dbcli/pkg/native"
)

// observedStatement counts every native call and logs it when tracing.
type observedStatement struct {
	native.Statement
	collector *metrics.Collector
	logger    *log.Logger
	trace     bool
}

func observe(stmt native.Statement, collector *metrics.Collector, logger *log.Logger, trace bool) native.Statement {
	if _, ok := stmt.(*observedStatement); ok || stmt == nil {
		return stmt
	}
	return &observedStatement{Statement: stmt, collector: collector, logger: logger, trace: trace}
}

// unwrap returns the statement as the native layer handed it out.
func unwrap(stmt native.Statement) native.Statement {
	if o, ok := stmt.(*observedStatement); ok {
		return o.Statement
	}
	return stmt
}

func (s *observedStatement) done(call string, ret constant.Return, format string, args ...interface{}) constant.Return {
	s.collector.ObserveCall(call, ret)
	if s.trace {
		args = append(args, ret)
		s.logger.Debugf(call+"("+format+") -> %s", args...)
	}
	return ret
}

func (s *observedStatement) Free() constant.Return {
	return s.done("Free", s.Statement.Free(), "")
}

func (s *observedStatement) Prepare(ctx context.Context, query string) constant.Return {
	return s.done("Prepare", s.Statement.Prepare(ctx, query), "%q", query)
}

func (s *observedStatement) ExecDirect(ctx context.Context, query string) constant.Return {
	return s.done("ExecDirect", s.Statement.ExecDirect(ctx, query), "%q", query)
}

func (s *observedStatement) Execute(ctx context.Context) constant.Return {
	return s.done("Execute", s.Statement.Execute(ctx), "")
}

func (s *observedStatement) NumParams() (int, constant.Return) {
	n, ret := s.Statement.NumParams()
	return n, s.done("NumParams", ret, "")
}

func (s *observedStatement) DescribeParam(pos int) (native.ParamDesc, constant.Return) {
	desc, ret := s.Statement.DescribeParam(pos)
	return desc, s.done("DescribeParam", ret, "%d", pos)
}

func (s *observedStatement) NumResultCols() (int, constant.Return) {
	n, ret := s.Statement.NumResultCols()
	return n, s.done("NumResultCols", ret, "")
}

func (s *observedStatement) DescribeCol(pos int) (native.ColumnDesc, constant.Return) {
	desc, ret := s.Statement.DescribeCol(pos)
	return desc, s.done("DescribeCol", ret, "%d", pos)
}

func (s *observedStatement) BindParameter(pos int, b *native.Binding) constant.Return {
	return s.done("BindParameter", s.Statement.BindParameter(pos, b), "%d, %s x%d", pos, b.CType, b.Rows())
}

func (s *observedStatement) ResetParams() constant.Return {
	return s.done("ResetParams", s.Statement.ResetParams(), "")
}

func (s *observedStatement) BindCol(pos int, b *native.Binding) constant.Return {
	return s.done("BindCol", s.Statement.BindCol(pos, b), "%d, %s x%d", pos, b.CType, b.Rows())
}

func (s *observedStatement) UnbindCols() constant.Return {
	return s.done("UnbindCols", s.Statement.UnbindCols(), "")
}

func (s *observedStatement) SetAttr(attr constant.Attr, value int64) constant.Return {
	return s.done("SetAttr", s.Statement.SetAttr(attr, value), "%d, %d", attr, value)
}

func (s *observedStatement) GetAttr(attr constant.Attr) (int64, constant.Return) {
	value, ret := s.Statement.GetAttr(attr)
	return value, s.done("GetAttr", ret, "%d", attr)
}

func (s *observedStatement) Fetch(ctx context.Context) constant.Return {
	return s.done("Fetch", s.Statement.Fetch(ctx), "")
}

func (s *observedStatement) RowCount() (int64, constant.Return) {
	n, ret := s.Statement.RowCount()
	return n, s.done("RowCount", ret, "")
}

func (s *observedStatement) MoreResults(ctx context.Context) constant.Return {
	return s.done("MoreResults", s.Statement.MoreResults(ctx), "")
}

func (s *observedStatement) ParamData(ctx context.Context) (int, int, constant.Return) {
	pos, row, ret := s.Statement.ParamData(ctx)
	return pos, row, s.done("ParamData", ret, "")
}

func (s *observedStatement) PutData(ctx context.Context, data []byte, length int64) constant.Return {
	return s.done("PutData", s.Statement.PutData(ctx, data, length), "%d bytes", length)
}

func (s *observedStatement) GetOutputData(ctx context.Context, pos int) (native.Datum, constant.Return) {
	d, ret := s.Statement.GetOutputData(ctx, pos)
	return d, s.done("GetOutputData", ret, "%d", pos)
}

func (s *observedStatement) DiagInt(field constant.DiagField) (int64, constant.Return) {
	value, ret := s.Statement.DiagInt(field)
	return value, s.done("DiagInt", ret, "%s", field)
}

func (s *observedStatement) DiagString(field constant.DiagField) (string, constant.Return) {
	value, ret := s.Statement.DiagString(field)
	return value, s.done("DiagString", ret, "%s", field)
}

func (s *observedStatement) CloseCursor() constant.Return {
	return s.done("CloseCursor", s.Statement.CloseCursor(), "")
}
