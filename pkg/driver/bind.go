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
	"github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/native"
	"github.com/cectc/dbcli/pkg/variable"
)

// bind converts rows of parameter values into Variables and binds them
// as one parameter set. Every row must carry one value per marker.
func (c *Cursor) bind(ctx context.Context, rows [][]interface{}) error {
	count := len(c.paramDescs)
	for _, row := range rows {
		if len(row) != count {
			return errors.NewSQLError(constant.CRBindCountMismatch, constant.SSCountMismatch,
				"statement has %d parameters, %d values given", count, len(row))
		}
	}
	if count == 0 {
		c.freeParams()
		return nil
	}
	batch := len(rows)

	params := make([]*variable.Variable, count)
	external := make([]bool, count)
	for i := 0; i < count; i++ {
		v, ext, err := c.bindVariable(ctx, i, rows)
		if err != nil {
			for j := 0; j < i; j++ {
				if !external[j] {
					params[j].Free()
				}
			}
			c.dropParams(params)
			return err
		}
		params[i] = v
		external[i] = ext
	}
	c.dropParams(params)
	c.params = params
	c.external = external

	if ret := c.stmt.SetAttr(constant.AttrParamsetSize, int64(batch)); !ret.Succeeded() {
		return native.Error(c.stmt, ret, "set parameter set size")
	}
	for i, v := range params {
		if err := v.BindParam(c.stmt, i+1); err != nil {
			return err
		}
	}
	c.conn.collector.AddBound(batch)
	c.state = StateBound
	return nil
}

// dropParams frees the cursor owned variables of the previous bind that
// were not carried over into next.
func (c *Cursor) dropParams(next []*variable.Variable) {
	for i, v := range c.params {
		if v == nil || c.isExternal(i) {
			continue
		}
		kept := false
		for _, n := range next {
			if n == v {
				kept = true
				break
			}
		}
		if !kept {
			v.Free()
		}
	}
	c.params = nil
	c.external = nil
}

// bindVariable returns the Variable carrying column i of rows. The second
// result reports whether the caller owns it.
func (c *Cursor) bindVariable(ctx context.Context, i int, rows [][]interface{}) (*variable.Variable, bool, error) {
	desc := c.paramDesc(i)
	batch := len(rows)

	if v, ok := rows[0][i].(*variable.Variable); ok {
		if batch > 1 {
			return nil, false, errors.NewSQLError(constant.CRInvalidArgument, constant.SSInvalidArgument,
				"a variable at position %d cannot be bound in a batch", i+1)
		}
		if v.Err() != nil {
			return nil, false, v.Err()
		}
		if desc != nil {
			if desc.SQLType != constant.SQLUnknown {
				v.SetSQLType(desc.SQLType)
			}
			if desc.Direction != constant.ParamUnknown {
				v.SetDirection(desc.Direction)
			}
			if v.Type() == variable.Object && v.ObjectType() == nil && desc.TypeName != "" {
				objType, err := c.conn.ObjectType(ctx, desc.TypeName)
				if err != nil {
					return nil, false, err
				}
				v.SetObjectType(objType)
			}
		}
		return v, true, nil
	}

	var valueType variable.Type
	size := 0
	for _, row := range rows {
		typ, n, err := variable.TypeByValue(row[i])
		if err != nil {
			return nil, false, err
		}
		valueType = variable.Widen(valueType, typ)
		if n > size {
			size = n
		}
	}

	rowCount := batch
	if c.bindArraySize > rowCount {
		rowCount = c.bindArraySize
	}

	var v *variable.Variable
	if c.inputSizes && i < len(c.params) && c.params[i] != nil {
		v = c.params[i]
		if v.Rows() < batch {
			grown, err := variable.NewVariable(c.conn, v.Type(), rowCount, v.Size())
			if err != nil {
				return nil, false, err
			}
			v = grown
		}
		if err := v.Resize(size); err != nil {
			return nil, false, err
		}
	} else {
		res, err := variable.ResolveParam(variable.ParamRequest{
			Position:  i + 1,
			Desc:      desc,
			ValueType: valueType,
			Size:      size,
			BatchSize: batch,
		}, c.conn.opts.typeOptions())
		if err != nil {
			return nil, false, err
		}
		for _, coercion := range res.Coercions {
			c.conn.logger.Debugf("%s", coercion)
		}
		if res.Type == variable.Cursor && res.Size > 0 {
			res.Size = 0
		}
		if old := c.reusable(i, res.Type, batch); old != nil {
			if err := old.Resize(res.Size); err != nil {
				return nil, false, err
			}
			v = old
		} else {
			v, err = variable.NewVariable(c.conn, res.Type, rowCount, res.Size)
			if err != nil {
				return nil, false, err
			}
		}
		v.SetSQLType(res.SQLType)
	}

	switch {
	case desc != nil:
		v.SetScale(desc.Scale)
		if desc.Direction != constant.ParamUnknown {
			v.SetDirection(desc.Direction)
		}
	case v.Type() == variable.Cursor:
		v.SetDirection(constant.ParamOutput)
	}
	if v.Type() == variable.Object && v.ObjectType() == nil {
		objType, err := c.objectTypeFor(ctx, desc, rows, i)
		if err != nil {
			v.Free()
			return nil, false, err
		}
		v.SetObjectType(objType)
	}

	for r, row := range rows {
		if !v.Direction().IsInput() && row[i] == nil {
			continue
		}
		if rc, ok := row[i].(*Cursor); ok {
			c.refCursors = append(c.refCursors, rc)
		}
		if err := v.SetValue(ctx, r, row[i]); err != nil {
			if !c.isParam(v) {
				v.Free()
			}
			return nil, false, err
		}
	}
	v.SetPopulated(batch)
	return v, false, nil
}

// reusable returns the previous variable at position i when it can take
// batch rows of typ.
func (c *Cursor) reusable(i int, typ variable.Type, batch int) *variable.Variable {
	if i >= len(c.params) || c.isExternal(i) {
		return nil
	}
	v := c.params[i]
	if v == nil || v.Type() != typ || v.Rows() < batch || v.Err() != nil || typ.IsHandle() {
		return nil
	}
	return v
}

func (c *Cursor) isParam(v *variable.Variable) bool {
	for _, p := range c.params {
		if p == v {
			return true
		}
	}
	return false
}

// objectTypeFor resolves the structured type of position i from its
// declared type name or from the first record value.
func (c *Cursor) objectTypeFor(ctx context.Context, desc *native.ParamDesc, rows [][]interface{}, i int) (*native.ObjectType, error) {
	if desc != nil && desc.TypeName != "" {
		return c.conn.ObjectType(ctx, desc.TypeName)
	}
	for _, row := range rows {
		switch value := row[i].(type) {
		case *variable.Record:
			return value.Type(), nil
		case native.Object:
			return value.Type(), nil
		}
	}
	return nil, errors.NewSQLError(constant.CRUnknownObjectType, constant.SSInvalidArgument,
		"object type of parameter %d is unknown", i+1)
}
