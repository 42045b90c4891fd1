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
	"github.com/cectc/dbcli/pkg/misc"
	"github.com/cectc/dbcli/pkg/variable"
)

// CallProc calls the stored procedure name. The result holds one value
// per parameter, output parameters carry what the procedure returned.
func (c *Cursor) CallProc(ctx context.Context, name string, params ...interface{}) ([]interface{}, error) {
	if err := c.Execute(ctx, misc.CallProcText(name, len(params)), params...); err != nil {
		return nil, err
	}
	return c.outputValues(ctx, params)
}

// CallFunc calls the stored function name and returns its result,
// typed by retType as accepted by Var.
func (c *Cursor) CallFunc(ctx context.Context, name string, retType interface{}, params ...interface{}) (interface{}, error) {
	result, err := c.Var(retType, 0, 1)
	if err != nil {
		return nil, err
	}
	defer result.Free()
	result.SetDirection(constant.ParamReturnValue)

	args := make([]interface{}, 0, len(params)+1)
	args = append(args, result)
	args = append(args, params...)
	if err := c.Execute(ctx, misc.CallFuncText(name, len(params)), args...); err != nil {
		return nil, err
	}
	return result.GetValue(ctx, 0)
}

// outputValues maps the parameters of the last call back to host values.
func (c *Cursor) outputValues(ctx context.Context, params []interface{}) ([]interface{}, error) {
	values := make([]interface{}, len(params))
	for i, param := range params {
		var v *variable.Variable
		if i < len(c.params) {
			v = c.params[i]
		}
		if _, isCursor := param.(*Cursor); isCursor || v == nil || !v.Direction().IsOutput() {
			values[i] = param
			continue
		}
		value, err := v.GetValue(ctx, 0)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}
	return values, nil
}
