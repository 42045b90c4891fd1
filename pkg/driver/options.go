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
	"strconv"
	"strings"

	"github.com/cectc/dbcli/pkg/config"
	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/errors"
	"github.com/cectc/dbcli/pkg/variable"
)

// Options configure a connection and the cursors it opens.
type Options struct {
	// ArraySize is the number of rows fetched per native fetch.
	ArraySize int
	// BindArraySize is the number of rows parameter variables are allocated with.
	BindArraySize int
	// OutputSize overrides the row size of variable length result columns when positive.
	OutputSize int
	// OutputSizeColumn limits OutputSize to one 1-based column, 0 means all.
	OutputSizeColumn int
	// StreamOutput collects output parameters through ParamData after execute.
	StreamOutput  bool
	NumbersAsText bool
	LobAsHandle   bool
	Encoding      string
	TimeZone      string
	Trace         bool
}

func DefaultOptions() Options {
	return Options{
		ArraySize:     constant.DefaultArraySize,
		BindArraySize: constant.DefaultBindArraySize,
		OutputSize:    constant.DefaultOutputSize,
		Encoding:      constant.DefaultEncoding,
	}
}

// OptionsFromConfig merges a configured data source with the cursor defaults.
func OptionsFromConfig(ds *config.DataSource, cur *config.Cursor) Options {
	opts := DefaultOptions()
	if cur != nil {
		opts.ArraySize = cur.ArraySize
		opts.BindArraySize = cur.BindArraySize
		opts.OutputSize = cur.OutputSize
		opts.StreamOutput = cur.StreamOutput
	}
	if ds != nil {
		if ds.Encoding != "" {
			opts.Encoding = ds.Encoding
		}
		opts.TimeZone = ds.TimeZone
		opts.NumbersAsText = ds.NumbersAsText
		opts.LobAsHandle = ds.LobAsHandle
		opts.Trace = ds.Trace
	}
	return opts
}

// ParseOptions applies a comma separated key=value list on top of base.
// Keys ignore case and underscores, so arraysize and array_size match.
func ParseOptions(s string, base Options) (Options, error) {
	opts := base
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		kv := strings.SplitN(item, "=", 2)
		if len(kv) != 2 {
			return base, errors.NewSQLError(constant.CRInvalidOption, constant.SSInvalidAttribute,
				"option %q has no value", item)
		}
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(kv[0]), "_", ""))
		value := strings.TrimSpace(kv[1])
		if err := opts.set(key, value); err != nil {
			return base, err
		}
	}
	if err := opts.validate(); err != nil {
		return base, err
	}
	return opts, nil
}

func (o *Options) set(key, value string) error {
	var err error
	switch key {
	case "arraysize":
		o.ArraySize, err = strconv.Atoi(value)
	case "bindarraysize":
		o.BindArraySize, err = strconv.Atoi(value)
	case "outputsize":
		o.OutputSize, err = strconv.Atoi(value)
	case "outputsizecolumn":
		o.OutputSizeColumn, err = strconv.Atoi(value)
	case "streamoutput":
		o.StreamOutput, err = strconv.ParseBool(value)
	case "numbersastext":
		o.NumbersAsText, err = strconv.ParseBool(value)
	case "lobashandle":
		o.LobAsHandle, err = strconv.ParseBool(value)
	case "encoding":
		o.Encoding = value
	case "timezone":
		o.TimeZone = value
	case "trace":
		o.Trace, err = strconv.ParseBool(value)
	default:
		return errors.NewSQLError(constant.CRInvalidOption, constant.SSInvalidAttribute,
			"unknown option %q", key)
	}
	if err != nil {
		return errors.NewSQLError(constant.CRInvalidOption, constant.SSInvalidAttribute,
			"invalid value %q for option %s: %v", value, key, err)
	}
	return nil
}

func (o Options) validate() error {
	if o.ArraySize < 1 {
		return errors.NewSQLError(constant.CRInvalidOption, constant.SSInvalidAttribute,
			"array size must be positive, got %d", o.ArraySize)
	}
	if o.BindArraySize < 1 {
		return errors.NewSQLError(constant.CRInvalidOption, constant.SSInvalidAttribute,
			"bind array size must be positive, got %d", o.BindArraySize)
	}
	if o.OutputSizeColumn < 0 {
		return errors.NewSQLError(constant.CRInvalidOption, constant.SSInvalidAttribute,
			"output size column must not be negative, got %d", o.OutputSizeColumn)
	}
	return nil
}

func (o Options) typeOptions() variable.Options {
	return variable.Options{NumbersAsText: o.NumbersAsText, LobAsHandle: o.LobAsHandle}
}
