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

package config

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

type (
	// DataSourceType ...
	DataSourceType int

	// DataSource ...
	DataSource struct {
		Name string         `yaml:"name" json:"name"`
		Type DataSourceType `yaml:"type" json:"type"`
		DSN  string         `yaml:"dsn" json:"dsn"`
		// Encoding is the character set text values are exchanged in.
		Encoding string `yaml:"encoding" json:"encoding"`
		TimeZone string `yaml:"time_zone" json:"time_zone"`
		// NumbersAsText fetches fixed point numbers as decimal text.
		NumbersAsText bool `yaml:"numbers_as_text" json:"numbers_as_text"`
		// LobAsHandle returns large objects as lazy locators.
		LobAsHandle bool `yaml:"lob_as_handle" json:"lob_as_handle"`
		// Trace logs every native call at debug level.
		Trace bool `yaml:"trace" json:"trace"`
	}
)

const (
	DBMysql DataSourceType = iota
	DBSqlite
)

func (t DataSourceType) String() string {
	switch t {
	case DBMysql:
		return "mysql"
	case DBSqlite:
		return "sqlite3"
	default:
		return fmt.Sprintf("%d", t)
	}
}

func (t *DataSourceType) UnmarshalText(text []byte) error {
	if t == nil {
		return errors.New("can't unmarshal a nil *DataSourceType")
	}
	if !t.unmarshalText(bytes.ToLower(text)) {
		return fmt.Errorf("unrecognized data source type: %q", text)
	}
	return nil
}

func (t *DataSourceType) unmarshalText(text []byte) bool {
	switch string(text) {
	case "mysql":
		*t = DBMysql
	case "sqlite", "sqlite3":
		*t = DBSqlite
	default:
		return false
	}
	return true
}
