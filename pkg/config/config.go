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
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/log"
	"github.com/cectc/dbcli/pkg/misc"
)

type Configuration struct {
	Log *log.Config `yaml:"log" json:"log"`

	Cursor *Cursor `yaml:"cursor" json:"cursor"`

	DataSources []*DataSource `yaml:"data_sources" json:"data_sources"`
}

type (
	// Cursor holds the defaults every new cursor starts from.
	Cursor struct {
		ArraySize     int  `yaml:"array_size" json:"array_size"`
		BindArraySize int  `yaml:"bind_array_size" json:"bind_array_size"`
		OutputSize    int  `yaml:"output_size" json:"output_size"`
		StreamOutput  bool `yaml:"stream_output" json:"stream_output"`
	}

	// Parameters defines a key-value parameters mapping
	Parameters map[string]interface{}
)

// DefaultCursor returns the cursor defaults used when the file has none.
func DefaultCursor() *Cursor {
	return &Cursor{
		ArraySize:     constant.DefaultArraySize,
		BindArraySize: constant.DefaultBindArraySize,
		OutputSize:    constant.DefaultOutputSize,
	}
}

// DataSource returns the data source called name.
func (c *Configuration) DataSource(name string) (*DataSource, error) {
	for _, ds := range c.DataSources {
		if strings.EqualFold(ds.Name, name) {
			return ds, nil
		}
	}
	return nil, errors.Errorf("data source %s is not configured", name)
}

func (c *Configuration) validate() error {
	names := make(map[string]bool, len(c.DataSources))
	for i, ds := range c.DataSources {
		if ds.Name == "" {
			return errors.Errorf("data source #%d has no name", i)
		}
		key := strings.ToLower(ds.Name)
		if names[key] {
			return errors.Errorf("data source %s is configured twice", ds.Name)
		}
		names[key] = true
		if ds.DSN == "" {
			return errors.Errorf("data source %s has no dsn", ds.Name)
		}
	}
	if c.Cursor.ArraySize < 1 {
		return errors.Errorf("cursor array_size must be positive, got %d", c.Cursor.ArraySize)
	}
	if c.Cursor.BindArraySize < 1 {
		return errors.Errorf("cursor bind_array_size must be positive, got %d", c.Cursor.BindArraySize)
	}
	return nil
}

// Parse decodes a yaml configuration and fills in defaults.
func Parse(content []byte) (*Configuration, error) {
	cfg := &Configuration{
		Cursor: DefaultCursor(),
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, errors.Wrap(err, "[config] yaml unmarshal config failed")
	}
	if cfg.Cursor == nil {
		cfg.Cursor = DefaultCursor()
	}
	for _, ds := range cfg.DataSources {
		ds.Encoding = misc.FirstNonEmptyString(ds.Encoding, constant.DefaultEncoding)
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.WithMessage(err, "[config] invalid configuration")
	}
	return cfg, nil
}

// Load config file and parse
func Load(path string) (*Configuration, error) {
	configPath, _ := filepath.Abs(path)
	log.Infof("load config from :  %s", configPath)
	content, err := ioutil.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "[config] load config %s failed", configPath)
	}
	return Parse(content)
}
