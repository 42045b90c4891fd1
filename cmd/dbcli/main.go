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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cectc/dbcli/pkg/config"
	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/driver"
	"github.com/cectc/dbcli/pkg/log"
	"github.com/cectc/dbcli/pkg/misc"
	"github.com/cectc/dbcli/pkg/native/sqladapter"
	dbsql "github.com/cectc/dbcli/pkg/sql"
)

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

var Version = "0.1.0"

type flags struct {
	configPath string
	source     string
	dsn        string
	options    string
	null       string
}

func newRootCommand(out io.Writer) *cobra.Command {
	f := &flags{}
	rootCommand := &cobra.Command{
		Use:          "dbcli",
		Short:        "dbcli executes statements through the binding engine",
		Version:      Version,
		SilenceUsage: true,
	}
	rootCommand.SetOut(out)
	rootCommand.PersistentFlags().StringVarP(&f.configPath, constant.ConfigPathKey, "c", os.Getenv(constant.EnvDBCliConfig), "Load configuration from `FILE`")
	rootCommand.PersistentFlags().StringVarP(&f.source, "source", "s", "", "configured data source `NAME`, the first one by default")
	rootCommand.PersistentFlags().StringVarP(&f.dsn, "dsn", "d", "", "connect to `TYPE://DSN` instead of a configured data source")
	rootCommand.PersistentFlags().StringVarP(&f.options, "options", "o", "", "cursor options such as `arraysize=50,numbers_as_text=true`")
	rootCommand.PersistentFlags().StringVar(&f.null, "null", `\N`, "argument text bound as NULL")

	execCommand := &cobra.Command{
		Use:   "exec SQL [ARGS...]",
		Short: "execute a statement and report the affected rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0], func(ctx context.Context, cur *driver.Cursor) error {
				if err := cur.Execute(ctx, args[0], f.params(args[1:])...); err != nil {
					return err
				}
				return printSummary(cmd.OutOrStdout(), cur)
			})
		},
	}

	queryCommand := &cobra.Command{
		Use:   "query SQL [ARGS...]",
		Short: "execute a query and print every result set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0], func(ctx context.Context, cur *driver.Cursor) error {
				if err := cur.Execute(ctx, args[0], f.params(args[1:])...); err != nil {
					return err
				}
				return printResults(ctx, cmd.OutOrStdout(), cur)
			})
		},
	}

	rootCommand.AddCommand(execCommand, queryCommand)
	return rootCommand
}

func (f *flags) params(args []string) []interface{} {
	params := make([]interface{}, len(args))
	for i, arg := range args {
		if arg != f.null {
			params[i] = arg
		}
	}
	return params
}

// dataSource resolves the target from --dsn or the configuration file.
func (f *flags) dataSource() (*config.DataSource, *config.Cursor, error) {
	if f.dsn != "" {
		ds, err := dbsql.ParseName(f.dsn)
		return ds, nil, err
	}
	if f.configPath == "" {
		return nil, nil, errors.Errorf("either --dsn or --%s is required", constant.ConfigPathKey)
	}
	conf, err := config.Load(f.configPath)
	if err != nil {
		return nil, nil, err
	}
	log.Init(conf.Log)
	if f.source == "" {
		if len(conf.DataSources) == 0 {
			return nil, nil, errors.New("no data source is configured")
		}
		return conf.DataSources[0], conf.Cursor, nil
	}
	ds, err := conf.DataSource(f.source)
	return ds, conf.Cursor, err
}

func run(cmd *cobra.Command, f *flags, query string, fn func(ctx context.Context, cur *driver.Cursor) error) error {
	if misc.IsBlank(query) {
		return errors.New("the statement is empty")
	}
	ds, cursorConf, err := f.dataSource()
	if err != nil {
		return err
	}
	opts, err := driver.ParseOptions(f.options, driver.OptionsFromConfig(ds, cursorConf))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	codec, err := driver.NewCodec(opts)
	if err != nil {
		return err
	}
	log.Infof("connecting to %s %s", ds.Type, redact(ds))
	nc, err := sqladapter.Open(ctx, ds, codec)
	if err != nil {
		return errors.WithMessagef(err, "connect to %s", ds.Name)
	}
	conn, err := driver.NewConnection(nc, ds.Name, opts)
	if err != nil {
		nc.Close()
		return err
	}
	defer conn.Close()

	cur, err := conn.Cursor()
	if err != nil {
		return err
	}
	defer cur.Close()
	return fn(ctx, cur)
}

// redact hides the password of MySQL data source names.
func redact(ds *config.DataSource) string {
	if ds.Type != config.DBMysql {
		return ds.DSN
	}
	cfg, err := mysql.ParseDSN(ds.DSN)
	if err != nil {
		return "<invalid dsn>"
	}
	if cfg.Passwd != "" {
		cfg.Passwd = "xxxxx"
	}
	return cfg.FormatDSN()
}

func printSummary(w io.Writer, cur *driver.Cursor) error {
	if cur.RowCount() >= 0 {
		fmt.Fprintf(w, "%d row(s) affected\n", cur.RowCount())
	}
	if id := cur.LastRowID(); id != "" {
		fmt.Fprintf(w, "last row id: %s\n", id)
	}
	if warning := cur.Warning(); warning != nil {
		fmt.Fprintf(w, "warning: %v\n", warning)
	}
	return nil
}
