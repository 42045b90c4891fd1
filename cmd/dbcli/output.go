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
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cectc/dbcli/pkg/driver"
	"github.com/cectc/dbcli/pkg/misc"
	"github.com/cectc/dbcli/pkg/variable"
)

const columnGap = 2

// printResults writes every result set of cur as an aligned table.
func printResults(ctx context.Context, w io.Writer, cur *driver.Cursor) error {
	for set := 0; ; set++ {
		columns := cur.Description()
		if columns == nil {
			return printSummary(w, cur)
		}
		if set > 0 {
			fmt.Fprintln(w)
		}
		if err := printTable(ctx, w, cur, columns); err != nil {
			return err
		}
		more, err := cur.NextResultSet(ctx)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

func printTable(ctx context.Context, w io.Writer, cur *driver.Cursor, columns []*driver.Column) error {
	table := [][]string{make([]string, len(columns))}
	for i, col := range columns {
		table[0][i] = col.Name
	}
	for {
		batch, err := cur.FetchMany(ctx, cur.ArraySize())
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}
		for _, row := range batch {
			cells := make([]string, len(row))
			for i, value := range row {
				if cells[i], err = format(ctx, value); err != nil {
					return err
				}
			}
			table = append(table, cells)
		}
	}

	widths := make([]int, len(columns))
	for _, cells := range table {
		for i, cell := range cells {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for _, cells := range table {
		last := len(cells) - 1
		for i := 0; i < last; i++ {
			cells[i] = misc.PadRight(cells[i], widths[i]+columnGap)
		}
		if _, err := fmt.Fprintln(w, strings.Join(cells, "")); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "(%d row(s))\n", len(table)-1)
	return nil
}

func format(ctx context.Context, value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "NULL", nil
	case string:
		return v, nil
	case []byte:
		return fmt.Sprintf("%x", v), nil
	case time.Time:
		return misc.FormatValue(v), nil
	case *variable.Lob:
		defer v.Close()
		if v.SQLType().IsText() {
			return v.Text(ctx)
		}
		data, err := v.ReadAll(ctx)
		return fmt.Sprintf("%x", data), err
	case *variable.Record:
		values, err := v.Values()
		if err != nil {
			return "", err
		}
		return fmt.Sprint(values), nil
	}
	return fmt.Sprint(value), nil
}
