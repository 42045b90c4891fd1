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

package sql

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	createEmployees = `CREATE TABLE employees (emp_no INTEGER PRIMARY KEY, first_name VARCHAR(14) NOT NULL, last_name VARCHAR(16), hire_date TIMESTAMP)`
	insertEmployee  = `INSERT INTO employees (emp_no, first_name, last_name, hire_date) VALUES (?, ?, ?, ?)`
	selectEmployee  = `SELECT emp_no, first_name, last_name, hire_date FROM employees WHERE emp_no = ?`
	updateEmployee  = `UPDATE employees SET last_name = ? WHERE emp_no = ?`
	countEmployees  = `SELECT count(*) FROM employees`
)

var hireDate = time.Date(2014, time.September, 1, 0, 0, 0, 0, time.UTC)

type _SQLiteSuite struct {
	suite.Suite
	ctx context.Context
	db  *sql.DB
}

func TestSQLite(t *testing.T) {
	suite.Run(t, new(_SQLiteSuite))
}

func (suite *_SQLiteSuite) SetupTest() {
	suite.ctx = context.Background()
	db, err := sql.Open(DriverName, "sqlite3://file::memory:")
	suite.Require().NoErrorf(err, "connection error: %v", err)
	// every connection opens its own in-memory database
	db.SetMaxOpenConns(1)
	suite.db = db

	_, err = db.ExecContext(suite.ctx, createEmployees)
	suite.Require().NoErrorf(err, "create table error: %v", err)
	result, err := db.ExecContext(suite.ctx, insertEmployee, 100000, "scott", "lewis", hireDate)
	if suite.NoErrorf(err, "insert row error: %v", err) {
		affected, err := result.RowsAffected()
		if suite.NoErrorf(err, "insert row error: %v", err) {
			suite.Equal(int64(1), affected)
		}
		id, err := result.LastInsertId()
		if suite.NoError(err) {
			suite.Equal(int64(100000), id)
		}
	}
}

func (suite *_SQLiteSuite) TearDownTest() {
	suite.NoError(suite.db.Close())
}

func (suite *_SQLiteSuite) TestSelect() {
	var (
		empNo     int64
		firstName string
		lastName  sql.NullString
		hired     time.Time
	)
	err := suite.db.QueryRowContext(suite.ctx, selectEmployee, 100000).Scan(&empNo, &firstName, &lastName, &hired)
	suite.Require().NoErrorf(err, "select row error: %v", err)
	suite.Equal(int64(100000), empNo)
	suite.Equal("scott", firstName)
	suite.Equal(sql.NullString{String: "lewis", Valid: true}, lastName)
	suite.True(hireDate.Equal(hired), "got %v", hired)

	err = suite.db.QueryRowContext(suite.ctx, selectEmployee, 1).Scan(&empNo, &firstName, &lastName, &hired)
	suite.Equal(sql.ErrNoRows, err)
}

func (suite *_SQLiteSuite) TestColumnTypes() {
	rows, err := suite.db.QueryContext(suite.ctx, selectEmployee, 100000)
	suite.Require().NoError(err)
	defer rows.Close()

	types, err := rows.ColumnTypes()
	suite.Require().NoError(err)
	suite.Require().Len(types, 4)
	suite.Equal("emp_no", types[0].Name())
	suite.Equal("BIGINT", types[0].DatabaseTypeName())
	suite.Equal("VARCHAR", types[1].DatabaseTypeName())
	length, ok := types[1].Length()
	suite.True(ok)
	suite.Equal(int64(14), length)
	suite.Equal("TIMESTAMP", types[3].DatabaseTypeName())
}

func (suite *_SQLiteSuite) TestPreparedStatement() {
	stmt, err := suite.db.PrepareContext(suite.ctx, insertEmployee)
	suite.Require().NoError(err)
	for i := 1; i <= 3; i++ {
		_, err = stmt.ExecContext(suite.ctx, 200000+i, "ann", nil, nil)
		suite.Require().NoErrorf(err, "insert row %d error: %v", i, err)
	}
	suite.NoError(stmt.Close())

	var count int64
	suite.Require().NoError(suite.db.QueryRowContext(suite.ctx, countEmployees).Scan(&count))
	suite.Equal(int64(4), count)
}

func (suite *_SQLiteSuite) TestUpdate() {
	result, err := suite.db.ExecContext(suite.ctx, updateEmployee, "louis", 100000)
	if suite.NoErrorf(err, "update row error: %v", err) {
		affected, err := result.RowsAffected()
		if suite.NoErrorf(err, "update row error: %v", err) {
			suite.Equal(int64(1), affected)
		}
		_, err = result.LastInsertId()
		suite.Error(err)
	}
}

func (suite *_SQLiteSuite) TestTransaction() {
	tx, err := suite.db.BeginTx(suite.ctx, nil)
	suite.Require().NoError(err)
	_, err = tx.ExecContext(suite.ctx, insertEmployee, 100001, "rolled", "back", nil)
	suite.Require().NoError(err)
	suite.Require().NoError(tx.Rollback())

	tx, err = suite.db.BeginTx(suite.ctx, nil)
	suite.Require().NoError(err)
	_, err = tx.ExecContext(suite.ctx, insertEmployee, 100002, "kept", nil, nil)
	suite.Require().NoError(err)
	suite.Require().NoError(tx.Commit())

	var count int64
	suite.Require().NoError(suite.db.QueryRowContext(suite.ctx, countEmployees).Scan(&count))
	suite.Equal(int64(2), count)

	_, err = suite.db.BeginTx(suite.ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	suite.Error(err)
}

func (suite *_SQLiteSuite) TestIntegrityError() {
	_, err := suite.db.ExecContext(suite.ctx, insertEmployee, 100000, "dup", nil, nil)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "UNIQUE")
}
