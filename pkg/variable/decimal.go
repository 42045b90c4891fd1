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

package variable

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/cectc/dbcli/pkg/constant"
	"github.com/cectc/dbcli/pkg/errors"
)

// maxDecimalScale bounds the digits kept for fractions with no finite
// decimal expansion.
const maxDecimalScale = 38

// Decimal is an exact number carried as its decimal text.
type Decimal string

// NewDecimal validates s as a decimal number and keeps its text as given.
func NewDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if _, ok := new(big.Rat).SetString(s); !ok || s == "" {
		return "", errors.NewSQLError(constant.CRWrongValueType, constant.SSInvalidCharacter,
			"invalid decimal %q", s)
	}
	return Decimal(strings.TrimPrefix(s, "+")), nil
}

// DecimalFromRat formats r with the fewest digits that represent it exactly.
func DecimalFromRat(r *big.Rat) Decimal {
	if r.IsInt() {
		return Decimal(r.Num().String())
	}
	return Decimal(formatFraction(r))
}

// DecimalFromFloat uses the shortest text that reads back as f.
func DecimalFromFloat(f float64) Decimal {
	return Decimal(strconv.FormatFloat(f, 'f', -1, 64))
}

func formatFraction(r *big.Rat) string {
	denom := new(big.Int).Set(r.Denom())
	two, five := big.NewInt(2), big.NewInt(5)
	mod := new(big.Int)
	twos, fives := 0, 0
	for {
		q, m := new(big.Int).QuoRem(denom, two, mod)
		if m.Sign() != 0 {
			break
		}
		denom = q
		twos++
	}
	for {
		q, m := new(big.Int).QuoRem(denom, five, mod)
		if m.Sign() != 0 {
			break
		}
		denom = q
		fives++
	}
	if denom.Cmp(big.NewInt(1)) != 0 {
		s := r.FloatString(maxDecimalScale)
		s = strings.TrimRight(s, "0")
		return strings.TrimSuffix(s, ".")
	}
	scale := twos
	if fives > scale {
		scale = fives
	}
	return r.FloatString(scale)
}

func (d Decimal) String() string {
	return string(d)
}

// Rat returns the exact value of d.
func (d Decimal) Rat() (*big.Rat, bool) {
	return new(big.Rat).SetString(string(d))
}

func (d Decimal) Float64() (float64, error) {
	f, err := strconv.ParseFloat(string(d), 64)
	if err != nil {
		return 0, errors.NewSQLError(constant.CRWrongValueType, constant.SSInvalidCharacter,
			"invalid decimal %q", string(d))
	}
	return f, nil
}

// Cmp compares d and other numerically.
func (d Decimal) Cmp(other Decimal) int {
	a, _ := d.Rat()
	b, _ := other.Rat()
	if a == nil || b == nil {
		return strings.Compare(string(d), string(other))
	}
	return a.Cmp(b)
}
