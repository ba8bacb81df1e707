// Copyright 2025 Nomis Labs Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package reputation

import (
	"fmt"
	"math"
	"math/big"
)

// Amount is an unsigned arbitrary-precision amount of lamports. The zero
// value is zero lamports. Amounts are never negative: every constructor and
// operation clamps below-zero results to zero instead of wrapping.
type Amount struct {
	val *big.Int
}

// NewAmount creates an amount from a number of lamports.
func NewAmount(lamports uint64) Amount {
	return Amount{val: new(big.Int).SetUint64(lamports)}
}

// AmountFromBig creates an amount from an arbitrary-precision integer. Nil
// and negative values are clamped to zero.
func AmountFromBig(v *big.Int) Amount {
	if v == nil || v.Sign() < 0 {
		return Amount{val: new(big.Int)}
	}
	return Amount{val: new(big.Int).Set(v)}
}

// AmountFromString parses a base-10 amount. Negative and malformed values
// are rejected.
func AmountFromString(s string) (Amount, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("could not parse amount: %s", s)
	}
	if v.Sign() < 0 {
		return Amount{}, fmt.Errorf("amount is negative: %s", s)
	}
	return Amount{val: v}, nil
}

// Big returns a copy of the underlying integer.
func (a Amount) Big() *big.Int {
	if a.val == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.val)
}

// IsZero reports whether the amount is zero lamports.
func (a Amount) IsZero() bool {
	return a.val == nil || a.val.Sign() == 0
}

// Cmp compares two amounts, with the semantics of big.Int.Cmp.
func (a Amount) Cmp(b Amount) int {
	return a.Big().Cmp(b.Big())
}

// Add returns the sum of two amounts.
func (a Amount) Add(b Amount) Amount {
	return Amount{val: new(big.Int).Add(a.Big(), b.Big())}
}

// Sub returns the difference of two amounts, clamped at zero.
func (a Amount) Sub(b Amount) Amount {
	diff := new(big.Int).Sub(a.Big(), b.Big())
	return AmountFromBig(diff)
}

// Lamports converts the amount to the fixed-width representation used by
// transfer instructions. Amounts beyond the uint64 range are rejected
// instead of being truncated.
func (a Amount) Lamports() (uint64, error) {
	v := a.Big()
	if !v.IsUint64() {
		return 0, fmt.Errorf("amount exceeds lamport range: %s > %d", v, uint64(math.MaxUint64))
	}
	return v.Uint64(), nil
}

// String returns the base-10 representation of the amount.
func (a Amount) String() string {
	return a.Big().String()
}
