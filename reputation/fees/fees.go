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

// Package fees computes the deterministic split of a service fee between
// the merchant and an optional referrer. All arithmetic is integer-only on
// arbitrary-precision amounts; no value is ever rounded or goes negative.
package fees

import (
	"github.com/nomis-labs/reputation-engine/models/reputation"
)

// Operation distinguishes a first-time mint from an update of an existing
// holding. Referrals only apply to creations.
type Operation uint8

const (
	Create Operation = iota
	Update
)

// Split divides the base fee between the merchant and the referrer. The
// referrer receives the referral amount only for a Create operation, only
// when the caller already validated the referrer as qualifying, and only
// when the referral amount is positive and strictly below the base amount.
// In every other case the full base amount goes to the merchant; an
// unusable referral silently falls back to no split, it never fails the
// operation. The two returned amounts always sum to the base amount.
func Split(op Operation, base reputation.Amount, referral reputation.Amount, qualified bool) (reputation.Amount, reputation.Amount) {

	zero := reputation.NewAmount(0)

	if op != Create || !qualified {
		return base, zero
	}
	if referral.IsZero() || referral.Cmp(base) >= 0 {
		return base, zero
	}

	merchant := base.Sub(referral)
	return merchant, referral
}
