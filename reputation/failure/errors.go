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

package failure

import (
	"fmt"
)

// InvalidInput is the error for a request rejected before any network call:
// malformed address, out-of-range score or non-positive required amount.
type InvalidInput struct {
	Description Description
}

// Error implements the error interface.
func (i InvalidInput) Error() string {
	return fmt.Sprintf("invalid input: %s", i.Description)
}

// UpstreamUnavailable is the error for a failed ledger read. It is surfaced
// to the caller as-is; the engine never retries internally.
type UpstreamUnavailable struct {
	Description Description
}

// Error implements the error interface.
func (u UpstreamUnavailable) Error() string {
	return fmt.Sprintf("upstream unavailable: %s", u.Description)
}

// UnknownRole is the error for an account role outside the closed
// enumeration. It indicates an incompatible instruction encoder and aborts
// composition; it is never defaulted to a least-privileged mapping.
type UnknownRole struct {
	Description Description
	Role        uint8
}

// Error implements the error interface.
func (u UnknownRole) Error() string {
	return fmt.Sprintf("unknown account role (role: %d): %s", u.Role, u.Description)
}

// Derivation is the error for a failed deterministic address derivation.
// It is an internal invariant violation and fatal to the current request.
type Derivation struct {
	Description Description
}

// Error implements the error interface.
func (d Derivation) Error() string {
	return fmt.Sprintf("could not derive address: %s", d.Description)
}

// Submission is the error for a transaction the ledger rejected. The
// ledger's reason is carried verbatim so the caller can decide whether to
// rebuild and resubmit.
type Submission struct {
	Description Description
}

// Error implements the error interface.
func (s Submission) Error() string {
	return fmt.Sprintf("could not submit transaction: %s", s.Description)
}
