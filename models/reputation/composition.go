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

// Composition is the outcome of composing one business operation: the
// ordered instructions to bundle into a single transaction, the fee payer,
// and every signer the transaction requires. Ordering is significant and
// preserved all the way to assembly.
type Composition struct {
	Instructions []Instruction
	FeePayer     Signer
	Signers      []Signer
}
