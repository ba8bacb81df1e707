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

package convert

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
)

// Instruction translates one composed instruction into the SDK instruction
// shape, resolving every account role into concrete flags.
func Instruction(ix reputation.Instruction) (solana.Instruction, error) {
	metas := make(solana.AccountMetaSlice, 0, len(ix.Accounts))
	for _, account := range ix.Accounts {
		meta, err := RoleToMeta(account.Address, account.Role)
		if err != nil {
			return nil, fmt.Errorf("could not resolve account role: %w", err)
		}
		metas = append(metas, meta)
	}
	return solana.NewInstruction(ix.Program, metas, ix.Data), nil
}

// Instructions translates an ordered instruction list, preserving order. A
// single unresolvable role fails the whole translation.
func Instructions(ixs []reputation.Instruction) ([]solana.Instruction, error) {
	out := make([]solana.Instruction, 0, len(ixs))
	for i, ix := range ixs {
		converted, err := Instruction(ix)
		if err != nil {
			return nil, fmt.Errorf("could not convert instruction (index: %d): %w", i, err)
		}
		out = append(out, converted)
	}
	return out, nil
}
