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

package encoder

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/failure"
)

// System program transfer instruction index.
const systemTransfer = uint32(2)

// Transfer encodes a system-program lamport transfer. Amounts beyond the
// lamport range are rejected here, before the instruction is composed.
func Transfer(from solana.PublicKey, to solana.PublicKey, amount reputation.Amount) (reputation.Instruction, error) {

	lamports, err := amount.Lamports()
	if err != nil {
		return reputation.Instruction{}, failure.InvalidInput{
			Description: failure.NewDescription("transfer amount beyond lamport range",
				failure.WithAmount("amount", amount),
			),
		}
	}

	buf := bytes.Buffer{}
	enc := bin.NewBinEncoder(&buf)
	err = enc.WriteUint32(systemTransfer, binary.LittleEndian)
	if err == nil {
		err = enc.WriteUint64(lamports, binary.LittleEndian)
	}
	if err != nil {
		return reputation.Instruction{}, fmt.Errorf("could not encode transfer: %w", err)
	}

	ix := reputation.Instruction{
		Program: solana.SystemProgramID,
		Accounts: []reputation.AccountRef{
			{Address: from, Role: reputation.RoleWritableSigner},
			{Address: to, Role: reputation.RoleWritable},
		},
		Data: buf.Bytes(),
	}
	return ix, nil
}
