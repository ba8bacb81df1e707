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
	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/failure"
)

// RoleToMeta translates an abstract account role into the signer/writable
// flags a ledger instruction key requires. The mapping is total over the
// four roles; anything else means the instruction encoder and this engine
// disagree on the role encoding, which aborts composition.
func RoleToMeta(address solana.PublicKey, role reputation.Role) (*solana.AccountMeta, error) {
	switch role {
	case reputation.RoleReadOnly:
		return solana.Meta(address), nil
	case reputation.RoleWritable:
		return solana.Meta(address).WRITE(), nil
	case reputation.RoleReadOnlySigner:
		return solana.Meta(address).SIGNER(), nil
	case reputation.RoleWritableSigner:
		return solana.Meta(address).WRITE().SIGNER(), nil
	default:
		return nil, failure.UnknownRole{
			Description: failure.NewDescription("account role outside the closed enumeration",
				failure.WithAddress("address", address),
			),
			Role: uint8(role),
		}
	}
}
