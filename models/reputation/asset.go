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
	"strconv"

	"github.com/gagliardetto/solana-go"
)

// Asset is a read-only snapshot of an on-chain SBT asset. The engine never
// mutates an asset directly; state changes happen only through submitted
// transactions.
type Asset struct {
	Address         solana.PublicKey  `json:"address"`
	Owner           solana.PublicKey  `json:"owner"`
	UpdateAuthority solana.PublicKey  `json:"update_authority"`
	Name            string            `json:"name"`
	URI             string            `json:"uri"`
	Attributes      map[string]string `json:"attributes,omitempty"`
}

// Score returns the reputation score stored in the asset's attribute map,
// or zero when the attribute is absent or unreadable.
func (a Asset) Score() uint16 {
	raw, ok := a.Attributes[ScoreAttribute]
	if !ok {
		return 0
	}
	score, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0
	}
	return uint16(score)
}

// Collection is a read-only snapshot of an on-chain asset collection.
type Collection struct {
	Address         solana.PublicKey `json:"address"`
	UpdateAuthority solana.PublicKey `json:"update_authority"`
	Name            string           `json:"name"`
	URI             string           `json:"uri"`
	NumMinted       uint32           `json:"num_minted"`
	CurrentSize     uint32           `json:"current_size"`
}
