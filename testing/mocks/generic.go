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

package mocks

import (
	"crypto/ed25519"
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
)

// Global variables that can be used for testing. They are non-nil valid
// values for the types commonly needed to test engine components.
var (
	GenericError = errors.New("dummy error")

	GenericHash = solana.HashFromBytes(genericBytes(7))

	GenericTime = time.Date(1972, 11, 12, 13, 14, 15, 16, time.UTC)

	// GenericAuthority holds a fixed private key so signatures are
	// reproducible across test runs.
	GenericAuthority = reputation.NewKeySigner(genericKey(1))

	GenericUser       = GenericAddress(2)
	GenericCollection = GenericAddress(3)
	GenericMerchant   = GenericAddress(4)
	GenericReferrer   = GenericAddress(5)
)

// GenericAddress returns a deterministic address for the given index.
func GenericAddress(index uint8) solana.PublicKey {
	return solana.PublicKeyFromBytes(genericBytes(index))
}

// GenericKey returns a deterministic private key for the given index.
func GenericKey(index uint8) solana.PrivateKey {
	return genericKey(index)
}

// GenericAsset returns a deterministic asset held by the generic user in
// the generic collection, carrying the given score attribute.
func GenericAsset(score string) reputation.Asset {
	return reputation.Asset{
		Address:         GenericAddress(6),
		Owner:           GenericUser,
		UpdateAuthority: GenericCollection,
		Name:            "Reputation SBT",
		URI:             "https://example.com/metadata.json",
		Attributes:      map[string]string{reputation.ScoreAttribute: score},
	}
}

func genericKey(index uint8) solana.PrivateKey {
	key := ed25519.NewKeyFromSeed(genericBytes(index))
	return solana.PrivateKey(key)
}

func genericBytes(index uint8) []byte {
	b := make([]byte, 32)
	for i := range b {
		b[i] = index
	}
	return b
}
