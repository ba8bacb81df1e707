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
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

// ErrNotFound is returned by reads for accounts that do not exist on the
// ledger. It is a valid outcome, not an upstream failure.
var ErrNotFound = errors.New("account not found")

// Reader is the read-only boundary to the ledger. The engine owns no durable
// state; everything it decides on comes through this interface.
type Reader interface {
	HoldingsByOwner(ctx context.Context, owner solana.PublicKey) ([]Asset, error)
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	AccountData(ctx context.Context, address solana.PublicKey) ([]byte, error)
}

// Submitter is the write boundary to the ledger: it sends one signed
// transaction and returns its signature.
type Submitter interface {
	Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
}
