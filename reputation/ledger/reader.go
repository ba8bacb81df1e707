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

// Package ledger implements the read and write boundaries of the engine on
// top of the Solana JSON-RPC API.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/nomis-labs/reputation-engine/models/reputation"
)

// Offset of the owner field inside a token-program asset account, right
// after the one-byte account kind.
const ownerOffset = 1

// Reader reads ledger state through a Solana RPC client.
type Reader struct {
	client *rpc.Client
}

// NewReader creates a reader on top of the given RPC client.
func NewReader(client *rpc.Client) *Reader {
	r := Reader{
		client: client,
	}
	return &r
}

// HoldingsByOwner lists the token-program assets owned by the given
// address. Program accounts that are not assets, such as collections or
// plugin records, are skipped.
func (r *Reader) HoldingsByOwner(ctx context.Context, owner solana.PublicKey) ([]reputation.Asset, error) {

	result, err := r.client.GetProgramAccountsWithOpts(ctx, reputation.TokenProgram, &rpc.GetProgramAccountsOpts{
		Encoding: solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: ownerOffset,
					Bytes:  solana.Base58(owner.Bytes()),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not get program accounts: %w", err)
	}

	assets := make([]reputation.Asset, 0, len(result))
	for _, keyed := range result {
		asset, ok := decodeAsset(keyed.Pubkey, keyed.Account.Data.GetBinary())
		if !ok {
			continue
		}
		assets = append(assets, asset)
	}

	return assets, nil
}

// LatestBlockhash returns the most recent finalized blockhash.
func (r *Reader) LatestBlockhash(ctx context.Context) (solana.Hash, error) {

	result, err := r.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("could not get latest blockhash: %w", err)
	}

	return result.Value.Blockhash, nil
}

// AccountData returns the raw data of an account, or ErrNotFound when the
// account does not exist on the ledger.
func (r *Reader) AccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {

	result, err := r.client.GetAccountInfo(ctx, address)
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, reputation.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get account info: %w", err)
	}
	if result.Value == nil {
		return nil, reputation.ErrNotFound
	}

	return result.Value.Data.GetBinary(), nil
}
