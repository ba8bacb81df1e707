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
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
)

type Reader struct {
	HoldingsByOwnerFunc func(ctx context.Context, owner solana.PublicKey) ([]reputation.Asset, error)
	LatestBlockhashFunc func(ctx context.Context) (solana.Hash, error)
	AccountDataFunc     func(ctx context.Context, address solana.PublicKey) ([]byte, error)
}

func BaselineReader(t *testing.T) *Reader {
	t.Helper()

	r := Reader{
		HoldingsByOwnerFunc: func(context.Context, solana.PublicKey) ([]reputation.Asset, error) {
			return nil, nil
		},
		LatestBlockhashFunc: func(context.Context) (solana.Hash, error) {
			return GenericHash, nil
		},
		AccountDataFunc: func(context.Context, solana.PublicKey) ([]byte, error) {
			return nil, reputation.ErrNotFound
		},
	}

	return &r
}

func (r *Reader) HoldingsByOwner(ctx context.Context, owner solana.PublicKey) ([]reputation.Asset, error) {
	return r.HoldingsByOwnerFunc(ctx, owner)
}

func (r *Reader) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	return r.LatestBlockhashFunc(ctx)
}

func (r *Reader) AccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	return r.AccountDataFunc(ctx, address)
}
