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

type Holder struct {
	HoldingFunc func(ctx context.Context, owner solana.PublicKey, collection solana.PublicKey) (*reputation.Asset, error)
}

func BaselineHolder(t *testing.T) *Holder {
	t.Helper()

	h := Holder{
		HoldingFunc: func(context.Context, solana.PublicKey, solana.PublicKey) (*reputation.Asset, error) {
			return nil, nil
		},
	}

	return &h
}

func (h *Holder) Holding(ctx context.Context, owner solana.PublicKey, collection solana.PublicKey) (*reputation.Asset, error) {
	return h.HoldingFunc(ctx, owner, collection)
}
