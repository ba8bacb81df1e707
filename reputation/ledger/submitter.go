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

package ledger

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Submitter sends signed transactions through a Solana RPC client.
type Submitter struct {
	client *rpc.Client
}

// NewSubmitter creates a submitter on top of the given RPC client.
func NewSubmitter(client *rpc.Client) *Submitter {
	s := Submitter{
		client: client,
	}
	return &s
}

// Submit sends the transaction and returns its signature. The RPC error is
// wrapped but otherwise passed through verbatim, so rejection reasons such
// as an already-existing derived account reach the caller unchanged.
func (s *Submitter) Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	signature, err := s.client.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("could not send transaction: %w", err)
	}
	return signature, nil
}
