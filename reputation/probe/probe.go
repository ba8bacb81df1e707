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

// Package probe answers the one state question the composer branches on:
// does this owner already hold an asset in this collection.
package probe

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/failure"
)

// Probe scans an owner's holdings for an asset whose update authority is
// the given collection.
type Probe struct {
	read reputation.Reader
}

// New creates a probe on top of the given ledger reader.
func New(read reputation.Reader) *Probe {
	p := Probe{
		read: read,
	}
	return &p
}

// Holding returns the owner's asset in the given collection, or nil when
// the owner holds none. A missing holding is a valid outcome that drives
// the create branch; only a failed read is an error.
func (p *Probe) Holding(ctx context.Context, owner solana.PublicKey, collection solana.PublicKey) (*reputation.Asset, error) {

	assets, err := p.read.HoldingsByOwner(ctx, owner)
	if err != nil {
		return nil, failure.UpstreamUnavailable{
			Description: failure.NewDescription("could not list holdings",
				failure.WithAddress("owner", owner),
				failure.WithErr(err),
			),
		}
	}

	for _, asset := range assets {
		if asset.UpdateAuthority.Equals(collection) {
			found := asset
			return &found, nil
		}
	}

	return nil, nil
}
