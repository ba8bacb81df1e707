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

// Package composer turns business operations into ordered instruction
// lists. It owns the create-versus-update branching, the referral
// qualification check and the signer set of each operation; it performs no
// I/O beyond the state probe.
package composer

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/encoder"
	"github.com/nomis-labs/reputation-engine/reputation/failure"
	"github.com/nomis-labs/reputation-engine/reputation/fees"
)

// Holder answers whether an owner already holds an asset in a collection.
type Holder interface {
	Holding(ctx context.Context, owner solana.PublicKey, collection solana.PublicKey) (*reputation.Asset, error)
}

// Composer composes the instruction list and signer set for each business
// operation of the engine.
type Composer struct {
	hold      Holder
	authority reputation.KeySigner
	merchant  solana.PublicKey
	generate  func() (solana.PrivateKey, error)
	now       func() time.Time
}

// New creates a composer with the given state probe, service authority and
// merchant fee destination.
func New(hold Holder, authority reputation.KeySigner, merchant solana.PublicKey, options ...Option) *Composer {

	c := Composer{
		hold:      hold,
		authority: authority,
		merchant:  merchant,
		generate:  generateIdentity,
		now:       time.Now,
	}
	for _, option := range options {
		option(&c)
	}

	return &c
}

// Option configures optional composer behavior.
type Option func(*Composer)

// WithClock overrides the clock used for attestation expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) {
		c.now = now
	}
}

// WithIdentityGenerator overrides the generation of fresh asset identities.
func WithIdentityGenerator(generate func() (solana.PrivateKey, error)) Option {
	return func(c *Composer) {
		c.generate = generate
	}
}

func generateIdentity() (solana.PrivateKey, error) {
	wallet := solana.NewWallet()
	return wallet.PrivateKey, nil
}

// MintParams carries one mint-or-update request for a user's SBT.
type MintParams struct {
	User           solana.PublicKey
	Collection     solana.PublicKey
	Name           string
	MetadataURI    string
	Score          uint16
	CreateAmount   reputation.Amount
	UpdateAmount   reputation.Amount
	Referrer       solana.PublicKey
	ReferralAmount reputation.Amount
}

// MintOrUpdate composes the transaction for a user's SBT, branching
// strictly on current on-chain state: an existing holding is updated in
// place, otherwise a fresh asset is minted, with the referral and merchant
// fee transfers appended after the creation. The user pays, so the fee
// payer is a deferred signer completed by the user before submission.
func (c *Composer) MintOrUpdate(ctx context.Context, params MintParams) (*reputation.Composition, error) {

	if params.Score > reputation.ScoreMax {
		return nil, failure.InvalidInput{
			Description: failure.NewDescription("score out of range",
				failure.WithInt("score", int(params.Score)),
				failure.WithInt("maximum", int(reputation.ScoreMax)),
			),
		}
	}

	holding, err := c.hold.Holding(ctx, params.User, params.Collection)
	if err != nil {
		return nil, fmt.Errorf("could not probe user holding: %w", err)
	}

	if holding != nil {
		return c.update(params, holding)
	}
	return c.create(ctx, params)
}

// update composes the branch for an existing holding: refresh the metadata,
// then the score attribute, then pay the update fee. Referrals never apply
// to updates.
func (c *Composer) update(params MintParams, holding *reputation.Asset) (*reputation.Composition, error) {

	updateIx, err := encoder.UpdateAsset(encoder.UpdateAssetParams{
		Asset:      holding.Address,
		Collection: params.Collection,
		Authority:  c.authority.Address(),
		Payer:      params.User,
		Name:       params.Name,
		URI:        params.MetadataURI,
	})
	if err != nil {
		return nil, fmt.Errorf("could not compose asset update: %w", err)
	}

	scoreIx, err := encoder.UpdateScore(encoder.UpdateScoreParams{
		Asset:      holding.Address,
		Collection: params.Collection,
		Authority:  c.authority.Address(),
		Payer:      params.User,
		Score:      params.Score,
	})
	if err != nil {
		return nil, fmt.Errorf("could not compose score update: %w", err)
	}

	instructions := []reputation.Instruction{updateIx, scoreIx}

	merchant, _ := fees.Split(fees.Update, params.UpdateAmount, params.ReferralAmount, false)
	if !merchant.IsZero() {
		transferIx, err := encoder.Transfer(params.User, c.merchant, merchant)
		if err != nil {
			return nil, fmt.Errorf("could not compose merchant transfer: %w", err)
		}
		instructions = append(instructions, transferIx)
	}

	composition := reputation.Composition{
		Instructions: instructions,
		FeePayer:     reputation.NewNoopSigner(params.User),
		Signers:      []reputation.Signer{c.authority},
	}
	return &composition, nil
}

// create composes the branch for a first mint: create the asset with the
// score attached, then the referral transfer when the referrer qualifies,
// then the merchant fee. The creation always precedes the transfers.
func (c *Composer) create(ctx context.Context, params MintParams) (*reputation.Composition, error) {

	qualified, err := c.qualifyReferrer(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("could not qualify referrer: %w", err)
	}

	merchant, referral := fees.Split(fees.Create, params.CreateAmount, params.ReferralAmount, qualified)

	identity, err := c.generate()
	if err != nil {
		return nil, fmt.Errorf("could not generate asset identity: %w", err)
	}
	asset := reputation.NewKeySigner(identity)

	createIx, err := encoder.CreateAsset(encoder.CreateAssetParams{
		Asset:      asset.Address(),
		Collection: params.Collection,
		Authority:  c.authority.Address(),
		Payer:      params.User,
		Owner:      params.User,
		Name:       params.Name,
		URI:        params.MetadataURI,
		Score:      params.Score,
	})
	if err != nil {
		return nil, fmt.Errorf("could not compose asset creation: %w", err)
	}

	instructions := []reputation.Instruction{createIx}

	if !referral.IsZero() {
		transferIx, err := encoder.Transfer(params.User, params.Referrer, referral)
		if err != nil {
			return nil, fmt.Errorf("could not compose referral transfer: %w", err)
		}
		instructions = append(instructions, transferIx)
	}

	if !merchant.IsZero() {
		transferIx, err := encoder.Transfer(params.User, c.merchant, merchant)
		if err != nil {
			return nil, fmt.Errorf("could not compose merchant transfer: %w", err)
		}
		instructions = append(instructions, transferIx)
	}

	composition := reputation.Composition{
		Instructions: instructions,
		FeePayer:     reputation.NewNoopSigner(params.User),
		Signers:      []reputation.Signer{c.authority, asset},
	}
	return &composition, nil
}

// qualifyReferrer checks, before any split is computed, that the referrer
// is someone else and already holds an asset in the same collection. An
// unqualified referrer is not an error; the split simply does not happen.
func (c *Composer) qualifyReferrer(ctx context.Context, params MintParams) (bool, error) {

	if params.Referrer.IsZero() || params.Referrer.Equals(params.User) {
		return false, nil
	}

	holding, err := c.hold.Holding(ctx, params.Referrer, params.Collection)
	if err != nil {
		return false, err
	}

	return holding != nil, nil
}
