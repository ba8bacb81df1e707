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

// Package collection manages the SBT collections the service administers.
// Collections are created and updated by the authority directly; no user
// signature is involved, so these operations submit immediately.
package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/encoder"
	"github.com/nomis-labs/reputation-engine/reputation/failure"
	"github.com/nomis-labs/reputation-engine/reputation/ledger"
)

// Submitter signs a composition with the service keys and submits it.
type Submitter interface {
	SubmitAsAuthority(ctx context.Context, composition reputation.Composition) (solana.Signature, error)
}

// Service reads and administers collections.
type Service struct {
	read      reputation.Reader
	submit    Submitter
	authority reputation.KeySigner
}

// New creates a collection service with the given authority.
func New(read reputation.Reader, submit Submitter, authority reputation.KeySigner) *Service {
	s := Service{
		read:      read,
		submit:    submit,
		authority: authority,
	}
	return &s
}

// Get returns the collection at the given address. A missing account
// surfaces as ErrNotFound; an account of another kind is an input error.
func (s *Service) Get(ctx context.Context, address solana.PublicKey) (*reputation.Collection, error) {

	data, err := s.read.AccountData(ctx, address)
	if errors.Is(err, reputation.ErrNotFound) {
		return nil, reputation.ErrNotFound
	}
	if err != nil {
		return nil, failure.UpstreamUnavailable{
			Description: failure.NewDescription("could not read collection account",
				failure.WithAddress("address", address),
				failure.WithErr(err),
			),
		}
	}

	collection, ok := ledger.DecodeCollection(address, data)
	if !ok {
		return nil, failure.InvalidInput{
			Description: failure.NewDescription("account is not a collection",
				failure.WithAddress("address", address),
			),
		}
	}

	return &collection, nil
}

// Upsert creates a new collection when no address is given, or updates the
// metadata of an existing one. It returns the collection address and the
// submission signature.
func (s *Service) Upsert(ctx context.Context, address solana.PublicKey, name string, uri string) (solana.PublicKey, solana.Signature, error) {

	if address.IsZero() {
		return s.create(ctx, name, uri)
	}
	return s.update(ctx, address, name, uri)
}

func (s *Service) create(ctx context.Context, name string, uri string) (solana.PublicKey, solana.Signature, error) {

	identity := reputation.NewKeySigner(solana.NewWallet().PrivateKey)

	ix, err := encoder.CreateCollection(encoder.CollectionParams{
		Collection: identity.Address(),
		Authority:  s.authority.Address(),
		Name:       name,
		URI:        uri,
	})
	if err != nil {
		return solana.PublicKey{}, solana.Signature{}, fmt.Errorf("could not compose collection creation: %w", err)
	}

	signature, err := s.submit.SubmitAsAuthority(ctx, reputation.Composition{
		Instructions: []reputation.Instruction{ix},
		FeePayer:     s.authority,
		Signers:      []reputation.Signer{s.authority, identity},
	})
	if err != nil {
		return solana.PublicKey{}, solana.Signature{}, fmt.Errorf("could not submit collection creation: %w", err)
	}

	return identity.Address(), signature, nil
}

func (s *Service) update(ctx context.Context, address solana.PublicKey, name string, uri string) (solana.PublicKey, solana.Signature, error) {

	ix, err := encoder.UpdateCollection(encoder.CollectionParams{
		Collection: address,
		Authority:  s.authority.Address(),
		Name:       name,
		URI:        uri,
	})
	if err != nil {
		return solana.PublicKey{}, solana.Signature{}, fmt.Errorf("could not compose collection update: %w", err)
	}

	signature, err := s.submit.SubmitAsAuthority(ctx, reputation.Composition{
		Instructions: []reputation.Instruction{ix},
		FeePayer:     s.authority,
		Signers:      []reputation.Signer{s.authority},
	})
	if err != nil {
		return solana.PublicKey{}, solana.Signature{}, fmt.Errorf("could not submit collection update: %w", err)
	}

	return address, signature, nil
}
