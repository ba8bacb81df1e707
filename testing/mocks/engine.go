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
	"github.com/nomis-labs/reputation-engine/reputation/composer"
	"github.com/nomis-labs/reputation-engine/reputation/schema"
)

type Engine struct {
	MintOrUpdateFunc func(ctx context.Context, params composer.MintParams) (*reputation.Composition, error)
	AttestationFunc  func(ctx context.Context, user solana.PublicKey, collection solana.PublicKey) (*reputation.Composition, error)
}

func BaselineEngine(t *testing.T) *Engine {
	t.Helper()

	composition := func() *reputation.Composition {
		c := reputation.Composition{
			Instructions: []reputation.Instruction{
				{
					Program: reputation.TokenProgram,
					Accounts: []reputation.AccountRef{
						{Address: GenericUser, Role: reputation.RoleWritableSigner},
					},
					Data: []byte{0},
				},
			},
			FeePayer: reputation.NewNoopSigner(GenericUser),
			Signers:  []reputation.Signer{GenericAuthority},
		}
		return &c
	}

	e := Engine{
		MintOrUpdateFunc: func(context.Context, composer.MintParams) (*reputation.Composition, error) {
			return composition(), nil
		},
		AttestationFunc: func(context.Context, solana.PublicKey, solana.PublicKey) (*reputation.Composition, error) {
			return composition(), nil
		},
	}

	return &e
}

func (e *Engine) MintOrUpdate(ctx context.Context, params composer.MintParams) (*reputation.Composition, error) {
	return e.MintOrUpdateFunc(ctx, params)
}

func (e *Engine) Attestation(ctx context.Context, user solana.PublicKey, collection solana.PublicKey) (*reputation.Composition, error) {
	return e.AttestationFunc(ctx, user, collection)
}

type Transactor struct {
	AssembleFunc            func(ctx context.Context, composition reputation.Composition) (*solana.Transaction, error)
	SignAsAuthorityFunc     func(tx *solana.Transaction, signers []reputation.Signer) (string, error)
	CompleteWithUserKeyFunc func(ctx context.Context, encoded string, key solana.PrivateKey) (solana.Signature, error)
}

func BaselineTransactor(t *testing.T) *Transactor {
	t.Helper()

	tr := Transactor{
		AssembleFunc: func(context.Context, reputation.Composition) (*solana.Transaction, error) {
			return &solana.Transaction{}, nil
		},
		SignAsAuthorityFunc: func(*solana.Transaction, []reputation.Signer) (string, error) {
			return "dummy transaction", nil
		},
		CompleteWithUserKeyFunc: func(context.Context, string, solana.PrivateKey) (solana.Signature, error) {
			return solana.Signature{1}, nil
		},
	}

	return &tr
}

func (tr *Transactor) Assemble(ctx context.Context, composition reputation.Composition) (*solana.Transaction, error) {
	return tr.AssembleFunc(ctx, composition)
}

func (tr *Transactor) SignAsAuthority(tx *solana.Transaction, signers []reputation.Signer) (string, error) {
	return tr.SignAsAuthorityFunc(tx, signers)
}

func (tr *Transactor) CompleteWithUserKey(ctx context.Context, encoded string, key solana.PrivateKey) (solana.Signature, error) {
	return tr.CompleteWithUserKeyFunc(ctx, encoded, key)
}

type Records struct {
	RecordsFunc   func(ctx context.Context) (schema.Record, error)
	BootstrapFunc func(ctx context.Context) (schema.Record, *solana.Signature, error)
}

func BaselineRecords(t *testing.T) *Records {
	t.Helper()

	record := schema.Record{
		Credential:     GenericAddress(10),
		Schema:         GenericAddress(11),
		CredentialLive: true,
		SchemaLive:     true,
	}

	r := Records{
		RecordsFunc: func(context.Context) (schema.Record, error) {
			return record, nil
		},
		BootstrapFunc: func(context.Context) (schema.Record, *solana.Signature, error) {
			return record, nil, nil
		},
	}

	return &r
}

func (r *Records) Records(ctx context.Context) (schema.Record, error) {
	return r.RecordsFunc(ctx)
}

func (r *Records) Bootstrap(ctx context.Context) (schema.Record, *solana.Signature, error) {
	return r.BootstrapFunc(ctx)
}

type Collections struct {
	GetFunc    func(ctx context.Context, address solana.PublicKey) (*reputation.Collection, error)
	UpsertFunc func(ctx context.Context, address solana.PublicKey, name string, uri string) (solana.PublicKey, solana.Signature, error)
}

func BaselineCollections(t *testing.T) *Collections {
	t.Helper()

	c := Collections{
		GetFunc: func(context.Context, solana.PublicKey) (*reputation.Collection, error) {
			return nil, reputation.ErrNotFound
		},
		UpsertFunc: func(context.Context, solana.PublicKey, string, string) (solana.PublicKey, solana.Signature, error) {
			return GenericCollection, solana.Signature{1}, nil
		},
	}

	return &c
}

func (c *Collections) Get(ctx context.Context, address solana.PublicKey) (*reputation.Collection, error) {
	return c.GetFunc(ctx, address)
}

func (c *Collections) Upsert(ctx context.Context, address solana.PublicKey, name string, uri string) (solana.PublicKey, solana.Signature, error) {
	return c.UpsertFunc(ctx, address, name, uri)
}
