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

package composer

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/derive"
	"github.com/nomis-labs/reputation-engine/reputation/encoder"
)

// Attestation composes the transaction binding the user's current on-chain
// score to their address as an attestation record. The score is read from
// the user's holding and defaults to zero when absent. The nonce is the
// user's own address, so recomposing for the same user derives the same
// attestation address and a resubmission conflicts instead of duplicating.
func (c *Composer) Attestation(ctx context.Context, user solana.PublicKey, collection solana.PublicKey) (*reputation.Composition, error) {

	holding, err := c.hold.Holding(ctx, user, collection)
	if err != nil {
		return nil, fmt.Errorf("could not probe user holding: %w", err)
	}

	score := uint16(0)
	if holding != nil {
		score = holding.Score()
	}

	credential, schema, err := c.deriveRecords()
	if err != nil {
		return nil, err
	}
	attestation, err := derive.Attestation(credential, schema, user)
	if err != nil {
		return nil, fmt.Errorf("could not derive attestation address: %w", err)
	}

	expiry := c.now().Add(reputation.AttestationValidity).Unix()

	ix, err := encoder.CreateAttestation(encoder.AttestationParams{
		Payer:       user,
		Authority:   c.authority.Address(),
		Credential:  credential,
		Schema:      schema,
		Attestation: attestation,
		Nonce:       user,
		Data:        encoder.ScoreData(score),
		Expiry:      expiry,
	})
	if err != nil {
		return nil, fmt.Errorf("could not compose attestation creation: %w", err)
	}

	composition := reputation.Composition{
		Instructions: []reputation.Instruction{ix},
		FeePayer:     reputation.NewNoopSigner(user),
		Signers:      []reputation.Signer{c.authority},
	}
	return &composition, nil
}

// Credential composes the authority-paid creation of the service
// credential record. No idempotency is enforced here: creating twice
// produces a second submission attempt, which the ledger rejects because
// the derived address is already in use.
func (c *Composer) Credential() (*reputation.Composition, error) {

	credential, err := derive.Credential(c.authority.Address(), reputation.CredentialName)
	if err != nil {
		return nil, fmt.Errorf("could not derive credential address: %w", err)
	}

	ix, err := encoder.CreateCredential(encoder.CredentialParams{
		Payer:      c.authority.Address(),
		Credential: credential,
		Authority:  c.authority.Address(),
		Name:       reputation.CredentialName,
		Signers:    []solana.PublicKey{c.authority.Address()},
	})
	if err != nil {
		return nil, fmt.Errorf("could not compose credential creation: %w", err)
	}

	composition := reputation.Composition{
		Instructions: []reputation.Instruction{ix},
		FeePayer:     c.authority,
		Signers:      []reputation.Signer{c.authority},
	}
	return &composition, nil
}

// Schema composes the authority-paid creation of the score schema attached
// to the service credential.
func (c *Composer) Schema() (*reputation.Composition, error) {

	credential, schema, err := c.deriveRecords()
	if err != nil {
		return nil, err
	}

	ix, err := encoder.CreateSchema(encoder.SchemaParams{
		Payer:       c.authority.Address(),
		Authority:   c.authority.Address(),
		Credential:  credential,
		Schema:      schema,
		Name:        reputation.SchemaName,
		Description: reputation.SchemaDescription,
		Layout:      reputation.SchemaLayout,
		FieldNames:  reputation.SchemaFieldNames,
	})
	if err != nil {
		return nil, fmt.Errorf("could not compose schema creation: %w", err)
	}

	composition := reputation.Composition{
		Instructions: []reputation.Instruction{ix},
		FeePayer:     c.authority,
		Signers:      []reputation.Signer{c.authority},
	}
	return &composition, nil
}

// deriveRecords recomputes the credential and schema addresses from the
// authority and the fixed names. The derivation is the lookup; there is no
// stored index of these records.
func (c *Composer) deriveRecords() (solana.PublicKey, solana.PublicKey, error) {

	credential, err := derive.Credential(c.authority.Address(), reputation.CredentialName)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("could not derive credential address: %w", err)
	}

	schema, err := derive.Schema(credential, reputation.SchemaName, reputation.SchemaVersion)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("could not derive schema address: %w", err)
	}

	return credential, schema, nil
}
