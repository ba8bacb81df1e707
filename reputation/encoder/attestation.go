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

package encoder

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
)

// Attestation program instruction discriminators.
const (
	attestCreateCredential  = uint8(0)
	attestCreateSchema      = uint8(1)
	attestCreateAttestation = uint8(6)
)

// CredentialParams carries the inputs of a credential creation.
type CredentialParams struct {
	Payer      solana.PublicKey
	Credential solana.PublicKey
	Authority  solana.PublicKey
	Name       string
	Signers    []solana.PublicKey
}

// CreateCredential encodes the instruction creating a credential record
// owned by the authority.
func CreateCredential(params CredentialParams) (reputation.Instruction, error) {

	p := newPayload(attestCreateCredential)
	p.str(params.Name)
	p.length(len(params.Signers))
	for _, signer := range params.Signers {
		p.raw(signer.Bytes())
	}

	data, err := p.build()
	if err != nil {
		return reputation.Instruction{}, fmt.Errorf("could not encode create credential: %w", err)
	}

	ix := reputation.Instruction{
		Program: reputation.AttestationProgram,
		Accounts: []reputation.AccountRef{
			{Address: params.Payer, Role: reputation.RoleWritableSigner},
			{Address: params.Credential, Role: reputation.RoleWritable},
			{Address: params.Authority, Role: reputation.RoleReadOnlySigner},
			{Address: solana.SystemProgramID, Role: reputation.RoleReadOnly},
		},
		Data: data,
	}
	return ix, nil
}

// SchemaParams carries the inputs of a schema creation.
type SchemaParams struct {
	Payer       solana.PublicKey
	Authority   solana.PublicKey
	Credential  solana.PublicKey
	Schema      solana.PublicKey
	Name        string
	Description string
	Layout      []byte
	FieldNames  []string
}

// CreateSchema encodes the instruction attaching a schema to a credential.
func CreateSchema(params SchemaParams) (reputation.Instruction, error) {

	p := newPayload(attestCreateSchema)
	p.str(params.Name)
	p.str(params.Description)
	p.bytes(params.Layout)
	p.length(len(params.FieldNames))
	for _, name := range params.FieldNames {
		p.str(name)
	}

	data, err := p.build()
	if err != nil {
		return reputation.Instruction{}, fmt.Errorf("could not encode create schema: %w", err)
	}

	ix := reputation.Instruction{
		Program: reputation.AttestationProgram,
		Accounts: []reputation.AccountRef{
			{Address: params.Payer, Role: reputation.RoleWritableSigner},
			{Address: params.Authority, Role: reputation.RoleReadOnlySigner},
			{Address: params.Credential, Role: reputation.RoleReadOnly},
			{Address: params.Schema, Role: reputation.RoleWritable},
			{Address: solana.SystemProgramID, Role: reputation.RoleReadOnly},
		},
		Data: data,
	}
	return ix, nil
}

// AttestationParams carries the inputs of an attestation creation. The
// nonce is part of the derived attestation address and, by convention, is
// the subject's own address.
type AttestationParams struct {
	Payer       solana.PublicKey
	Authority   solana.PublicKey
	Credential  solana.PublicKey
	Schema      solana.PublicKey
	Attestation solana.PublicKey
	Nonce       solana.PublicKey
	Data        []byte
	Expiry      int64
}

// CreateAttestation encodes the instruction binding attestation data to the
// derived attestation record.
func CreateAttestation(params AttestationParams) (reputation.Instruction, error) {

	p := newPayload(attestCreateAttestation)
	p.raw(params.Nonce.Bytes())
	p.bytes(params.Data)
	p.int64(params.Expiry)

	data, err := p.build()
	if err != nil {
		return reputation.Instruction{}, fmt.Errorf("could not encode create attestation: %w", err)
	}

	ix := reputation.Instruction{
		Program: reputation.AttestationProgram,
		Accounts: []reputation.AccountRef{
			{Address: params.Payer, Role: reputation.RoleWritableSigner},
			{Address: params.Authority, Role: reputation.RoleReadOnlySigner},
			{Address: params.Credential, Role: reputation.RoleReadOnly},
			{Address: params.Schema, Role: reputation.RoleReadOnly},
			{Address: params.Attestation, Role: reputation.RoleWritable},
			{Address: solana.SystemProgramID, Role: reputation.RoleReadOnly},
		},
		Data: data,
	}
	return ix, nil
}

// ScoreData encodes a score as the attestation payload, a single
// little-endian u16 field per the schema layout.
func ScoreData(score uint16) []byte {
	return []byte{byte(score), byte(score >> 8)}
}
