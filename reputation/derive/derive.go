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

// Package derive computes the deterministic addresses of credential, schema
// and attestation records. There is no index of issued records on or off
// chain; callers locate a record purely by recomputing its address from the
// same inputs, so derivation must be a pure function of those inputs.
package derive

import (
	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/failure"
)

// Seed prefixes for the attestation program's derived addresses.
const (
	credentialSeed  = "credential"
	schemaSeed      = "schema"
	attestationSeed = "attestation"
)

// Credential derives the address of the credential record issued by the
// given authority under the given name.
func Credential(authority solana.PublicKey, name string) (solana.PublicKey, error) {
	seeds := [][]byte{
		[]byte(credentialSeed),
		authority.Bytes(),
		[]byte(name),
	}
	return derive(seeds)
}

// Schema derives the address of a schema record attached to a credential,
// distinguished by name and version.
func Schema(credential solana.PublicKey, name string, version uint8) (solana.PublicKey, error) {
	seeds := [][]byte{
		[]byte(schemaSeed),
		credential.Bytes(),
		[]byte(name),
		{version},
	}
	return derive(seeds)
}

// Attestation derives the address of an attestation record for the given
// credential, schema and nonce. Using the subject's own address as the
// nonce binds one attestation per subject: a second attestation derives to
// the same address and conflicts on submission instead of duplicating.
func Attestation(credential solana.PublicKey, schema solana.PublicKey, nonce solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{
		[]byte(attestationSeed),
		credential.Bytes(),
		schema.Bytes(),
		nonce.Bytes(),
	}
	return derive(seeds)
}

func derive(seeds [][]byte) (solana.PublicKey, error) {
	address, _, err := solana.FindProgramAddress(seeds, reputation.AttestationProgram)
	if err != nil {
		return solana.PublicKey{}, failure.Derivation{
			Description: failure.NewDescription("no valid program address for seeds",
				failure.WithErr(err),
			),
		}
	}
	return address, nil
}
