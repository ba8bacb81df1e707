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

package reputation

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// On-chain programs the engine composes instructions for.
var (
	// TokenProgram is the Metaplex Core program that owns SBT assets and
	// collections.
	TokenProgram = solana.MustPublicKeyFromBase58("CoREENxT6tW1HoK8ypY1SxRMZTcVPm7R94rH4PZNhX7d")

	// AttestationProgram is the Solana Attestation Service program that owns
	// credential, schema and attestation records.
	AttestationProgram = solana.MustPublicKeyFromBase58("22zoJMtdu4tQc2PzL74ZUT7FrwgB1Udec8DdW4yw4BdG")
)

// Fixed identifiers for the credential and schema records issued by the
// service. Changing any of these changes the derived addresses, so they are
// part of the protocol, not configuration.
const (
	CredentialName    = "Nomis Attestation"
	SchemaName        = CredentialName
	SchemaDescription = "Schema for verifying user identity information"
	SchemaVersion     = uint8(1)

	// ScoreAttribute is the asset attribute key carrying the reputation score.
	ScoreAttribute = "score"

	// ScoreMax bounds the reputation score accepted by the engine.
	ScoreMax = uint16(10000)

	// AttestationValidity is how long an issued attestation remains valid.
	AttestationValidity = 365 * 24 * time.Hour
)

// SchemaLayout describes the attestation payload as a single u16 field.
var (
	SchemaLayout     = []byte{1}
	SchemaFieldNames = []string{ScoreAttribute}
)
