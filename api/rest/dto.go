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

package rest

import (
	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/reputation/schema"
)

// SignAssetRequest is one mint-or-update request for a user's SBT. Amounts
// travel as base-10 strings to keep arbitrary precision across transports.
type SignAssetRequest struct {
	Address      string `json:"address" validate:"required"`
	Collection   string `json:"collection" validate:"required"`
	Name         string `json:"name" validate:"required"`
	MetadataURL  string `json:"metadataUrl" validate:"required,url"`
	Score        uint16 `json:"score" validate:"lte=10000"`
	CreateAmount string `json:"createAmount" validate:"required"`
	UpdateAmount string `json:"updateAmount" validate:"required"`
	Referrer     string `json:"referrer" validate:"omitempty"`
	RefAmount    string `json:"refAmount" validate:"omitempty"`
}

// SubmitAssetRequest completes a previously signed transaction with the
// user's key. The key is request data only; it is never stored or logged.
type SubmitAssetRequest struct {
	Transaction string `json:"transaction" validate:"required"`
	PrivateKey  string `json:"privateKey" validate:"required"`
}

// SignAttestationRequest asks for an attestation transaction binding the
// user's current score to their address.
type SignAttestationRequest struct {
	Address    string `json:"address" validate:"required"`
	Collection string `json:"collection" validate:"required"`
	Score      uint16 `json:"score" validate:"lte=10000"`
}

// UpsertCollectionRequest creates a collection or updates its metadata.
type UpsertCollectionRequest struct {
	Address     string `json:"address" validate:"omitempty"`
	Name        string `json:"name" validate:"required"`
	MetadataURL string `json:"metadataUrl" validate:"required,url"`
}

// TransactionResponse carries a base64-encoded, partially signed
// transaction awaiting the user's signature.
type TransactionResponse struct {
	Transaction string `json:"transaction"`
}

// SignatureResponse carries the base58 signature of a submitted
// transaction.
type SignatureResponse struct {
	Signature string `json:"signature"`
}

// AttestationResponse describes the derived attestation record for a user.
type AttestationResponse struct {
	Attestation solana.PublicKey `json:"attestation"`
	Credential  solana.PublicKey `json:"credential"`
	Schema      solana.PublicKey `json:"schema"`
	Live        bool             `json:"live"`
}

// BootstrapResponse reports the credential/schema records after a
// bootstrap, with the submission signature when anything was created.
type BootstrapResponse struct {
	Record    schema.Record `json:"record"`
	Signature string        `json:"signature,omitempty"`
}

// UpsertCollectionResponse reports the collection address and the
// submission signature of an upsert.
type UpsertCollectionResponse struct {
	Address   solana.PublicKey `json:"address"`
	Signature string           `json:"signature"`
}
