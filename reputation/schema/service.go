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

// Package schema manages the service's credential and schema records. The
// records live on the ledger at derived addresses; this service recomputes
// the addresses, checks their existence and bootstraps whatever is missing.
// Existence checks go through an explicit expiring cache instead of a
// module-level variable, so staleness is bounded and visible.
package schema

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/derive"
	"github.com/nomis-labs/reputation-engine/reputation/failure"
)

// recordTTL bounds how long a cached existence check is trusted.
const recordTTL = time.Hour

// Composer composes the creation of credential and schema records.
type Composer interface {
	Credential() (*reputation.Composition, error)
	Schema() (*reputation.Composition, error)
}

// Submitter signs a composition with the service keys and submits it.
type Submitter interface {
	SubmitAsAuthority(ctx context.Context, composition reputation.Composition) (solana.Signature, error)
}

// Record describes the service's attestation records: their derived
// addresses and whether each one exists on the ledger.
type Record struct {
	Credential     solana.PublicKey `json:"credential"`
	Schema         solana.PublicKey `json:"schema"`
	CredentialLive bool             `json:"credential_live"`
	SchemaLive     bool             `json:"schema_live"`
}

// Service answers and maintains the credential/schema records for one
// authority.
type Service struct {
	read      reputation.Reader
	compose   Composer
	submit    Submitter
	authority solana.PublicKey
	cache     *ristretto.Cache
}

// New creates a schema service for the given authority.
func New(read reputation.Reader, compose Composer, submit Submitter, authority solana.PublicKey) (*Service, error) {

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 64,
		MaxCost:     16,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("could not initialize record cache: %w", err)
	}

	s := Service{
		read:      read,
		compose:   compose,
		submit:    submit,
		authority: authority,
		cache:     cache,
	}
	return &s, nil
}

// Records derives the credential and schema addresses and reports whether
// the records exist, using the cache when a fresh answer is available.
func (s *Service) Records(ctx context.Context) (Record, error) {

	key := s.cacheKey()
	cached, ok := s.cache.Get(key)
	if ok {
		record, ok := cached.(Record)
		if ok {
			return record, nil
		}
	}

	record, err := s.lookup(ctx)
	if err != nil {
		return Record{}, err
	}

	s.cache.SetWithTTL(key, record, 1, recordTTL)
	s.cache.Wait()

	return record, nil
}

// Bootstrap creates whichever of the two records is missing, in one atomic
// transaction, credential before schema. When both records already exist
// nothing is submitted. The cache entry is dropped so the next lookup sees
// the new state.
func (s *Service) Bootstrap(ctx context.Context) (Record, *solana.Signature, error) {

	record, err := s.lookup(ctx)
	if err != nil {
		return Record{}, nil, err
	}

	var instructions []reputation.Instruction
	var payer reputation.Signer
	var signers []reputation.Signer

	if !record.CredentialLive {
		composition, err := s.compose.Credential()
		if err != nil {
			return Record{}, nil, fmt.Errorf("could not compose credential creation: %w", err)
		}
		instructions = append(instructions, composition.Instructions...)
		payer = composition.FeePayer
		signers = composition.Signers
	}

	if !record.SchemaLive {
		composition, err := s.compose.Schema()
		if err != nil {
			return Record{}, nil, fmt.Errorf("could not compose schema creation: %w", err)
		}
		instructions = append(instructions, composition.Instructions...)
		payer = composition.FeePayer
		signers = composition.Signers
	}

	if len(instructions) == 0 {
		return record, nil, nil
	}

	signature, err := s.submit.SubmitAsAuthority(ctx, reputation.Composition{
		Instructions: instructions,
		FeePayer:     payer,
		Signers:      signers,
	})
	if err != nil {
		return Record{}, nil, fmt.Errorf("could not submit record creation: %w", err)
	}

	s.cache.Del(s.cacheKey())

	record.CredentialLive = true
	record.SchemaLive = true
	return record, &signature, nil
}

// lookup recomputes the record addresses and checks their existence on the
// ledger.
func (s *Service) lookup(ctx context.Context) (Record, error) {

	credential, err := derive.Credential(s.authority, reputation.CredentialName)
	if err != nil {
		return Record{}, fmt.Errorf("could not derive credential address: %w", err)
	}
	schema, err := derive.Schema(credential, reputation.SchemaName, reputation.SchemaVersion)
	if err != nil {
		return Record{}, fmt.Errorf("could not derive schema address: %w", err)
	}

	credentialLive, err := s.exists(ctx, credential)
	if err != nil {
		return Record{}, err
	}
	schemaLive, err := s.exists(ctx, schema)
	if err != nil {
		return Record{}, err
	}

	record := Record{
		Credential:     credential,
		Schema:         schema,
		CredentialLive: credentialLive,
		SchemaLive:     schemaLive,
	}
	return record, nil
}

func (s *Service) exists(ctx context.Context, address solana.PublicKey) (bool, error) {

	_, err := s.read.AccountData(ctx, address)
	if errors.Is(err, reputation.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, failure.UpstreamUnavailable{
			Description: failure.NewDescription("could not check record account",
				failure.WithAddress("address", address),
				failure.WithErr(err),
			),
		}
	}

	return true, nil
}

func (s *Service) cacheKey() string {
	return "records/" + s.authority.String()
}
