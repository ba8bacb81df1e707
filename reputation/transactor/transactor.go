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

// Package transactor bundles composed instructions into single atomic
// transactions and runs the signing pipeline: partial signing with the keys
// the service holds, transport encoding, completion with a user-supplied
// key and submission to the ledger.
package transactor

import (
	"context"
	"encoding/base64"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/convert"
	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/failure"
)

// Transactor assembles, signs and submits transactions.
type Transactor struct {
	read   reputation.Reader
	submit reputation.Submitter
}

// New creates a transactor on top of the given ledger reader and submitter.
func New(read reputation.Reader, submit reputation.Submitter) *Transactor {
	t := Transactor{
		read:   read,
		submit: submit,
	}
	return &t
}

// Assemble bundles a composition into one transaction: every instruction in
// composed order, the composition's fee payer, and a fresh blockhash. The
// ordering is significant and preserved verbatim.
func (t *Transactor) Assemble(ctx context.Context, composition reputation.Composition) (*solana.Transaction, error) {

	instructions, err := convert.Instructions(composition.Instructions)
	if err != nil {
		return nil, fmt.Errorf("could not convert instructions: %w", err)
	}

	blockhash, err := t.read.LatestBlockhash(ctx)
	if err != nil {
		return nil, failure.UpstreamUnavailable{
			Description: failure.NewDescription("could not fetch latest blockhash",
				failure.WithErr(err),
			),
		}
	}

	tx, err := solana.NewTransaction(
		instructions,
		blockhash,
		solana.TransactionPayer(composition.FeePayer.Address()),
	)
	if err != nil {
		return nil, fmt.Errorf("could not assemble transaction: %w", err)
	}

	return tx, nil
}

// SignAsAuthority applies the signatures of every key-holding signer in the
// composition and encodes the result for transport. Deferred signers keep
// their slots open; the transaction is not submittable until the owning
// party completes it.
func (t *Transactor) SignAsAuthority(tx *solana.Transaction, signers []reputation.Signer) (string, error) {

	keys := keyring(signers)
	_, err := tx.PartialSign(func(address solana.PublicKey) *solana.PrivateKey {
		return keys[address]
	})
	if err != nil {
		return "", fmt.Errorf("could not sign transaction: %w", err)
	}

	return encodeTransaction(tx)
}

// CompleteWithUserKey decodes a transport-encoded transaction, applies the
// signature of the supplied user key and submits the result. The key is
// request-scoped: used for this one signature, never stored and never
// logged.
func (t *Transactor) CompleteWithUserKey(ctx context.Context, encoded string, key solana.PrivateKey) (solana.Signature, error) {

	tx, err := decodeTransaction(encoded)
	if err != nil {
		return solana.Signature{}, err
	}

	user := key.PublicKey()
	_, err = tx.PartialSign(func(address solana.PublicKey) *solana.PrivateKey {
		if address.Equals(user) {
			return &key
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("could not sign transaction: %w", err)
	}

	return t.Submit(ctx, tx)
}

// SubmitAsAuthority assembles a composition, signs it with the held keys
// and submits it directly. Used for operations the service pays for itself,
// where no deferred signer is involved.
func (t *Transactor) SubmitAsAuthority(ctx context.Context, composition reputation.Composition) (solana.Signature, error) {

	tx, err := t.Assemble(ctx, composition)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("could not assemble transaction: %w", err)
	}

	keys := keyring(composition.Signers)
	_, err = tx.Sign(func(address solana.PublicKey) *solana.PrivateKey {
		return keys[address]
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("could not sign transaction: %w", err)
	}

	return t.Submit(ctx, tx)
}

// Submit sends a fully signed transaction to the ledger. A transaction with
// unfilled signature slots is rejected here before it ever reaches the
// ledger. Rejections carry the ledger's reason verbatim so the caller can
// decide whether to rebuild and resubmit.
func (t *Transactor) Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {

	open := uint64(0)
	for _, signature := range tx.Signatures {
		if signature.IsZero() {
			open++
		}
	}
	if open > 0 {
		return solana.Signature{}, failure.InvalidInput{
			Description: failure.NewDescription("transaction is missing signatures",
				failure.WithUint64("open", open),
			),
		}
	}

	hash, err := t.submit.Submit(ctx, tx)
	if err != nil {
		return solana.Signature{}, failure.Submission{
			Description: failure.NewDescription("ledger rejected transaction",
				failure.WithErr(err),
			),
		}
	}

	return hash, nil
}

// keyring indexes the private keys of the key-holding signers by address.
// Deferred signers contribute nothing, which is what leaves their signature
// slots open during partial signing.
func keyring(signers []reputation.Signer) map[solana.PublicKey]*solana.PrivateKey {
	keys := make(map[solana.PublicKey]*solana.PrivateKey, len(signers))
	for _, signer := range signers {
		holder, ok := signer.(reputation.KeySigner)
		if !ok {
			continue
		}
		key := holder.Key()
		keys[holder.Address()] = &key
	}
	return keys
}

func encodeTransaction(tx *solana.Transaction) (string, error) {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("could not serialize transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func decodeTransaction(encoded string) (*solana.Transaction, error) {

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, failure.InvalidInput{
			Description: failure.NewDescription("transaction is not valid base64",
				failure.WithErr(err),
			),
		}
	}

	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, failure.InvalidInput{
			Description: failure.NewDescription("could not deserialize transaction",
				failure.WithErr(err),
			),
		}
	}

	return tx, nil
}
