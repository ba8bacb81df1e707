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

package transactor_test

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/failure"
	"github.com/nomis-labs/reputation-engine/reputation/transactor"
	"github.com/nomis-labs/reputation-engine/testing/mocks"
)

// userComposition builds a composition where the given user pays the fee
// but has not signed yet, while the service authority signs server-side.
func userComposition(user solana.PublicKey) reputation.Composition {
	return reputation.Composition{
		Instructions: []reputation.Instruction{
			{
				Program: reputation.TokenProgram,
				Accounts: []reputation.AccountRef{
					{Address: user, Role: reputation.RoleWritableSigner},
					{Address: mocks.GenericAuthority.Address(), Role: reputation.RoleReadOnlySigner},
					{Address: mocks.GenericCollection, Role: reputation.RoleWritable},
				},
				Data: []byte{1, 2, 3},
			},
		},
		FeePayer: reputation.NewNoopSigner(user),
		Signers:  []reputation.Signer{mocks.GenericAuthority},
	}
}

func TestTransactor_Assemble(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		tr := transactor.New(mocks.BaselineReader(t), mocks.BaselineSubmitter(t))

		userKey := mocks.GenericKey(2)
		composition := userComposition(userKey.PublicKey())

		tx, err := tr.Assemble(context.Background(), composition)

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericHash, tx.Message.RecentBlockhash)
		require.Len(t, tx.Message.Instructions, 1)

		// The fee payer occupies the first account slot.
		require.NotEmpty(t, tx.Message.AccountKeys)
		assert.Equal(t, userKey.PublicKey(), tx.Message.AccountKeys[0])
	})

	t.Run("handles blockhash retrieval failure", func(t *testing.T) {
		t.Parallel()

		read := mocks.BaselineReader(t)
		read.LatestBlockhashFunc = func(context.Context) (solana.Hash, error) {
			return solana.Hash{}, mocks.GenericError
		}

		tr := transactor.New(read, mocks.BaselineSubmitter(t))

		userKey := mocks.GenericKey(2)
		_, err := tr.Assemble(context.Background(), userComposition(userKey.PublicKey()))

		require.Error(t, err)
		assert.ErrorAs(t, err, &failure.UpstreamUnavailable{})
	})

	t.Run("handles unknown account role", func(t *testing.T) {
		t.Parallel()

		tr := transactor.New(mocks.BaselineReader(t), mocks.BaselineSubmitter(t))

		composition := reputation.Composition{
			Instructions: []reputation.Instruction{
				{
					Program: reputation.TokenProgram,
					Accounts: []reputation.AccountRef{
						{Address: mocks.GenericUser, Role: reputation.Role(7)},
					},
				},
			},
			FeePayer: reputation.NewNoopSigner(mocks.GenericUser),
		}

		_, err := tr.Assemble(context.Background(), composition)

		require.Error(t, err)
		assert.ErrorAs(t, err, &failure.UnknownRole{})
	})
}

func TestTransactor_SigningPipeline(t *testing.T) {
	t.Run("partial signing leaves the user slot open", func(t *testing.T) {
		t.Parallel()

		tr := transactor.New(mocks.BaselineReader(t), mocks.BaselineSubmitter(t))

		userKey := mocks.GenericKey(2)
		composition := userComposition(userKey.PublicKey())

		tx, err := tr.Assemble(context.Background(), composition)
		require.NoError(t, err)

		encoded, err := tr.SignAsAuthority(tx, composition.Signers)
		require.NoError(t, err)
		require.NotEmpty(t, encoded)

		open := 0
		for _, signature := range tx.Signatures {
			if signature.IsZero() {
				open++
			}
		}
		assert.Equal(t, 1, open)
		assert.True(t, tx.Signatures[0].IsZero())
	})

	t.Run("partially signed transaction is not submittable", func(t *testing.T) {
		t.Parallel()

		submit := mocks.BaselineSubmitter(t)
		submit.SubmitFunc = func(context.Context, *solana.Transaction) (solana.Signature, error) {
			t.Fatal("submission should not be reached")
			return solana.Signature{}, nil
		}

		tr := transactor.New(mocks.BaselineReader(t), submit)

		userKey := mocks.GenericKey(2)
		composition := userComposition(userKey.PublicKey())

		tx, err := tr.Assemble(context.Background(), composition)
		require.NoError(t, err)

		_, err = tr.SignAsAuthority(tx, composition.Signers)
		require.NoError(t, err)

		_, err = tr.Submit(context.Background(), tx)

		require.Error(t, err)
		assert.ErrorAs(t, err, &failure.InvalidInput{})
	})

	t.Run("user key completes and submits the transaction", func(t *testing.T) {
		t.Parallel()

		tr := transactor.New(mocks.BaselineReader(t), mocks.BaselineSubmitter(t))

		userKey := mocks.GenericKey(2)
		composition := userComposition(userKey.PublicKey())

		tx, err := tr.Assemble(context.Background(), composition)
		require.NoError(t, err)

		encoded, err := tr.SignAsAuthority(tx, composition.Signers)
		require.NoError(t, err)

		hash, err := tr.CompleteWithUserKey(context.Background(), encoded, userKey)

		require.NoError(t, err)
		assert.Equal(t, solana.Signature{1}, hash)
	})

	t.Run("handles malformed transport encoding", func(t *testing.T) {
		t.Parallel()

		tr := transactor.New(mocks.BaselineReader(t), mocks.BaselineSubmitter(t))

		userKey := mocks.GenericKey(2)
		_, err := tr.CompleteWithUserKey(context.Background(), "not base64!", userKey)

		require.Error(t, err)
		assert.ErrorAs(t, err, &failure.InvalidInput{})
	})

	t.Run("handles ledger rejection", func(t *testing.T) {
		t.Parallel()

		submit := mocks.BaselineSubmitter(t)
		submit.SubmitFunc = func(context.Context, *solana.Transaction) (solana.Signature, error) {
			return solana.Signature{}, mocks.GenericError
		}

		tr := transactor.New(mocks.BaselineReader(t), submit)

		userKey := mocks.GenericKey(2)
		composition := userComposition(userKey.PublicKey())

		tx, err := tr.Assemble(context.Background(), composition)
		require.NoError(t, err)

		encoded, err := tr.SignAsAuthority(tx, composition.Signers)
		require.NoError(t, err)

		_, err = tr.CompleteWithUserKey(context.Background(), encoded, userKey)

		require.Error(t, err)
		assert.ErrorAs(t, err, &failure.Submission{})
	})
}

func TestTransactor_SubmitAsAuthority(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		tr := transactor.New(mocks.BaselineReader(t), mocks.BaselineSubmitter(t))

		composition := reputation.Composition{
			Instructions: []reputation.Instruction{
				{
					Program: reputation.AttestationProgram,
					Accounts: []reputation.AccountRef{
						{Address: mocks.GenericAuthority.Address(), Role: reputation.RoleWritableSigner},
					},
					Data: []byte{0},
				},
			},
			FeePayer: mocks.GenericAuthority,
			Signers:  []reputation.Signer{mocks.GenericAuthority},
		}

		hash, err := tr.SubmitAsAuthority(context.Background(), composition)

		require.NoError(t, err)
		assert.Equal(t, solana.Signature{1}, hash)
	})
}
