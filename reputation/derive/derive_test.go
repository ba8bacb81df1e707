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

package derive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/derive"
	"github.com/nomis-labs/reputation-engine/testing/mocks"
)

func TestCredential(t *testing.T) {
	t.Run("derivation is deterministic", func(t *testing.T) {
		t.Parallel()

		first, err := derive.Credential(mocks.GenericAuthority.Address(), reputation.CredentialName)
		require.NoError(t, err)

		second, err := derive.Credential(mocks.GenericAuthority.Address(), reputation.CredentialName)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("different authorities derive different addresses", func(t *testing.T) {
		t.Parallel()

		first, err := derive.Credential(mocks.GenericAddress(1), reputation.CredentialName)
		require.NoError(t, err)

		second, err := derive.Credential(mocks.GenericAddress(2), reputation.CredentialName)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestSchema(t *testing.T) {
	t.Run("derivation is deterministic", func(t *testing.T) {
		t.Parallel()

		credential, err := derive.Credential(mocks.GenericAuthority.Address(), reputation.CredentialName)
		require.NoError(t, err)

		first, err := derive.Schema(credential, reputation.SchemaName, reputation.SchemaVersion)
		require.NoError(t, err)

		second, err := derive.Schema(credential, reputation.SchemaName, reputation.SchemaVersion)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("version is part of the derivation", func(t *testing.T) {
		t.Parallel()

		credential, err := derive.Credential(mocks.GenericAuthority.Address(), reputation.CredentialName)
		require.NoError(t, err)

		first, err := derive.Schema(credential, reputation.SchemaName, 1)
		require.NoError(t, err)

		second, err := derive.Schema(credential, reputation.SchemaName, 2)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestAttestation(t *testing.T) {
	t.Run("same user always derives the same attestation", func(t *testing.T) {
		t.Parallel()

		credential, err := derive.Credential(mocks.GenericAuthority.Address(), reputation.CredentialName)
		require.NoError(t, err)
		schema, err := derive.Schema(credential, reputation.SchemaName, reputation.SchemaVersion)
		require.NoError(t, err)

		first, err := derive.Attestation(credential, schema, mocks.GenericUser)
		require.NoError(t, err)

		second, err := derive.Attestation(credential, schema, mocks.GenericUser)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("different users derive different attestations", func(t *testing.T) {
		t.Parallel()

		credential, err := derive.Credential(mocks.GenericAuthority.Address(), reputation.CredentialName)
		require.NoError(t, err)
		schema, err := derive.Schema(credential, reputation.SchemaName, reputation.SchemaVersion)
		require.NoError(t, err)

		first, err := derive.Attestation(credential, schema, mocks.GenericAddress(8))
		require.NoError(t, err)

		second, err := derive.Attestation(credential, schema, mocks.GenericAddress(9))
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
