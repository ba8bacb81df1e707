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

package ledger

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomis-labs/reputation-engine/testing/mocks"
)

func TestDecodeAsset(t *testing.T) {
	t.Run("asset without plugins", func(t *testing.T) {
		t.Parallel()

		data := assetHeader(t)

		asset, ok := decodeAsset(mocks.GenericAddress(6), data)

		require.True(t, ok)
		assert.Equal(t, mocks.GenericAddress(6), asset.Address)
		assert.Equal(t, mocks.GenericUser, asset.Owner)
		assert.Equal(t, mocks.GenericCollection, asset.UpdateAuthority)
		assert.Equal(t, "Reputation SBT", asset.Name)
		assert.Equal(t, "https://example.com/metadata.json", asset.URI)
		assert.Empty(t, asset.Attributes)
		assert.Equal(t, uint16(0), asset.Score())
	})

	t.Run("asset with score attribute", func(t *testing.T) {
		t.Parallel()

		header := assetHeader(t)

		// Layout: header, plugin header, attribute list, plugin registry.
		attrOffset := uint64(len(header) + 9)
		attrs := attributeList("score", "7500")
		registryOffset := attrOffset + uint64(len(attrs))

		data := header
		data = append(data, 3)
		data = appendUint64(data, registryOffset)
		data = append(data, attrs...)
		data = append(data, 4)
		data = appendUint32(data, 1)
		data = append(data, 6)
		data = appendUint64(data, attrOffset)
		data = append(data, 0)

		asset, ok := decodeAsset(mocks.GenericAddress(6), data)

		require.True(t, ok)
		assert.Equal(t, "7500", asset.Attributes["score"])
		assert.Equal(t, uint16(7500), asset.Score())
	})

	t.Run("account of another kind is skipped", func(t *testing.T) {
		t.Parallel()

		data := assetHeader(t)
		data[0] = 5

		_, ok := decodeAsset(mocks.GenericAddress(6), data)

		assert.False(t, ok)
	})

	t.Run("truncated account is skipped", func(t *testing.T) {
		t.Parallel()

		data := assetHeader(t)

		_, ok := decodeAsset(mocks.GenericAddress(6), data[:20])

		assert.False(t, ok)
	})
}

func TestDecodeCollection(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		data := []byte{5}
		data = append(data, mocks.GenericAuthority.Address().Bytes()...)
		data = appendString(data, "Reputation Collection")
		data = appendString(data, "https://example.com/collection.json")
		data = appendUint32(data, 42)
		data = appendUint32(data, 40)

		collection, ok := DecodeCollection(mocks.GenericCollection, data)

		require.True(t, ok)
		assert.Equal(t, mocks.GenericCollection, collection.Address)
		assert.Equal(t, mocks.GenericAuthority.Address(), collection.UpdateAuthority)
		assert.Equal(t, "Reputation Collection", collection.Name)
		assert.Equal(t, uint32(42), collection.NumMinted)
		assert.Equal(t, uint32(40), collection.CurrentSize)
	})

	t.Run("account of another kind is rejected", func(t *testing.T) {
		t.Parallel()

		_, ok := DecodeCollection(mocks.GenericCollection, []byte{1, 2, 3})

		assert.False(t, ok)
	})
}

// assetHeader encodes the fixed part of an asset account owned by the
// generic user in the generic collection, without a plugin section.
func assetHeader(t *testing.T) []byte {
	t.Helper()

	data := []byte{1}
	data = append(data, mocks.GenericUser.Bytes()...)
	data = append(data, 2)
	data = append(data, mocks.GenericCollection.Bytes()...)
	data = appendString(data, "Reputation SBT")
	data = appendString(data, "https://example.com/metadata.json")
	data = append(data, 0)
	return data
}

func attributeList(pairs ...string) []byte {
	data := appendUint32(nil, uint32(len(pairs)/2))
	for _, part := range pairs {
		data = appendString(data, part)
	}
	return data
}

func appendString(data []byte, s string) []byte {
	data = appendUint32(data, uint32(len(s)))
	return append(data, s...)
}

func appendUint32(data []byte, v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return append(data, buf...)
}

func appendUint64(data []byte, v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return append(data, buf...)
}
