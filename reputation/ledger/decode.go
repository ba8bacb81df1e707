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

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
)

// Token-program account kinds.
const (
	kindAsset          = uint8(1)
	kindPluginRegistry = uint8(4)
	kindCollection     = uint8(5)
)

// Update authority variants on an asset account.
const (
	authorityNone       = uint8(0)
	authorityAddress    = uint8(1)
	authorityCollection = uint8(2)
)

// Plugin types of the token program.
const pluginAttributes = uint8(6)

// decodeAsset parses a token-program asset account into the read model.
// Accounts of other kinds and malformed accounts report not-ok and are
// skipped by the caller.
func decodeAsset(address solana.PublicKey, data []byte) (reputation.Asset, bool) {

	dec := bin.NewBorshDecoder(data)

	kind, err := dec.ReadUint8()
	if err != nil || kind != kindAsset {
		return reputation.Asset{}, false
	}

	owner, err := readKey(dec)
	if err != nil {
		return reputation.Asset{}, false
	}

	tag, err := dec.ReadUint8()
	if err != nil {
		return reputation.Asset{}, false
	}
	authority := solana.PublicKey{}
	switch tag {
	case authorityNone:
	case authorityAddress, authorityCollection:
		authority, err = readKey(dec)
		if err != nil {
			return reputation.Asset{}, false
		}
	default:
		return reputation.Asset{}, false
	}

	name, err := dec.ReadString()
	if err != nil {
		return reputation.Asset{}, false
	}
	uri, err := dec.ReadString()
	if err != nil {
		return reputation.Asset{}, false
	}

	// Optional sequence number, present on assets minted with plugins.
	seq, err := dec.ReadUint8()
	if err == nil && seq == 1 {
		_, err = dec.ReadUint64(binary.LittleEndian)
		if err != nil {
			return reputation.Asset{}, false
		}
	}

	asset := reputation.Asset{
		Address:         address,
		Owner:           owner,
		UpdateAuthority: authority,
		Name:            name,
		URI:             uri,
		Attributes:      decodeAttributes(data, uint64(dec.Position())),
	}
	return asset, true
}

// decodeAttributes extracts the attribute map from the plugin section that
// follows the asset header. Assets minted without plugins have no such
// section; the attribute map is then empty, which downstream treats as a
// zero score.
func decodeAttributes(data []byte, headerEnd uint64) map[string]string {

	if headerEnd >= uint64(len(data)) {
		return nil
	}

	// Plugin header: account kind followed by the registry offset.
	dec := bin.NewBorshDecoder(data[headerEnd:])
	_, err := dec.ReadUint8()
	if err != nil {
		return nil
	}
	registryOffset, err := dec.ReadUint64(binary.LittleEndian)
	if err != nil || registryOffset >= uint64(len(data)) {
		return nil
	}

	// Plugin registry: account kind and the plugin record list.
	dec = bin.NewBorshDecoder(data[registryOffset:])
	kind, err := dec.ReadUint8()
	if err != nil || kind != kindPluginRegistry {
		return nil
	}
	count, err := dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return nil
	}

	for i := uint32(0); i < count; i++ {
		pluginType, err := dec.ReadUint8()
		if err != nil {
			return nil
		}
		offset, err := dec.ReadUint64(binary.LittleEndian)
		if err != nil {
			return nil
		}
		err = skipAuthority(dec)
		if err != nil {
			return nil
		}
		if pluginType != pluginAttributes {
			continue
		}
		if offset >= uint64(len(data)) {
			return nil
		}
		return readAttributeList(data[offset:])
	}

	return nil
}

// readAttributeList parses the key/value entries of an attributes plugin.
func readAttributeList(data []byte) map[string]string {

	dec := bin.NewBorshDecoder(data)
	count, err := dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return nil
	}

	attributes := make(map[string]string, count)
	for i := uint32(0); i < count; i++ {
		key, err := dec.ReadString()
		if err != nil {
			return nil
		}
		val, err := dec.ReadString()
		if err != nil {
			return nil
		}
		attributes[key] = val
	}

	return attributes
}

// skipAuthority advances the decoder past a plugin authority enum.
func skipAuthority(dec *bin.Decoder) error {

	tag, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	if tag == authorityAddress || tag == authorityCollection {
		_, err = readKey(dec)
		if err != nil {
			return err
		}
	}

	return nil
}

// DecodeCollection parses a token-program collection account.
func DecodeCollection(address solana.PublicKey, data []byte) (reputation.Collection, bool) {

	dec := bin.NewBorshDecoder(data)

	kind, err := dec.ReadUint8()
	if err != nil || kind != kindCollection {
		return reputation.Collection{}, false
	}

	authority, err := readKey(dec)
	if err != nil {
		return reputation.Collection{}, false
	}
	name, err := dec.ReadString()
	if err != nil {
		return reputation.Collection{}, false
	}
	uri, err := dec.ReadString()
	if err != nil {
		return reputation.Collection{}, false
	}
	numMinted, err := dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return reputation.Collection{}, false
	}
	currentSize, err := dec.ReadUint32(binary.LittleEndian)
	if err != nil {
		return reputation.Collection{}, false
	}

	collection := reputation.Collection{
		Address:         address,
		UpdateAuthority: authority,
		Name:            name,
		URI:             uri,
		NumMinted:       numMinted,
		CurrentSize:     currentSize,
	}
	return collection, true
}

func readKey(dec *bin.Decoder) (solana.PublicKey, error) {
	raw, err := dec.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(raw), nil
}
