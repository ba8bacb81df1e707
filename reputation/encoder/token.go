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

// Token program instruction discriminators.
const (
	tokenCreateAsset      = uint8(0)
	tokenCreateCollection = uint8(1)
	tokenUpdatePlugin     = uint8(6)
	tokenUpdateAsset      = uint8(15)
	tokenUpdateCollection = uint8(16)
)

// Plugin variants of the token program. Only the attributes plugin is used
// here; it carries the reputation score as a key/value pair.
const (
	pluginAttributes = uint8(6)
)

// Asset data states of the token program.
const (
	dataStateAccount = uint8(0)
)

// CreateAssetParams carries everything needed to mint a new SBT asset with
// the score attribute attached at creation.
type CreateAssetParams struct {
	Asset      solana.PublicKey
	Collection solana.PublicKey
	Authority  solana.PublicKey
	Payer      solana.PublicKey
	Owner      solana.PublicKey
	Name       string
	URI        string
	Score      uint16
}

// CreateAsset encodes the instruction minting a new asset into a
// collection. The asset identity itself must co-sign, so its account is a
// writable signer alongside the payer.
func CreateAsset(params CreateAssetParams) (reputation.Instruction, error) {

	p := newPayload(tokenCreateAsset)
	p.uint8(dataStateAccount)
	p.str(params.Name)
	p.str(params.URI)
	p.uint8(optionSome)
	p.length(1)
	writeAttributesPlugin(p, params.Score)
	p.uint8(optionNone) // plugin authority
	p.uint8(optionNone) // external plugin adapters

	data, err := p.build()
	if err != nil {
		return reputation.Instruction{}, fmt.Errorf("could not encode create asset: %w", err)
	}

	ix := reputation.Instruction{
		Program: reputation.TokenProgram,
		Accounts: []reputation.AccountRef{
			{Address: params.Asset, Role: reputation.RoleWritableSigner},
			{Address: params.Collection, Role: reputation.RoleWritable},
			{Address: params.Authority, Role: reputation.RoleReadOnlySigner},
			{Address: params.Payer, Role: reputation.RoleWritableSigner},
			{Address: params.Owner, Role: reputation.RoleReadOnly},
			{Address: solana.SystemProgramID, Role: reputation.RoleReadOnly},
		},
		Data: data,
	}
	return ix, nil
}

// UpdateAssetParams carries the metadata refresh for an existing asset.
type UpdateAssetParams struct {
	Asset      solana.PublicKey
	Collection solana.PublicKey
	Authority  solana.PublicKey
	Payer      solana.PublicKey
	Name       string
	URI        string
}

// UpdateAsset encodes the instruction replacing an asset's name and URI.
func UpdateAsset(params UpdateAssetParams) (reputation.Instruction, error) {

	p := newPayload(tokenUpdateAsset)
	p.uint8(optionSome)
	p.str(params.Name)
	p.uint8(optionSome)
	p.str(params.URI)
	p.uint8(optionNone) // update authority unchanged

	data, err := p.build()
	if err != nil {
		return reputation.Instruction{}, fmt.Errorf("could not encode update asset: %w", err)
	}

	ix := reputation.Instruction{
		Program: reputation.TokenProgram,
		Accounts: []reputation.AccountRef{
			{Address: params.Asset, Role: reputation.RoleWritable},
			{Address: params.Collection, Role: reputation.RoleReadOnly},
			{Address: params.Payer, Role: reputation.RoleWritableSigner},
			{Address: params.Authority, Role: reputation.RoleReadOnlySigner},
			{Address: solana.SystemProgramID, Role: reputation.RoleReadOnly},
		},
		Data: data,
	}
	return ix, nil
}

// UpdateScoreParams carries the attribute refresh embedding a new score
// into an existing asset.
type UpdateScoreParams struct {
	Asset      solana.PublicKey
	Collection solana.PublicKey
	Authority  solana.PublicKey
	Payer      solana.PublicKey
	Score      uint16
}

// UpdateScore encodes the plugin update replacing the asset's attribute
// list with the new score.
func UpdateScore(params UpdateScoreParams) (reputation.Instruction, error) {

	p := newPayload(tokenUpdatePlugin)
	writeAttributesPlugin(p, params.Score)

	data, err := p.build()
	if err != nil {
		return reputation.Instruction{}, fmt.Errorf("could not encode update score: %w", err)
	}

	ix := reputation.Instruction{
		Program: reputation.TokenProgram,
		Accounts: []reputation.AccountRef{
			{Address: params.Asset, Role: reputation.RoleWritable},
			{Address: params.Collection, Role: reputation.RoleReadOnly},
			{Address: params.Payer, Role: reputation.RoleWritableSigner},
			{Address: params.Authority, Role: reputation.RoleReadOnlySigner},
			{Address: solana.SystemProgramID, Role: reputation.RoleReadOnly},
		},
		Data: data,
	}
	return ix, nil
}

// CollectionParams carries the identity and metadata of a collection.
type CollectionParams struct {
	Collection solana.PublicKey
	Authority  solana.PublicKey
	Name       string
	URI        string
}

// CreateCollection encodes the instruction creating a new collection. The
// collection identity co-signs its own creation.
func CreateCollection(params CollectionParams) (reputation.Instruction, error) {

	p := newPayload(tokenCreateCollection)
	p.str(params.Name)
	p.str(params.URI)
	p.uint8(optionNone) // no collection plugins

	data, err := p.build()
	if err != nil {
		return reputation.Instruction{}, fmt.Errorf("could not encode create collection: %w", err)
	}

	ix := reputation.Instruction{
		Program: reputation.TokenProgram,
		Accounts: []reputation.AccountRef{
			{Address: params.Collection, Role: reputation.RoleWritableSigner},
			{Address: params.Authority, Role: reputation.RoleReadOnly},
			{Address: params.Authority, Role: reputation.RoleWritableSigner},
			{Address: solana.SystemProgramID, Role: reputation.RoleReadOnly},
		},
		Data: data,
	}
	return ix, nil
}

// UpdateCollection encodes the instruction replacing a collection's name
// and URI.
func UpdateCollection(params CollectionParams) (reputation.Instruction, error) {

	p := newPayload(tokenUpdateCollection)
	p.uint8(optionSome)
	p.str(params.Name)
	p.uint8(optionSome)
	p.str(params.URI)

	data, err := p.build()
	if err != nil {
		return reputation.Instruction{}, fmt.Errorf("could not encode update collection: %w", err)
	}

	ix := reputation.Instruction{
		Program: reputation.TokenProgram,
		Accounts: []reputation.AccountRef{
			{Address: params.Collection, Role: reputation.RoleWritable},
			{Address: params.Authority, Role: reputation.RoleWritableSigner},
			{Address: solana.SystemProgramID, Role: reputation.RoleReadOnly},
		},
		Data: data,
	}
	return ix, nil
}

// writeAttributesPlugin encodes the attributes plugin holding the score as
// its single key/value entry.
func writeAttributesPlugin(p *payload, score uint16) {
	p.uint8(pluginAttributes)
	p.length(1)
	p.str(reputation.ScoreAttribute)
	p.str(fmt.Sprintf("%d", score))
}
