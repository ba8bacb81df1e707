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

package main

import (
	"context"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/collection"
	"github.com/nomis-labs/reputation-engine/reputation/composer"
	"github.com/nomis-labs/reputation-engine/reputation/ledger"
	"github.com/nomis-labs/reputation-engine/reputation/probe"
	"github.com/nomis-labs/reputation-engine/reputation/schema"
	"github.com/nomis-labs/reputation-engine/reputation/transactor"
)

const (
	success = 0
	failure = 1
)

// One-shot administrative client: creates the credential and schema records
// for the authority, and optionally a fresh collection.
func main() {
	os.Exit(run())
}

func run() int {

	var (
		flagRPC     string
		flagLevel   string
		flagKeyFile string
		flagName    string
		flagURL     string
	)

	pflag.StringVarP(&flagRPC, "rpc", "r", rpc.DevNet_RPC, "endpoint of the Solana JSON-RPC API")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagKeyFile, "key", "k", "authority.json", "path to the authority keypair file")
	pflag.StringVarP(&flagName, "collection-name", "n", "", "name of the collection to create, skipped when empty")
	pflag.StringVarP(&flagURL, "collection-url", "u", "", "metadata URL of the collection to create")

	pflag.Parse()

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	key, err := solana.PrivateKeyFromSolanaKeygenFile(flagKeyFile)
	if err != nil {
		log.Error().Str("key", flagKeyFile).Err(err).Msg("could not load authority keypair")
		return failure
	}
	authority := reputation.NewKeySigner(key)

	client := rpc.New(flagRPC)
	read := ledger.NewReader(client)
	submit := ledger.NewSubmitter(client)

	hold := probe.New(read)
	compose := composer.New(hold, authority, authority.Address())
	transact := transactor.New(read, submit)
	schemas, err := schema.New(read, compose, transact, authority.Address())
	if err != nil {
		log.Error().Err(err).Msg("could not initialize schema service")
		return failure
	}

	ctx := context.Background()

	record, signature, err := schemas.Bootstrap(ctx)
	if err != nil {
		log.Error().Err(err).Msg("could not bootstrap attestation records")
		return failure
	}
	event := log.Info().
		Str("credential", record.Credential.String()).
		Str("schema", record.Schema.String())
	if signature != nil {
		event = event.Str("signature", signature.String())
	}
	event.Msg("attestation records ready")

	if flagName == "" {
		return success
	}

	collections := collection.New(read, transact, authority)
	address, created, err := collections.Upsert(ctx, solana.PublicKey{}, flagName, flagURL)
	if err != nil {
		log.Error().Err(err).Msg("could not create collection")
		return failure
	}
	log.Info().
		Str("collection", address.String()).
		Str("signature", created.String()).
		Msg("collection created")

	return success
}
