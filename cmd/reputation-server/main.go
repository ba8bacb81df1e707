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
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/ziflex/lecho/v2"

	"github.com/nomis-labs/reputation-engine/api/rest"
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

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	var (
		flagRPC      string
		flagPort     uint16
		flagLevel    string
		flagKeyFile  string
		flagMerchant string
	)

	pflag.StringVarP(&flagRPC, "rpc", "r", rpc.DevNet_RPC, "endpoint of the Solana JSON-RPC API")
	pflag.Uint16VarP(&flagPort, "port", "p", 8080, "port to host the reputation API on")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagKeyFile, "key", "k", "authority.json", "path to the authority keypair file")
	pflag.StringVarP(&flagMerchant, "merchant", "m", "", "address receiving the merchant fees")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)
	elog := lecho.From(log)

	// Process-wide configuration: the authority key is loaded once at
	// startup and read-only afterwards.
	key, err := solana.PrivateKeyFromSolanaKeygenFile(flagKeyFile)
	if err != nil {
		log.Error().Str("key", flagKeyFile).Err(err).Msg("could not load authority keypair")
		return failure
	}
	authority := reputation.NewKeySigner(key)

	merchant, err := solana.PublicKeyFromBase58(flagMerchant)
	if err != nil {
		log.Error().Str("merchant", flagMerchant).Err(err).Msg("could not parse merchant address")
		return failure
	}

	// Ledger boundary initialization.
	client := rpc.New(flagRPC)
	read := ledger.NewReader(client)
	submit := ledger.NewSubmitter(client)

	// Engine initialization.
	hold := probe.New(read)
	compose := composer.New(hold, authority, merchant)
	transact := transactor.New(read, submit)
	schemas, err := schema.New(read, compose, transact, authority.Address())
	if err != nil {
		log.Error().Err(err).Msg("could not initialize schema service")
		return failure
	}
	collections := collection.New(read, transact, authority)

	ctrl := rest.NewController(compose, transact, hold, schemas, collections, read)

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger = elog
	server.Use(lecho.Middleware(lecho.Config{Logger: elog}))
	server.Use(middleware.Recover())
	server.POST("/asset/sign", ctrl.SignAsset)
	server.POST("/asset/submit", ctrl.SubmitAsset)
	server.GET("/asset/:address", ctrl.GetAsset)
	server.POST("/attestation/sign", ctrl.SignAttestation)
	server.POST("/attestation/schema", ctrl.BootstrapSchema)
	server.GET("/attestation/:address", ctrl.GetAttestation)
	server.GET("/collection/:address", ctrl.GetCollection)
	server.POST("/collection", ctrl.UpsertCollection)

	// This section launches the main executing components in their own
	// goroutine, so they can run concurrently. Afterwards, we wait for an
	// interrupt signal in order to proceed with the next section.
	done := make(chan struct{})
	failed := make(chan struct{})
	go func() {
		log.Info().Msg("reputation server starting")
		err := server.Start(fmt.Sprint(":", flagPort))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Msg("reputation server failed")
			close(failed)
		} else {
			close(done)
		}
		log.Info().Msg("reputation server stopped")
	}()

	select {
	case <-sig:
		log.Info().Msg("reputation server stopping")
	case <-done:
		log.Info().Msg("reputation server done")
	case <-failed:
		log.Warn().Msg("reputation server aborted")
		return failure
	}
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = server.Shutdown(ctx)
	if err != nil {
		log.Error().Err(err).Msg("could not shut down server gracefully")
		return failure
	}

	return success
}
