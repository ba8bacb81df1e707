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

// Package rest exposes the engine's operations over HTTP. The controller
// validates and translates requests, delegates to the engine and maps the
// error taxonomy to status codes; it holds no business logic of its own.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/composer"
	"github.com/nomis-labs/reputation-engine/reputation/derive"
	"github.com/nomis-labs/reputation-engine/reputation/failure"
	"github.com/nomis-labs/reputation-engine/reputation/schema"
)

// Composer composes the user-signed operations of the engine.
type Composer interface {
	MintOrUpdate(ctx context.Context, params composer.MintParams) (*reputation.Composition, error)
	Attestation(ctx context.Context, user solana.PublicKey, collection solana.PublicKey) (*reputation.Composition, error)
}

// Transactor runs the assembly and signing pipeline.
type Transactor interface {
	Assemble(ctx context.Context, composition reputation.Composition) (*solana.Transaction, error)
	SignAsAuthority(tx *solana.Transaction, signers []reputation.Signer) (string, error)
	CompleteWithUserKey(ctx context.Context, encoded string, key solana.PrivateKey) (solana.Signature, error)
}

// Prober answers holding lookups.
type Prober interface {
	Holding(ctx context.Context, owner solana.PublicKey, collection solana.PublicKey) (*reputation.Asset, error)
}

// Schemas manages the credential/schema records.
type Schemas interface {
	Records(ctx context.Context) (schema.Record, error)
	Bootstrap(ctx context.Context) (schema.Record, *solana.Signature, error)
}

// Collections reads and administers collections.
type Collections interface {
	Get(ctx context.Context, address solana.PublicKey) (*reputation.Collection, error)
	Upsert(ctx context.Context, address solana.PublicKey, name string, uri string) (solana.PublicKey, solana.Signature, error)
}

// Controller handles the HTTP surface of the engine.
type Controller struct {
	compose     Composer
	transact    Transactor
	probe       Prober
	schemas     Schemas
	collections Collections
	read        reputation.Reader
	validate    *validator.Validate
}

// NewController creates the REST controller with its collaborators.
func NewController(compose Composer, transact Transactor, probe Prober, schemas Schemas, collections Collections, read reputation.Reader) *Controller {

	c := Controller{
		compose:     compose,
		transact:    transact,
		probe:       probe,
		schemas:     schemas,
		collections: collections,
		read:        read,
		validate:    validator.New(),
	}

	return &c
}

// SignAsset composes the mint-or-update transaction for a user, signs it
// with the service keys and returns it for the user to complete.
func (c *Controller) SignAsset(ctx echo.Context) error {

	var req SignAssetRequest
	err := c.bind(ctx, &req)
	if err != nil {
		return apiError(err)
	}

	user, err := parseAddress("address", req.Address)
	if err != nil {
		return apiError(err)
	}
	collection, err := parseAddress("collection", req.Collection)
	if err != nil {
		return apiError(err)
	}

	createAmount, err := parseAmount("createAmount", req.CreateAmount)
	if err != nil {
		return apiError(err)
	}
	updateAmount, err := parseAmount("updateAmount", req.UpdateAmount)
	if err != nil {
		return apiError(err)
	}

	params := composer.MintParams{
		User:         user,
		Collection:   collection,
		Name:         req.Name,
		MetadataURI:  req.MetadataURL,
		Score:        req.Score,
		CreateAmount: createAmount,
		UpdateAmount: updateAmount,
	}

	if req.Referrer != "" {
		referrer, err := parseAddress("referrer", req.Referrer)
		if err != nil {
			return apiError(err)
		}
		params.Referrer = referrer
	}
	if req.RefAmount != "" {
		refAmount, err := parseAmount("refAmount", req.RefAmount)
		if err != nil {
			return apiError(err)
		}
		params.ReferralAmount = refAmount
	}

	encoded, err := c.sign(ctx.Request().Context(), params)
	if err != nil {
		return apiError(err)
	}

	return ctx.JSON(http.StatusOK, TransactionResponse{Transaction: encoded})
}

// SubmitAsset completes a signed transaction with the user's key and
// submits it.
func (c *Controller) SubmitAsset(ctx echo.Context) error {

	var req SubmitAssetRequest
	err := c.bind(ctx, &req)
	if err != nil {
		return apiError(err)
	}

	key, err := solana.PrivateKeyFromBase58(req.PrivateKey)
	if err != nil {
		return apiError(failure.InvalidInput{
			Description: failure.NewDescription("could not parse private key"),
		})
	}

	signature, err := c.transact.CompleteWithUserKey(ctx.Request().Context(), req.Transaction, key)
	if err != nil {
		return apiError(err)
	}

	return ctx.JSON(http.StatusOK, SignatureResponse{Signature: signature.String()})
}

// GetAsset returns the user's asset in a collection.
func (c *Controller) GetAsset(ctx echo.Context) error {

	user, err := parseAddress("address", ctx.Param("address"))
	if err != nil {
		return apiError(err)
	}
	collection, err := parseAddress("collection", ctx.QueryParam("collection"))
	if err != nil {
		return apiError(err)
	}

	asset, err := c.probe.Holding(ctx.Request().Context(), user, collection)
	if err != nil {
		return apiError(err)
	}
	if asset == nil {
		return apiError(reputation.ErrNotFound)
	}

	return ctx.JSON(http.StatusOK, asset)
}

// SignAttestation composes the attestation transaction for a user and
// returns it for the user to complete.
func (c *Controller) SignAttestation(ctx echo.Context) error {

	var req SignAttestationRequest
	err := c.bind(ctx, &req)
	if err != nil {
		return apiError(err)
	}

	user, err := parseAddress("address", req.Address)
	if err != nil {
		return apiError(err)
	}
	collection, err := parseAddress("collection", req.Collection)
	if err != nil {
		return apiError(err)
	}

	composition, err := c.compose.Attestation(ctx.Request().Context(), user, collection)
	if err != nil {
		return apiError(err)
	}

	tx, err := c.transact.Assemble(ctx.Request().Context(), *composition)
	if err != nil {
		return apiError(err)
	}

	encoded, err := c.transact.SignAsAuthority(tx, composition.Signers)
	if err != nil {
		return apiError(err)
	}

	return ctx.JSON(http.StatusOK, TransactionResponse{Transaction: encoded})
}

// GetAttestation derives the attestation record for a user and reports
// whether it exists.
func (c *Controller) GetAttestation(ctx echo.Context) error {

	user, err := parseAddress("address", ctx.Param("address"))
	if err != nil {
		return apiError(err)
	}

	record, err := c.schemas.Records(ctx.Request().Context())
	if err != nil {
		return apiError(err)
	}

	attestation, err := derive.Attestation(record.Credential, record.Schema, user)
	if err != nil {
		return apiError(err)
	}

	live := true
	_, err = c.read.AccountData(ctx.Request().Context(), attestation)
	if errors.Is(err, reputation.ErrNotFound) {
		live = false
	} else if err != nil {
		return apiError(failure.UpstreamUnavailable{
			Description: failure.NewDescription("could not check attestation account",
				failure.WithAddress("attestation", attestation),
				failure.WithErr(err),
			),
		})
	}

	res := AttestationResponse{
		Attestation: attestation,
		Credential:  record.Credential,
		Schema:      record.Schema,
		Live:        live,
	}
	return ctx.JSON(http.StatusOK, res)
}

// BootstrapSchema creates the missing credential/schema records.
func (c *Controller) BootstrapSchema(ctx echo.Context) error {

	record, signature, err := c.schemas.Bootstrap(ctx.Request().Context())
	if err != nil {
		return apiError(err)
	}

	res := BootstrapResponse{Record: record}
	if signature != nil {
		res.Signature = signature.String()
	}
	return ctx.JSON(http.StatusOK, res)
}

// GetCollection returns a collection record.
func (c *Controller) GetCollection(ctx echo.Context) error {

	address, err := parseAddress("address", ctx.Param("address"))
	if err != nil {
		return apiError(err)
	}

	collection, err := c.collections.Get(ctx.Request().Context(), address)
	if err != nil {
		return apiError(err)
	}

	return ctx.JSON(http.StatusOK, collection)
}

// UpsertCollection creates or updates a collection.
func (c *Controller) UpsertCollection(ctx echo.Context) error {

	var req UpsertCollectionRequest
	err := c.bind(ctx, &req)
	if err != nil {
		return apiError(err)
	}

	address := solana.PublicKey{}
	if req.Address != "" {
		address, err = parseAddress("address", req.Address)
		if err != nil {
			return apiError(err)
		}
	}

	created, signature, err := c.collections.Upsert(ctx.Request().Context(), address, req.Name, req.MetadataURL)
	if err != nil {
		return apiError(err)
	}

	res := UpsertCollectionResponse{
		Address:   created,
		Signature: signature.String(),
	}
	return ctx.JSON(http.StatusOK, res)
}

// sign runs the compose-assemble-sign pipeline for a mint-or-update.
func (c *Controller) sign(ctx context.Context, params composer.MintParams) (string, error) {

	composition, err := c.compose.MintOrUpdate(ctx, params)
	if err != nil {
		return "", err
	}

	tx, err := c.transact.Assemble(ctx, *composition)
	if err != nil {
		return "", err
	}

	return c.transact.SignAsAuthority(tx, composition.Signers)
}

// bind decodes and validates a request body, aggregating every failing
// field into one input error.
func (c *Controller) bind(ctx echo.Context, req interface{}) error {

	err := ctx.Bind(req)
	if err != nil {
		return failure.InvalidInput{
			Description: failure.NewDescription("could not decode request body"),
		}
	}

	err = c.validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return failure.InvalidInput{
			Description: failure.NewDescription("could not validate request body"),
		}
	}

	var combined *multierror.Error
	for _, fieldErr := range fieldErrs {
		combined = multierror.Append(combined, fmt.Errorf("field %s fails %q", fieldErr.Field(), fieldErr.Tag()))
	}

	return failure.InvalidInput{
		Description: failure.NewDescription("invalid request body",
			failure.WithErr(combined.ErrorOrNil()),
		),
	}
}

func parseAddress(field string, value string) (solana.PublicKey, error) {
	address, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, failure.InvalidInput{
			Description: failure.NewDescription("malformed address",
				failure.WithString("field", field),
				failure.WithString("value", value),
			),
		}
	}
	return address, nil
}

func parseAmount(field string, value string) (reputation.Amount, error) {
	amount, err := reputation.AmountFromString(value)
	if err != nil {
		return reputation.Amount{}, failure.InvalidInput{
			Description: failure.NewDescription("malformed amount",
				failure.WithString("field", field),
				failure.WithString("value", value),
			),
		}
	}
	return amount, nil
}
