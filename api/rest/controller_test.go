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

package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomis-labs/reputation-engine/api/rest"
	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/composer"
	"github.com/nomis-labs/reputation-engine/testing/mocks"
)

func baselineController(t *testing.T) *rest.Controller {
	t.Helper()

	return rest.NewController(
		mocks.BaselineEngine(t),
		mocks.BaselineTransactor(t),
		mocks.BaselineHolder(t),
		mocks.BaselineRecords(t),
		mocks.BaselineCollections(t),
		mocks.BaselineReader(t),
	)
}

func jsonContext(t *testing.T, method string, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func signAssetBody(score uint16) string {
	return fmt.Sprintf(`{
		"address": %q,
		"collection": %q,
		"name": "Reputation SBT",
		"metadataUrl": "https://example.com/metadata.json",
		"score": %d,
		"createAmount": "1000000",
		"updateAmount": "500000"
	}`, mocks.GenericUser.String(), mocks.GenericCollection.String(), score)
}

func TestController_SignAsset(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		engine := mocks.BaselineEngine(t)
		compose := engine.MintOrUpdateFunc
		engine.MintOrUpdateFunc = func(ctx context.Context, params composer.MintParams) (*reputation.Composition, error) {
			assert.Equal(t, mocks.GenericUser, params.User)
			assert.Equal(t, mocks.GenericCollection, params.Collection)
			assert.Equal(t, uint16(7500), params.Score)
			assert.Equal(t, "1000000", params.CreateAmount.String())
			return compose(ctx, params)
		}

		ctrl := rest.NewController(
			engine,
			mocks.BaselineTransactor(t),
			mocks.BaselineHolder(t),
			mocks.BaselineRecords(t),
			mocks.BaselineCollections(t),
			mocks.BaselineReader(t),
		)

		ctx, rec := jsonContext(t, http.MethodPost, "/asset/sign", signAssetBody(7500))

		err := ctrl.SignAsset(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var res rest.TransactionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "dummy transaction", res.Transaction)
	})

	t.Run("out-of-range score is rejected", func(t *testing.T) {
		t.Parallel()

		ctrl := baselineController(t)
		ctx, _ := jsonContext(t, http.MethodPost, "/asset/sign", signAssetBody(10001))

		err := ctrl.SignAsset(ctx)

		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("malformed address is rejected", func(t *testing.T) {
		t.Parallel()

		body := strings.Replace(signAssetBody(100), mocks.GenericUser.String(), "not-an-address", 1)

		ctrl := baselineController(t)
		ctx, _ := jsonContext(t, http.MethodPost, "/asset/sign", body)

		err := ctrl.SignAsset(ctx)

		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		t.Parallel()

		ctrl := baselineController(t)
		ctx, _ := jsonContext(t, http.MethodPost, "/asset/sign", `{}`)

		err := ctrl.SignAsset(ctx)

		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestController_SubmitAsset(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		key := mocks.GenericKey(2)
		body := fmt.Sprintf(`{"transaction": "AQID", "privateKey": %q}`, key.String())

		ctrl := baselineController(t)
		ctx, rec := jsonContext(t, http.MethodPost, "/asset/submit", body)

		err := ctrl.SubmitAsset(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var res rest.SignatureResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, solana.Signature{1}.String(), res.Signature)
	})

	t.Run("malformed private key is rejected", func(t *testing.T) {
		t.Parallel()

		ctrl := baselineController(t)
		ctx, _ := jsonContext(t, http.MethodPost, "/asset/submit", `{"transaction": "AQID", "privateKey": "zzz"}`)

		err := ctrl.SubmitAsset(ctx)

		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestController_GetAsset(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		hold := mocks.BaselineHolder(t)
		hold.HoldingFunc = func(context.Context, solana.PublicKey, solana.PublicKey) (*reputation.Asset, error) {
			asset := mocks.GenericAsset("7500")
			return &asset, nil
		}

		ctrl := rest.NewController(
			mocks.BaselineEngine(t),
			mocks.BaselineTransactor(t),
			hold,
			mocks.BaselineRecords(t),
			mocks.BaselineCollections(t),
			mocks.BaselineReader(t),
		)

		target := "/asset/" + mocks.GenericUser.String() + "?collection=" + mocks.GenericCollection.String()
		ctx, rec := jsonContext(t, http.MethodGet, target, "")
		ctx.SetParamNames("address")
		ctx.SetParamValues(mocks.GenericUser.String())

		err := ctrl.GetAsset(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing holding", func(t *testing.T) {
		t.Parallel()

		ctrl := baselineController(t)

		target := "/asset/" + mocks.GenericUser.String() + "?collection=" + mocks.GenericCollection.String()
		ctx, _ := jsonContext(t, http.MethodGet, target, "")
		ctx.SetParamNames("address")
		ctx.SetParamValues(mocks.GenericUser.String())

		err := ctrl.GetAsset(ctx)

		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})
}

func TestController_SignAttestation(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		body := fmt.Sprintf(`{"address": %q, "collection": %q}`,
			mocks.GenericUser.String(), mocks.GenericCollection.String())

		ctrl := baselineController(t)
		ctx, rec := jsonContext(t, http.MethodPost, "/attestation/sign", body)

		err := ctrl.SignAttestation(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var res rest.TransactionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "dummy transaction", res.Transaction)
	})
}

func TestController_GetAttestation(t *testing.T) {
	t.Run("missing record reports not live", func(t *testing.T) {
		t.Parallel()

		ctrl := baselineController(t)

		ctx, rec := jsonContext(t, http.MethodGet, "/attestation/"+mocks.GenericUser.String(), "")
		ctx.SetParamNames("address")
		ctx.SetParamValues(mocks.GenericUser.String())

		err := ctrl.GetAttestation(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var res rest.AttestationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.False(t, res.Live)
		assert.False(t, res.Attestation.IsZero())
	})

	t.Run("failed account check is not reported as missing", func(t *testing.T) {
		t.Parallel()

		read := mocks.BaselineReader(t)
		read.AccountDataFunc = func(context.Context, solana.PublicKey) ([]byte, error) {
			return nil, mocks.GenericError
		}

		ctrl := rest.NewController(
			mocks.BaselineEngine(t),
			mocks.BaselineTransactor(t),
			mocks.BaselineHolder(t),
			mocks.BaselineRecords(t),
			mocks.BaselineCollections(t),
			read,
		)

		ctx, _ := jsonContext(t, http.MethodGet, "/attestation/"+mocks.GenericUser.String(), "")
		ctx.SetParamNames("address")
		ctx.SetParamValues(mocks.GenericUser.String())

		err := ctrl.GetAttestation(ctx)

		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadGateway, httpErr.Code)
	})
}

func TestController_Collections(t *testing.T) {
	t.Run("missing collection", func(t *testing.T) {
		t.Parallel()

		ctrl := baselineController(t)

		ctx, _ := jsonContext(t, http.MethodGet, "/collection/"+mocks.GenericCollection.String(), "")
		ctx.SetParamNames("address")
		ctx.SetParamValues(mocks.GenericCollection.String())

		err := ctrl.GetCollection(ctx)

		require.Error(t, err)
		httpErr, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})

	t.Run("upsert without address creates", func(t *testing.T) {
		t.Parallel()

		body := `{"name": "Reputation Collection", "metadataUrl": "https://example.com/collection.json"}`

		ctrl := baselineController(t)
		ctx, rec := jsonContext(t, http.MethodPost, "/collection", body)

		err := ctrl.UpsertCollection(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var res rest.UpsertCollectionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, mocks.GenericCollection, res.Address)
	})
}
