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

package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/failure"
)

// apiError maps the engine's error taxonomy onto HTTP responses. Every
// response carries a human-readable message; internal invariant violations
// surface as plain server errors, never as stack traces.
func apiError(err error) *echo.HTTPError {

	var invalidInput failure.InvalidInput
	if errors.As(err, &invalidInput) {
		return echo.NewHTTPError(http.StatusBadRequest, invalidInput.Error())
	}

	var unavailable failure.UpstreamUnavailable
	if errors.As(err, &unavailable) {
		return echo.NewHTTPError(http.StatusBadGateway, unavailable.Error())
	}

	var submission failure.Submission
	if errors.As(err, &submission) {
		return echo.NewHTTPError(http.StatusBadGateway, submission.Error())
	}

	if errors.Is(err, reputation.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
