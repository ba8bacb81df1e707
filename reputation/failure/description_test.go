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

package failure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nomis-labs/reputation-engine/models/reputation"
	"github.com/nomis-labs/reputation-engine/reputation/failure"
	"github.com/nomis-labs/reputation-engine/testing/mocks"
)

func TestNewDescription(t *testing.T) {
	t.Run("without fields", func(t *testing.T) {
		t.Parallel()

		description := failure.NewDescription("dummy text")

		assert.Equal(t, "dummy text", description.String())
	})

	t.Run("with fields", func(t *testing.T) {
		t.Parallel()

		description := failure.NewDescription("dummy text",
			failure.WithErr(mocks.GenericError),
			failure.WithInt("count", 42),
			failure.WithUint64("amount", 1_000_000),
			failure.WithString("name", "dummy"),
			failure.WithAddress("owner", mocks.GenericUser),
			failure.WithAmount("fee", reputation.NewAmount(200_000)),
		)

		assert.Equal(t, "dummy text", description.Text)
		assert.Len(t, description.Fields, 6)

		text := description.String()
		assert.Contains(t, text, "dummy text")
		assert.Contains(t, text, "error: dummy error")
		assert.Contains(t, text, "count: 42")
		assert.Contains(t, text, "amount: 1000000")
		assert.Contains(t, text, "name: dummy")
		assert.Contains(t, text, "owner: "+mocks.GenericUser.String())
		assert.Contains(t, text, "fee: 200000")
	})

	t.Run("fields keep insertion order", func(t *testing.T) {
		t.Parallel()

		description := failure.NewDescription("dummy text",
			failure.WithString("first", "1"),
			failure.WithString("second", "2"),
		)

		keys := make([]string, 0, 2)
		description.Fields.Iterate(func(key string, _ interface{}) {
			keys = append(keys, key)
		})

		assert.Equal(t, []string{"first", "second"}, keys)
	})
}
