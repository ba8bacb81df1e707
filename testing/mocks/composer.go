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

package mocks

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/nomis-labs/reputation-engine/models/reputation"
)

type Composer struct {
	CredentialFunc func() (*reputation.Composition, error)
	SchemaFunc     func() (*reputation.Composition, error)
}

func BaselineComposer(t *testing.T) *Composer {
	t.Helper()

	composition := func() (*reputation.Composition, error) {
		c := reputation.Composition{
			Instructions: []reputation.Instruction{
				{
					Program: reputation.AttestationProgram,
					Accounts: []reputation.AccountRef{
						{Address: GenericAuthority.Address(), Role: reputation.RoleWritableSigner},
					},
					Data: []byte{0},
				},
			},
			FeePayer: GenericAuthority,
			Signers:  []reputation.Signer{GenericAuthority},
		}
		return &c, nil
	}

	c := Composer{
		CredentialFunc: composition,
		SchemaFunc:     composition,
	}

	return &c
}

func (c *Composer) Credential() (*reputation.Composition, error) {
	return c.CredentialFunc()
}

func (c *Composer) Schema() (*reputation.Composition, error) {
	return c.SchemaFunc()
}

type Authority struct {
	SubmitAsAuthorityFunc func(ctx context.Context, composition reputation.Composition) (solana.Signature, error)
}

func BaselineAuthority(t *testing.T) *Authority {
	t.Helper()

	a := Authority{
		SubmitAsAuthorityFunc: func(context.Context, reputation.Composition) (solana.Signature, error) {
			return solana.Signature{1}, nil
		},
	}

	return &a
}

func (a *Authority) SubmitAsAuthority(ctx context.Context, composition reputation.Composition) (solana.Signature, error) {
	return a.SubmitAsAuthorityFunc(ctx, composition)
}
