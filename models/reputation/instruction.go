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

package reputation

import (
	"github.com/gagliardetto/solana-go"
)

// Role describes the access an instruction requires for one of its accounts.
// The enumeration is closed: the four values below are the only valid roles,
// and translation rejects anything else.
type Role uint8

const (
	RoleReadOnly Role = iota
	RoleWritable
	RoleReadOnlySigner
	RoleWritableSigner
)

// String returns the role name for logs and error messages.
func (r Role) String() string {
	switch r {
	case RoleReadOnly:
		return "readonly"
	case RoleWritable:
		return "writable"
	case RoleReadOnlySigner:
		return "readonly-signer"
	case RoleWritableSigner:
		return "writable-signer"
	default:
		return "unknown"
	}
}

// AccountRef names one account an instruction touches, along with the access
// role it requires.
type AccountRef struct {
	Address solana.PublicKey
	Role    Role
}

// Instruction is one atomic directive for an on-chain program: the program
// address, the ordered accounts it touches and the opaque payload bytes.
// Instructions are immutable once composed; they are only ever appended to
// a transaction.
type Instruction struct {
	Program  solana.PublicKey
	Accounts []AccountRef
	Data     []byte
}
