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

// Signer is the capability to satisfy a signature slot of a transaction.
// The two implementations distinguish, at the type level, holding the key
// from merely asserting the address, so a transaction whose deferred
// signatures were never completed cannot be mistaken for a submittable one.
type Signer interface {
	Address() solana.PublicKey
}

// KeySigner holds a private key and can produce a real signature.
type KeySigner struct {
	key solana.PrivateKey
}

// NewKeySigner wraps a private key as a signer.
func NewKeySigner(key solana.PrivateKey) KeySigner {
	return KeySigner{key: key}
}

// Address returns the public key of the held private key.
func (k KeySigner) Address() solana.PublicKey {
	return k.key.PublicKey()
}

// Key exposes the private key for the duration of a signing operation.
func (k KeySigner) Key() solana.PrivateKey {
	return k.key
}

// NoopSigner asserts an address as a required signer without holding its
// key. The signature slot stays open until the owning party completes it.
type NoopSigner struct {
	address solana.PublicKey
}

// NewNoopSigner asserts the given address as a deferred signer.
func NewNoopSigner(address solana.PublicKey) NoopSigner {
	return NoopSigner{address: address}
}

// Address returns the asserted signer address.
func (n NoopSigner) Address() solana.PublicKey {
	return n.address
}
