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

// Package encoder maps typed business parameters to raw ledger instructions
// for the token, attestation and system programs. Each encoder returns the
// program address, the ordered role-tagged account list and the borsh
// payload; it never resolves roles into flags itself, that is the job of
// the convert package.
package encoder

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

const (
	optionNone = uint8(0)
	optionSome = uint8(1)
)

type payload struct {
	buf bytes.Buffer
	enc *bin.Encoder
	err error
}

func newPayload(discriminator uint8) *payload {
	p := payload{}
	p.enc = bin.NewBorshEncoder(&p.buf)
	p.uint8(discriminator)
	return &p
}

func (p *payload) uint8(v uint8) {
	if p.err == nil {
		p.err = p.enc.WriteUint8(v)
	}
}

func (p *payload) uint16(v uint16) {
	if p.err == nil {
		p.err = p.enc.WriteUint16(v, binary.LittleEndian)
	}
}

func (p *payload) uint64(v uint64) {
	if p.err == nil {
		p.err = p.enc.WriteUint64(v, binary.LittleEndian)
	}
}

func (p *payload) int64(v int64) {
	if p.err == nil {
		p.err = p.enc.WriteInt64(v, binary.LittleEndian)
	}
}

func (p *payload) str(v string) {
	if p.err == nil {
		p.err = p.enc.WriteString(v)
	}
}

func (p *payload) bytes(v []byte) {
	if p.err == nil {
		p.err = p.enc.WriteBytes(v, true)
	}
}

func (p *payload) raw(v []byte) {
	if p.err == nil {
		p.err = p.enc.WriteBytes(v, false)
	}
}

// length writes a borsh vector length prefix.
func (p *payload) length(n int) {
	if p.err == nil {
		p.err = p.enc.WriteUint32(uint32(n), binary.LittleEndian)
	}
}

func (p *payload) build() ([]byte, error) {
	if p.err != nil {
		return nil, fmt.Errorf("could not encode payload: %w", p.err)
	}
	return p.buf.Bytes(), nil
}
