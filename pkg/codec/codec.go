// Package codec implements the fixed-layout binary serialization of
// SolStarter's on-chain account types (spec.md §4.4): Market, Pool, and the
// KYC record. Every account's data blob starts with a single discriminant
// byte so an uninitialized buffer can never be mistaken for a record, then
// a little-endian Borsh-style encoding of the typed fields, matching the
// encoding github.com/gagliardetto/binary's generated account decoders use
// elsewhere in this codebase.
package codec

import (
	bin "github.com/gagliardetto/binary"

	"github.com/solstarter/solstarter/pkg/solerrors"
)

// Discriminant identifies which record type an account's data blob holds.
type Discriminant byte

const (
	DiscriminantUninitialized Discriminant = 0
	DiscriminantMarket        Discriminant = 1
	DiscriminantPool          Discriminant = 2
	DiscriminantKyc           Discriminant = 3
)

// encode prepends the discriminant byte to the Borsh encoding of body.
func encode(disc Discriminant, body interface{}) ([]byte, error) {
	buf := make([]byte, 0, 128)
	enc := bin.NewBorshEncoder(&byteSliceWriter{buf: &buf})
	if err := enc.WriteUint8(uint8(disc)); err != nil {
		return nil, err
	}
	if err := enc.Encode(body); err != nil {
		return nil, err
	}
	return buf, nil
}

// decode validates length, discriminant, and decodes body from data[1:].
func decode(data []byte, want Discriminant, body interface{}) error {
	if len(data) < 1 {
		return solerrors.ErrInvalidAccountData
	}
	if Discriminant(data[0]) != want {
		return solerrors.ErrInvalidAccountData
	}
	dec := bin.NewBorshDecoder(data[1:])
	if err := dec.Decode(body); err != nil {
		return solerrors.ErrInvalidAccountData
	}
	return nil
}

// PeekDiscriminant reads the first byte of an account blob without fully
// decoding it, used by the dispatcher to tell uninitialized accounts apart
// from initialized ones before picking a decoder.
func PeekDiscriminant(data []byte) Discriminant {
	if len(data) < 1 {
		return DiscriminantUninitialized
	}
	return Discriminant(data[0])
}

// byteSliceWriter adapts a *[]byte to io.Writer for bin.NewBorshEncoder,
// which writes incrementally rather than returning a finished buffer.
type byteSliceWriter struct {
	buf *[]byte
}

func (w *byteSliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}
