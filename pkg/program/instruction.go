// Package program is the instruction dispatcher and handler set (spec.md
// §4.6): the core that decodes a wire-format instruction, binds positional
// accounts, validates the account graph and pool phase, and drives the
// arithmetic and token-program calls for each of SolStarter's eight
// operations.
package program

import (
	"encoding/binary"

	"github.com/solstarter/solstarter/pkg/solerrors"
)

// Tag is the one-byte instruction discriminant (spec.md §6). The
// distilled spec describes a 0..=6 range while enumerating eight distinct
// handlers (InitMarket, InitPool, AddToWhitelist, Participate, Claim,
// Withdraw, SetKyc, ClearKyc); this implementation extends the range to
// 0..=7 to give every handler a tag rather than force two handlers to
// share one (see DESIGN.md's Open Questions).
type Tag byte

const (
	TagInitMarket Tag = iota
	TagInitPool
	TagAddToWhitelist
	TagParticipate
	TagClaim
	TagWithdraw
	TagSetKyc
	TagClearKyc
)

// InitPoolParams is the typed payload of an InitPool instruction: eight
// u64s plus two booleans, little-endian packed (spec.md §6).
type InitPoolParams struct {
	PriceNumerator   uint64
	PriceDenominator uint64
	GoalMin          uint64
	GoalMax          uint64
	AmountMin        uint64
	AmountMax        uint64
	TimeStart        int64
	TimeFinish       int64
	IsWhitelist      bool
	IsKyc            bool
}

const initPoolParamsLen = 8*8 + 2

// ParticipateParams is the typed payload of a Participate instruction: one
// u64 amount in collected-token units.
type ParticipateParams struct {
	Amount uint64
}

const participateParamsLen = 8

// DecodeInitPoolParams reads InitPoolParams from the bytes following the
// instruction tag.
func DecodeInitPoolParams(data []byte) (InitPoolParams, error) {
	if len(data) != initPoolParamsLen {
		return InitPoolParams{}, solerrors.ErrInvalidAccountData
	}
	p := InitPoolParams{
		PriceNumerator:   binary.LittleEndian.Uint64(data[0:8]),
		PriceDenominator: binary.LittleEndian.Uint64(data[8:16]),
		GoalMin:          binary.LittleEndian.Uint64(data[16:24]),
		GoalMax:          binary.LittleEndian.Uint64(data[24:32]),
		AmountMin:        binary.LittleEndian.Uint64(data[32:40]),
		AmountMax:        binary.LittleEndian.Uint64(data[40:48]),
		TimeStart:        int64(binary.LittleEndian.Uint64(data[48:56])),
		TimeFinish:       int64(binary.LittleEndian.Uint64(data[56:64])),
		IsWhitelist:      data[64] != 0,
		IsKyc:             data[65] != 0,
	}
	return p, nil
}

// EncodeInitPoolParams is the inverse of DecodeInitPoolParams, used by
// client-side instruction builders (BuildInitPool, used by cmd/cli).
func EncodeInitPoolParams(p InitPoolParams) []byte {
	buf := make([]byte, initPoolParamsLen)
	binary.LittleEndian.PutUint64(buf[0:8], p.PriceNumerator)
	binary.LittleEndian.PutUint64(buf[8:16], p.PriceDenominator)
	binary.LittleEndian.PutUint64(buf[16:24], p.GoalMin)
	binary.LittleEndian.PutUint64(buf[24:32], p.GoalMax)
	binary.LittleEndian.PutUint64(buf[32:40], p.AmountMin)
	binary.LittleEndian.PutUint64(buf[40:48], p.AmountMax)
	binary.LittleEndian.PutUint64(buf[48:56], uint64(p.TimeStart))
	binary.LittleEndian.PutUint64(buf[56:64], uint64(p.TimeFinish))
	if p.IsWhitelist {
		buf[64] = 1
	}
	if p.IsKyc {
		buf[65] = 1
	}
	return buf
}

// DecodeParticipateParams reads ParticipateParams from the bytes following
// the instruction tag.
func DecodeParticipateParams(data []byte) (ParticipateParams, error) {
	if len(data) != participateParamsLen {
		return ParticipateParams{}, solerrors.ErrInvalidAccountData
	}
	return ParticipateParams{Amount: binary.LittleEndian.Uint64(data)}, nil
}

// EncodeParticipateParams is the inverse of DecodeParticipateParams.
func EncodeParticipateParams(p ParticipateParams) []byte {
	buf := make([]byte, participateParamsLen)
	binary.LittleEndian.PutUint64(buf, p.Amount)
	return buf
}

// SplitTag separates the leading tag byte from an instruction's raw bytes.
func SplitTag(raw []byte) (Tag, []byte, error) {
	if len(raw) < 1 {
		return 0, nil, solerrors.ErrInvalidAccounts
	}
	return Tag(raw[0]), raw[1:], nil
}
