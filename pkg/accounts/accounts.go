// Package accounts derives the program-owned custody addresses a pool owns
// (spec.md §4.2): the collection account, the distribution account, the
// pool mint, the whitelist mint, and the authority PDA that owns all four.
// Every address is a pure function of (market, pool, role_tag); nothing is
// stored, so the handlers recompute and compare on every instruction
// instead of trusting a passed-in address.
package accounts

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solstarter/solstarter/pkg/constants"
	"github.com/solstarter/solstarter/pkg/solerrors"
)

// Custody bundles the five derived addresses for one (market, pool) pair.
type Custody struct {
	Collection   solana.PublicKey
	Distribution solana.PublicKey
	MintPool     solana.PublicKey
	MintWhitelist solana.PublicKey
	Authority    solana.PublicKey
}

func derive(seed string, market, pool solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{market[:], pool[:], []byte(seed)},
		constants.SolStarterProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return addr, nil
}

// CollectionAddress derives the custody account that receives collected
// tokens from participants.
func CollectionAddress(market, pool solana.PublicKey) (solana.PublicKey, error) {
	return derive(constants.SeedCollection, market, pool)
}

// DistributionAddress derives the custody account holding the seed
// inventory of distributed tokens.
func DistributionAddress(market, pool solana.PublicKey) (solana.PublicKey, error) {
	return derive(constants.SeedDistribution, market, pool)
}

// MintPoolAddress derives the program-owned mint for ephemeral receipt
// tokens.
func MintPoolAddress(market, pool solana.PublicKey) (solana.PublicKey, error) {
	return derive(constants.SeedMint, market, pool)
}

// MintWhitelistAddress derives the program-owned whitelist-gating mint.
// Only meaningful when the pool has is_whitelist set.
func MintWhitelistAddress(market, pool solana.PublicKey) (solana.PublicKey, error) {
	return derive(constants.SeedWhitelist, market, pool)
}

// AuthorityAddress derives the PDA that owns all four custody accounts.
// It has no private key: every mutation of custody token balances must go
// through the token-program adapter signing with this PDA's seeds.
func AuthorityAddress(market, pool solana.PublicKey) (solana.PublicKey, error) {
	return derive(constants.SeedAuthority, market, pool)
}

// Resolve derives the full custody set for (market, pool) in one call.
func Resolve(market, pool solana.PublicKey) (Custody, error) {
	collection, err := CollectionAddress(market, pool)
	if err != nil {
		return Custody{}, err
	}
	distribution, err := DistributionAddress(market, pool)
	if err != nil {
		return Custody{}, err
	}
	mintPool, err := MintPoolAddress(market, pool)
	if err != nil {
		return Custody{}, err
	}
	mintWhitelist, err := MintWhitelistAddress(market, pool)
	if err != nil {
		return Custody{}, err
	}
	authority, err := AuthorityAddress(market, pool)
	if err != nil {
		return Custody{}, err
	}
	return Custody{
		Collection:    collection,
		Distribution:  distribution,
		MintPool:      mintPool,
		MintWhitelist: mintWhitelist,
		Authority:     authority,
	}, nil
}

// KycAddress derives the market-scoped KYC record address for a user. Not
// one of the five pool-custody roles (spec.md §4.2 only names collection,
// distribution, mint, whitelist, authority); this is a supplemental
// derivation so KYC records have a deterministic address the same way
// custody accounts do, rather than being addressed arbitrarily by the
// caller.
func KycAddress(market, user solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{market[:], user[:], []byte(constants.SeedKyc)},
		constants.SolStarterProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return addr, nil
}

// Verify recomputes the expected address for a custody role and compares it
// to the address actually passed into an instruction, failing with
// InvalidAccountAddress on mismatch (spec.md §4.2).
func Verify(expected, got solana.PublicKey) error {
	if expected != got {
		return solerrors.ErrInvalidAccountAddress
	}
	return nil
}
