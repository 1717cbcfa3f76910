// Package constants holds well-known program IDs and the frozen PDA seed
// tags the account resolver derives custody addresses from.
package constants

import "github.com/gagliardetto/solana-go"

// Well-known program IDs this program depends on as external collaborators
// (spec.md §6): the SPL-compatible token program, the system program (for
// account allocation), and the associated-token-account program (for
// deriving user-owned token accounts).
var (
	SystemProgramID          = solana.SystemProgramID
	TokenProgramID           = solana.TokenProgramID
	AssociatedTokenProgramID = solana.SPLAssociatedTokenAccountProgramID
	SysvarRentPubkey         = solana.SysVarRentPubkey
	SysvarClockPubkey        = solana.SysVarClockPubkey
)

// SolStarterProgramID is the address this program is deployed under. Fixed
// as a byte literal (not base58-decoded) since this is a placeholder
// reserved for the exercise, not a real deployed address.
var SolStarterProgramID = solana.PublicKey(
	[32]byte{
		's', 'o', 'l', 's', 't', 'a', 'r', 't', 'e', 'r', '_', 'p', 'r', 'o', 'g', 'r',
		'a', 'm', '_', 'v', '1', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	},
)

// PDA seed tags, frozen per spec.md §6. Each is fed as raw ASCII bytes,
// alongside the market and pool addresses, to the canonical program-address
// derivation function. Changing any of these changes every custody address
// for every existing pool, so they are constants, never configuration.
const (
	SeedCollection   = "collection"
	SeedDistribution = "distribution"
	SeedMint         = "mint"
	SeedWhitelist    = "whitelist"
	SeedAuthority    = "authority"

	// SeedKyc derives a market-scoped, per-user KYC record address. Not one
	// of spec.md §4.2's five pool-custody roles (KYC records are keyed by
	// (market, user), not (market, pool)) but frozen the same way.
	SeedKyc = "kyc"
)
