package codec

import "github.com/gagliardetto/solana-go"

// Pool is a single token-sale campaign with its own mint pair, window,
// goal, and gating rules (spec.md §3). Created by InitPool; mutated only
// during Participate (collected_total increments); read-only thereafter.
type Pool struct {
	Market             solana.PublicKey `bin:"market"`
	Owner              solana.PublicKey `bin:"owner"`
	MintCollection     solana.PublicKey `bin:"mint_collection"`
	MintDistribution   solana.PublicKey `bin:"mint_distribution"`
	AccountCollection  solana.PublicKey `bin:"account_collection"`
	AccountDistribution solana.PublicKey `bin:"account_distribution"`
	MintPool           solana.PublicKey `bin:"mint_pool"`
	MintWhitelist      solana.PublicKey `bin:"mint_whitelist"`
	IsWhitelist        bool             `bin:"is_whitelist"`
	IsKyc              bool             `bin:"is_kyc"`
	PriceNumerator     uint64           `bin:"price_numerator"`
	PriceDenominator   uint64           `bin:"price_denominator"`
	GoalMin            uint64           `bin:"goal_min"`
	GoalMax            uint64           `bin:"goal_max"`
	AmountMin          uint64           `bin:"amount_min"`
	AmountMax          uint64           `bin:"amount_max"`
	TimeStart          int64            `bin:"time_start"`
	TimeFinish         int64            `bin:"time_finish"`
	CollectedTotal     uint64           `bin:"collected_total"`
	IsInitialized      bool             `bin:"is_initialized"`
}

// Marshal encodes the record with the Pool discriminant prepended.
func (p *Pool) Marshal() ([]byte, error) {
	return encode(DiscriminantPool, p)
}

// Unmarshal decodes data into p, requiring the Pool discriminant.
func (p *Pool) Unmarshal(data []byte) error {
	return decode(data, DiscriminantPool, p)
}

// HasWhitelistMint reports whether mint_whitelist is meaningful. When
// IsWhitelist is false the field is left zero and must never be
// dereferenced as a live mint address.
func (p *Pool) HasWhitelistMint() bool {
	return p.IsWhitelist
}
