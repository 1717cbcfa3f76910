package codec

import "github.com/gagliardetto/solana-go"

// Kyc is a market-scoped boolean per user, optionally time-expiring
// (spec.md §3). Keyed by (market, user); created or toggled by the
// market owner; checked in Participate when the pool has is_kyc.
type Kyc struct {
	Market    solana.PublicKey `bin:"market"`
	User      solana.PublicKey `bin:"user"`
	Passed    bool             `bin:"passed"`
	HasExpiry bool             `bin:"has_expiry"`
	Expiry    int64            `bin:"expiry"`
}

// Marshal encodes the record with the Kyc discriminant prepended.
func (k *Kyc) Marshal() ([]byte, error) {
	return encode(DiscriminantKyc, k)
}

// Unmarshal decodes data into k, requiring the Kyc discriminant.
func (k *Kyc) Unmarshal(data []byte) error {
	return decode(data, DiscriminantKyc, k)
}
