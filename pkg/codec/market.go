package codec

import "github.com/gagliardetto/solana-go"

// Market is the administrative container for a set of pools sharing an
// owner and KYC registry (spec.md §3). Created by InitMarket, never
// destroyed, mutable only by its owner via KYC updates.
type Market struct {
	Owner         solana.PublicKey `bin:"owner"`
	IsInitialized bool             `bin:"is_initialized"`
}

// Marshal encodes the record with the Market discriminant prepended.
func (m *Market) Marshal() ([]byte, error) {
	return encode(DiscriminantMarket, m)
}

// Unmarshal decodes data into m, requiring the Market discriminant.
func (m *Market) Unmarshal(data []byte) error {
	return decode(data, DiscriminantMarket, m)
}
