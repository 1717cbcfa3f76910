// Package accountbind autofills the positional account lists SolStarter's
// instructions require: the five PDA-derived custody accounts (spec.md
// §4.2), the KYC record address, and the caller's own token accounts,
// so a CLI command only has to supply market, pool, and a signer.
package accountbind

import (
	"encoding/json"
	"io"

	"github.com/gagliardetto/solana-go"
)

// Options configures the Bind* helpers.
type Options struct {
	// Overrides supplies explicit addresses keyed by field name (or its
	// snake_case form), replacing the derived address for that one field.
	// Overrides are applied after the ATA existence check, so that check
	// still runs against the derived ATA; KnownATAs is what skips it.
	Overrides map[string]solana.PublicKey

	// Preview, if set, receives a human-readable dump of the resolved
	// account set before any instruction is built.
	Preview io.Writer

	// KnownATAs skips the existence check for these addresses. Use this
	// right after a transaction that just created the ATA, to avoid an
	// RPC read racing state propagation.
	KnownATAs []solana.PublicKey
}

// Option functional option.
type Option func(*Options)

func WithOverrides(m map[string]solana.PublicKey) Option {
	return func(o *Options) { o.Overrides = m }
}

func WithPreview(w io.Writer) Option {
	return func(o *Options) { o.Preview = w }
}

// WithKnownATAs skips the ATA existence check for the given addresses.
func WithKnownATAs(atas ...solana.PublicKey) Option {
	return func(o *Options) { o.KnownATAs = append(o.KnownATAs, atas...) }
}

// MergeOverridesFromJSON merges base58 pubkeys from a JSON object blob
// (field name -> base58 address) into dst, creating it if nil.
func MergeOverridesFromJSON(dst map[string]solana.PublicKey, jsonBytes []byte) (map[string]solana.PublicKey, error) {
	if dst == nil {
		dst = make(map[string]solana.PublicKey)
	}
	var m map[string]string
	if err := json.Unmarshal(jsonBytes, &m); err != nil {
		return nil, err
	}
	for k, v := range m {
		pk, err := solana.PublicKeyFromBase58(v)
		if err != nil {
			return nil, err
		}
		dst[k] = pk
	}
	return dst, nil
}
