package program

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solstarter/solstarter/pkg/hostapi"
	"github.com/solstarter/solstarter/pkg/solerrors"
)

// Deps bundles the external collaborators every handler is written against
// (spec.md §6): account storage, the clock, the rent check, and the
// token-program adapter. pkg/tokenprog supplies a real Token; pkg/sim
// supplies all four in memory for tests and the CLI simulate subcommand.
type Deps struct {
	Store hostapi.AccountStore
	Clock hostapi.Clock
	Rent  hostapi.Rent
	Token hostapi.TokenProgram
}

// InitMarketAccounts binds InitMarket's positional accounts.
type InitMarketAccounts struct {
	Market solana.PublicKey
	Owner  solana.PublicKey
}

// InitPoolAccounts binds InitPool's positional accounts.
type InitPoolAccounts struct {
	Market              solana.PublicKey
	Pool                solana.PublicKey
	Owner               solana.PublicKey
	MintCollection      solana.PublicKey
	MintDistribution    solana.PublicKey
	AccountCollection   solana.PublicKey
	AccountDistribution solana.PublicKey
	MintPool            solana.PublicKey
	MintWhitelist       solana.PublicKey
	Authority           solana.PublicKey
}

// AddToWhitelistAccounts binds AddToWhitelist's positional accounts.
type AddToWhitelistAccounts struct {
	Market               solana.PublicKey
	Pool                 solana.PublicKey
	Owner                solana.PublicKey
	User                 solana.PublicKey
	UserWhitelistAccount solana.PublicKey
	MintWhitelist        solana.PublicKey
	Authority            solana.PublicKey
}

// ParticipateAccounts binds Participate's positional accounts. The
// whitelist and KYC fields are present on every call; handlers only
// consult them when the pool's corresponding gating flag is set.
type ParticipateAccounts struct {
	Market                solana.PublicKey
	Pool                  solana.PublicKey
	User                  solana.PublicKey
	UserCollectionAccount solana.PublicKey
	AccountCollection     solana.PublicKey
	UserPoolAccount       solana.PublicKey
	MintPool              solana.PublicKey
	UserWhitelistAccount  solana.PublicKey
	MintWhitelist         solana.PublicKey
	KycRecord             solana.PublicKey
	Authority             solana.PublicKey
}

// ClaimAccounts binds Claim's positional accounts. Target is the custody
// account the user is claiming against (account_distribution or
// account_collection); UserTargetAccount and MintTarget are the matching
// user-owned token account and mint.
type ClaimAccounts struct {
	Market          solana.PublicKey
	Pool            solana.PublicKey
	User            solana.PublicKey
	UserPoolAccount solana.PublicKey
	MintPool        solana.PublicKey
	Target          solana.PublicKey
	UserTargetAccount solana.PublicKey
	MintTarget      solana.PublicKey
	Authority       solana.PublicKey
}

// WithdrawAccounts binds Withdraw's positional accounts.
type WithdrawAccounts struct {
	Market             solana.PublicKey
	Pool               solana.PublicKey
	Owner              solana.PublicKey
	Target             solana.PublicKey
	OwnerTargetAccount solana.PublicKey
	MintTarget         solana.PublicKey
	Authority          solana.PublicKey
}

// KycAccounts binds SetKyc's and ClearKyc's positional accounts.
type KycAccounts struct {
	Market    solana.PublicKey
	Owner     solana.PublicKey
	KycRecord solana.PublicKey
	User      solana.PublicKey
}

func bindFixed(addrs []solana.PublicKey, n int) error {
	if len(addrs) != n {
		return solerrors.ErrInvalidAccounts
	}
	return nil
}

func bindInitMarketAccounts(addrs []solana.PublicKey) (InitMarketAccounts, error) {
	if err := bindFixed(addrs, 2); err != nil {
		return InitMarketAccounts{}, err
	}
	return InitMarketAccounts{Market: addrs[0], Owner: addrs[1]}, nil
}

func bindInitPoolAccounts(addrs []solana.PublicKey) (InitPoolAccounts, error) {
	if err := bindFixed(addrs, 10); err != nil {
		return InitPoolAccounts{}, err
	}
	return InitPoolAccounts{
		Market:              addrs[0],
		Pool:                addrs[1],
		Owner:               addrs[2],
		MintCollection:      addrs[3],
		MintDistribution:    addrs[4],
		AccountCollection:   addrs[5],
		AccountDistribution: addrs[6],
		MintPool:            addrs[7],
		MintWhitelist:       addrs[8],
		Authority:           addrs[9],
	}, nil
}

func bindAddToWhitelistAccounts(addrs []solana.PublicKey) (AddToWhitelistAccounts, error) {
	if err := bindFixed(addrs, 7); err != nil {
		return AddToWhitelistAccounts{}, err
	}
	return AddToWhitelistAccounts{
		Market:               addrs[0],
		Pool:                 addrs[1],
		Owner:                addrs[2],
		User:                 addrs[3],
		UserWhitelistAccount: addrs[4],
		MintWhitelist:        addrs[5],
		Authority:            addrs[6],
	}, nil
}

func bindParticipateAccounts(addrs []solana.PublicKey) (ParticipateAccounts, error) {
	if err := bindFixed(addrs, 11); err != nil {
		return ParticipateAccounts{}, err
	}
	return ParticipateAccounts{
		Market:                addrs[0],
		Pool:                  addrs[1],
		User:                  addrs[2],
		UserCollectionAccount: addrs[3],
		AccountCollection:     addrs[4],
		UserPoolAccount:       addrs[5],
		MintPool:              addrs[6],
		UserWhitelistAccount:  addrs[7],
		MintWhitelist:         addrs[8],
		KycRecord:             addrs[9],
		Authority:             addrs[10],
	}, nil
}

func bindClaimAccounts(addrs []solana.PublicKey) (ClaimAccounts, error) {
	if err := bindFixed(addrs, 9); err != nil {
		return ClaimAccounts{}, err
	}
	return ClaimAccounts{
		Market:            addrs[0],
		Pool:              addrs[1],
		User:              addrs[2],
		UserPoolAccount:   addrs[3],
		MintPool:          addrs[4],
		Target:            addrs[5],
		UserTargetAccount: addrs[6],
		MintTarget:        addrs[7],
		Authority:         addrs[8],
	}, nil
}

func bindWithdrawAccounts(addrs []solana.PublicKey) (WithdrawAccounts, error) {
	if err := bindFixed(addrs, 7); err != nil {
		return WithdrawAccounts{}, err
	}
	return WithdrawAccounts{
		Market:             addrs[0],
		Pool:               addrs[1],
		Owner:              addrs[2],
		Target:             addrs[3],
		OwnerTargetAccount: addrs[4],
		MintTarget:         addrs[5],
		Authority:          addrs[6],
	}, nil
}

func bindKycAccounts(addrs []solana.PublicKey) (KycAccounts, error) {
	if err := bindFixed(addrs, 4); err != nil {
		return KycAccounts{}, err
	}
	return KycAccounts{
		Market:    addrs[0],
		Owner:     addrs[1],
		KycRecord: addrs[2],
		User:      addrs[3],
	}, nil
}
