package rpc

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/solstarter/solstarter/pkg/config"
	"github.com/solstarter/solstarter/pkg/constants"
)

// Client wraps solana-go rpc.Client with retry, timeout, and rate limiting.
type Client struct {
	raw     *solanarpc.Client
	cfg     config.RPCConfig
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewClient builds a configured Client.
func NewClient(cfg config.RPCConfig) *Client {
	endpoint := cfg.ResolveRPCURL()
	rpcClient := solanarpc.New(endpoint)

	var limiter *rate.Limiter
	if cfg.RateLimit.RPS > 0 {
		burst := cfg.RateLimit.Burst
		if burst == 0 {
			burst = int(cfg.RateLimit.RPS * 2)
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), burst)
	}

	log := cfg.Logger
	if log.GetLevel() == zerolog.NoLevel {
		log = zerolog.Nop()
	}

	return &Client{
		raw:     rpcClient,
		cfg:     cfg,
		limiter: limiter,
		log:     log,
	}
}

// Raw exposes the underlying solana-go client.
func (c *Client) Raw() *solanarpc.Client {
	return c.raw
}

// GetLatestBlockhash fetches the latest finalized blockhash by default.
func (c *Client) GetLatestBlockhash(ctx context.Context) (*solanarpc.GetLatestBlockhashResult, error) {
	var out *solanarpc.GetLatestBlockhashResult
	err := c.call(ctx, "getLatestBlockhash", func(ctx context.Context) error {
		var err error
		out, err = c.raw.GetLatestBlockhash(ctx, solanarpc.CommitmentType(c.cfg.Commitment))
		return err
	})
	return out, err
}

// SendTransaction submits a signed transaction.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction, opts solanarpc.TransactionOpts) (solana.Signature, error) {
	var sig solana.Signature
	err := c.call(ctx, "sendTransaction", func(ctx context.Context) error {
		var err error
		sig, err = c.raw.SendTransactionWithOpts(ctx, tx, opts)
		return err
	})
	return sig, err
}

// SimulateTransaction simulates a transaction for debugging.
func (c *Client) SimulateTransaction(ctx context.Context, tx *solana.Transaction, opts *solanarpc.SimulateTransactionOpts) (*solanarpc.SimulateTransactionResponse, error) {
	var res *solanarpc.SimulateTransactionResponse
	err := c.call(ctx, "simulateTransaction", func(ctx context.Context) error {
		var err error
		res, err = c.raw.SimulateTransactionWithOpts(ctx, tx, opts)
		return err
	})
	return res, err
}

func (c *Client) call(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx = c.withTimeout(ctx)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	if !c.cfg.Retry.Enabled {
		return fn(ctx)
	}

	attempts := c.cfg.Retry.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	made := 0
	for i := 0; i < attempts; i++ {
		made++
		err = fn(ctx)
		if err == nil {
			return nil
		}

		if !retryable(err) || i == attempts-1 {
			break
		}
		backoff := c.backoff(i)
		c.log.Debug().
			Str("op", op).
			Int("attempt", i+1).
			Dur("backoff", backoff).
			Err(err).
			Msg("rpc retry")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", op, made, err)
}

// GetClockUnixTimestamp reads the cluster's clock sysvar and returns its
// unix-timestamp field. The clock sysvar is one of spec.md §6's external
// collaborators: the program's state machine (pkg/state) never reads time
// itself, it is always handed a `now` value derived this way.
func (c *Client) GetClockUnixTimestamp(ctx context.Context) (int64, error) {
	var out int64
	err := c.call(ctx, "getClockSysvar", func(ctx context.Context) error {
		info, err := c.raw.GetAccountInfo(ctx, constants.SysvarClockPubkey)
		if err != nil {
			return err
		}
		if info == nil || info.Value == nil || info.Value.Data == nil {
			return fmt.Errorf("clock sysvar not found")
		}
		data := info.Value.Data.GetBinary()
		// Clock layout: slot(8) epoch_start_timestamp(8) epoch(8)
		// leader_schedule_epoch(8) unix_timestamp(8), little-endian.
		if len(data) < 40 {
			return fmt.Errorf("clock sysvar: data too short")
		}
		out = int64(binary.LittleEndian.Uint64(data[32:40]))
		return nil
	})
	return out, err
}

// GetRentExemptMinimum returns the lamports required for an account of the
// given size to be rent-exempt, read from the rent sysvar's parameters.
func (c *Client) GetRentExemptMinimum(ctx context.Context, dataLen uint64) (uint64, error) {
	var out uint64
	err := c.call(ctx, "getMinimumBalanceForRentExemption", func(ctx context.Context) error {
		lamports, err := c.raw.GetMinimumBalanceForRentExemption(ctx, dataLen, solanarpc.CommitmentType(c.cfg.Commitment))
		if err != nil {
			return err
		}
		out = lamports
		return nil
	})
	return out, err
}

func (c *Client) withTimeout(ctx context.Context) context.Context {
	if c.cfg.Timeout <= 0 {
		return ctx
	}
	ctxWithTimeout, _ := context.WithTimeout(ctx, c.cfg.Timeout)
	return ctxWithTimeout
}

func (c *Client) backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := c.cfg.Retry.InitialBackoff
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay > c.cfg.Retry.MaxBackoff && c.cfg.Retry.MaxBackoff > 0 {
			delay = c.cfg.Retry.MaxBackoff
			break
		}
	}
	if c.cfg.Retry.Jitter {
		jitter := rand.Int63n(int64(delay / 2))
		delay = delay/2 + time.Duration(jitter)
	}
	return delay
}

func retryable(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Conservative: retry on all other errors to keep liveness unless caller decides otherwise.
	return true
}
