// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"context"
	"sync"
	"time"

	"github.com/cellwallet/cellwallet/wire"
	"github.com/lightningnetwork/lnd/ticker"
	"github.com/pkg/errors"
)

const (
	// DefaultPollInterval is how often the status of a submitted
	// transaction is queried.
	DefaultPollInterval = time.Second

	// DefaultPollTimeout is how long a submitted transaction may take to
	// be committed.
	DefaultPollTimeout = 600 * time.Second
)

var (
	// ErrUnexpectedStatus is returned when the node reports a status the
	// publisher does not know.
	ErrUnexpectedStatus = errors.New("unexpected transaction status")

	// ErrTimeout is returned when a transaction is not committed within
	// the poll timeout.
	ErrTimeout = errors.New("timed out waiting for transaction commitment")

	// ErrTxRejected is returned when the node rejects a submitted
	// transaction.
	ErrTxRejected = errors.New("transaction rejected")

	// ErrHashMismatch is returned when the node reports a hash other than
	// the one computed for the submitted transaction.
	ErrHashMismatch = errors.New("transaction hash mismatch")
)

// PublisherConfig holds the dependencies and settings of a Publisher.
type PublisherConfig struct {
	// Backend is the node transactions are sent to.
	Backend Backend

	// PollTicker paces status queries. If nil, a ticker firing every
	// PollInterval is used.
	PollTicker ticker.Ticker

	// PollInterval defaults to DefaultPollInterval.
	PollInterval time.Duration

	// Timeout defaults to DefaultPollTimeout.
	Timeout time.Duration
}

// Publisher submits transactions and waits for them to be committed.
type Publisher struct {
	cfg PublisherConfig

	// mu serializes Publish calls, which share the poll ticker.
	mu sync.Mutex
}

// NewPublisher returns a Publisher for cfg, filling in defaults.
func NewPublisher(cfg PublisherConfig) *Publisher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPollTimeout
	}
	if cfg.PollTicker == nil {
		cfg.PollTicker = ticker.New(cfg.PollInterval)
	}
	return &Publisher{cfg: cfg}
}

// Publish sends tx once and then polls its status until it is committed. It
// fails with ErrTxRejected if the node rejects it, ErrTimeout if the timeout
// passes first and ErrUnexpectedStatus on any status it does not know. The
// hash the node reports must match the locally computed one.
// Errors from the backend end the wait; nothing is retried.
func (p *Publisher) Publish(ctx context.Context,
	tx *wire.Transaction) (wire.Hash, error) {

	hash, err := tx.TxHash()
	if err != nil {
		return wire.Hash{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	sent, err := p.cfg.Backend.SendTransaction(ctx, tx)
	if err != nil {
		return hash, errors.Wrap(err, "send transaction")
	}
	if sent != hash {
		return hash, errors.Wrapf(ErrHashMismatch, "node reported %v, "+
			"computed %v", sent, hash)
	}
	log.Infof("Sent transaction %v", hash)

	timeout := time.NewTimer(p.cfg.Timeout)
	defer timeout.Stop()

	p.cfg.PollTicker.Resume()
	defer p.cfg.PollTicker.Pause()

	for {
		select {
		case <-p.cfg.PollTicker.Ticks():
			status, err := p.cfg.Backend.TransactionStatus(ctx, hash)
			if err != nil {
				return hash, errors.Wrapf(err, "status of %v",
					hash)
			}
			log.Debugf("Transaction %v is %v", hash, status)

			switch status {
			case TxStatusCommitted:
				log.Infof("Transaction %v committed", hash)
				return hash, nil

			case TxStatusRejected:
				return hash, errors.Wrapf(ErrTxRejected, "%v",
					hash)

			case TxStatusPending, TxStatusProposed,
				TxStatusUnknown:

			default:
				return hash, errors.Wrapf(ErrUnexpectedStatus,
					"%q for %v", status, hash)
			}

		case <-timeout.C:
			return hash, errors.Wrapf(ErrTimeout, "%v after %v", hash,
				p.cfg.Timeout)

		case <-ctx.Done():
			return hash, ctx.Err()
		}
	}
}

// Stop releases the poll ticker.
func (p *Publisher) Stop() {
	p.cfg.PollTicker.Stop()
}
