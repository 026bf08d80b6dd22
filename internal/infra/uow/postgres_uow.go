package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"rentalflow/internal/infra/writerepo"
	"rentalflow/internal/pkg/errs"
	"rentalflow/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	maxRetries = 3
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted plus row locks on the parent intent/agreement serialize
// conflicting lifecycle writes; serialization failures and deadlocks retry
// with backoff.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = u.runInTx(ctx, fn)
		if lastErr == nil {
			return nil
		}
		if !isRetryableError(lastErr) {
			return lastErr
		}
		if attempt == maxRetries {
			break
		}

		waitTime := time.Duration(attempt+1) * 100 * time.Millisecond
		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_time", waitTime,
			"error", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errs.Mark(lastErr, errMaxRetriesExceeded)
}

func (u *PostgresUoW) runInTx(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback transaction", "error", rollbackErr)
			}
		}
	}()

	if err := fn(ctx, newPgTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	intents      shared.IntentRepository
	offers       shared.OfferRepository
	agreements   shared.AgreementRepository
	fulfillments shared.FulfillmentRepository
	idempotency  shared.IdempotencyRepository
	reads        shared.CommandReads
}

func newPgTx(tx pgx.Tx) *pgTx {
	return &pgTx{
		intents:      writerepo.NewIntentRepository(tx),
		offers:       writerepo.NewOfferRepository(tx),
		agreements:   writerepo.NewAgreementRepository(tx),
		fulfillments: writerepo.NewFulfillmentRepository(tx),
		idempotency:  writerepo.NewIdempotencyRepository(tx),
		reads:        writerepo.NewCommandReads(tx),
	}
}

func (t *pgTx) Intents() shared.IntentRepository           { return t.intents }
func (t *pgTx) Offers() shared.OfferRepository             { return t.offers }
func (t *pgTx) Agreements() shared.AgreementRepository     { return t.agreements }
func (t *pgTx) Fulfillments() shared.FulfillmentRepository { return t.fulfillments }
func (t *pgTx) Idempotency() shared.IdempotencyRepository  { return t.idempotency }
func (t *pgTx) Reads() shared.CommandReads                 { return t.reads }
