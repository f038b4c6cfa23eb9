/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomoncle/itemsvc/types"
	"github.com/uptrace/bun"
)

const (
	opAcquire = "database.acquire"
	opBegin   = "database.begin"
	opCommit  = "database.commit"
)

// WithTx runs fn inside a transaction on a connection borrowed for the
// duration of the call.
//
// Acquisition waits at most AcquireTimeout for a free pool slot and fails
// with types.KindResourceUnavailable when it expires. Any other acquisition
// or BEGIN failure is types.KindBackendUnavailable. Errors returned by fn are
// passed through unchanged after the rollback. A panic in fn rolls back and
// is re-raised once the connection has been returned. A ctx cancelled while
// fn runs abandons the transaction and reports the context error.
func (dm *defaultDatabaseManager) WithTx(ctx context.Context, fn TxFunc) error {
	dm.mu.RLock()
	db := dm.db
	logger := dm.logger
	acquireTimeout := dm.config.AcquireTimeout
	dm.mu.RUnlock()

	if db == nil {
		return types.NewError(types.KindBackendUnavailable, opAcquire, errors.New("database not connected"))
	}

	conn, err := acquire(ctx, db, acquireTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil && !errors.Is(closeErr, context.Canceled) {
			logger.Warn("Failed to release database connection", "error", closeErr)
		}
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return types.NewError(types.KindBackendUnavailable, opBegin, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error("Failed to rollback transaction", "error", rbErr)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	// database/sql rolls the transaction back itself once ctx is done
	if ctxErr := ctx.Err(); ctxErr != nil {
		return types.NewError(types.KindBackendUnavailable, opCommit, ctxErr)
	}

	if err := tx.Commit(); err != nil {
		// a failed COMMIT already ends the transaction
		committed = true
		if errors.Is(err, sql.ErrTxDone) && ctx.Err() != nil {
			return types.NewError(types.KindBackendUnavailable, opCommit, ctx.Err())
		}
		kind := types.KindInternal
		if IsConnectionError(err) {
			kind = types.KindBackendUnavailable
		}
		return types.NewError(kind, opCommit, err)
	}
	committed = true
	return nil
}

// acquire borrows a connection from the pool, waiting at most timeout for a
// free slot. The deadline applies to acquisition only; the returned
// connection is not bound to it.
func acquire(ctx context.Context, db *bun.DB, timeout time.Duration) (bun.Conn, error) {
	acquireCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := db.Conn(acquireCtx)
	if err == nil {
		return conn, nil
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		return bun.Conn{}, types.NewError(types.KindResourceUnavailable, opAcquire,
			fmt.Errorf("no pooled connection available within %s: %w", timeout, err))
	}
	return bun.Conn{}, types.NewError(types.KindBackendUnavailable, opAcquire, err)
}
