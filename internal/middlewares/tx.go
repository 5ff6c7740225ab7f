package middlewares

import (
	"bytes"
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-inventory/internal/logger"
)

// TxMiddleware wraps an HTTP handler with a database transaction.
//
// The response is held back until the transaction is settled: a status below
// 400 commits, anything else (or a panic) rolls back. When the commit fails
// the buffered response is dropped and the client gets a 500, so a client is
// never told about a write that was not persisted. Functions registered with
// AfterCommit run only after a successful commit.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					_ = tx.Rollback()
					panic(rec)
				}
			}()

			hooks := &commitHooks{}
			ctx := setTxToContext(r.Context(), tx)
			ctx = context.WithValue(ctx, hooksKey, hooks)

			buf := newBufferedResponse()
			next.ServeHTTP(buf, r.WithContext(ctx))

			if buf.status >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to rollback transaction", "error", err)
				}
				buf.flush(w)
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			buf.flush(w)

			hookCtx := context.WithoutCancel(r.Context())
			for _, fn := range hooks.fns {
				fn(hookCtx)
			}
		})
	}
}

// bufferedResponse records a handler's response so it can be discarded.
type bufferedResponse struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(code int) {
	if b.wroteHeader {
		return
	}
	b.status = code
	b.wroteHeader = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.wroteHeader = true
	return b.body.Write(p)
}

func (b *bufferedResponse) flush(w http.ResponseWriter) {
	dst := w.Header()
	for k, v := range b.header {
		dst[k] = v
	}
	w.WriteHeader(b.status)
	_, _ = w.Write(b.body.Bytes())
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}

type commitHooks struct {
	fns []func(context.Context)
}

type hooksContextKey struct{}

var hooksKey = hooksContextKey{}

// AfterCommit schedules fn to run once the request transaction has committed.
// Hooks of a rolled back transaction are dropped. Outside TxMiddleware fn runs
// immediately.
func AfterCommit(ctx context.Context, fn func(context.Context)) {
	if hooks, ok := ctx.Value(hooksKey).(*commitHooks); ok {
		hooks.fns = append(hooks.fns, fn)
		return
	}
	fn(ctx)
}
