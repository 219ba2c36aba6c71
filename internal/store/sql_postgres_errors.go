package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL by
// error class of the *pgconn.PgError returned by pgx.
//
// Retryable classes:
//   - 08 connection exceptions
//   - 40 transaction rollback (serialization failure, deadlock)
//   - 57 operator intervention, except query_canceled which follows a
//     cancelled context
//
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}

	switch {
	case pgErr.Code == pgerrcode.QueryCanceled:
		return NonRetryable
	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsTransactionRollback(pgErr.Code),
		pgerrcode.IsOperatorIntervention(pgErr.Code):
		return Retryable
	default:
		return NonRetryable
	}
}
