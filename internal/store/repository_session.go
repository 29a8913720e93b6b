package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pxeeio/flex-api/internal/logger"
	"github.com/pxeeio/flex-api/models"

	sq "github.com/Masterminds/squirrel"
)

// sessionColumns is the canonical column list scanned into a [models.Session].
var sessionColumns = []string{"sid", "user_id", "created_at", "expires_at"}

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. Session rows are created on login/registration,
// deleted on logout, and swept once they expire.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession persists a new session record and returns it as stored.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Insert(session.TableName()).
		Columns("sid", "user_id", "created_at", "expires_at").
		Values(session.ID, session.UserID, session.CreatedAt, session.ExpiresAt).
		Suffix("RETURNING " + strings.Join(sessionColumns, ", ")).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: building query")
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.Session
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: executing insert")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := scanSession(row, &created); err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: scanning error")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// FindSessionByID retrieves a live session by its opaque id. The expiry
// check is part of the query, so an expired row behaves exactly like a
// missing one. A best-effort sweep of expired rows runs after a miss so the
// table does not accumulate garbage between logins.
func (r *sessionRepository) FindSessionByID(ctx context.Context, sid string) (models.Session, error) {
	log := logger.FromContext(ctx)
	now := time.Now()

	query, args, err := psql.Select(sessionColumns...).
		From(models.Session{}.TableName()).
		Where(sq.Eq{"sid": sid}).
		Where(sq.Gt{"expires_at": now}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.FindSessionByID").Msg("error: building query")
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.Session
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*sessionRepository.FindSessionByID").Msg("error: executing select")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := scanSession(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, sweepErr := r.DeleteExpiredSessions(ctx, now); sweepErr != nil {
				log.Err(sweepErr).Str("func", "*sessionRepository.FindSessionByID").Msg("expired session sweep failed")
			}
			return models.Session{}, ErrSessionNotFound
		}
		log.Err(err).Str("func", "*sessionRepository.FindSessionByID").Msg("error: scanning error")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// DeleteSession removes the session record with the given id. A zero
// affected-row count is not an error: logout must stay idempotent.
func (r *sessionRepository) DeleteSession(ctx context.Context, sid string) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.Delete(models.Session{}.TableName()).
		Where(sq.Eq{"sid": sid}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("error: building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteSession").Msg("error: executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// DeleteExpiredSessions sweeps rows whose expiry is at or before now and
// reports how many were removed.
func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.Delete(models.Session{}.TableName()).
		Where(sq.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpiredSessions").Msg("error: building query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.DeleteExpiredSessions").Msg("error: executing delete")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected, nil
}

func scanSession(row *sql.Row, dest *models.Session) error {
	return row.Scan(
		&dest.ID,
		&dest.UserID,
		&dest.CreatedAt,
		&dest.ExpiresAt,
	)
}
