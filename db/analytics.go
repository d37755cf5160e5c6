package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/sqlc-dev/pqtype"
)

const QuerierCtxTimeout = time.Second * 10

// Querier is the relay's analytics surface: games started and shots
// relayed per server ip. A nil Querier on the caller side disables
// analytics entirely.
type Querier interface {
	IncrementGamesStartedCount(ctx context.Context, serverIp pqtype.Inet) error
	IncrementShotsRelayedCount(ctx context.Context, serverIp pqtype.Inet) error
	GetGamesStartedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetShotsRelayedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
}

type AnalyticsQuerier struct {
	db *sql.DB
}

var _ Querier = (*AnalyticsQuerier)(nil)

func NewAnalyticsQuerier(db *sql.DB) *AnalyticsQuerier {
	return &AnalyticsQuerier{db: db}
}

const incrementGamesStartedQuery = `
INSERT INTO relay_analytics (server_ip, games_started, shots_relayed)
VALUES ($1, 1, 0)
ON CONFLICT (server_ip)
DO UPDATE SET games_started = relay_analytics.games_started + 1
`

func (aq *AnalyticsQuerier) IncrementGamesStartedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := aq.db.ExecContext(ctx, incrementGamesStartedQuery, serverIp)
	return err
}

const incrementShotsRelayedQuery = `
INSERT INTO relay_analytics (server_ip, games_started, shots_relayed)
VALUES ($1, 0, 1)
ON CONFLICT (server_ip)
DO UPDATE SET shots_relayed = relay_analytics.shots_relayed + 1
`

func (aq *AnalyticsQuerier) IncrementShotsRelayedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := aq.db.ExecContext(ctx, incrementShotsRelayedQuery, serverIp)
	return err
}

const getGamesStartedQuery = `SELECT games_started FROM relay_analytics WHERE server_ip = $1`

func (aq *AnalyticsQuerier) GetGamesStartedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	var count int64
	err := aq.db.QueryRowContext(ctx, getGamesStartedQuery, serverIp).Scan(&count)
	return count, err
}

const getShotsRelayedQuery = `SELECT shots_relayed FROM relay_analytics WHERE server_ip = $1`

func (aq *AnalyticsQuerier) GetShotsRelayedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	var count int64
	err := aq.db.QueryRowContext(ctx, getShotsRelayedQuery, serverIp).Scan(&count)
	return count, err
}
