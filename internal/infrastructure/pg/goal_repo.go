package pg

import (
	"context"
	"errors"
	"fmt"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
	"coinwatch/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var _ application.GoalRepo = (*GoalRepo)(nil)

type GoalRepo struct{ db *DB }

func NewGoalRepo(db *DB) *GoalRepo { return &GoalRepo{db: db} }

func (r *GoalRepo) All(ctx context.Context) (domain.GoalMapping, error) {
	const q = `SELECT coin, target_price FROM goals`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrPersistence, err)
	}
	defer rows.Close()
	out := domain.GoalMapping{}
	for rows.Next() {
		var coin, price string
		if err := rows.Scan(&coin, &price); err != nil {
			return nil, fmt.Errorf("%w: %v", application.ErrPersistence, err)
		}
		out[coin] = price
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrPersistence, err)
	}
	return out, nil
}

func (r *GoalRepo) Get(ctx context.Context, coin string) (string, bool, error) {
	const q = `SELECT target_price FROM goals WHERE coin=$1`
	var price string
	err := r.db.Pool.QueryRow(ctx, q, coin).Scan(&price)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", application.ErrPersistence, err)
	}
	return price, true, nil
}

func (r *GoalRepo) Set(ctx context.Context, coin, price string) error {
	const up = `
        INSERT INTO goals(coin, target_price, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (coin) DO UPDATE
          SET target_price=EXCLUDED.target_price, updated_at=EXCLUDED.updated_at`
	log := logx.L().With(
		zap.String("repo", "goals"),
		zap.String("operation", "Set"),
		zap.String("coin", coin),
	)
	tag, err := r.db.Pool.Exec(ctx, up, coin, price)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return fmt.Errorf("%w: %v", application.ErrPersistence, err)
	}
	log.Info("sql.exec_success", zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}

func (r *GoalRepo) Ping(ctx context.Context) error { return r.db.Ping(ctx) }
