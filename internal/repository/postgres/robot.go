package postgres

import (
	"context"
	"database/sql"
)

// RobotRepo manages robot rows
type RobotRepo struct {
	db *sql.DB
}

// NewRobotRepo creates a new robot repository
func NewRobotRepo(db *sql.DB) *RobotRepo {
	return &RobotRepo{db: db}
}

// Ensure creates the robot if it does not exist; an existing name is kept
func (r *RobotRepo) Ensure(ctx context.Context, id int64, name string) error {
	query := `
		INSERT INTO robots (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, id, name)
	return err
}
