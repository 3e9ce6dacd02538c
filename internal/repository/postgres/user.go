package postgres

import (
	"context"
	"database/sql"
	"errors"

	"menubot/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetOne returns the user of a chat and robot, or nil if absent
func (r *UserRepo) GetOne(ctx context.Context, chatID string, robotID int64) (*domain.User, error) {
	var u domain.User
	var name sql.NullString
	var menuID sql.NullInt64
	query := `
		SELECT id, chat_id, robot_id, name, menu_id, created_at
		FROM users
		WHERE chat_id = $1 AND robot_id = $2
	`
	err := r.db.QueryRowContext(ctx, query, chatID, robotID).Scan(
		&u.ID, &u.ChatID, &u.RobotID, &name, &menuID, &u.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		// User doesn't exist yet
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if name.Valid {
		u.Name = &name.String
	}
	if menuID.Valid {
		u.CurrentMenuID = &menuID.Int64
	}

	return &u, nil
}

// Create inserts the user unless the chat already has one for the robot
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (chat_id, robot_id, name, menu_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chat_id, robot_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, user.ChatID, user.RobotID, nullString(user.Name), nullInt64(user.CurrentMenuID))
	return err
}

// Update writes the non-nil fields of the user
func (r *UserRepo) Update(ctx context.Context, chatID string, robotID int64, fields domain.UserFields) error {
	if fields.Name == nil {
		return nil
	}
	query := `
		UPDATE users
		SET name = $3
		WHERE chat_id = $1 AND robot_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, chatID, robotID, *fields.Name)
	if err != nil {
		return err
	}
	return expectAffected(res, domain.ErrUserNotFound)
}

// SaveCurrentMenu moves the user's menu pointer, nil meaning the root menu
func (r *UserRepo) SaveCurrentMenu(ctx context.Context, user *domain.User, menuID *int64) error {
	query := `
		UPDATE users
		SET menu_id = $2
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, user.ID, nullInt64(menuID))
	if err != nil {
		return err
	}
	return expectAffected(res, domain.ErrUserNotFound)
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
