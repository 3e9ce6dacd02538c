package postgres

import (
	"context"
	"database/sql"
	"errors"

	"menubot/internal/domain"
)

// AttendanceRepo implements repository.AttendanceRepository
type AttendanceRepo struct {
	db *sql.DB
}

// NewAttendanceRepo creates a new attendance repository
func NewAttendanceRepo(db *sql.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

// GetAttendance returns the user's latest attendance that is not closed, or nil
func (r *AttendanceRepo) GetAttendance(ctx context.Context, userID int64) (*domain.Attendance, error) {
	var a domain.Attendance
	var status string
	var closedAt sql.NullTime
	query := `
		SELECT id, user_id, department_id, menu_id, status, opened_at, closed_at
		FROM attendances
		WHERE user_id = $1 AND status <> 'closed'
		ORDER BY opened_at DESC
		LIMIT 1
	`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&a.ID, &a.UserID, &a.DepartmentID, &a.MenuID, &status, &a.OpenedAt, &closedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.Status = domain.AttendanceStatus(status)
	if closedAt.Valid {
		a.ClosedAt = &closedAt.Time
	}

	return &a, nil
}

// Open records a new attendance
func (r *AttendanceRepo) Open(ctx context.Context, a *domain.Attendance) error {
	query := `
		INSERT INTO attendances (id, user_id, department_id, menu_id, status, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.UserID, a.DepartmentID, a.MenuID, string(a.Status), a.OpenedAt)
	return err
}

// CloseForUser closes every open attendance of the user and returns how many were closed
func (r *AttendanceRepo) CloseForUser(ctx context.Context, userID int64) (int64, error) {
	query := `
		UPDATE attendances
		SET status = 'closed', closed_at = NOW()
		WHERE user_id = $1 AND status <> 'closed'
	`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AttendantChat returns the chat attendants of a department listen on, empty if none is set
func (r *AttendanceRepo) AttendantChat(ctx context.Context, departmentID int64) (string, error) {
	var chat sql.NullString
	query := `SELECT attendant_chat_id FROM departments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, departmentID).Scan(&chat)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return chat.String, nil
}
