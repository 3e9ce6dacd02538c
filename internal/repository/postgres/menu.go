package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"menubot/internal/domain"
	"menubot/internal/menu"
)

// MenuRepo implements repository.MenuRepository
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo creates a new menu repository
func NewMenuRepo(db *sql.DB) *MenuRepo {
	return &MenuRepo{db: db}
}

const menuColumns = `id, robot_id, parent_id, order_code, title, is_attendment, department_id`

// GetByChildren returns the children of a menu ordered by code, nil parent meaning the root level
func (r *MenuRepo) GetByChildren(ctx context.Context, parentID *int64, robotID int64) ([]domain.MenuNode, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menus
		WHERE robot_id = $1 AND parent_id IS NOT DISTINCT FROM $2::bigint
		ORDER BY LENGTH(order_code), order_code
	`

	rows, err := r.db.QueryContext(ctx, query, robotID, nullInt64(parentID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []domain.MenuNode
	for rows.Next() {
		node, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, *node)
	}

	return nodes, rows.Err()
}

// GetByID returns one menu of the robot
func (r *MenuRepo) GetByID(ctx context.Context, menuID, robotID int64) (*domain.MenuNode, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menus
		WHERE id = $1 AND robot_id = $2
	`
	node, err := scanMenu(r.db.QueryRowContext(ctx, query, menuID, robotID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMenuNotFound
	}
	return node, err
}

// ImportTree replaces the robot's menu tree in a single transaction.
// The tree must already be validated; the unique index on sibling codes rejects anything that slipped through.
func (r *MenuRepo) ImportTree(ctx context.Context, robotID int64, tree menu.Tree) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM menus WHERE robot_id = $1`, robotID); err != nil {
		return fmt.Errorf("failed to clear menus: %w", err)
	}

	if err = insertLevel(ctx, tx, robotID, nil, tree.Menus); err != nil {
		return err
	}

	return tx.Commit()
}

func insertLevel(ctx context.Context, tx *sql.Tx, robotID int64, parentID *int64, nodes []menu.TreeNode) error {
	query := `
		INSERT INTO menus (robot_id, parent_id, order_code, title, is_attendment, department_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	for _, n := range nodes {
		var id int64
		err := tx.QueryRowContext(ctx, query,
			robotID, nullInt64(parentID), n.Code, n.Title, n.DepartmentID != nil, nullInt64(n.DepartmentID),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert menu %q: %w", n.Title, err)
		}
		if err := insertLevel(ctx, tx, robotID, &id, n.Children); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMenu(row rowScanner) (*domain.MenuNode, error) {
	var m domain.MenuNode
	var parentID, departmentID sql.NullInt64
	if err := row.Scan(&m.ID, &m.RobotID, &parentID, &m.OrderCode, &m.Title, &m.IsAttendment, &departmentID); err != nil {
		return nil, err
	}
	if parentID.Valid {
		m.ParentID = &parentID.Int64
	}
	if departmentID.Valid {
		m.DepartmentID = &departmentID.Int64
	}
	return &m, nil
}
