package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"menubot/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserRepo_GetOne(t *testing.T) {
	columns := []string{"id", "chat_id", "robot_id", "name", "menu_id", "created_at"}

	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedNil   bool
		expectedName  *string
		expectedMenu  *int64
		expectedError bool
	}{
		{
			name:          "user with name and menu",
			mockRows:      sqlmock.NewRows(columns).AddRow(1, "5511", 2, "Ana", 9, time.Now()),
			expectedName:  strPtr("Ana"),
			expectedMenu:  int64Ptr(9),
			expectedError: false,
		},
		{
			name:          "fresh user",
			mockRows:      sqlmock.NewRows(columns).AddRow(1, "5511", 2, nil, nil, time.Now()),
			expectedError: false,
		},
		{
			name:          "user not exists",
			mockError:     sql.ErrNoRows,
			expectedNil:   true,
			expectedError: false,
		},
		{
			name:          "database error",
			mockError:     errors.New("connection reset"),
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			query := "SELECT id, chat_id, robot_id, name, menu_id, created_at FROM users WHERE chat_id = \\$1 AND robot_id = \\$2"

			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs("5511", int64(2)).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs("5511", int64(2)).WillReturnRows(tt.mockRows)
			}

			user, err := repo.GetOne(context.Background(), "5511", 2)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, user)
			} else {
				assert.NotNil(t, user)
				assert.Equal(t, "5511", user.ChatID)
				assert.Equal(t, tt.expectedName, user.Name)
				assert.Equal(t, tt.expectedMenu, user.CurrentMenuID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	// A second create for the same chat hits ON CONFLICT and inserts nothing
	mock.ExpectExec("INSERT INTO users .* ON CONFLICT \\(chat_id, robot_id\\) DO NOTHING").
		WithArgs("5511", int64(2), nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Create(context.Background(), &domain.User{ChatID: "5511", RobotID: 2})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Update(t *testing.T) {
	tests := []struct {
		name          string
		fields        domain.UserFields
		expectExec    bool
		rowsAffected  int64
		expectedError error
	}{
		{
			name:         "name stored",
			fields:       domain.UserFields{Name: strPtr("Ana")},
			expectExec:   true,
			rowsAffected: 1,
		},
		{
			name:          "unknown user",
			fields:        domain.UserFields{Name: strPtr("Ana")},
			expectExec:    true,
			rowsAffected:  0,
			expectedError: domain.ErrUserNotFound,
		},
		{
			name:       "nothing to update",
			fields:     domain.UserFields{},
			expectExec: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			if tt.expectExec {
				mock.ExpectExec("UPDATE users SET name = \\$3").
					WithArgs("5511", int64(2), "Ana").
					WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))
			}

			err = repo.Update(context.Background(), "5511", 2, tt.fields)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_SaveCurrentMenu(t *testing.T) {
	tests := []struct {
		name     string
		menuID   *int64
		expected any
	}{
		{name: "descend into menu", menuID: int64Ptr(4), expected: int64(4)},
		{name: "reset to root", menuID: nil, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			mock.ExpectExec("UPDATE users SET menu_id = \\$2 WHERE id = \\$1").
				WithArgs(int64(1), tt.expected).
				WillReturnResult(sqlmock.NewResult(0, 1))

			err = repo.SaveCurrentMenu(context.Background(), &domain.User{ID: 1}, tt.menuID)

			assert.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
