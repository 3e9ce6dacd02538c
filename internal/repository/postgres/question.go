package postgres

import (
	"context"
	"database/sql"

	"menubot/internal/domain"
)

// QuestionRepo implements repository.QuestionRepository
type QuestionRepo struct {
	db *sql.DB
}

// NewQuestionRepo creates a new question repository
func NewQuestionRepo(db *sql.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// OutstandingQuestions returns the robot's questions the user has not answered yet
func (r *QuestionRepo) OutstandingQuestions(ctx context.Context, robotID, userID int64) ([]domain.Question, error) {
	query := `
		SELECT q.id, q.robot_id, q.position, q.text
		FROM questions q
		WHERE q.robot_id = $1
			AND NOT EXISTS (
				SELECT 1 FROM answers a
				WHERE a.question_id = q.id AND a.user_id = $2
			)
		ORDER BY q.position, q.id
	`

	rows, err := r.db.QueryContext(ctx, query, robotID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.RobotID, &q.Position, &q.Text); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// SaveAnswer stores the user's answer, replacing an earlier one
func (r *QuestionRepo) SaveAnswer(ctx context.Context, userID, questionID int64, answer string) error {
	query := `
		INSERT INTO answers (user_id, question_id, answer)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, question_id)
		DO UPDATE SET answer = EXCLUDED.answer, answered_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, userID, questionID, answer)
	return err
}
