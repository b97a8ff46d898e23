package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/codegenius/internal/question"
)

const questionsTable = "questions"

// QuestionRepo implements question.Repository on SQLite. Track matching is
// plain equality on a normalized key column written next to the verbatim
// track.
type QuestionRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

var _ question.Repository = (*QuestionRepo)(nil)

func (r *QuestionRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *QuestionRepo) Insert(ctx context.Context, q question.Question) (question.Question, error) {
	if q.Question == "" {
		return question.Question{}, fmt.Errorf("insert question: empty question text")
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return question.Question{}, fmt.Errorf("next sequence: %w", err)
	}

	q.ID = uuid.New().String()
	q.CreatedAt = r.clock().UTC()

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(questionsTable).
		Columns("id", "sequence", "question", "tech_stack", "tech_stack_key", "created_at").
		Values(q.ID, seqNum, q.Question, q.TechStack, q.TrackKey(), formatTime(q.CreatedAt)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return question.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

func (r *QuestionRepo) Find(ctx context.Context, trackKey string) ([]question.Question, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("id", "question", "tech_stack", "created_at").
		From(entsql.Table(questionsTable))
	if key := question.NormalizeTrack(trackKey); key != "" {
		sel.Where(entsql.EQ("tech_stack_key", key))
	}
	query, args := sel.OrderBy("sequence").Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	out := []question.Question{}
	for rows.Next() {
		var (
			q  question.Question
			ts string
		)
		if err := rows.Scan(&q.ID, &q.Question, &q.TechStack, &ts); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		created, err := parseTime(ts)
		if err != nil {
			return nil, err
		}
		q.CreatedAt = created
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return out, nil
}

// Count returns the number of stored questions.
func (r *QuestionRepo) Count(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(questionsTable)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan count: %w", err)
		}
	}
	return n, rows.Err()
}
