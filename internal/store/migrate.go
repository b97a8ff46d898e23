package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Timestamps are stored as fixed-width RFC 3339 strings (see timeLayout)
// so they compare correctly as text.

var (
	// SequenceColumns holds the columns of the global_sequence table.
	SequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	// SequenceTable holds the single-row sequence counter.
	SequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    SequenceColumns,
		PrimaryKey: []*schema.Column{SequenceColumns[0]},
	}

	// QuestionsColumns holds the columns of the questions table.
	QuestionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "question", Type: field.TypeString, Size: 2147483647},
		{Name: "tech_stack", Type: field.TypeString},
		{Name: "tech_stack_key", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeString},
	}
	// QuestionsTable holds the interview questions. Reads filter on
	// tech_stack_key and order by sequence.
	QuestionsTable = &schema.Table{
		Name:       questionsTable,
		Columns:    QuestionsColumns,
		PrimaryKey: []*schema.Column{QuestionsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "question_tech_stack_key_sequence",
				Unique:  false,
				Columns: []*schema.Column{QuestionsColumns[4], QuestionsColumns[1]},
			},
		},
	}

	// LLMRequestEventsColumns holds the columns of the llm_request_events table.
	LLMRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "provider", Type: field.TypeString, Default: ""},
		{Name: "model", Type: field.TypeString, Default: ""},
		{Name: "purpose", Type: field.TypeString, Default: ""},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool, Default: false},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LLMRequestEventsTable records every LLM call for cost tracking and
	// debugging.
	LLMRequestEventsTable = &schema.Table{
		Name:       llmEventsTable,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{LLMRequestEventsColumns[2]},
			},
			{
				Name:    "llmrequestevent_purpose",
				Unique:  false,
				Columns: []*schema.Column{LLMRequestEventsColumns[5]},
			},
			{
				Name:    "llmrequestevent_model",
				Unique:  false,
				Columns: []*schema.Column{LLMRequestEventsColumns[4]},
			},
		},
	}

	// Tables holds every table the store owns.
	Tables = []*schema.Table{
		SequenceTable,
		QuestionsTable,
		LLMRequestEventsTable,
	}
)

// migrate creates missing tables, columns and indexes. It never drops
// anything.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
