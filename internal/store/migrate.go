package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	llmRequestEventsTable = "llm_request_events"
	attemptEventsTable    = "attempt_events"
)

// Column sets shared by every event table: id, sequence, timestamp.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}, extra...)
}

var (
	llmRequestEventsColumns = eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	// LLMRequestEventsTable records every model request.
	LLMRequestEventsTable = &schema.Table{
		Name:       llmRequestEventsTable,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmRequestEventsColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[5]}},
			{Name: "llmrequestevent_model", Columns: []*schema.Column{llmRequestEventsColumns[4]}},
		},
	}

	attemptEventsColumns = eventColumns(
		&schema.Column{Name: "attempt_id", Type: field.TypeString, Unique: true},
		&schema.Column{Name: "score", Type: field.TypeInt},
		&schema.Column{Name: "total_questions", Type: field.TypeInt},
		&schema.Column{Name: "evaluation", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "evaluation_fallback", Type: field.TypeBool, Default: false},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	)
	// AttemptEventsTable records finished quiz attempts.
	AttemptEventsTable = &schema.Table{
		Name:       attemptEventsTable,
		Columns:    attemptEventsColumns,
		PrimaryKey: []*schema.Column{attemptEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attemptevent_timestamp", Columns: []*schema.Column{attemptEventsColumns[2]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		LLMRequestEventsTable,
		AttemptEventsTable,
	}
)

// migrate creates or upgrades the event tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
