package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var attemptEventFields = []string{
	"id", "sequence", "timestamp", "attempt_id", "score", "total_questions",
	"evaluation", "evaluation_fallback", "duration_secs",
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	err := r.insert(ctx, attemptEventsTable,
		[]string{"attempt_id", "score", "total_questions", "evaluation", "evaluation_fallback", "duration_secs"},
		[]any{data.AttemptID, data.Score, data.TotalQuestions, data.Evaluation, data.EvaluationFallback, data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	sel := r.sql.Select(attemptEventFields...).From(entsql.Table(attemptEventsTable))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var records []AttemptRecord
	for rows.Next() {
		var rec AttemptRecord
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp,
			&rec.AttemptID, &rec.Score, &rec.TotalQuestions,
			&rec.Evaluation, &rec.EvaluationFallback, &rec.DurationSecs,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
