package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bistroboss/ordering-system/internal/core/domain"
)

const journalKey = "checkout:cleanup:pending"

// CleanupJournal keeps unfinished cart cleanups in a Redis hash keyed by
// payment id, so they survive a restart.
type CleanupJournal struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewCleanupJournal(client *redis.Client, log zerolog.Logger) *CleanupJournal {
	return &CleanupJournal{client: client, log: log}
}

// Save stores or replaces the task for its payment.
func (j *CleanupJournal) Save(ctx context.Context, task domain.CleanupTask) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("encode cleanup task: %w", err)
	}
	if err := j.client.HSet(ctx, journalKey, task.PaymentID, raw).Err(); err != nil {
		return fmt.Errorf("journal save: %w", err)
	}
	return nil
}

func (j *CleanupJournal) Delete(ctx context.Context, paymentID string) error {
	if err := j.client.HDel(ctx, journalKey, paymentID).Err(); err != nil {
		return fmt.Errorf("journal delete: %w", err)
	}
	return nil
}

// Pending returns every journaled task. Entries that fail to decode are
// logged and skipped.
func (j *CleanupJournal) Pending(ctx context.Context) ([]domain.CleanupTask, error) {
	entries, err := j.client.HGetAll(ctx, journalKey).Result()
	if err != nil {
		return nil, fmt.Errorf("journal read: %w", err)
	}

	tasks := make([]domain.CleanupTask, 0, len(entries))
	for paymentID, raw := range entries {
		var task domain.CleanupTask
		if err := json.Unmarshal([]byte(raw), &task); err != nil {
			j.log.Warn().Err(err).Str("payment_id", paymentID).Msg("skipping corrupt cleanup entry")
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}
