package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ovenandcrumb/bakehouse/app/database"
)

// RefreshSnapshotTask re-renders one document and stores it in the snapshot
// cache so cold requests rarely pay content-source latency.
type RefreshSnapshotTask struct {
	Task
	renderer  DocumentRenderer
	snapshots database.SnapshotRepository
}

func NewRefreshSnapshotTask(documentName string, renderer DocumentRenderer, snapshots database.SnapshotRepository) *RefreshSnapshotTask {
	return &RefreshSnapshotTask{
		Task:      NewTask(TaskTypeRefreshSnapshot, documentName),
		renderer:  renderer,
		snapshots: snapshots,
	}
}

func (t *RefreshSnapshotTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	contentType, body, err := t.renderer.RenderDocument(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", t.DocumentName, err)
	}

	if err := t.snapshots.Upsert(t.DocumentName, contentType, body); err != nil {
		return fmt.Errorf("failed to store snapshot %s: %w", t.DocumentName, err)
	}

	slog.Info("Task completed",
		"type", "RefreshSnapshot",
		"document", t.DocumentName,
		"duration", t.GetDuration(),
		"bytes", len(body))

	return nil
}
