package tasks

import (
	"context"
	"time"
)

// DocumentRenderer generates one servable document (sitemap, merchant feed)
// from the content source.
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, now time.Time) (contentType string, body []byte, err error)
}

// TaskSchedulerInterface manages background snapshot refresh: a worker pool
// over a task queue plus an interval ticker that re-renders every registered
// document.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
