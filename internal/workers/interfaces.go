// Package workers runs the periodic background jobs of the server: news
// ingestion and the newsletter digest.
package workers

import "context"

// Worker runs until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// Job is one unit of periodic work. Errors are logged by the caller and do
// not stop the schedule.
type Job func(ctx context.Context) error
