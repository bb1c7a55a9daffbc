// Package dispatch decouples submission intake from notification
// delivery. Intake enqueues a job and returns immediately; a worker
// drains the queue and hands each job to the notifier.
package dispatch

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/formbridge/formbridge/internal/submission/domain"
	"go.uber.org/zap"
)

// Queue is what intake sees: a non-blocking hand-off.
type Queue interface {
	Enqueue(sub domain.Submission)
}

// Notifier is implemented by the provider chain.
type Notifier interface {
	NotifySubmission(ctx context.Context, sub domain.Submission) bool
	NotifyAcknowledgement(ctx context.Context, phone string) bool
}

type Job struct {
	ID         snowflake.ID
	Submission domain.Submission
}

type Config struct {
	QueueSize  int
	JobTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.QueueSize <= 0 {
		c.QueueSize = 64
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = 30 * time.Second
	}
	return c
}

func DefaultConfig() Config {
	return Config{}.withDefaults()
}

type Dispatcher struct {
	log      *zap.Logger
	node     *snowflake.Node
	notifier Notifier
	jobs     chan Job
	cfg      Config
}

func NewDispatcher(log *zap.Logger, node *snowflake.Node, notifier Notifier, cfg Config) *Dispatcher {
	cfg = cfg.withDefaults()
	return &Dispatcher{
		log:      log.Named("notify.dispatch"),
		node:     node,
		notifier: notifier,
		jobs:     make(chan Job, cfg.QueueSize),
		cfg:      cfg,
	}
}

// Enqueue never blocks the caller. When the queue is full the job is
// dropped; delivery is best-effort and the submission is already
// persisted.
func (d *Dispatcher) Enqueue(sub domain.Submission) {
	job := Job{ID: d.node.Generate(), Submission: sub}

	select {
	case d.jobs <- job:
		d.log.Debug("notification job queued",
			zap.String("job_id", job.ID.String()),
			zap.Int64("submission_id", sub.ID),
		)
	default:
		d.log.Warn("notification queue full, job dropped",
			zap.String("job_id", job.ID.String()),
			zap.Int64("submission_id", sub.ID),
		)
	}
}

func (d *Dispatcher) RunForever(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-d.jobs:
			d.process(ctx, job)
		}
	}
}

func (d *Dispatcher) process(parentCtx context.Context, job Job) {
	ctx, cancel := context.WithTimeout(parentCtx, d.cfg.JobTimeout)
	defer cancel()

	delivered := d.notifier.NotifySubmission(ctx, job.Submission)
	if !delivered {
		return
	}

	// The submitter only gets the thank-you text once the team has
	// actually been told about the submission.
	d.notifier.NotifyAcknowledgement(ctx, job.Submission.Phone)
}
