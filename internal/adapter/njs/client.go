// Package njs connects the outbox to NATS JetStream. The server publishes
// committed jobs to the JOBS stream; the worker consumes them through a
// durable consumer with explicit acks.
package njs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/daymate/backend/internal/outbox"
)

const (
	// StreamName is the JetStream stream holding background jobs.
	StreamName = "JOBS"
	// SubjectJobs matches every job subject on the stream.
	SubjectJobs = "jobs.>"
	// SubjectJobsNew is where new jobs are published.
	SubjectJobsNew = "jobs.new"
	// ConsumerName is the durable consumer shared by worker instances.
	ConsumerName = "job-workers"
)

// Config holds NATS client configuration.
type Config struct {
	URL        string
	MaxDeliver int
	AckWait    time.Duration
	MaxAge     time.Duration
}

// Client publishes and consumes outbox jobs over NATS JetStream.
// It implements outbox.Submitter.
type Client struct {
	cfg Config
	log *slog.Logger

	nc       *nats.Conn
	js       jetstream.JetStream
	stream   jetstream.Stream
	consumer jetstream.Consumer
}

// NewClient creates an unconnected client. Call Connect before use.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		cfg: cfg,
		log: logger.With("adapter", "njs"),
	}
}

// Connect dials NATS and ensures the JOBS stream exists. Work-queue
// retention: a job leaves the stream once a consumer acks it.
func (c *Client) Connect(ctx context.Context) error {
	nc, err := nats.Connect(c.cfg.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return fmt.Errorf("njs: connect: %w", err)
	}
	c.nc = nc

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return fmt.Errorf("njs: jetstream context: %w", err)
	}
	c.js = js

	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{SubjectJobs},
		Retention: jetstream.WorkQueuePolicy,
		MaxAge:    c.cfg.MaxAge,
		Storage:   jetstream.FileStorage,
		Replicas:  1,
	})
	if err != nil {
		nc.Close()
		return fmt.Errorf("njs: create stream: %w", err)
	}
	c.stream = stream

	c.log.Info("connected", slog.String("url", c.cfg.URL), slog.String("stream", StreamName))
	return nil
}

// Submit publishes one job. Satisfies outbox.Submitter, so the unit of
// work's post-commit flush lands here.
func (c *Client) Submit(ctx context.Context, job outbox.Job) error {
	if c.js == nil {
		return fmt.Errorf("njs: not connected")
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("njs: marshal job %s: %w", job.ID, err)
	}

	// The job ID doubles as the dedup ID, so a retried flush of an
	// already-published job is absorbed by the stream.
	ack, err := c.js.Publish(ctx, SubjectJobsNew, data, jetstream.WithMsgID(job.ID.String()))
	if err != nil {
		return fmt.Errorf("njs: publish job %s: %w", job.ID, err)
	}

	c.log.Debug("job published",
		slog.String("job_id", job.ID.String()),
		slog.String("kind", string(job.Kind)),
		slog.Uint64("sequence", ack.Sequence),
	)
	return nil
}

// EnsureConsumer creates or updates the durable worker consumer.
func (c *Client) EnsureConsumer(ctx context.Context) error {
	if c.stream == nil {
		return fmt.Errorf("njs: not connected")
	}

	consumer, err := c.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          ConsumerName,
		Durable:       ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.cfg.AckWait,
		MaxDeliver:    c.cfg.MaxDeliver,
		FilterSubject: SubjectJobsNew,
	})
	if err != nil {
		return fmt.Errorf("njs: create consumer: %w", err)
	}
	c.consumer = consumer
	return nil
}

// Message is one delivered job plus its ack handle.
type Message struct {
	Job        outbox.Job
	Deliveries int
	msg        jetstream.Msg
}

// Ack marks the job done; it leaves the work queue.
func (m *Message) Ack() error { return m.msg.Ack() }

// Nak asks for redelivery after the given delay.
func (m *Message) Nak(delay time.Duration) error { return m.msg.NakWithDelay(delay) }

// Term drops the job permanently; no further deliveries.
func (m *Message) Term() error { return m.msg.Term() }

// Consume delivers jobs on the returned channel until ctx is cancelled.
// Undecodable messages are terminated, not redelivered.
func (c *Client) Consume(ctx context.Context) (<-chan *Message, error) {
	if c.consumer == nil {
		if err := c.EnsureConsumer(ctx); err != nil {
			return nil, err
		}
	}

	out := make(chan *Message, 64)

	go func() {
		defer close(out)

		iter, err := c.consumer.Messages()
		if err != nil {
			c.log.Error("message iterator", slog.String("error", err.Error()))
			return
		}
		defer iter.Stop()

		go func() {
			<-ctx.Done()
			iter.Stop()
		}()

		for {
			msg, err := iter.Next()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.log.Error("fetch message", slog.String("error", err.Error()))
				continue
			}

			var job outbox.Job
			if err := json.Unmarshal(msg.Data(), &job); err != nil {
				c.log.Error("decode job, terminating message", slog.String("error", err.Error()))
				if termErr := msg.Term(); termErr != nil {
					c.log.Error("terminate message", slog.String("error", termErr.Error()))
				}
				continue
			}

			deliveries := 1
			if meta, err := msg.Metadata(); err == nil {
				deliveries = int(meta.NumDelivered)
			}

			select {
			case out <- &Message{Job: job, Deliveries: deliveries, msg: msg}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// Close closes the NATS connection.
func (c *Client) Close() {
	if c.nc != nil {
		c.nc.Close()
		c.log.Info("connection closed")
	}
}
