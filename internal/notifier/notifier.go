package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/frahmantamala/airline-admin/internal"
	"github.com/frahmantamala/airline-admin/pkg/metrics"
)

var (
	ErrQueueFull = errors.New("notification queue full")
	ErrClosed    = errors.New("notifier is shut down")
)

// Notice is one webhook message. Content is rendered the way Discord
// webhooks expect it; the other fields ride along for generic receivers.
type Notice struct {
	Kind     string `json:"kind"`
	UserID   string `json:"user_id,omitempty"`
	UserName string `json:"user_name,omitempty"`
	Content  string `json:"content"`
}

type Sender interface {
	Enqueue(n Notice) error
}

type Worker struct {
	ID         int
	WorkerPool chan chan Notice
	JobChannel chan Notice
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan Notice, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Notice),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(Notice)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			select {
			case w.WorkerPool <- w.JobChannel:
			case <-ctx.Done():
				w.Logger.Debug("notifier worker shutting down", "worker_id", w.ID)
				return
			}

			select {
			case n := <-w.JobChannel:
				w.Logger.Debug("notifier worker delivering", "worker_id", w.ID, "kind", n.Kind, "user_id", n.UserID)
				processFunc(n)
			case <-ctx.Done():
				w.Logger.Debug("notifier worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

// Client posts notices to a webhook from a fixed pool of workers.
type Client struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.NotifierMetrics

	jobQueue   chan Notice
	workerPool chan chan Notice
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	pending    sync.WaitGroup
	once       sync.Once
	mu         sync.RWMutex
	closed     bool
}

func NewClient(cfg internal.NotifierConfig, m *metrics.NotifierMetrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	maxWorkers := cfg.Workers
	if maxWorkers <= 0 {
		maxWorkers = 2
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		webhookURL: cfg.WebhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    m,
		maxWorkers: maxWorkers,
		jobQueue:   make(chan Notice, queueSize),
		workerPool: make(chan chan Notice, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	c.startWorkerPool()
	return c
}

func (c *Client) startWorkerPool() {
	c.once.Do(func() {
		for i := 0; i < c.maxWorkers; i++ {
			worker := NewWorker(i, c.workerPool, c.logger)
			worker.Start(c.ctx, &c.wg, c.deliver)
		}

		c.wg.Add(1)
		go c.dispatch()

		c.logger.Info("notifier worker pool started",
			"max_workers", c.maxWorkers,
			"queue_size", cap(c.jobQueue))
	})
}

func (c *Client) dispatch() {
	defer c.wg.Done()

	for {
		select {
		case n := <-c.jobQueue:
			c.metrics.SetQueueDepth(len(c.jobQueue))
			select {
			case jobChannel := <-c.workerPool:
				select {
				case jobChannel <- n:
				case <-c.ctx.Done():
					c.drop(n)
					return
				}
			case <-c.ctx.Done():
				c.drop(n)
				return
			}
		case <-c.ctx.Done():
			c.logger.Info("notifier dispatcher shutting down")
			return
		}
	}
}

// Enqueue never blocks; a full queue drops the notice and reports ErrQueueFull.
func (c *Client) Enqueue(n Notice) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}

	c.pending.Add(1)
	select {
	case c.jobQueue <- n:
		c.metrics.SetQueueDepth(len(c.jobQueue))
		return nil
	default:
		c.pending.Done()
		c.metrics.Dropped()
		c.logger.Warn("notifier queue full, dropping notice",
			"kind", n.Kind,
			"user_id", n.UserID,
			"queue_capacity", cap(c.jobQueue))
		return ErrQueueFull
	}
}

// Flush waits until every accepted notice has been delivered or dropped.
func (c *Client) Flush() {
	c.pending.Wait()
}

// Shutdown stops the workers. Notices still queued are dropped.
func (c *Client) Shutdown() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.logger.Info("shutting down notifier")
	c.cancel()
	c.wg.Wait()

	for {
		select {
		case n := <-c.jobQueue:
			c.drop(n)
		default:
			c.metrics.SetQueueDepth(0)
			c.logger.Info("notifier shutdown complete")
			return
		}
	}
}

func (c *Client) drop(n Notice) {
	defer c.pending.Done()
	c.metrics.Dropped()
	c.logger.Warn("notice dropped on shutdown", "kind", n.Kind, "user_id", n.UserID)
}

func (c *Client) deliver(n Notice) {
	defer c.pending.Done()

	if err := c.post(c.ctx, n); err != nil {
		c.metrics.Failed()
		c.logger.Error("webhook delivery failed",
			"kind", n.Kind,
			"user_id", n.UserID,
			"error", err)
		return
	}

	c.metrics.Delivered()
	c.logger.Info("webhook delivered", "kind", n.Kind, "user_id", n.UserID)
}

func (c *Client) post(ctx context.Context, n Notice) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// Discard accepts and forgets every notice. Used when the notifier is disabled.
type Discard struct{}

func (Discard) Enqueue(Notice) error { return nil }
