// Package notify queues user notifications in redis and delivers them by
// email from a background worker.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/XCypherusX/tbs-api/internal/logger"
	"github.com/XCypherusX/tbs-api/internal/metrics"
)

const (
	QueueKey       = "notifications"
	FailedQueueKey = "notifications:failed"

	TypeAvailabilityOpened = "availability_opened"

	maxTries   = 3
	popTimeout = 2 * time.Second
)

type Job struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Sender delivers a single job.
type Sender interface {
	Send(job Job) error
}

type Service struct {
	redis  *redis.Client
	sender Sender
}

func New(rdb *redis.Client, sender Sender) *Service {
	return &Service{
		redis:  rdb,
		sender: sender,
	}
}

func (s *Service) Enqueue(ctx context.Context, notificationType, to, name, subject, body string) error {
	job := Job{
		ID:      uuid.NewString(),
		Type:    notificationType,
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Created: time.Now().UTC(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := s.redis.LPush(ctx, QueueKey, string(data)).Err(); err != nil {
		logger.Error("failed to queue notification", "to", to, "type", notificationType, "error", err)
		return err
	}

	logger.Debug("notification queued", "job_id", job.ID, "to", to, "type", notificationType)
	return nil
}

func (s *Service) SendAvailabilityOpened(ctx context.Context, to, name, groundName string, start time.Time) error {
	subject := "Slot available - " + groundName
	body := fmt.Sprintf(`Hi %s,

A slot you were watching is free again:

Ground: %s
Time: %s

Book it before someone else does!

- TBS Team`, name, groundName, start.Format("Jan 2, 2006 at 3:04 PM"))

	return s.Enqueue(ctx, TypeAvailabilityOpened, to, name, subject, body)
}

// Start pops and delivers jobs until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

// processNext handles at most one job and reports whether it found one.
func (s *Service) processNext(ctx context.Context) bool {
	result, err := s.redis.BRPop(ctx, popTimeout, QueueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			logger.Warn("notification queue unavailable", "error", err)
			time.Sleep(popTimeout)
		}
		return false
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Error("dropping malformed notification", "error", err)
		return true
	}

	job.Tries++
	if err := s.sender.Send(job); err != nil {
		metrics.RecordNotification(job.Type, "failed")
		logger.Error("failed to send notification", "job_id", job.ID, "to", job.To, "attempt", job.Tries, "error", err)

		if job.Tries < maxTries {
			// back of the queue so other jobs are not starved
			data, _ := json.Marshal(job)
			s.redis.RPush(context.Background(), QueueKey, string(data))
		} else {
			s.saveFailed(job, err)
		}
		return true
	}

	metrics.RecordNotification(job.Type, "success")
	logger.Info("notification sent", "job_id", job.ID, "to", job.To, "type", job.Type)
	return true
}

func (s *Service) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now().UTC(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), FailedQueueKey, string(data))
	logger.Error("notification moved to failed queue", "job_id", job.ID, "to", job.To)
}

// QueueLength reports the pending jobs and refreshes the queue gauge.
func (s *Service) QueueLength(ctx context.Context) int64 {
	length, err := s.redis.LLen(ctx, QueueKey).Result()
	if err != nil {
		return 0
	}
	metrics.NotificationQueueLength.Set(float64(length))
	return length
}

func (s *Service) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

func (s *Service) Close() error {
	return s.redis.Close()
}
