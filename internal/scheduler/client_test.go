package scheduler

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type stubConfig struct {
	redisURL    string
	tlsInsecure bool
	queue       string
	concurrency int
}

func (c *stubConfig) GetRedisURL() string       { return c.redisURL }
func (c *stubConfig) GetRedisTLSInsecure() bool { return c.tlsInsecure }
func (c *stubConfig) GetAsynqQueueName() string { return c.queue }
func (c *stubConfig) GetAsynqConcurrency() int  { return c.concurrency }

func TestNewClient_RequiresRedisURL(t *testing.T) {
	if _, err := NewClient(&stubConfig{}); err == nil {
		t.Fatalf("expected error without redis url")
	}
}

func TestRedisClientOpt_ParsesURL(t *testing.T) {
	opt, err := redisClientOpt("redis://:secret@localhost:6379/2", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr: %q", opt.Addr)
	}
	if opt.Password != "secret" || opt.DB != 2 {
		t.Fatalf("unexpected credentials: %q db=%d", opt.Password, opt.DB)
	}
	if opt.TLSConfig != nil {
		t.Fatalf("expected no TLS config for redis scheme")
	}
}

func TestRedisClientOpt_InsecureTLS(t *testing.T) {
	opt, err := redisClientOpt("rediss://localhost:6380", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatalf("expected insecure TLS config, got %+v", opt.TLSConfig)
	}
}

func TestRedisClientOpt_RejectsBadURL(t *testing.T) {
	if _, err := redisClientOpt("not a url", false); err == nil {
		t.Fatalf("expected error for malformed url")
	}
}

func TestClient_EnqueueAdSpendPull(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := &stubConfig{redisURL: "redis://" + mr.Addr(), queue: "reports"}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	defer client.Close()

	if err := client.EnqueueAdSpendPull(context.Background(), "2026-08-27"); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer inspector.Close()

	tasks, err := inspector.ListPendingTasks("reports")
	if err != nil {
		t.Fatalf("failed to list pending tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 pending task, got %d", len(tasks))
	}
	if tasks[0].Type != TaskAdSpendPull {
		t.Fatalf("unexpected task type %q", tasks[0].Type)
	}

	payload, err := ParseAdSpendPullPayload(asynq.NewTask(tasks[0].Type, tasks[0].Payload))
	if err != nil {
		t.Fatalf("failed to parse payload: %v", err)
	}
	if payload.Day != "2026-08-27" {
		t.Fatalf("unexpected day %q", payload.Day)
	}
}

func TestClient_EnqueueDailySummary(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(&stubConfig{redisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	defer client.Close()

	if err := client.EnqueueDailySummary(context.Background(), "2026-08-27"); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer inspector.Close()

	tasks, err := inspector.ListPendingTasks("default")
	if err != nil {
		t.Fatalf("failed to list pending tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Type != TaskDailySummary {
		t.Fatalf("expected 1 daily summary task, got %v", tasks)
	}
}
