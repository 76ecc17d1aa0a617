package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	var mu sync.Mutex
	processed := make([]string, 0)

	q := NewQueue("test", func(ctx context.Context, job Job) error {
		mu.Lock()
		processed = append(processed, job.ID)
		mu.Unlock()
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "a", Type: "refresh"}))
	require.NoError(t, q.Enqueue(Job{ID: "b", Type: "refresh"}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(processed) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestQueueDeduplicatesInflightIDs(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	runs := 0

	q := NewQueue("test", func(ctx context.Context, job Job) error {
		mu.Lock()
		runs++
		mu.Unlock()
		<-release
		return nil
	}, QueueConfig{Workers: 1})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "same", Type: "refresh"}))

	// Wait until the first job is being processed, then enqueue duplicates.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return runs == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, q.Enqueue(Job{ID: "same", Type: "refresh"}))
	require.NoError(t, q.Enqueue(Job{ID: "same", Type: "refresh"}))
	close(release)

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, runs)
}

func TestQueueEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("test", func(ctx context.Context, job Job) error { return nil }, QueueConfig{})
	err := q.Enqueue(Job{ID: "a"})
	require.Error(t, err)
}
