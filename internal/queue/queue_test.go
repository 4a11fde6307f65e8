package queue_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/omnibot/campaign-studio/internal/queue"
)

func TestPublishWithoutSubscribersFails(t *testing.T) {
	q := queue.NewInMemoryQueue()
	err := q.Publish(queue.TopicCampaignSends, queue.DeliveryJob{CampaignID: "c-1"})
	if err == nil {
		t.Fatal("expected an error when nobody is listening")
	}
}

func TestSubscriberReceivesJob(t *testing.T) {
	q := queue.NewInMemoryQueue()
	got := make(chan queue.DeliveryJob, 1)
	q.Subscribe(queue.TopicCampaignSends, func(job queue.DeliveryJob) error {
		got <- job
		return nil
	})

	job := queue.DeliveryJob{CampaignID: "c-1", Channel: "SMS", Count: "120", Body: "Hello"}
	if err := q.Publish(queue.TopicCampaignSends, job); err != nil {
		t.Fatal(err)
	}

	select {
	case received := <-got:
		if received != job {
			t.Errorf("expected %+v, got %+v", job, received)
		}
	case <-time.After(time.Second):
		t.Fatal("job never delivered")
	}
}

func TestFailingHandlerIsRetried(t *testing.T) {
	q := queue.NewInMemoryQueue()
	var attempts int32
	done := make(chan struct{})
	q.Subscribe(queue.TopicCampaignSends, func(job queue.DeliveryJob) error {
		if atomic.AddInt32(&attempts, 1) < 2 {
			return fmt.Errorf("transient failure")
		}
		close(done)
		return nil
	})

	if err := q.Publish(queue.TopicCampaignSends, queue.DeliveryJob{CampaignID: "c-1"}); err != nil {
		t.Fatal(err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("handler never succeeded after retry, attempts=%d", atomic.LoadInt32(&attempts))
	}
}
