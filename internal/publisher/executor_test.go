package publisher_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	appErrors "github.com/omnibot/campaign-studio/internal/errors"
	"github.com/omnibot/campaign-studio/internal/model"
	"github.com/omnibot/campaign-studio/internal/publisher"
	"github.com/omnibot/campaign-studio/internal/queue"
	"github.com/omnibot/campaign-studio/internal/repository"
)

type failingRepo struct {
	repository.InMemoryCampaignRepository
}

func (r *failingRepo) Insert(c *model.Campaign) error {
	return fmt.Errorf("insert refused")
}

type recordingQueue struct {
	mu   sync.Mutex
	jobs []queue.DeliveryJob
	err  error
}

func (q *recordingQueue) Publish(topic string, job queue.DeliveryJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *recordingQueue) Subscribe(topic string, handler func(job queue.DeliveryJob) error) error {
	return nil
}

func testCampaign() model.Campaign {
	return model.Campaign{
		ID:             "c-1",
		Name:           "Promo",
		Channel:        model.ChannelSMS,
		TargetAudience: "all",
		Count:          "120",
		DeliveryStatus: model.DeliveryPending,
	}
}

func TestPublishRecordsAndEnqueues(t *testing.T) {
	repo := repository.NewInMemoryCampaignRepository()
	q := &recordingQueue{}
	exec := &publisher.Executor{Repo: repo, Queue: q}

	cfg := model.SMSConfig{Name: "Promo", SenderID: "SHOP01", MessageBody: "Hello"}
	if err := exec.Publish(context.Background(), testCampaign(), cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := repo.GetByID("c-1")
	if err != nil || stored == nil {
		t.Fatalf("campaign row not recorded: %v", err)
	}
	if len(q.jobs) != 1 {
		t.Fatalf("expected one delivery job, got %d", len(q.jobs))
	}
	job := q.jobs[0]
	if job.CampaignID != "c-1" || job.Channel != "SMS" || job.Count != "120" || job.Body != "Hello" {
		t.Errorf("unexpected delivery job: %+v", job)
	}
}

func TestPublishInsertFailure(t *testing.T) {
	exec := &publisher.Executor{Repo: &failingRepo{}, Queue: &recordingQueue{}}

	err := exec.Publish(context.Background(), testCampaign(), model.SMSConfig{MessageBody: "Hello"})
	var pubErr *appErrors.PublishFailureError
	if !errors.As(err, &pubErr) {
		t.Fatalf("expected PublishFailureError, got %v", err)
	}
}

func TestPublishEnqueueFailureMarksRowFailed(t *testing.T) {
	repo := repository.NewInMemoryCampaignRepository()
	q := &recordingQueue{err: fmt.Errorf("broker down")}
	exec := &publisher.Executor{Repo: repo, Queue: q}

	err := exec.Publish(context.Background(), testCampaign(), model.SMSConfig{MessageBody: "Hello"})
	var pubErr *appErrors.PublishFailureError
	if !errors.As(err, &pubErr) {
		t.Fatalf("expected PublishFailureError, got %v", err)
	}

	stored, _ := repo.GetByID("c-1")
	if stored == nil || stored.DeliveryStatus != model.DeliveryFailed {
		t.Errorf("expected the recorded row to be marked failed, got %+v", stored)
	}
}
