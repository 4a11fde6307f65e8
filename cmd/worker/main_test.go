package main

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/streadway/amqp"

	"github.com/omnibot/campaign-studio/internal/model"
	"github.com/omnibot/campaign-studio/internal/queue"
)

type mockCampaignRepo struct {
	statuses map[string]string
	lastErrs map[string]string
}

func newMockCampaignRepo() *mockCampaignRepo {
	return &mockCampaignRepo{statuses: map[string]string{}, lastErrs: map[string]string{}}
}

func (m *mockCampaignRepo) Insert(c *model.Campaign) error             { return nil }
func (m *mockCampaignRepo) GetByID(id string) (*model.Campaign, error) { return nil, nil }
func (m *mockCampaignRepo) List(search string, channel model.Channel) ([]model.Campaign, error) {
	return nil, nil
}
func (m *mockCampaignRepo) UpdateDeliveryStatus(id, status, lastError string) error {
	m.statuses[id] = status
	m.lastErrs[id] = lastError
	return nil
}

type mockJobPublisher struct {
	published []amqp.Publishing
}

func (m *mockJobPublisher) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	m.published = append(m.published, msg)
	return nil
}

func TestHandleMarksCampaignSentOnSuccess(t *testing.T) {
	repo := newMockCampaignRepo()
	pub := &mockJobPublisher{}
	w := &deliveryWorker{repo: repo, pub: pub, send: func(queue.DeliveryJob) error { return nil }}

	if err := w.handle(queue.DeliveryJob{CampaignID: "c-1"}, 0); err != nil {
		t.Fatal(err)
	}
	if repo.statuses["c-1"] != model.DeliverySent {
		t.Errorf("expected sent, got %q", repo.statuses["c-1"])
	}
	if len(pub.published) != 0 {
		t.Errorf("successful delivery must not requeue, got %d messages", len(pub.published))
	}
}

func TestHandleRequeuesFailureWithBumpedRetryCount(t *testing.T) {
	repo := newMockCampaignRepo()
	pub := &mockJobPublisher{}
	w := &deliveryWorker{repo: repo, pub: pub, send: func(queue.DeliveryJob) error {
		return fmt.Errorf("provider unavailable")
	}}

	job := queue.DeliveryJob{CampaignID: "c-1", Channel: "SMS", Count: "10", Body: "Hi"}
	if err := w.handle(job, 1); err != nil {
		t.Fatal(err)
	}

	if len(pub.published) != 1 {
		t.Fatalf("expected one requeued message, got %d", len(pub.published))
	}
	msg := pub.published[0]
	if got, ok := msg.Headers["x-retry-count"].(int32); !ok || got != 2 {
		t.Errorf("expected x-retry-count 2, got %v", msg.Headers["x-retry-count"])
	}
	var requeued queue.DeliveryJob
	if err := json.Unmarshal(msg.Body, &requeued); err != nil || requeued != job {
		t.Errorf("requeued job mangled: %+v %v", requeued, err)
	}
	if _, recorded := repo.statuses["c-1"]; recorded {
		t.Error("status must not change while retries remain")
	}
}

func TestHandleMarksCampaignFailedOnceRetriesAreSpent(t *testing.T) {
	repo := newMockCampaignRepo()
	pub := &mockJobPublisher{}
	w := &deliveryWorker{repo: repo, pub: pub, send: func(queue.DeliveryJob) error {
		return fmt.Errorf("provider unavailable")
	}}

	if err := w.handle(queue.DeliveryJob{CampaignID: "c-1"}, maxDeliveryRetries); err != nil {
		t.Fatal(err)
	}
	if len(pub.published) != 0 {
		t.Errorf("spent job must not requeue, got %d messages", len(pub.published))
	}
	if repo.statuses["c-1"] != model.DeliveryFailed {
		t.Errorf("expected failed, got %q", repo.statuses["c-1"])
	}
	if repo.lastErrs["c-1"] != "provider unavailable" {
		t.Errorf("expected the delivery error recorded, got %q", repo.lastErrs["c-1"])
	}
}

func TestRetryCountHeader(t *testing.T) {
	if got := retryCount(nil); got != 0 {
		t.Errorf("missing headers: expected 0, got %d", got)
	}
	if got := retryCount(amqp.Table{"x-retry-count": int32(2)}); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
	if got := retryCount(amqp.Table{"x-retry-count": "2"}); got != 0 {
		t.Errorf("wrong-typed header: expected 0, got %d", got)
	}
}
