package queue

import (
	"fmt"
	"sync"
	"time"
)

// TopicCampaignSends carries delivery jobs for published campaigns.
const TopicCampaignSends = "campaign_sends"

// DeliveryJob is the unit of work handed to the delivery pipeline when a
// campaign is published.
type DeliveryJob struct {
	CampaignID string `json:"campaign_id"`
	Channel    string `json:"channel"`
	Count      string `json:"count"`
	Body       string `json:"body"`
}

// Queue interface
type Queue interface {
	Publish(topic string, job DeliveryJob) error
	Subscribe(topic string, handler func(job DeliveryJob) error) error
}

// InMemoryQueue is the local transport used when no broker is configured
// and in tests. Handlers run in the background with retry and backoff.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(job DeliveryJob) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(job DeliveryJob) error),
	}
}

const maxRetries = 3

// Publish sends a job to all subscribers. It fails when nobody is listening
// so a misconfigured pipeline is caught at publish time, not silently.
func (q *InMemoryQueue) Publish(topic string, job DeliveryJob) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}
	return nil
}

// processJob handles retries with exponential backoff
func (q *InMemoryQueue) processJob(handler func(job DeliveryJob) error, job DeliveryJob) {
	for attempt := 1; ; attempt++ {
		err := handler(job)
		if err == nil {
			return
		}
		if attempt >= maxRetries {
			return
		}
		time.Sleep(time.Duration(attempt*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(job DeliveryJob) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}
