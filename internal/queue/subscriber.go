package queue

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/omnibot/campaign-studio/internal/model"
	"github.com/omnibot/campaign-studio/internal/repository"
)

// StartDeliverySubscriber processes queued delivery jobs and records the
// outcome on the campaign row. It is the in-process counterpart of
// cmd/worker for deployments without a broker.
func StartDeliverySubscriber(q Queue, campaignRepo repository.CampaignRepositoryInterface, send func(job DeliveryJob) error) {
	if send == nil {
		send = MockSender
	}
	err := q.Subscribe(TopicCampaignSends, func(job DeliveryJob) error {
		log.Println("📩 Processing delivery job for campaign:", job.CampaignID)

		if err := send(job); err != nil {
			log.Println("⚠️ Failed to deliver campaign:", err)
			_ = campaignRepo.UpdateDeliveryStatus(job.CampaignID, model.DeliveryFailed, err.Error())
			return err // triggers retry in queue
		}

		if err := campaignRepo.UpdateDeliveryStatus(job.CampaignID, model.DeliverySent, ""); err != nil {
			log.Println("⚠️ Failed to update delivery status:", err)
			return err
		}

		log.Println("✅ Campaign delivered:", job.CampaignID)
		return nil
	})
	if err != nil {
		log.Println("⚠️ Failed to start subscriber for", TopicCampaignSends, ":", err)
	}
}

// MockSender simulates handing the job to a delivery provider, with 90%
// success.
func MockSender(job DeliveryJob) error {
	if rand.Float64() < 0.9 {
		return nil
	}
	return fmt.Errorf("mock sending failed for campaign %s", job.CampaignID)
}
