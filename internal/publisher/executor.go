// internal/publisher/executor.go
package publisher

import (
	"context"
	"log"

	appErrors "github.com/omnibot/campaign-studio/internal/errors"
	"github.com/omnibot/campaign-studio/internal/model"
	"github.com/omnibot/campaign-studio/internal/queue"
	"github.com/omnibot/campaign-studio/internal/repository"
)

// Executor commits a confirmed campaign: it records the list-projection row
// and enqueues one delivery job. The workflow sees a single atomic outcome;
// an enqueue failure marks the row failed and reports a publish failure.
type Executor struct {
	Repo  repository.CampaignRepositoryInterface
	Queue queue.Queue
}

func (e *Executor) Publish(ctx context.Context, campaign model.Campaign, cfg model.CampaignConfig) error {
	if err := e.Repo.Insert(&campaign); err != nil {
		log.Println("⚠️ failed to record campaign:", err)
		return appErrors.NewPublishFailure(err)
	}

	job := queue.DeliveryJob{
		CampaignID: campaign.ID,
		Channel:    string(campaign.Channel),
		Count:      campaign.Count,
		Body:       cfg.DeliveryBody(),
	}
	if err := e.Queue.Publish(queue.TopicCampaignSends, job); err != nil {
		log.Println("⚠️ failed to enqueue delivery job for campaign", campaign.ID, ":", err)
		_ = e.Repo.UpdateDeliveryStatus(campaign.ID, model.DeliveryFailed, err.Error())
		return appErrors.NewPublishFailure(err)
	}

	log.Println("✅ Campaign published:", campaign.ID, campaign.Name)
	return nil
}
