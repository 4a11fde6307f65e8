package repository

import (
	"sort"
	"strings"
	"sync"

	"github.com/omnibot/campaign-studio/internal/model"
)

// InMemoryCampaignRepository backs the list projection when no database is
// configured. The workflow itself never depends on persistence, so a map is
// enough for a single operator session.
type InMemoryCampaignRepository struct {
	mu        sync.RWMutex
	campaigns map[string]model.Campaign
}

func NewInMemoryCampaignRepository() *InMemoryCampaignRepository {
	return &InMemoryCampaignRepository{campaigns: make(map[string]model.Campaign)}
}

func (r *InMemoryCampaignRepository) Insert(c *model.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaigns[c.ID] = *c
	return nil
}

func (r *InMemoryCampaignRepository) GetByID(id string) (*model.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *InMemoryCampaignRepository) List(search string, channel model.Channel) ([]model.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Campaign{}
	search = strings.ToLower(search)
	for _, c := range r.campaigns {
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		if channel != "" && c.Channel != channel {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryCampaignRepository) UpdateDeliveryStatus(id, status, lastError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil
	}
	c.DeliveryStatus = status
	c.LastError = lastError
	r.campaigns[id] = c
	return nil
}

var _ CampaignRepositoryInterface = (*InMemoryCampaignRepository)(nil)
