package repository

import (
	"database/sql"
	"fmt"

	"github.com/omnibot/campaign-studio/internal/model"
)

type CampaignRepositoryInterface interface {
	Insert(c *model.Campaign) error
	GetByID(id string) (*model.Campaign, error)
	// List returns published campaigns newest first. search matches the name
	// as a substring, channel filters exactly; both are optional.
	List(search string, channel model.Channel) ([]model.Campaign, error)
	UpdateDeliveryStatus(id, status, lastError string) error
}

type CampaignRepository struct {
	DB *sql.DB
}

func (r *CampaignRepository) Insert(c *model.Campaign) error {
	query := `
        INSERT INTO campaigns (id, name, channel, target_audience, count, scheduled_time, delivery_status, last_error, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.DB.Exec(query, c.ID, c.Name, c.Channel, c.TargetAudience, c.Count, c.ScheduledTime, c.DeliveryStatus, c.LastError, c.CreatedAt)
	return err
}

func (r *CampaignRepository) GetByID(id string) (*model.Campaign, error) {
	query := `
        SELECT id, name, channel, target_audience, count, scheduled_time, delivery_status, last_error, created_at
        FROM campaigns WHERE id=$1
    `
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.Channel, &c.TargetAudience, &c.Count, &c.ScheduledTime, &c.DeliveryStatus, &c.LastError, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) List(search string, channel model.Channel) ([]model.Campaign, error) {
	campaigns := []model.Campaign{}
	query := `SELECT id, name, channel, target_audience, count, scheduled_time, delivery_status, last_error, created_at FROM campaigns WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if search != "" {
		query += fmt.Sprintf(" AND name ILIKE '%%' || $%d || '%%'", argPos)
		args = append(args, search)
		argPos++
	}
	if channel != "" {
		query += fmt.Sprintf(" AND channel=$%d", argPos)
		args = append(args, channel)
		argPos++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.Channel, &c.TargetAudience, &c.Count, &c.ScheduledTime, &c.DeliveryStatus, &c.LastError, &c.CreatedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) UpdateDeliveryStatus(id, status, lastError string) error {
	query := `UPDATE campaigns SET delivery_status=$1, last_error=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, status, lastError, id)
	return err
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
