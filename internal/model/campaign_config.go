// internal/model/campaign_config.go
package model

import "strings"

// CampaignConfig is the channel-specific delivery configuration an operator
// fills in before publishing. Exactly one concrete shape exists per channel,
// selected by the interpreted QueryResponse.
type CampaignConfig interface {
	Channel() Channel
	CampaignName() string
	// Ready reports whether the configuration can be submitted for
	// confirmation. It is a pure function of the fields; it never blocks
	// field entry.
	Ready() bool
	// DeliveryBody is the message content handed to the delivery pipeline.
	DeliveryBody() string
	// WithUpdate returns a copy with the non-nil fields of u applied.
	// Fields that do not belong to the channel are ignored.
	WithUpdate(u ConfigUpdate) CampaignConfig
}

// ConfigUpdate carries one round of operator edits. Nil means "unchanged".
type ConfigUpdate struct {
	Name           *string `json:"name"`
	SenderID       *string `json:"sender_id"`
	TemplateID     *string `json:"template_id"`
	MessageBody    *string `json:"message_body"`
	BusinessNumber *string `json:"business_number"`
	TemplateName   *string `json:"template_name"`
	MediaURL       *string `json:"media_url"`
}

// NewCampaignConfig returns the empty configuration for a channel.
func NewCampaignConfig(ch Channel) CampaignConfig {
	if ch == ChannelWhatsApp {
		return WhatsAppConfig{}
	}
	return SMSConfig{}
}

func filled(s string) bool { return strings.TrimSpace(s) != "" }

// SMSConfig configures SMS delivery. TemplateID is optional.
type SMSConfig struct {
	Name        string `json:"name"`
	SenderID    string `json:"sender_id"`
	TemplateID  string `json:"template_id,omitempty"`
	MessageBody string `json:"message_body"`
}

func (c SMSConfig) Channel() Channel     { return ChannelSMS }
func (c SMSConfig) CampaignName() string { return c.Name }

func (c SMSConfig) Ready() bool {
	return filled(c.Name) && filled(c.SenderID) && filled(c.MessageBody)
}

func (c SMSConfig) DeliveryBody() string { return c.MessageBody }

func (c SMSConfig) WithUpdate(u ConfigUpdate) CampaignConfig {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.SenderID != nil {
		c.SenderID = *u.SenderID
	}
	if u.TemplateID != nil {
		c.TemplateID = *u.TemplateID
	}
	if u.MessageBody != nil {
		c.MessageBody = *u.MessageBody
	}
	return c
}

// WhatsAppConfig configures WhatsApp delivery. MediaURL is optional.
type WhatsAppConfig struct {
	Name           string `json:"name"`
	BusinessNumber string `json:"business_number"`
	TemplateName   string `json:"template_name"`
	MediaURL       string `json:"media_url,omitempty"`
}

func (c WhatsAppConfig) Channel() Channel     { return ChannelWhatsApp }
func (c WhatsAppConfig) CampaignName() string { return c.Name }

func (c WhatsAppConfig) Ready() bool {
	return filled(c.Name) && filled(c.BusinessNumber) && filled(c.TemplateName)
}

func (c WhatsAppConfig) DeliveryBody() string {
	body := "template:" + c.TemplateName
	if filled(c.MediaURL) {
		body += " media:" + c.MediaURL
	}
	return body
}

func (c WhatsAppConfig) WithUpdate(u ConfigUpdate) CampaignConfig {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.BusinessNumber != nil {
		c.BusinessNumber = *u.BusinessNumber
	}
	if u.TemplateName != nil {
		c.TemplateName = *u.TemplateName
	}
	if u.MediaURL != nil {
		c.MediaURL = *u.MediaURL
	}
	return c
}
