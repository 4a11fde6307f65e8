package model_test

import (
	"testing"

	"github.com/omnibot/campaign-studio/internal/model"
)

func TestParseChannel(t *testing.T) {
	cases := []struct {
		raw  string
		want model.Channel
		ok   bool
	}{
		{"SMS", model.ChannelSMS, true},
		{"sms", model.ChannelSMS, true},
		{" Sms ", model.ChannelSMS, true},
		{"WHATSAPP", model.ChannelWhatsApp, true},
		{"WhatsApp", model.ChannelWhatsApp, true},
		{"whatsapp", model.ChannelWhatsApp, true},
		{"Email", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := model.ParseChannel(c.raw)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseChannel(%q) = %q, %v; want %q, %v", c.raw, got, ok, c.want, c.ok)
		}
	}
}

func TestChannelDisplay(t *testing.T) {
	if model.ChannelSMS.Display() != "SMS" {
		t.Errorf("SMS display = %q", model.ChannelSMS.Display())
	}
	if model.ChannelWhatsApp.Display() != "WhatsApp" {
		t.Errorf("WhatsApp display = %q", model.ChannelWhatsApp.Display())
	}
}

// Exhaustive field-presence grid: SMS is ready iff name, sender ID and
// message body are all present; template ID never matters.
func TestSMSConfigReady(t *testing.T) {
	for i := 0; i < 16; i++ {
		cfg := model.SMSConfig{}
		if i&1 != 0 {
			cfg.Name = "Promo"
		}
		if i&2 != 0 {
			cfg.SenderID = "SHOP01"
		}
		if i&4 != 0 {
			cfg.MessageBody = "Hello"
		}
		if i&8 != 0 {
			cfg.TemplateID = "tmpl-1"
		}
		want := i&1 != 0 && i&2 != 0 && i&4 != 0
		if got := cfg.Ready(); got != want {
			t.Errorf("%+v: Ready() = %v, want %v", cfg, got, want)
		}
	}
}

// Same grid for WhatsApp: name, business number and template name required;
// media URL optional.
func TestWhatsAppConfigReady(t *testing.T) {
	for i := 0; i < 16; i++ {
		cfg := model.WhatsAppConfig{}
		if i&1 != 0 {
			cfg.Name = "Promo"
		}
		if i&2 != 0 {
			cfg.BusinessNumber = "+254700000000"
		}
		if i&4 != 0 {
			cfg.TemplateName = "welcome"
		}
		if i&8 != 0 {
			cfg.MediaURL = "https://cdn.example.com/banner.png"
		}
		want := i&1 != 0 && i&2 != 0 && i&4 != 0
		if got := cfg.Ready(); got != want {
			t.Errorf("%+v: Ready() = %v, want %v", cfg, got, want)
		}
	}
}

func TestWhitespaceOnlyFieldsAreNotReady(t *testing.T) {
	cfg := model.SMSConfig{Name: "  ", SenderID: "SHOP01", MessageBody: "Hello"}
	if cfg.Ready() {
		t.Error("whitespace-only name should not be ready")
	}
}

func TestNewCampaignConfigSelectsByChannel(t *testing.T) {
	if _, ok := model.NewCampaignConfig(model.ChannelSMS).(model.SMSConfig); !ok {
		t.Error("expected SMSConfig for SMS channel")
	}
	if _, ok := model.NewCampaignConfig(model.ChannelWhatsApp).(model.WhatsAppConfig); !ok {
		t.Error("expected WhatsAppConfig for WhatsApp channel")
	}
}

func strPtr(s string) *string { return &s }

func TestWithUpdateAppliesOnlyRelevantFields(t *testing.T) {
	var cfg model.CampaignConfig = model.SMSConfig{}
	cfg = cfg.WithUpdate(model.ConfigUpdate{
		Name:         strPtr("Promo"),
		SenderID:     strPtr("SHOP01"),
		TemplateName: strPtr("ignored-for-sms"),
	})
	sms, ok := cfg.(model.SMSConfig)
	if !ok {
		t.Fatal("update changed the config shape")
	}
	if sms.Name != "Promo" || sms.SenderID != "SHOP01" {
		t.Errorf("update not applied: %+v", sms)
	}

	cfg = cfg.WithUpdate(model.ConfigUpdate{MessageBody: strPtr("Hello")})
	if !cfg.Ready() {
		t.Error("expected config ready after all required fields set")
	}
}

func TestDeliveryBody(t *testing.T) {
	sms := model.SMSConfig{MessageBody: "Hello"}
	if sms.DeliveryBody() != "Hello" {
		t.Errorf("sms body = %q", sms.DeliveryBody())
	}
	wa := model.WhatsAppConfig{TemplateName: "welcome", MediaURL: "https://x/y.png"}
	if wa.DeliveryBody() != "template:welcome media:https://x/y.png" {
		t.Errorf("whatsapp body = %q", wa.DeliveryBody())
	}
}
