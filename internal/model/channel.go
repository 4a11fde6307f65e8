// internal/model/channel.go
package model

import "strings"

// Channel is the delivery medium for a campaign. The canonical internal
// values are upper-case; Display is the only place presentation labels live.
type Channel string

const (
	ChannelSMS      Channel = "SMS"
	ChannelWhatsApp Channel = "WHATSAPP"
)

// ParseChannel matches raw channel values case-insensitively against the
// supported set.
func ParseChannel(raw string) (Channel, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SMS":
		return ChannelSMS, true
	case "WHATSAPP":
		return ChannelWhatsApp, true
	}
	return "", false
}

func (c Channel) Display() string {
	if c == ChannelWhatsApp {
		return "WhatsApp"
	}
	return string(c)
}
