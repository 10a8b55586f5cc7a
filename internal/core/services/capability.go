package services

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/dayfinder/internal/core/ports"
)

type Feature string

const (
	FeatureClosingConfirmation Feature = "closing_confirmation"
	FeaturePopup               Feature = "popup"
	FeatureHaptics             Feature = "haptics"
	FeatureShareChooser        Feature = "share_chooser"
)

// minVersions is the host version each feature first shipped in.
var minVersions = map[Feature]string{
	FeatureClosingConfirmation: "6.2",
	FeaturePopup:               "6.2",
	FeatureHaptics:             "6.1",
	FeatureShareChooser:        "6.7",
}

// ShareChatTypes are the chat kinds offered when sharing a poll.
var ShareChatTypes = []string{"users", "groups", "channels"}

type Capabilities struct {
	host ports.HostBridge
}

func NewCapabilities(host ports.HostBridge) Capabilities {
	return Capabilities{host: host}
}

func (c Capabilities) Has(f Feature) bool {
	v, ok := minVersions[f]
	return ok && c.host.IsVersionAtLeast(v)
}

// Ask shows p and returns the pressed button ID. Hosts without popups get a
// plain confirm with the popup message, where OK maps to the first button.
func (c Capabilities) Ask(ctx context.Context, p ports.Popup) (string, error) {
	if c.Has(FeaturePopup) {
		return c.host.Popup(ctx, p)
	}

	ok, err := c.host.Confirm(ctx, p.Message)
	if err != nil || !ok || len(p.Buttons) == 0 {
		return "", err
	}
	return p.Buttons[0].ID, nil
}

func (c Capabilities) Haptic(kind ports.HapticKind) {
	if c.Has(FeatureHaptics) {
		c.host.Haptic(kind)
	}
}

func (c Capabilities) EnableClosingConfirmation() {
	if c.Has(FeatureClosingConfirmation) {
		c.host.EnableClosingConfirmation()
	}
}

// Share hands the poll to the host's share flow. Older hosts open the
// t.me share link for the vote page instead, when the bot name is known.
func (c Capabilities) Share(pollID uuid.UUID, botName string) {
	if c.Has(FeatureShareChooser) || botName == "" {
		c.host.SwitchInlineQuery(pollID.String(), ShareChatTypes)
		return
	}
	c.host.OpenLink(ShareURL(botName, pollID))
}

func VoteURL(botName string, pollID uuid.UUID) string {
	return "https://t.me/" + botName + "/vote?startapp=" + pollID.String()
}

func ResultsURL(botName string, pollID uuid.UUID) string {
	return "https://t.me/" + botName + "/results?startapp=" + pollID.String()
}

func ShareURL(botName string, pollID uuid.UUID) string {
	return "https://t.me/share/url?url=" + url.QueryEscape(VoteURL(botName, pollID))
}
