// Package discordgo provides Discord API adapters using package github.com/bwmarrin/discordgo
package discordgo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	lifted "github.com/benjamonnguyen/lifted-go"
)

const defaultColor = 0xFF0000

// DiscordClient is the part of *discordgo.Session the notifier uses.
type DiscordClient interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ DiscordClient = (*discordgo.Session)(nil)

// Notifier delivers notifications as direct messages to one Discord user.
// Delivery is timed in-process, so a notification only arrives while the
// process is alive.
type Notifier struct {
	cl     DiscordClient
	userID string
	clock  clockwork.Clock
	l      log.Logger

	mu        sync.Mutex
	dmChannel string
	color     int
	pending   map[lifted.NotificationHandle]clockwork.Timer
	closed    bool
	wg        sync.WaitGroup
}

var _ lifted.NotificationService = (*Notifier)(nil)

func NewNotifier(cl DiscordClient, userID string, clock clockwork.Clock, l log.Logger) *Notifier {
	return &Notifier{
		cl:      cl,
		userID:  userID,
		clock:   clock,
		l:       *l.WithPrefix("discord"),
		color:   defaultColor,
		pending: make(map[lifted.NotificationHandle]clockwork.Timer),
	}
}

func (n *Notifier) Platform() lifted.Platform {
	return lifted.Platform{
		Name:            "discord",
		Supported:       true,
		RequiresChannel: true,
	}
}

// CheckPermission reports granted once a DM channel with the user exists.
func (n *Notifier) CheckPermission(context.Context) (lifted.Permission, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dmChannel != "" {
		return lifted.PermissionGranted, nil
	}
	return lifted.PermissionUnknown, nil
}

// RequestPermission opens the DM channel. Discord refusing it counts as a
// denial.
func (n *Notifier) RequestPermission(ctx context.Context) (lifted.Permission, error) {
	if _, err := n.openDM(ctx); err != nil {
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) {
			n.l.Info("direct messages refused", "user", n.userID, "err", err)
			return lifted.PermissionDenied, nil
		}
		return lifted.PermissionUnknown, err
	}
	return lifted.PermissionGranted, nil
}

// EnsureChannel opens the DM channel and takes the embed color from the
// channel's light color.
func (n *Notifier) EnsureChannel(ctx context.Context, ch lifted.Channel) error {
	if _, err := n.openDM(ctx); err != nil {
		return err
	}
	if ch.LightColor == "" {
		return nil
	}
	color, err := parseColor(ch.LightColor)
	if err != nil {
		return fmt.Errorf("invalid light color for channel %s: %w", ch.ID, err)
	}
	n.mu.Lock()
	n.color = color
	n.mu.Unlock()
	return nil
}

// ScheduleAt sends notif at notif.FireAt. Scheduling a handle that is
// already pending replaces it.
func (n *Notifier) ScheduleAt(ctx context.Context, notif lifted.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	channelID, err := n.openDM(ctx)
	if err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return errors.New("notifier closed")
	}
	n.stopLocked(notif.Handle)

	embed := buildEmbed(notif, n.color)
	var timer clockwork.Timer
	n.wg.Add(1)
	timer = n.clock.AfterFunc(notif.FireAt.Sub(n.clock.Now()), func() {
		defer n.wg.Done()
		n.mu.Lock()
		if n.pending[notif.Handle] != timer {
			n.mu.Unlock()
			return
		}
		delete(n.pending, notif.Handle)
		n.mu.Unlock()

		if _, err := n.cl.ChannelMessageSendEmbed(channelID, embed); err != nil {
			n.l.Error("failed to send notification", "handle", notif.Handle, "err", err)
			return
		}
		n.l.Debug("sent notification", "handle", notif.Handle)
	})
	n.pending[notif.Handle] = timer
	n.l.Debug("scheduled notification", "handle", notif.Handle, "fireAt", notif.FireAt)
	return nil
}

// Cancel stops a pending notification. Unknown handles are ignored.
func (n *Notifier) Cancel(_ context.Context, handle lifted.NotificationHandle) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked(handle)
	return nil
}

// Pending is the number of notifications waiting to be sent.
func (n *Notifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pending)
}

// Close drops every pending notification and waits for in-flight sends.
func (n *Notifier) Close() {
	n.mu.Lock()
	n.closed = true
	for h := range n.pending {
		n.stopLocked(h)
	}
	n.mu.Unlock()

	n.wg.Wait()
}

// stopLocked stops the timer of handle. Caller holds n.mu.
func (n *Notifier) stopLocked(handle lifted.NotificationHandle) {
	timer, ok := n.pending[handle]
	if !ok {
		return
	}
	delete(n.pending, handle)
	if timer.Stop() {
		n.wg.Done()
	}
}

func (n *Notifier) openDM(ctx context.Context) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dmChannel != "" {
		return n.dmChannel, nil
	}

	ch, err := n.cl.UserChannelCreate(n.userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to open DM channel with %s: %w", n.userID, err)
	}
	n.dmChannel = ch.ID
	n.l.Info("opened DM channel", "channel", ch.ID)
	return ch.ID, nil
}

func buildEmbed(notif lifted.Notification, color int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       notif.Title,
		Description: notif.Body,
		Color:       color,
	}
	if notif.LargeBody != "" && notif.LargeBody != notif.Body {
		embed.Description += "\n\n" + notif.LargeBody
	}
	if notif.Summary != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: notif.Summary}
	}
	return embed
}

func parseColor(s string) (int, error) {
	c, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil {
		return 0, err
	}
	return int(c), nil
}
