// Package bot runs the Motorpool Discord bot: it watches guild channels
// for dispatch messages, feeds them through the parsing and reconciliation
// pipeline, answers roster commands, and sweeps expired records on a cron
// schedule.
package bot

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"

	"github.com/zulandar/motorpool/internal/config"
	"github.com/zulandar/motorpool/internal/models"
	"github.com/zulandar/motorpool/internal/oracle"
	"github.com/zulandar/motorpool/internal/store"
)

// Bot is the Discord dispatch bot.
type Bot struct {
	store  *store.Store
	cfg    *config.Config
	oracle oracle.Validator
	sess   session
	out    io.Writer

	mu        sync.Mutex
	botUserID string
}

// Opts holds parameters for creating a Bot.
type Opts struct {
	Store  *store.Store
	Config *config.Config
	Oracle oracle.Validator // optional; nil disables task-name validation
	Out    io.Writer        // defaults to os.Stdout
	// For testing: inject a mock session instead of real Discord API.
	Session session
}

// New creates a Bot.
func New(opts Opts) (*Bot, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("bot: store is required")
	}
	if opts.Config == nil {
		return nil, fmt.Errorf("bot: config is required")
	}
	if opts.Session == nil && opts.Config.Discord.BotToken == "" {
		return nil, fmt.Errorf("bot: bot token is required")
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Bot{
		store:  opts.Store,
		cfg:    opts.Config,
		oracle: opts.Oracle,
		sess:   opts.Session,
		out:    out,
	}, nil
}

// Run connects to the Discord Gateway, registers handlers, starts the
// expiry sweep schedule, and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if b.sess == nil {
		dg, err := discordgo.New("Bot " + b.cfg.Discord.BotToken)
		if err != nil {
			return fmt.Errorf("bot: create session: %w", err)
		}
		dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent
		b.sess = &realSession{s: dg}
	}

	b.sess.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.mu.Lock()
		b.botUserID = r.User.ID
		b.mu.Unlock()
		log.Printf("bot: connected as %s (ID: %s)", r.User.Username, r.User.ID)
		b.setPresence()
	})
	b.sess.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		b.onMessage(ctx, m)
	})

	if err := b.sess.Open(); err != nil {
		return fmt.Errorf("bot: open gateway: %w", err)
	}

	c := cron.New()
	if _, err := c.AddFunc(b.cfg.CleanupCron, b.sweepExpired); err != nil {
		b.sess.Close()
		return fmt.Errorf("bot: cleanup schedule %q: %w", b.cfg.CleanupCron, err)
	}
	c.Start()

	b.sweepExpired()

	<-ctx.Done()
	c.Stop()
	if err := b.sess.Close(); err != nil {
		return fmt.Errorf("bot: close gateway: %w", err)
	}
	return nil
}

// setPresence marks the bot as the unit's 工具人 (errand runner).
func (b *Bot) setPresence() {
	err := b.sess.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: string(discordgo.StatusDoNotDisturb),
		Activities: []*discordgo.Activity{
			{Name: "工具人", Type: discordgo.ActivityTypeGame},
		},
	})
	if err != nil {
		log.Printf("bot: set presence: %v", err)
	}
}

// sweepExpired deletes records whose date has passed.
func (b *Bot) sweepExpired() {
	today := time.Now().Format(models.DateLayout)
	deleted, err := b.store.DeleteExpired(today)
	if err != nil {
		fmt.Fprintf(b.out, "bot: cleanup sweep: %v\n", err)
		return
	}
	if deleted > 0 {
		fmt.Fprintf(b.out, "bot: cleanup sweep: deleted %d expired dispatch records\n", deleted)
	}
}
