// Package telegram sends feed health notices and parlay receipts via the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Aidan-usc/Game-Line/internal/filter"
	"github.com/Aidan-usc/Game-Line/internal/logger"
	"github.com/Aidan-usc/Game-Line/internal/models"
	"github.com/Aidan-usc/Game-Line/internal/oddsmath"
	"github.com/Aidan-usc/Game-Line/internal/parlay"
)

// maxListedGames caps the /games reply.
const maxListedGames = 10

var log = logger.Named("telegram")

// GameLister answers the /games command.
type GameLister interface {
	Visible(ctx context.Context, sportKey string, st filter.State) ([]models.GameEvent, error)
}

// Client handles Telegram notifications.
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
	loc            *time.Location
}

// NewClient creates a new Telegram client.
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
		loc:            time.Local,
	}, nil
}

// SetLocation sets the zone used to print kickoff times.
func (c *Client) SetLocation(loc *time.Location) {
	if loc != nil {
		c.loc = loc
	}
}

// ListenForCommands starts a goroutine that polls for Telegram updates and handles bot commands.
// It returns immediately; the goroutine stops when ctx is cancelled.
func (c *Client) ListenForCommands(ctx context.Context, games GameLister) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := c.bot.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.bot.StopReceivingUpdates()
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Message != nil && update.Message.IsCommand() {
					c.handleCommand(ctx, games, update.Message)
				}
			}
		}
	}()
}

func (c *Client) handleCommand(ctx context.Context, games GameLister, msg *tgbotapi.Message) {
	var text string
	switch msg.Command() {
	case "ping":
		text = "Pong"
	case "games":
		sport, query, _ := strings.Cut(strings.TrimSpace(msg.CommandArguments()), " ")
		if sport == "" {
			text = escapeMarkdownV2("usage: /games <sport> [team]")
			break
		}
		list, err := games.Visible(ctx, strings.ToLower(sport), filter.State{Query: query})
		if err != nil {
			text = fmt.Sprintf("⚠️ `%s`", escapeMarkdownV2(err.Error()))
			break
		}
		text = formatGames(sport, list, c.loc)
	default:
		return
	}
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ParseMode = "MarkdownV2"
	if _, err := c.bot.Send(reply); err != nil {
		log.Warn("reply to /%s failed: %v", msg.Command(), err)
	}
}

// sendMarkdownV2 sends a MarkdownV2 message with linear-backoff retry.
func (c *Client) sendMarkdownV2(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if _, err := c.bot.Send(msg); err == nil {
			return nil
		} else {
			lastErr = err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.retryDelayBase * time.Duration(i+1)):
		}
	}
	return fmt.Errorf("failed after %d retries: %w", c.maxRetries, lastErr)
}

// SendError sends an odds feed error notification.
// Call this only on the first occurrence of a consecutive error sequence.
func (c *Client) SendError(sport string, fetchErr error) error {
	return c.sendMarkdownV2(context.Background(), formatError(sport, fetchErr))
}

// SendRecovery sends a recovery notification after consecutive failures.
func (c *Client) SendRecovery(sport string, failureCount int) error {
	return c.sendMarkdownV2(context.Background(), formatRecovery(sport, failureCount))
}

// Submit announces a submitted mock parlay.
func (c *Client) Submit(ctx context.Context, r parlay.Receipt) error {
	return c.sendMarkdownV2(ctx, formatReceipt(r))
}

func formatError(sport string, err error) string {
	return fmt.Sprintf("⚠️ *%s odds feed error*\n`%s`",
		escapeMarkdownV2(strings.ToUpper(sport)), escapeMarkdownV2(err.Error()))
}

func formatRecovery(sport string, failureCount int) string {
	return fmt.Sprintf("✅ *%s odds feed recovered* after %d consecutive failure\\(s\\)",
		escapeMarkdownV2(strings.ToUpper(sport)), failureCount)
}

// formatReceipt formats a parlay receipt into a Telegram MarkdownV2 message.
func formatReceipt(r parlay.Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎟️ *%d\\-leg parlay* %s\n\n", len(r.Legs), escapeMarkdownV2(r.AmericanOdds))
	for i, leg := range r.Legs {
		odds := oddsmath.FormatAmerican(int(leg.AmericanOdds))
		fmt.Fprintf(&b, "%d\\. %s *%s*\n", i+1, escapeMarkdownV2(leg.Label), escapeMarkdownV2(odds))
		if leg.Matchup != "" {
			fmt.Fprintf(&b, "   %s\n", escapeMarkdownV2(leg.Matchup))
		}
	}
	fmt.Fprintf(&b, "\nStake %s → payout *%s*\n",
		escapeMarkdownV2(fmt.Sprintf("$%.2f", r.Stake)),
		escapeMarkdownV2(fmt.Sprintf("$%.2f", r.Payout)))
	fmt.Fprintf(&b, "`%s`", escapeMarkdownV2(r.ID))
	return b.String()
}

// formatGames lists upcoming games with their moneylines.
func formatGames(sport string, games []models.GameEvent, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏈 *%s* \\(%d games\\)\n\n", escapeMarkdownV2(strings.ToUpper(sport)), len(games))
	for i, g := range games {
		if i == maxListedGames {
			fmt.Fprintf(&b, "%s\n", escapeMarkdownV2(fmt.Sprintf("... and %d more", len(games)-maxListedGames)))
			break
		}
		when := g.StartTime.In(loc).Format("Mon 01/02 3:04PM")
		fmt.Fprintf(&b, "%s  %s\n", escapeMarkdownV2(when), escapeMarkdownV2(g.Matchup()))
		fmt.Fprintf(&b, "   ML %s / %s\n",
			escapeMarkdownV2(priceLabel(g.Moneyline.Away)), escapeMarkdownV2(priceLabel(g.Moneyline.Home)))
	}
	return b.String()
}

func priceLabel(n models.Number) string {
	v, ok := n.Get()
	if !ok {
		return "—"
	}
	return oddsmath.FormatAmerican(int(v))
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2.
func escapeMarkdownV2(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4) // pre-allocate with room for escapes
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
