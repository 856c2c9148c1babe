package reporter

import (
	"fmt"
	"strings"

	"go-jobradar-automation/internal/config"
	"go-jobradar-automation/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramReporter pushes run summaries and error notices to a chat. Send
// failures are the caller's to log; reporting never fails a crawl.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

// SendRunSummary reports one finished crawl run: totals, new-after-dedup
// count and a per-platform breakdown.
func (t *TelegramReporter) SendRunSummary(scraped, inserted []models.Record) error {
	perPlatform := make(map[string]int)
	for _, rec := range inserted {
		perPlatform[rec.Source.Platform]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔎 <b>Crawl finished</b>\n")
	fmt.Fprintf(&b, "Scraped: %d\n", len(scraped))
	fmt.Fprintf(&b, "New: %d\n", len(inserted))
	for platform, n := range perPlatform {
		fmt.Fprintf(&b, "  • %s: %d\n", platform, n)
	}
	return t.SendMessage(b.String())
}

func (t *TelegramReporter) SendError(errReq error) error {
	return t.SendMessage(fmt.Sprintf("⚠️ <b>JobRadar Error</b>:\n%v", errReq))
}
