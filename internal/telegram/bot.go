package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the part of tgbotapi.BotAPI the bot uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api    sender
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// RunSummary is what a finished run reports.
type RunSummary struct {
	Source      string
	Vacancies   int
	Expansions  int
	FailedPages int
	Stalled     bool
	OutputPath  string
}

func (s RunSummary) text() string {
	msgText := fmt.Sprintf("✅ *%s*: %d vacancies\n", escapeMarkdown(s.Source), s.Vacancies)
	msgText += fmt.Sprintf("➕ Load more clicks: %d\n", s.Expansions)
	if s.Stalled {
		msgText += "⚠️ Pagination stalled before the button disappeared\n"
	}
	if s.FailedPages > 0 {
		msgText += fmt.Sprintf("⚠️ Detail pages failed: %d\n", s.FailedPages)
	}
	msgText += fmt.Sprintf("📁 %s\n", escapeMarkdown(s.OutputPath))
	return msgText
}

func (b *Bot) SendSummary(s RunSummary) error {
	msg := tgbotapi.NewMessage(b.chatID, s.text())
	msg.ParseMode = "MarkdownV2"
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(stage string, err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ %s failed: %v", stage, err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
