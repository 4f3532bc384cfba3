package bot

import (
	"context"
	"strings"
	"time"

	"github.com/iamdew/yellostory-lunch/models"
	"github.com/iamdew/yellostory-lunch/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const replyTimeout = 10 * time.Second

// Replier answers a chat button press. *services.Service satisfies it.
type Replier interface {
	Reply(ctx context.Context, content string) (models.MessageResponse, error)
}

// Sender is the part of *tgbotapi.BotAPI the bot needs to answer.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot answers the same three lunch buttons as the Kakao endpoint on Telegram.
type Bot struct {
	api    *tgbotapi.BotAPI
	sender Sender
	lunch  Replier
	log    *zap.Logger
}

func New(token string, lunch Replier, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, sender: api, lunch: lunch, log: log}, nil
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.SetMyCommandsConfig{
		Commands: []tgbotapi.BotCommand{
			{Command: "start", Description: "점심 메뉴 버튼 보기"},
			{Command: "today", Description: services.ButtonToday},
			{Command: "tomorrow", Description: services.ButtonTomorrow},
			{Command: "dayafter", Description: services.ButtonDayAfterTomorrow},
		},
	}
	_, err := b.api.Request(cfg)
	return err
}

// Start long-polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.setBotCommands(); err != nil {
		b.log.Warn("set bot commands", zap.Error(err))
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	b.log.Info("telegram bot started", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message.Chat.ID, update.Message.Text)
		}
	}
}

// contentFor maps incoming text to a button label. Commands are shortcuts
// for the buttons; anything else is passed through unchanged.
func contentFor(text string) string {
	text = strings.TrimSpace(text)
	switch strings.SplitN(text, "@", 2)[0] {
	case "/today":
		return services.ButtonToday
	case "/tomorrow":
		return services.ButtonTomorrow
	case "/dayafter":
		return services.ButtonDayAfterTomorrow
	}
	return text
}

func (b *Bot) handleMessage(ctx context.Context, chatID int64, text string) {
	if strings.HasPrefix(strings.TrimSpace(text), "/start") {
		msg := tgbotapi.NewMessage(chatID, "궁금한 날을 골라주세요.")
		msg.ReplyMarkup = replyKeyboard(services.Keyboard())
		b.send(msg)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, replyTimeout)
	defer cancel()
	resp, err := b.lunch.Reply(ctx, contentFor(text))
	if err != nil {
		b.log.Error("lunch reply", zap.Int64("chat_id", chatID), zap.Error(err))
		b.send(tgbotapi.NewMessage(chatID, "잠시 후 다시 시도해주세요."))
		return
	}
	b.send(buildReply(chatID, resp))
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.sender.Send(msg); err != nil {
		b.log.Warn("send error", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
}

// buildReply turns a chat reply into a Telegram message. The registration
// link becomes an inline URL button; otherwise the button keyboard is kept.
func buildReply(chatID int64, resp models.MessageResponse) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, resp.Message.Text)
	if btn := resp.Message.MessageButton; btn != nil {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(btn.Label, btn.URL)),
		)
		return msg
	}
	msg.ReplyMarkup = replyKeyboard(resp.Keyboard)
	return msg
}

func replyKeyboard(kb models.Keyboard) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Buttons))
	for _, label := range kb.Buttons {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(label)))
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}
