package bot

import (
	"context"
	"errors"
	"testing"

	"github.com/iamdew/yellostory-lunch/models"
	"github.com/iamdew/yellostory-lunch/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

type replierFunc func(ctx context.Context, content string) (models.MessageResponse, error)

func (f replierFunc) Reply(ctx context.Context, content string) (models.MessageResponse, error) {
	return f(ctx, content)
}

func newTestBot(r Replier) (*Bot, *fakeSender) {
	s := &fakeSender{}
	return &Bot{sender: s, lunch: r, log: zap.NewNop()}, s
}

func TestContentFor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/today", services.ButtonToday},
		{"/tomorrow@lunch_bot", services.ButtonTomorrow},
		{"/dayafter", services.ButtonDayAfterTomorrow},
		{"  오늘의 점심 메뉴 ", services.ButtonToday},
		{"hello", "hello"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, contentFor(tt.in), "contentFor(%q)", tt.in)
	}
}

func TestHandleMessage_Start(t *testing.T) {
	b, sender := newTestBot(replierFunc(func(context.Context, string) (models.MessageResponse, error) {
		t.Fatal("reply must not be called for /start")
		return models.MessageResponse{}, nil
	}))

	b.handleMessage(context.Background(), 42, "/start")
	require.Len(t, sender.sent, 1)
	kb, ok := sender.sent[0].ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.Keyboard, 3)
	assert.Equal(t, services.ButtonDayAfterTomorrow, kb.Keyboard[2][0].Text)
}

func TestHandleMessage_Reply(t *testing.T) {
	var got string
	b, sender := newTestBot(replierFunc(func(_ context.Context, content string) (models.MessageResponse, error) {
		got = content
		return models.MessageResponse{
			Message:  models.Message{Text: "3월 8일 (금) / 밥도\n\n카레"},
			Keyboard: services.Keyboard(),
		}, nil
	}))

	b.handleMessage(context.Background(), 7, "/today")
	assert.Equal(t, services.ButtonToday, got)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(7), sender.sent[0].ChatID)
	assert.Equal(t, "3월 8일 (금) / 밥도\n\n카레", sender.sent[0].Text)
	_, ok := sender.sent[0].ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	assert.True(t, ok)
}

func TestHandleMessage_RegisterLink(t *testing.T) {
	b, sender := newTestBot(replierFunc(func(context.Context, string) (models.MessageResponse, error) {
		return models.MessageResponse{
			Message: models.Message{
				Text:          services.NoMenuText,
				MessageButton: &models.MessageButton{Label: services.RegisterButton, URL: "http://example.test"},
			},
			Keyboard: services.Keyboard(),
		}, nil
	}))

	b.handleMessage(context.Background(), 1, services.ButtonToday)
	require.Len(t, sender.sent, 1)
	markup, ok := sender.sent[0].ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	btn := markup.InlineKeyboard[0][0]
	assert.Equal(t, services.RegisterButton, btn.Text)
	require.NotNil(t, btn.URL)
	assert.Equal(t, "http://example.test", *btn.URL)
}

func TestHandleMessage_ReplyError(t *testing.T) {
	b, sender := newTestBot(replierFunc(func(context.Context, string) (models.MessageResponse, error) {
		return models.MessageResponse{}, errors.New("db down")
	}))

	b.handleMessage(context.Background(), 1, services.ButtonToday)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "잠시 후 다시 시도해주세요.", sender.sent[0].Text)
}

func TestHandleMessage_WithService(t *testing.T) {
	b, sender := newTestBot(services.NewService(services.NewMemStore()))

	b.handleMessage(context.Background(), 1, "random text")
	require.Len(t, sender.sent, 1)
	assert.Equal(t, services.NoMenuText, sender.sent[0].Text)
}
