package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"phm/internal/config"
	"phm/internal/db"
	"phm/internal/model"
	"phm/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v4"
)

type sentMessage struct {
	chat string
	text string
}

type fakeSender struct {
	sent    []sentMessage
	failFor string
}

func (f *fakeSender) Send(to telebot.Recipient, what interface{}, _ ...interface{}) (*telebot.Message, error) {
	if to.Recipient() == f.failFor {
		return nil, errors.New("bot was blocked by the user")
	}
	f.sent = append(f.sent, sentMessage{chat: to.Recipient(), text: what.(string)})
	return &telebot.Message{}, nil
}

func newTestBot(t *testing.T, sender *fakeSender) *TGBot {
	t.Helper()

	database, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	common := config.CommonConfig{DbQueryTimeout: time.Second}
	return &TGBot{
		sender: sender,
		chats:  service.NewChatsService(database.ChatsRepo(), common),
		config: config.TelegramBotConfig{CommonConfig: common},
	}
}

func TestTGBot_Notify(t *testing.T) {
	sender := &fakeSender{}
	bot := newTestBot(t, sender)
	ctx := context.Background()

	require.NoError(t, bot.chats.SubscribeChat(ctx, 10))
	require.NoError(t, bot.chats.SubscribeChat(ctx, 20))
	require.NoError(t, bot.chats.SubscribeChat(ctx, 30))
	require.NoError(t, bot.chats.UnsubscribeChat(ctx, 20))

	alert := model.Alert{Message: "Warning, patient with id: 1, need help", Time: time.Now()}
	require.NoError(t, bot.Notify(ctx, alert))

	assert.Equal(t, []sentMessage{
		{chat: "10", text: alert.Message},
		{chat: "30", text: alert.Message},
	}, sender.sent)
}

func TestTGBot_Notify_SkipsUnreachableChat(t *testing.T) {
	sender := &fakeSender{failFor: "10"}
	bot := newTestBot(t, sender)
	ctx := context.Background()

	require.NoError(t, bot.chats.SubscribeChat(ctx, 10))
	require.NoError(t, bot.chats.SubscribeChat(ctx, 30))

	require.NoError(t, bot.Notify(ctx, model.Alert{Message: "hello"}))
	assert.Equal(t, []sentMessage{{chat: "30", text: "hello"}}, sender.sent)
}

func TestTGBot_HandleAlerts(t *testing.T) {
	sender := &fakeSender{}
	bot := newTestBot(t, sender)
	ctx := context.Background()
	require.NoError(t, bot.chats.SubscribeChat(ctx, 10))

	alerts := make(chan model.Alert, 2)
	alerts <- model.Alert{Message: "first"}
	alerts <- model.Alert{Message: "second"}
	close(alerts)

	err := bot.handleAlerts(ctx, alerts)
	assert.EqualError(t, err, "queue with alerts was closed")
	assert.Equal(t, []sentMessage{
		{chat: "10", text: "first"},
		{chat: "10", text: "second"},
	}, sender.sent)
}
