package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"phm/internal/broker"
	"phm/internal/config"
	"phm/internal/lib/sl"
	"phm/internal/model"
	"phm/internal/service"
	"syscall"

	"golang.org/x/sync/errgroup"

	"gopkg.in/telebot.v4"
)

type messageSender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

type TGBot struct {
	bot    *telebot.Bot
	sender messageSender
	broker broker.MessageBroker
	chats  *service.ChatsService
	config config.TelegramBotConfig
}

func New(
	broker broker.MessageBroker,
	chats *service.ChatsService,
	config config.TelegramBotConfig,
) (*TGBot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  config.Token,
		Poller: &telebot.LongPoller{Timeout: config.PollTimeout},
	})
	if err != nil {
		return nil, err
	}

	t := &TGBot{
		bot:    bot,
		sender: bot,
		broker: broker,
		chats:  chats,
		config: config,
	}

	bot.Handle("/start", t.startCommand)
	bot.Handle("/subscribe", t.subscribeCommand)
	bot.Handle("/unsubscribe", t.unsubscribeCommand)

	return t, nil
}

func (t *TGBot) Start() {
	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	alerts, err := t.broker.ConsumeAlerts(ctx)
	if err != nil {
		slog.Error("failed to register a consumer for alerts", sl.Error(err))
		return
	}

	g.Go(func() error {
		return t.handleAlerts(ctx, alerts)
	})

	g.Go(func() error {
		t.bot.Start()
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		t.bot.Stop()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("error from telegram bot", sl.Error(err))
	}
}

func (t *TGBot) handleAlerts(ctx context.Context, alerts <-chan model.Alert) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case alert, ok := <-alerts:
			if !ok {
				return fmt.Errorf("queue with alerts was closed")
			}
			if err := t.Notify(ctx, alert); err != nil {
				return fmt.Errorf("failed to handle alert: %w", err)
			}
		}
	}
}

// Notify forwards the alert to every subscribed chat. A chat that cannot
// be reached is logged and skipped.
func (t *TGBot) Notify(ctx context.Context, alert model.Alert) error {
	chats, err := t.chats.GetAllSubscribedChats(ctx)
	if err != nil {
		return err
	}

	for _, c := range chats {
		slog.Info("sending alert to subscriber", slog.Int64("chat_id", c.Id), sl.Alert(alert))
		if _, err := t.sender.Send(telebot.ChatID(c.Id), alert.Message); err != nil {
			slog.Error("failed to send alert to chat", slog.Int64("chat_id", c.Id), sl.Error(err))
		}
	}

	return nil
}

func (t *TGBot) startCommand(c telebot.Context) error {
	slog.Info("start command", slog.Int64("chat_id", c.Chat().ID))
	return c.Send(`Patient Health Monitor Bot
Commands:
/subscribe - receive patient alerts
/unsubscribe - stop receiving patient alerts
`)
}

func (t *TGBot) subscribeCommand(c telebot.Context) error {
	slog.Info("subscribe command", slog.Int64("chat_id", c.Chat().ID))

	if err := t.chats.SubscribeChat(context.Background(), c.Chat().ID); err != nil {
		slog.Error("failed to add chat", slog.String("command", "subscribe"), sl.Error(err))
		return nil
	}

	return c.Send("Successful!")
}

func (t *TGBot) unsubscribeCommand(c telebot.Context) error {
	slog.Info("unsubscribe command", slog.Int64("chat_id", c.Chat().ID))

	if err := t.chats.UnsubscribeChat(context.Background(), c.Chat().ID); err != nil {
		slog.Error("failed to unsubscribe chat", slog.String("command", "unsubscribe"), sl.Error(err))
		return nil
	}

	return c.Send("Successful!")
}
