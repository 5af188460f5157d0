package service

import (
	"context"
	"phm/internal/config"
	"phm/internal/model"
	"phm/internal/repository"
)

type ChatsService struct {
	chats  repository.ChatsProvider
	config config.CommonConfig
}

func NewChatsService(chats repository.ChatsProvider, config config.CommonConfig) *ChatsService {
	return &ChatsService{
		chats:  chats,
		config: config,
	}
}

// SubscribeChat also registers chats seen for the first time.
func (c *ChatsService) SubscribeChat(ctx context.Context, chatId int64) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.DbQueryTimeout)
	defer cancel()

	return c.chats.AddChat(ctx, model.Chat{Id: chatId, IsSubscribed: true})
}

func (c *ChatsService) UnsubscribeChat(ctx context.Context, chatId int64) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.DbQueryTimeout)
	defer cancel()

	return c.chats.UpdateChat(ctx, model.Chat{Id: chatId, IsSubscribed: false})
}

func (c *ChatsService) GetAllSubscribedChats(ctx context.Context) ([]model.Chat, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.DbQueryTimeout)
	defer cancel()

	return c.chats.GetAllSubscribedChats(ctx)
}
