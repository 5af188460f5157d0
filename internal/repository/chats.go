package repository

import (
	"context"
	"phm/internal/model"
)

type ChatsProvider interface {
	AddChat(ctx context.Context, chat model.Chat) error
	UpdateChat(ctx context.Context, chat model.Chat) error
	GetAllSubscribedChats(ctx context.Context) ([]model.Chat, error)
}
