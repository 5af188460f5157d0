package sqlite

import (
	"context"
	"database/sql"
	"phm/internal/model"
)

type ChatsRepo struct {
	db *sql.DB
}

func NewChatsRepo(db *sql.DB) *ChatsRepo {
	return &ChatsRepo{db}
}

func (s *ChatsRepo) AddChat(ctx context.Context, chat model.Chat) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO chats (id, is_subscribed)
		VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET is_subscribed = excluded.is_subscribed`,
		chat.Id, chat.IsSubscribed,
	)
	return err
}

func (s *ChatsRepo) UpdateChat(ctx context.Context, chat model.Chat) error {
	_, err := s.db.ExecContext(
		ctx,
		"UPDATE chats SET is_subscribed = ? WHERE id = ?",
		chat.IsSubscribed, chat.Id,
	)
	return err
}

func (s *ChatsRepo) GetAllSubscribedChats(ctx context.Context) ([]model.Chat, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT id FROM chats WHERE is_subscribed = TRUE ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []model.Chat
	for rows.Next() {
		chat := model.Chat{IsSubscribed: true}

		err = rows.Scan(&chat.Id)
		if err != nil {
			return nil, err
		}

		chats = append(chats, chat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return chats, nil
}
