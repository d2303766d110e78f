package repository

import (
	"context"

	"gorm.io/gorm"
	"support-desk-api/entity"
	"support-desk-api/enum"
)

type ChatRepository struct {
	Repository[entity.Chat]
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{}
}

func (repository ChatRepository) SaveParticipants(ctx context.Context, db *gorm.DB, chatID uint, userIDs []uint) error {
	participants := make([]entity.ChatParticipant, 0, len(userIDs))
	for _, userID := range userIDs {
		participants = append(participants, entity.ChatParticipant{ChatID: chatID, UserID: userID})
	}
	return db.WithContext(ctx).Create(&participants).Error
}

func (repository ChatRepository) FindCustomerAgentChats(ctx context.Context, db *gorm.DB) ([]entity.Chat, error) {
	var chats []entity.Chat
	err := db.WithContext(ctx).
		Where("chat_type = ?", enum.CustomerToAgent).
		Preload("Participants.User").
		Preload("ChatDetails.Category").
		Order("id DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

// FindTeamChats returns the team chats adminID takes part in and every group
// chat. The admin's own participant row is left out of each chat.
func (repository ChatRepository) FindTeamChats(ctx context.Context, db *gorm.DB, adminID uint) ([]entity.Chat, error) {
	memberOf := db.WithContext(ctx).
		Model(&entity.ChatParticipant{}).
		Select("chat_id").
		Where("user_id = ?", adminID)

	var chats []entity.Chat
	err := db.WithContext(ctx).
		Where("(chat_type = ? AND id IN (?)) OR chat_type = ?", enum.TeamChat, memberOf, enum.GroupChat).
		Preload("ChatGroup").
		Preload("Participants", "user_id <> ?", adminID).
		Preload("Participants.User").
		Order("id DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

// FindLatestMessages returns the most recent message of each chat, keyed by
// chat id. Chats without messages are absent.
func (repository ChatRepository) FindLatestMessages(ctx context.Context, db *gorm.DB, chatIDs []uint) (map[uint]entity.Message, error) {
	latest := make(map[uint]entity.Message, len(chatIDs))
	if len(chatIDs) == 0 {
		return latest, nil
	}

	newest := db.WithContext(ctx).
		Model(&entity.Message{}).
		Select("MAX(id)").
		Where("chat_id IN ?", chatIDs).
		Group("chat_id")

	var messages []entity.Message
	if err := db.WithContext(ctx).Where("id IN (?)", newest).Find(&messages).Error; err != nil {
		return nil, err
	}
	for _, message := range messages {
		latest[message.ChatID] = message
	}
	return latest, nil
}

// FindPendingChatForParticipant loads a chat whose details are pending and
// which has userID among its participants, with every participant's user and
// agent profile.
func (repository ChatRepository) FindPendingChatForParticipant(ctx context.Context, db *gorm.DB, chatID, userID uint) (*entity.Chat, error) {
	pending := db.WithContext(ctx).
		Model(&entity.ChatDetails{}).
		Select("chat_id").
		Where("status = ?", enum.ChatStatusPending)
	joined := db.WithContext(ctx).
		Model(&entity.ChatParticipant{}).
		Select("chat_id").
		Where("user_id = ?", userID)

	var chat entity.Chat
	err := db.WithContext(ctx).
		Where("id = ?", chatID).
		Where("id IN (?)", pending).
		Where("id IN (?)", joined).
		Preload("Participants.User.Agent").
		Take(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}
