// Package testutil opens throwaway databases and seeds the rows the usecase
// and HTTP tests share.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"support-desk-api/config/common"
	"support-desk-api/entity"
	"support-desk-api/enum"
)

// NewDB opens an in-memory SQLite database private to t, migrated with every
// entity and using the production naming strategy.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	cfg := common.GormConfig()
	cfg.Logger = logger.Discard
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		t.Fatalf("gorm.Open() error: %v", err)
	}
	conn, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB() error: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.AutoMigrate(entity.All()...); err != nil {
		t.Fatalf("AutoMigrate() error: %v", err)
	}
	return db
}

// SeedUser inserts a user with the given role. Agents also get an agent
// profile, with id agentID when it is non-zero.
func SeedUser(t testing.TB, db *gorm.DB, username string, role enum.UserRole, agentID uint) *entity.User {
	t.Helper()

	user := &entity.User{
		Username:  username,
		Firstname: strings.ToUpper(username[:1]) + username[1:],
		Lastname:  "Test",
		Email:     username + "@example.com",
		Password:  "$2a$10$invalidhashforfixtures000000000000000000000000000000",
		Role:      role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	if role == enum.RoleAgent {
		agent := &entity.Agent{UserID: user.ID}
		agent.ID = agentID
		if err := db.Create(agent).Error; err != nil {
			t.Fatalf("seed agent for %q: %v", username, err)
		}
		user.Agent = agent
	}
	return user
}

type References struct {
	DepartmentID  uint
	CategoryID    uint
	SubCategoryID uint
	CountryID     uint
}

func SeedReferences(t testing.TB, db *gorm.DB) References {
	t.Helper()

	department := &entity.Department{Title: "Gift Cards"}
	if err := db.Create(department).Error; err != nil {
		t.Fatalf("seed department: %v", err)
	}
	category := &entity.Category{DepartmentID: department.ID, Title: "Amazon"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	subCategory := &entity.SubCategory{CategoryID: category.ID, Title: "E-code"}
	if err := db.Create(subCategory).Error; err != nil {
		t.Fatalf("seed sub-category: %v", err)
	}
	country := &entity.Country{Title: "United States", Code: "US"}
	if err := db.Create(country).Error; err != nil {
		t.Fatalf("seed country: %v", err)
	}
	return References{
		DepartmentID:  department.ID,
		CategoryID:    category.ID,
		SubCategoryID: subCategory.ID,
		CountryID:     country.ID,
	}
}

// SeedCustomerChat inserts a customer_to_agent chat with the given id, status
// and participants.
func SeedCustomerChat(t testing.TB, db *gorm.DB, id uint, status enum.ChatStatus, userIDs ...uint) *entity.Chat {
	t.Helper()

	chat := &entity.Chat{
		ChatType:    enum.CustomerToAgent,
		ChatDetails: &entity.ChatDetails{Status: status},
	}
	chat.ID = id
	for _, userID := range userIDs {
		chat.Participants = append(chat.Participants, entity.ChatParticipant{UserID: userID})
	}
	if err := db.Create(chat).Error; err != nil {
		t.Fatalf("seed chat %d: %v", id, err)
	}
	return chat
}

// SeedChat inserts a chat of any type with participants.
func SeedChat(t testing.TB, db *gorm.DB, chatType enum.ChatType, userIDs ...uint) *entity.Chat {
	t.Helper()

	chat := &entity.Chat{ChatType: chatType}
	for _, userID := range userIDs {
		chat.Participants = append(chat.Participants, entity.ChatParticipant{UserID: userID})
	}
	if err := db.Create(chat).Error; err != nil {
		t.Fatalf("seed %s chat: %v", chatType, err)
	}
	return chat
}

// ParticipantUserIDs lists the user ids taking part in chatID, in insertion
// order.
func ParticipantUserIDs(t testing.TB, db *gorm.DB, chatID uint) []uint {
	t.Helper()

	var userIDs []uint
	err := db.Model(&entity.ChatParticipant{}).
		Where("chat_id = ?", chatID).
		Order("id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		t.Fatalf("participants of chat %d: %v", chatID, err)
	}
	return userIDs
}

func Count(t testing.TB, db *gorm.DB, model any) int64 {
	t.Helper()

	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return count
}

type Notification struct {
	Key      string
	Data     any
	Audience []uint
}

// RecordingNotifier keeps every notification in memory.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []Notification
}

func (n *RecordingNotifier) Notify(_ context.Context, key string, data any, audience ...uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, Notification{Key: key, Data: data, Audience: audience})
}

func (n *RecordingNotifier) Events() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.events...)
}
