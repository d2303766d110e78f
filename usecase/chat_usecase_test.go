package usecase

import (
	"context"
	"net/http"
	"testing"

	"gorm.io/gorm"
	"support-desk-api/config/common"
	"support-desk-api/config/logger"
	"support-desk-api/dto/req"
	"support-desk-api/entity"
	"support-desk-api/enum"
	"support-desk-api/event"
	"support-desk-api/repository"
	"support-desk-api/testutil"
)

func newChatUsecase(db *gorm.DB, notifier EventNotifier) *ChatUsecaseImpl {
	return NewChatUsecase(
		repository.NewChatRepository(),
		repository.NewAgentRepository(),
		common.NewValidator(),
		db,
		logger.NewNopLogger(),
		notifier,
	)
}

func TestCreateChatGroup(t *testing.T) {
	db := testutil.NewDB(t)
	notifier := &testutil.RecordingNotifier{}
	uc := newChatUsecase(db, notifier)

	admin := testutil.SeedUser(t, db, "admin", enum.RoleAdmin, 0)
	agent := testutil.SeedUser(t, db, "tunde", enum.RoleAgent, 7)

	response, err := uc.CreateChatGroup(context.Background(), admin, &req.CreateChatGroupRequest{
		GroupName:    "Ops",
		Participants: []req.ParticipantRef{{ID: 7}},
	})
	if err != nil {
		t.Fatalf("CreateChatGroup() error: %v", err)
	}

	if response.ChatType != string(enum.GroupChat) || response.GroupName != "Ops" || response.AdminID != admin.ID {
		t.Errorf("response = %+v", response)
	}
	if got := testutil.Count(t, db, &entity.Chat{}); got != 1 {
		t.Errorf("chats = %d, want 1", got)
	}
	if got := testutil.Count(t, db, &entity.ChatGroup{}); got != 1 {
		t.Errorf("chat groups = %d, want 1", got)
	}

	userIDs := testutil.ParticipantUserIDs(t, db, response.ID)
	if len(userIDs) != 2 || userIDs[0] != agent.ID || userIDs[1] != admin.ID {
		t.Errorf("participants = %v, want [%d %d]", userIDs, agent.ID, admin.ID)
	}

	events := notifier.Events()
	if len(events) != 1 || events[0].Key != event.ChatGroupCreated {
		t.Fatalf("events = %+v, want one %s", events, event.ChatGroupCreated)
	}
	if len(events[0].Audience) != 2 {
		t.Errorf("audience = %v, want both members", events[0].Audience)
	}
}

func TestCreateChatGroupCollapsesDuplicates(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newChatUsecase(db, &testutil.RecordingNotifier{})

	admin := testutil.SeedUser(t, db, "admin", enum.RoleAdmin, 0)
	testutil.SeedUser(t, db, "tunde", enum.RoleAgent, 7)
	testutil.SeedUser(t, db, "ngozi", enum.RoleAgent, 8)

	response, err := uc.CreateChatGroup(context.Background(), admin, &req.CreateChatGroupRequest{
		GroupName:    "Night shift",
		Participants: []req.ParticipantRef{{ID: 7}, {ID: 8}, {ID: 7}},
	})
	if err != nil {
		t.Fatalf("CreateChatGroup() error: %v", err)
	}
	if len(response.MemberIDs) != 3 {
		t.Errorf("members = %v, want two agents and the admin", response.MemberIDs)
	}
	if got := testutil.Count(t, db, &entity.ChatParticipant{}); got != 3 {
		t.Errorf("participants = %d, want 3", got)
	}
}

func TestCreateChatGroupRejected(t *testing.T) {
	tests := []struct {
		name       string
		role       enum.UserRole
		request    req.CreateChatGroupRequest
		wantStatus int
		wantField  string
	}{
		{
			name:       "agent caller",
			role:       enum.RoleAgent,
			request:    req.CreateChatGroupRequest{GroupName: "Ops", Participants: []req.ParticipantRef{{ID: 7}}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "customer caller",
			role:       enum.RoleCustomer,
			request:    req.CreateChatGroupRequest{GroupName: "Ops", Participants: []req.ParticipantRef{{ID: 7}}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown agent",
			role:       enum.RoleAdmin,
			request:    req.CreateChatGroupRequest{GroupName: "Ops", Participants: []req.ParticipantRef{{ID: 7}, {ID: 99}}},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:      "missing group name",
			role:      enum.RoleAdmin,
			request:   req.CreateChatGroupRequest{Participants: []req.ParticipantRef{{ID: 7}}},
			wantField: "groupName",
		},
		{
			name:      "empty participants",
			role:      enum.RoleAdmin,
			request:   req.CreateChatGroupRequest{GroupName: "Ops", Participants: []req.ParticipantRef{}},
			wantField: "participants",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.NewDB(t)
			notifier := &testutil.RecordingNotifier{}
			uc := newChatUsecase(db, notifier)

			var agentID uint
			if tt.role == enum.RoleAgent {
				agentID = 1
			}
			caller := testutil.SeedUser(t, db, "caller", tt.role, agentID)
			testutil.SeedUser(t, db, "tunde", enum.RoleAgent, 7)

			_, err := uc.CreateChatGroup(context.Background(), caller, &tt.request)
			if tt.wantField != "" {
				assertInvalidField(t, err, tt.wantField)
			} else {
				assertStatus(t, err, tt.wantStatus)
			}

			for _, model := range []any{&entity.Chat{}, &entity.ChatGroup{}, &entity.ChatParticipant{}} {
				if got := testutil.Count(t, db, model); got != 0 {
					t.Errorf("%T rows = %d, want 0", model, got)
				}
			}
			if events := notifier.Events(); len(events) != 0 {
				t.Errorf("events = %+v, want none", events)
			}
		})
	}
}

func TestGetTeamChats(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newChatUsecase(db, &testutil.RecordingNotifier{})
	ctx := context.Background()

	admin := testutil.SeedUser(t, db, "admin", enum.RoleAdmin, 0)
	otherAdmin := testutil.SeedUser(t, db, "bola", enum.RoleAdmin, 0)
	agent := testutil.SeedUser(t, db, "tunde", enum.RoleAgent, 7)

	group, err := uc.CreateChatGroup(ctx, admin, &req.CreateChatGroupRequest{
		GroupName:    "Ops",
		Participants: []req.ParticipantRef{{ID: 7}},
	})
	if err != nil {
		t.Fatalf("CreateChatGroup() error: %v", err)
	}
	team := testutil.SeedChat(t, db, enum.TeamChat, admin.ID, agent.ID)
	testutil.SeedChat(t, db, enum.TeamChat, otherAdmin.ID, agent.ID)
	testutil.SeedChat(t, db, enum.CustomerToAgent, agent.ID)

	for _, content := range []string{"first", "latest"} {
		message := &entity.Message{ChatID: team.ID, SenderID: agent.ID, Content: content}
		if err := db.Create(message).Error; err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	chats, err := uc.GetTeamChats(ctx, admin)
	if err != nil {
		t.Fatalf("GetTeamChats() error: %v", err)
	}
	if len(chats) != 2 {
		t.Fatalf("chats = %d, want the group chat and the admin's team chat", len(chats))
	}

	// newest first
	if chats[0].ID != team.ID || chats[1].ID != group.ID {
		t.Fatalf("chat ids = [%d %d], want [%d %d]", chats[0].ID, chats[1].ID, team.ID, group.ID)
	}
	if len(chats[0].Messages) != 1 || chats[0].Messages[0].Content != "latest" {
		t.Errorf("team chat messages = %+v, want only the latest", chats[0].Messages)
	}
	if chats[1].GroupName != "Ops" || len(chats[1].Messages) != 0 {
		t.Errorf("group chat = %+v", chats[1])
	}
	for _, chat := range chats {
		for _, participant := range chat.Participants {
			if participant.User.ID == admin.ID {
				t.Errorf("chat %d lists the requesting admin as a participant", chat.ID)
			}
		}
		if len(chat.Participants) != 1 || chat.Participants[0].User.Username != "tunde" {
			t.Errorf("chat %d participants = %+v", chat.ID, chat.Participants)
		}
	}

	if _, err := uc.GetTeamChats(ctx, agent); err == nil {
		t.Fatal("GetTeamChats() by an agent succeeded")
	}
}

func TestGetCustomerAgentChats(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newChatUsecase(db, &testutil.RecordingNotifier{})
	ctx := context.Background()

	admin := testutil.SeedUser(t, db, "admin", enum.RoleAdmin, 0)
	agent := testutil.SeedUser(t, db, "tunde", enum.RoleAgent, 7)
	customer := testutil.SeedUser(t, db, "chidi", enum.RoleCustomer, 0)

	testutil.SeedCustomerChat(t, db, 42, enum.ChatStatusPending, agent.ID, customer.ID)
	testutil.SeedChat(t, db, enum.TeamChat, admin.ID, agent.ID)

	chats, err := uc.GetCustomerAgentChats(ctx, admin)
	if err != nil {
		t.Fatalf("GetCustomerAgentChats() error: %v", err)
	}
	if len(chats) != 1 || chats[0].ID != 42 {
		t.Fatalf("chats = %+v, want only chat 42", chats)
	}
	if len(chats[0].Participants) != 2 {
		t.Errorf("participants = %+v, want agent and customer", chats[0].Participants)
	}
	if chats[0].ChatDetails == nil || chats[0].ChatDetails.Status != string(enum.ChatStatusPending) {
		t.Errorf("details = %+v", chats[0].ChatDetails)
	}

	_, err = uc.GetCustomerAgentChats(ctx, customer)
	assertStatus(t, err, http.StatusUnauthorized)
}
