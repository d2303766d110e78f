package config

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"support-desk-api/config/common"
	"support-desk-api/config/logger"
	"support-desk-api/dto/res"
	"support-desk-api/entity"
	"support-desk-api/enum"
	"support-desk-api/event"
	"support-desk-api/security"
	"support-desk-api/testutil"
)

type testServer struct {
	app *fiber.App
	db  *gorm.DB
	jwt *security.JWT
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	v := viper.New()
	v.Set("JWT_SECRET", "http-test-secret")
	cfg := common.NewConfig(v)

	log := logrus.New()
	log.SetOutput(io.Discard)

	server := &testServer{
		app: NewFiber(cfg, log),
		db:  testutil.NewDB(t),
		jwt: security.NewJWT(cfg),
	}
	notifier := App(&AppConfig{
		App:       server.app,
		Validate:  common.NewValidator(),
		Logger:    log,
		Config:    cfg,
		JWT:       server.jwt,
		DB:        server.db,
		AppLogger: logger.NewNopLogger(),
		Publisher: event.NopPublisher{},
	})
	t.Cleanup(func() { notifier.Close() })
	return server
}

func (s *testServer) token(t *testing.T, user *entity.User) string {
	t.Helper()

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	return token
}

// do sends the request and decodes the JSON body into out when out is non-nil.
func (s *testServer) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal() error: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := s.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s error: %v", method, path, err)
	}
	defer response.Body.Close()

	if out != nil {
		if err := json.NewDecoder(response.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return response.StatusCode
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	server := newTestServer(t)
	agent := testutil.SeedUser(t, server.db, "tunde", enum.RoleAgent, 7)
	customer := testutil.SeedUser(t, server.db, "chidi", enum.RoleCustomer, 0)

	tests := []struct {
		name    string
		method  string
		path    string
		token   string
		status  int
		message string
	}{
		{"no token", http.MethodGet, "/api/v1/admin/chats/team", "", http.StatusUnauthorized, "Token is not valid"},
		{"forged token", http.MethodGet, "/api/v1/admin/chats/team", "not.a.jwt", http.StatusUnauthorized, "Token is not valid"},
		{"agent on admin route", http.MethodGet, "/api/v1/admin/chats/team", server.token(t, agent), http.StatusUnauthorized, "You are not authorized"},
		{"customer on admin route", http.MethodPost, "/api/v1/admin/chats/groups", server.token(t, customer), http.StatusUnauthorized, "You are not authorized"},
		{"customer on agent route", http.MethodPost, "/api/v1/agent/transactions/card", server.token(t, customer), http.StatusUnauthorized, "You are not authorized"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body res.ErrorResponse
			status := server.do(t, tt.method, tt.path, tt.token, map[string]any{}, &body)
			if status != tt.status || body.Status != tt.status {
				t.Errorf("status = %d (body %d), want %d", status, body.Status, tt.status)
			}
			if body.Message != tt.message {
				t.Errorf("message = %q, want %q", body.Message, tt.message)
			}
		})
	}
}

func TestCreateGroupThenListTeamChats(t *testing.T) {
	server := newTestServer(t)
	admin := testutil.SeedUser(t, server.db, "admin", enum.RoleAdmin, 0)
	testutil.SeedUser(t, server.db, "tunde", enum.RoleAgent, 7)
	token := server.token(t, admin)

	var created res.CommonResponse[res.ChatGroupResponse]
	status := server.do(t, http.MethodPost, "/api/v1/admin/chats/groups", token, map[string]any{
		"groupName":    "Ops",
		"participants": []map[string]any{{"id": 7}},
	}, &created)
	if status != http.StatusCreated || created.Status != http.StatusCreated {
		t.Fatalf("create status = %d (body %d), want 201", status, created.Status)
	}
	if created.Data.ChatType != string(enum.GroupChat) || len(created.Data.MemberIDs) != 2 {
		t.Errorf("created = %+v", created.Data)
	}

	var listed res.CommonResponse[[]res.TeamChatResponse]
	if status := server.do(t, http.MethodGet, "/api/v1/admin/chats/team", token, nil, &listed); status != http.StatusOK {
		t.Fatalf("list status = %d, want 200", status)
	}
	if len(listed.Data) != 1 || listed.Data[0].ID != created.Data.ID || listed.Data[0].GroupName != "Ops" {
		t.Fatalf("team chats = %+v", listed.Data)
	}
	if participants := listed.Data[0].Participants; len(participants) != 1 || participants[0].User.Username != "tunde" {
		t.Errorf("participants = %+v, want only the agent", participants)
	}
}

func TestCreateGroupValidationDetails(t *testing.T) {
	server := newTestServer(t)
	admin := testutil.SeedUser(t, server.db, "admin", enum.RoleAdmin, 0)

	var body struct {
		Status  int              `json:"status"`
		Message string           `json:"message"`
		Details []res.FieldError `json:"details"`
	}
	status := server.do(t, http.MethodPost, "/api/v1/admin/chats/groups", server.token(t, admin), map[string]any{
		"participants": []map[string]any{{"id": 7}},
	}, &body)
	if status != http.StatusBadRequest || body.Message != "Missing required fields" {
		t.Fatalf("status = %d message = %q", status, body.Message)
	}
	if len(body.Details) != 1 || body.Details[0].Field != "groupName" {
		t.Errorf("details = %+v, want groupName", body.Details)
	}
	if got := testutil.Count(t, server.db, &entity.Chat{}); got != 0 {
		t.Errorf("chats = %d, want 0", got)
	}
}

func TestAgentCreatesCardTransaction(t *testing.T) {
	server := newTestServer(t)
	refs := testutil.SeedReferences(t, server.db)
	agent := testutil.SeedUser(t, server.db, "bisi", enum.RoleAgent, 3)
	customer := testutil.SeedUser(t, server.db, "chidi", enum.RoleCustomer, 0)
	testutil.SeedCustomerChat(t, server.db, 42, enum.ChatStatusPending, agent.ID, customer.ID)

	var created res.CommonResponse[res.TransactionResponse]
	status := server.do(t, http.MethodPost, "/api/v1/agent/transactions/card", server.token(t, agent), map[string]any{
		"departmentId":  refs.DepartmentID,
		"categoryId":    refs.CategoryID,
		"subCategoryId": refs.SubCategoryID,
		"countryId":     refs.CountryID,
		"chatId":        42,
		"amount":        "100",
		"cardType":      "Amazon",
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("status = %d, want 201", status)
	}
	if created.Data.AgentID != 3 || created.Data.CustomerID != customer.ID {
		t.Errorf("parties = %d / %d, want 3 / %d", created.Data.AgentID, created.Data.CustomerID, customer.ID)
	}

	var missing res.ErrorResponse
	status = server.do(t, http.MethodPost, "/api/v1/agent/transactions/card", server.token(t, agent), map[string]any{
		"departmentId":  refs.DepartmentID,
		"categoryId":    refs.CategoryID,
		"subCategoryId": refs.SubCategoryID,
		"countryId":     refs.CountryID,
		"chatId":        999,
		"amount":        "100",
	}, &missing)
	if status != http.StatusNotFound || missing.Message != "Chat not found" {
		t.Errorf("unknown chat: status = %d message = %q", status, missing.Message)
	}
	if got := testutil.Count(t, server.db, &entity.Transaction{}); got != 1 {
		t.Errorf("transactions = %d, want 1", got)
	}
}

func TestRegisterThenProfile(t *testing.T) {
	server := newTestServer(t)

	var registered res.CommonResponse[res.RegisterResponse]
	status := server.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"firstName":   "Ada",
		"lastName":    "Obi",
		"email":       "ada@example.com",
		"phoneNumber": "+2348012345678",
		"password":    "s3cret-pass",
		"username":    "ada",
		"gender":      "female",
		"country":     "NG",
	}, &registered)
	if status != http.StatusCreated || registered.Data.Token == "" {
		t.Fatalf("register status = %d token = %q", status, registered.Data.Token)
	}

	var profile res.CommonResponse[res.UserResponse]
	if status := server.do(t, http.MethodGet, "/api/v1/auth/me", registered.Data.Token, nil, &profile); status != http.StatusOK {
		t.Fatalf("profile status = %d, want 200", status)
	}
	if profile.Data.Email != "ada@example.com" || profile.Data.Role != string(enum.RoleCustomer) {
		t.Errorf("profile = %+v", profile.Data)
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	server := newTestServer(t)
	user := testutil.SeedUser(t, server.db, "chidi", enum.RoleCustomer, 0)

	var body res.ErrorResponse
	status := server.do(t, http.MethodGet, "/ws", server.token(t, user), nil, &body)
	if status != http.StatusUpgradeRequired {
		t.Errorf("status = %d, want 426", status)
	}
}

func TestTokenCookieExpiresWithToken(t *testing.T) {
	server := newTestServer(t)

	payload, err := json.Marshal(map[string]any{
		"firstName":   "Ada",
		"lastName":    "Obi",
		"email":       "ada@example.com",
		"phoneNumber": "+2348012345678",
		"password":    "s3cret-pass",
		"username":    "ada",
		"gender":      "female",
		"country":     "NG",
	})
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}
	request := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")

	response, err := server.app.Test(request, -1)
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", response.StatusCode)
	}

	var cookie *http.Cookie
	for _, c := range response.Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no token cookie set")
	}
	// JWT_TTL defaults to one hour
	want := time.Now().Add(time.Hour)
	if diff := cookie.Expires.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("cookie expires %v, want about %v", cookie.Expires, want)
	}
	if !cookie.HttpOnly {
		t.Error("token cookie is readable from scripts")
	}
}
