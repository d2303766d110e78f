package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"support-desk-api/enum"
	"support-desk-api/event"
	"support-desk-api/handler"
	"support-desk-api/middleware"
)

type ConfigRoute struct {
	*fiber.App
	*middleware.Middleware
	*handler.AuthHandler
	*handler.ChatHandler
	*handler.TransactionHandler
}

func (rc *ConfigRoute) GetRoute() {
	rc.GetPublicRoute()
	rc.GetProtectedRoute()
}

func (rc *ConfigRoute) GetPublicRoute() {
	app := rc.App.Group("/api/v1")
	app.Post("/auth/register", rc.AuthHandler.RegisterUser)
	app.Post("/auth/login", rc.AuthHandler.LoginUser)
	app.Post("/auth/logout", rc.AuthHandler.LogoutUser)
}

func (rc *ConfigRoute) GetProtectedRoute() {
	app := rc.App.Group("/api/v1", rc.Middleware.JWTProtected, rc.Middleware.LoadCaller)

	app.Get("/auth/me", rc.AuthHandler.GetProfile)
	app.Post("/auth/verify", rc.AuthHandler.VerifyUser)
	app.Post("/auth/resend-otp", rc.AuthHandler.ResendOTP)

	admin := app.Group("/admin", rc.Middleware.RequireRole(enum.RoleAdmin))
	admin.Post("/chats/groups", rc.ChatHandler.CreateChatGroup)
	admin.Get("/chats/customer-agent", rc.ChatHandler.GetCustomerAgentChats)
	admin.Get("/chats/team", rc.ChatHandler.GetTeamChats)
	admin.Get("/transactions", rc.TransactionHandler.GetTransactions)
	admin.Get("/transactions/export", rc.TransactionHandler.ExportTransactions)

	agent := app.Group("/agent", rc.Middleware.RequireRole(enum.RoleAgent))
	agent.Post("/transactions/card", rc.TransactionHandler.CreateCardTransaction)
	agent.Post("/transactions/crypto", rc.TransactionHandler.CreateCryptoTransaction)
}

func (rc *ConfigRoute) GetWebSocketRoute(hub *event.Hub) {
	rc.App.Use("/ws", rc.Middleware.JWTProtected, rc.Middleware.LoadCaller, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	rc.App.Get("/ws", websocket.New(hub.HandleWebSocket))
}
