package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"support-desk-api/dto/req"
	"support-desk-api/dto/res"
	"support-desk-api/middleware"
	"support-desk-api/usecase"
)

type ChatHandler struct {
	usecase.ChatUsecase
	*logrus.Logger
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{
		ChatUsecase: chatUsecase,
		Logger:      logger,
	}
}

// CreateChatGroup godoc
// @Summary Create a group chat with agent participants
// @Tags Admin
// @Accept json
// @Produce json
// @Success 201 {object} res.CommonResponse[res.ChatGroupResponse]
// @Router /api/v1/admin/chats/groups [post]
func (handler *ChatHandler) CreateChatGroup(c *fiber.Ctx) error {
	payload := new(req.CreateChatGroupRequest)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	chatGroup, err := handler.ChatUsecase.CreateChatGroup(c.Context(), middleware.Caller(c), payload)
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to create chat group")
		return err
	}

	handler.Logger.Infof("Chat group %d created with %d members", chatGroup.ID, len(chatGroup.MemberIDs))
	return c.Status(fiber.StatusCreated).JSON(res.CommonResponse[res.ChatGroupResponse]{
		Status:  fiber.StatusCreated,
		Data:    chatGroup,
		Message: "Chat group created successfully",
	})
}

// GetCustomerAgentChats godoc
// @Summary List every customer-to-agent chat with participants and details
// @Tags Admin
// @Produce json
// @Router /api/v1/admin/chats/customer-agent [get]
func (handler *ChatHandler) GetCustomerAgentChats(c *fiber.Ctx) error {
	chats, err := handler.ChatUsecase.GetCustomerAgentChats(c.Context(), middleware.Caller(c))
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to get customer chats")
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[[]res.CustomerAgentChatResponse]{
		Status:  fiber.StatusOK,
		Data:    chats,
		Message: "Chats found",
	})
}

// GetTeamChats godoc
// @Summary List the admin's team chats and all group chats with their latest message
// @Tags Admin
// @Produce json
// @Router /api/v1/admin/chats/team [get]
func (handler *ChatHandler) GetTeamChats(c *fiber.Ctx) error {
	chats, err := handler.ChatUsecase.GetTeamChats(c.Context(), middleware.Caller(c))
	if err != nil {
		handler.Logger.WithError(err).Error("Failed to get team chats")
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[[]res.TeamChatResponse]{
		Status:  fiber.StatusOK,
		Data:    chats,
		Message: "Chats fetched successfully",
	})
}
