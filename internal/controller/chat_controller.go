package controller

import (
	"encoding/json"

	"irene-companion-be/internal/dto"
	"irene-companion-be/internal/pkg/serverutils"
	"irene-companion-be/internal/service"
	"irene-companion-be/internal/session"
	ws "irene-companion-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateConversation(ctx *fiber.Ctx) error
	GetAllConversations(ctx *fiber.Ctx) error
	DeleteConversation(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	GetEmotionTimeline(ctx *fiber.Ctx) error
	GetQuickReplies(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	hub         *ws.Hub
}

func NewChatController(chatService service.IChatService, hub *ws.Hub) IChatController {
	return &chatController{
		chatService: chatService,
		hub:         hub,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Get("quick-replies", c.GetQuickReplies)
	h.Get("conversations/:id/ws", c.upgradeWebsocket, websocket.New(c.serveWebsocket))

	h.Use(serverutils.SessionMiddleware)
	h.Post("conversations", c.CreateConversation)
	h.Get("conversations", c.GetAllConversations)
	h.Delete("conversations/:id", c.DeleteConversation)
	h.Get("conversations/:id/messages", c.GetChatHistory)
	h.Get("conversations/:id/emotions", c.GetEmotionTimeline)
	h.Post("send", c.SendChat)
}

func (c *chatController) CreateConversation(ctx *fiber.Ctx) error {
	sess := sessionFromLocals(ctx)

	res, err := c.chatService.CreateConversation(ctx.Context(), sess)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create conversation", res))
}

func (c *chatController) GetAllConversations(ctx *fiber.Ctx) error {
	res, err := c.chatService.GetAllConversations(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get conversations", res))
}

func (c *chatController) DeleteConversation(ctx *fiber.Ctx) error {
	sess := sessionFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid conversation id")
	}

	if err := c.chatService.DeleteConversation(ctx.Context(), sess, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete conversation", id))
}

func (c *chatController) GetChatHistory(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid conversation id")
	}

	res, err := c.chatService.GetChatHistory(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	sess := sessionFromLocals(ctx)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), sess, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) GetEmotionTimeline(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid conversation id")
	}

	res, err := c.chatService.GetEmotionTimeline(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get emotion timeline", res))
}

func (c *chatController) GetQuickReplies(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get quick replies", service.QuickReplies))
}

// upgradeWebsocket validates the route before the protocol switch; errors
// after the upgrade can only surface as a dropped connection.
func (c *chatController) upgradeWebsocket(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid conversation id")
	}

	// Fetch the snapshot now, while we still have a request context.
	history, err := c.chatService.GetChatHistory(ctx.Context(), id)
	if err != nil {
		return err
	}

	initial, err := json.Marshal(fiber.Map{
		"type": "messages",
		"data": dto.MessagesUpdated{ConversationId: id, Messages: history},
	})
	if err != nil {
		return err
	}

	ctx.Locals("conversation_id", id)
	ctx.Locals("initial_snapshot", initial)
	return ctx.Next()
}

func (c *chatController) serveWebsocket(conn *websocket.Conn) {
	conversationID := conn.Locals("conversation_id").(uuid.UUID)
	initial, _ := conn.Locals("initial_snapshot").([]byte)
	ws.ServeWs(c.hub, conn, conversationID, initial)
}

func sessionFromLocals(ctx *fiber.Ctx) session.Context {
	sessionIdStr := ctx.Locals("session_id").(string)
	sessionId, _ := uuid.Parse(sessionIdStr)
	return session.Context{SessionId: sessionId}
}
