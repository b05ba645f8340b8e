package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"irene-companion-be/internal/dto"
	"irene-companion-be/internal/entity"
	"irene-companion-be/internal/pkg/logger"
	"irene-companion-be/internal/repository/memory"
	"irene-companion-be/internal/repository/specification"
	"irene-companion-be/internal/repository/unitofwork"
	"irene-companion-be/internal/session"
	"irene-companion-be/pkg/events"
	"irene-companion-be/pkg/prompt"
	"irene-companion-be/pkg/safety"
	"irene-companion-be/pkg/sentiment"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	// ThinkingMessage is the optimistic placeholder shown while a reply is
	// generated. It never reaches the store.
	ThinkingMessage = "Irene is thinking..."

	// ApologyMessage replaces the placeholder when generation fails.
	ApologyMessage = "Oops! Something went wrong. Let's try again."

	// CrisisNotice is surfaced alongside the normal reply when the safety
	// filter matches.
	CrisisNotice = "Please reach out for help. You are an amazing soul, and there are people who care about you."

	defaultConversationTitle = "New conversation"
	maxTitleLength           = 50
)

// QuickReplies are the fixed conversation starters offered by the client.
var QuickReplies = []string{
	"I'm feeling anxious",
	"I need motivation",
	"I'm having trouble sleeping",
	"I want to improve my mood",
}

// SentimentClassifier labels a user turn. Implementations never fail; they
// fall back to a neutral label instead.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) string
}

// ResponseGenerator produces the assistant reply for a rendered prompt.
type ResponseGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// AuditPublisher mirrors flagged messages onto the event bus. Optional;
// a nil publisher disables the mirror.
type AuditPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IChatService interface {
	CreateConversation(ctx context.Context, sess session.Context) (*dto.CreateConversationResponse, error)
	GetAllConversations(ctx context.Context) ([]*dto.GetAllConversationsResponse, error)
	GetChatHistory(ctx context.Context, conversationId uuid.UUID) ([]*dto.ChatHistoryItem, error)
	DeleteConversation(ctx context.Context, sess session.Context, conversationId uuid.UUID) error
	SendChat(ctx context.Context, sess session.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetEmotionTimeline(ctx context.Context, conversationId uuid.UUID) ([]*dto.EmotionPointResponse, error)
}

// chatService drives the per-turn exchange: safety check, sentiment lookup,
// response generation, persistence and snapshot fan-out.
type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	filter     safety.TextClassifier
	classifier SentimentClassifier
	generator  ResponseGenerator
	publisher  IPublisherService
	auditPub   AuditPublisher
	stateRepo  *memory.SessionStateRepository
	logger     logger.ILogger

	// One in-flight exchange per session. Entries expire with the session so
	// the map does not grow with every session ever seen.
	locks *cache.Cache
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	filter safety.TextClassifier,
	classifier SentimentClassifier,
	generator ResponseGenerator,
	publisher IPublisherService,
	auditPub AuditPublisher,
	stateRepo *memory.SessionStateRepository,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		filter:     filter,
		classifier: classifier,
		generator:  generator,
		publisher:  publisher,
		auditPub:   auditPub,
		stateRepo:  stateRepo,
		logger:     sysLogger,
		locks:      cache.New(1*time.Hour, 10*time.Minute),
	}
}

// sessionLock returns the mutex serializing this session's turns. A turn
// finishes well inside the expiry window (the outbound clients time out at
// 15s), so an entry never expires while held.
func (cs *chatService) sessionLock(sessionId uuid.UUID) *sync.Mutex {
	key := sessionId.String()
	for {
		if v, ok := cs.locks.Get(key); ok {
			return v.(*sync.Mutex)
		}
		l := &sync.Mutex{}
		if cs.locks.Add(key, l, cache.DefaultExpiration) == nil {
			return l
		}
	}
}

// CreateConversation allocates a new thread and makes it the session's active
// conversation with an empty in-memory message list.
func (cs *chatService) CreateConversation(ctx context.Context, sess session.Context) (*dto.CreateConversationResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation := entity.Conversation{
		Id:        uuid.New(),
		Title:     defaultConversationTitle,
		CreatedAt: time.Now(),
	}

	if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
		return nil, err
	}

	cs.stateRepo.Save(session.NewState(sess.SessionId, conversation.Id))

	return &dto.CreateConversationResponse{Id: conversation.Id}, nil
}

// GetAllConversations returns every conversation, newest first.
func (cs *chatService) GetAllConversations(ctx context.Context) ([]*dto.GetAllConversationsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.GetAllConversationsResponse, 0, len(conversations))
	for _, c := range conversations {
		response = append(response, &dto.GetAllConversationsResponse{
			Id:        c.Id,
			Title:     c.Title,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}

	return response, nil
}

// DeleteConversation soft-deletes the thread. Its messages stay in the store
// but the conversation leaves every listing; a session pointing at it loses
// its active conversation.
func (cs *chatService) DeleteConversation(ctx context.Context, sess session.Context, conversationId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return err
	}
	if conversation == nil {
		return fiber.NewError(fiber.StatusNotFound, "conversation not found")
	}

	if err := uow.ConversationRepository().Delete(ctx, conversationId); err != nil {
		return err
	}

	if state, ok := cs.stateRepo.Get(sess.SessionId.String()); ok && state.ActiveConversationId == conversationId {
		cs.stateRepo.Delete(state.ID)
	}
	return nil
}

// GetChatHistory returns the stored messages of a conversation in ascending
// timestamp order. The store is the ordering authority.
func (cs *chatService) GetChatHistory(ctx context.Context, conversationId uuid.UUID) ([]*dto.ChatHistoryItem, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "conversation not found")
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	return toHistoryItems(messages), nil
}

func (cs *chatService) SendChat(ctx context.Context, sess session.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	lock := cs.sessionLock(sess.SessionId)
	lock.Lock()
	defer lock.Unlock()

	content := strings.TrimSpace(request.Content)
	if content == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "message is empty")
	}

	state, err := cs.loadState(ctx, sess, request.ConversationId)
	if err != nil {
		return nil, err
	}

	// Safety check is advisory: the flag path runs on the side and never
	// blocks or alters the main flow.
	flagged := cs.filter.Classify(content)
	if flagged {
		go cs.flagMessage(sess.UserId(), content)
	}

	now := time.Now()
	userMessage := &entity.Message{
		Id:             uuid.New(),
		ConversationId: request.ConversationId,
		Role:           entity.RoleUser,
		Content:        content,
		CreatedAt:      now,
	}
	placeholder := &entity.Message{
		Id:             uuid.New(),
		ConversationId: request.ConversationId,
		Role:           entity.RoleAssistant,
		Content:        ThinkingMessage,
		CreatedAt:      now,
	}

	prior := state.Messages
	state.Messages = appendSnapshot(prior, userMessage, placeholder)
	state.Loading = true
	state.LastError = ""
	cs.stateRepo.Save(state)

	label := cs.classifier.Classify(ctx, content)
	userMessage.Sentiment = label

	reply, err := cs.generateReply(ctx, sess, prior, content, label)
	if err != nil {
		// The placeholder becomes the apology; nothing persists for this turn.
		state.Messages = appendSnapshot(prior, userMessage, &entity.Message{
			Id:             placeholder.Id,
			ConversationId: request.ConversationId,
			Role:           entity.RoleAssistant,
			Content:        ApologyMessage,
			CreatedAt:      time.Now(),
		})
		state.Loading = false
		state.LastError = err.Error()
		cs.stateRepo.Save(state)

		cs.logger.Error("Chat", "Response generation failed", map[string]interface{}{
			"conversation_id": request.ConversationId,
			"error":           err.Error(),
		})

		response := &dto.SendChatResponse{
			Reply:     ApologyMessage,
			Sentiment: label,
			Flagged:   flagged,
			Error:     err.Error(),
		}
		if flagged {
			response.CrisisNotice = CrisisNotice
		}
		return response, nil
	}

	assistantMessage := &entity.Message{
		Id:             uuid.New(),
		ConversationId: request.ConversationId,
		Role:           entity.RoleAssistant,
		Content:        reply,
		// Stamped after generation so the pair keeps user-then-assistant
		// order under the ascending timestamp sort.
		CreatedAt: time.Now(),
	}

	state.Messages = appendSnapshot(prior, userMessage, assistantMessage)
	state.Loading = false
	cs.stateRepo.Save(state)

	cs.persistExchange(ctx, request.ConversationId, len(prior) == 0, userMessage, assistantMessage)
	cs.publishSnapshot(ctx, request.ConversationId)

	response := &dto.SendChatResponse{
		Reply:     reply,
		Sentiment: label,
		Flagged:   flagged,
	}
	if flagged {
		response.CrisisNotice = CrisisNotice
	}
	return response, nil
}

// GetEmotionTimeline maps the user turns of a conversation onto ordered
// sentiment points for the emotional map.
func (cs *chatService) GetEmotionTimeline(ctx context.Context, conversationId uuid.UUID) ([]*dto.EmotionPointResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.ByRole{Role: entity.RoleUser},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	points := make([]*dto.EmotionPointResponse, 0, len(messages))
	for _, msg := range messages {
		label := msg.Sentiment
		if label == "" {
			label = sentiment.FallbackLabel
		}
		points = append(points, &dto.EmotionPointResponse{
			Timestamp: msg.CreatedAt,
			Sentiment: label,
		})
	}

	return points, nil
}

// loadState returns the session state for the requested conversation,
// rebuilding the message mirror from the store on a conversation switch and
// after a failed turn. The store is the history authority; the apology shown
// for a failed turn never feeds a later prompt.
func (cs *chatService) loadState(ctx context.Context, sess session.Context, conversationId uuid.UUID) (*session.State, error) {
	if state, ok := cs.stateRepo.Get(sess.SessionId.String()); ok &&
		state.ActiveConversationId == conversationId && state.LastError == "" {
		return state, nil
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "conversation not found")
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversationId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	state := session.NewState(sess.SessionId, conversationId)
	state.Messages = messages
	cs.stateRepo.Save(state)
	return state, nil
}

func (cs *chatService) generateReply(ctx context.Context, sess session.Context, history []*entity.Message, turn, label string) (string, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	// Missing profiles are fine; the builder simply skips the facts.
	profile, err := uow.UserProfileRepository().Get(ctx, sess.UserId())
	if err != nil {
		cs.logger.Warn("Chat", "Profile lookup failed, generating without facts", map[string]interface{}{
			"user_id": sess.UserId(),
			"error":   err.Error(),
		})
		profile = nil
	}

	rendered := prompt.NewBuilder(profile, history, turn, label).Build()
	return cs.generator.GenerateContent(ctx, rendered)
}

// persistExchange appends the user and assistant rows as one transaction so a
// turn is either fully stored or not at all. Store failures are logged only;
// the in-memory exchange stays visible for the rest of the session.
func (cs *chatService) persistExchange(ctx context.Context, conversationId uuid.UUID, firstTurn bool, userMessage, assistantMessage *entity.Message) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		cs.logger.Error("Chat", "Failed to start persistence transaction", map[string]interface{}{"error": err.Error()})
		return
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, userMessage); err != nil {
		cs.logger.Error("Chat", "Failed to persist user message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := uow.MessageRepository().Create(ctx, assistantMessage); err != nil {
		cs.logger.Error("Chat", "Failed to persist assistant message", map[string]interface{}{"error": err.Error()})
		return
	}

	if firstTurn {
		if err := cs.updateTitle(ctx, uow, conversationId, userMessage.Content); err != nil {
			cs.logger.Warn("Chat", "Failed to update conversation title", map[string]interface{}{"error": err.Error()})
		}
	}

	if err := uow.Commit(); err != nil {
		cs.logger.Error("Chat", "Failed to commit exchange", map[string]interface{}{"error": err.Error()})
	}
}

func (cs *chatService) updateTitle(ctx context.Context, uow unitofwork.UnitOfWork, conversationId uuid.UUID, content string) error {
	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.ByID{ID: conversationId})
	if err != nil {
		return err
	}
	if conversation == nil {
		return fmt.Errorf("conversation %s not found", conversationId)
	}

	conversation.Title = deriveTitle(content)
	now := time.Now()
	conversation.UpdatedAt = &now
	return uow.ConversationRepository().Update(ctx, conversation)
}

// publishSnapshot pushes the authoritative store ordering to subscribers.
// Optimistic in-memory edits are fully replaced by this snapshot on arrival.
func (cs *chatService) publishSnapshot(ctx context.Context, conversationId uuid.UUID) {
	if cs.publisher == nil {
		return
	}

	history, err := cs.GetChatHistory(ctx, conversationId)
	if err != nil {
		cs.logger.Warn("Chat", "Snapshot fetch failed", map[string]interface{}{"error": err.Error()})
		return
	}

	snapshot := &dto.MessagesUpdated{
		ConversationId: conversationId,
		Messages:       history,
	}
	if err := cs.publisher.PublishSnapshot(ctx, snapshot); err != nil {
		cs.logger.Warn("Chat", "Snapshot publish failed", map[string]interface{}{"error": err.Error()})
	}
}

// flagMessage runs detached from the request: the audit write and the event
// mirror must not delay or fail the exchange.
func (cs *chatService) flagMessage(userId uuid.UUID, content string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	flaggedMessage := entity.FlaggedMessage{
		Id:        uuid.New(),
		UserId:    userId,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := uow.FlaggedMessageRepository().Create(ctx, &flaggedMessage); err != nil {
		cs.logger.Error("Chat", "Failed to save flagged message", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}

	if cs.auditPub != nil {
		if err := cs.auditPub.Publish(ctx, events.NewMessageFlagged(userId, content)); err != nil {
			cs.logger.Warn("Chat", "Failed to publish flagged event", map[string]interface{}{"error": err.Error()})
		}
	}
}

func appendSnapshot(prior []*entity.Message, extra ...*entity.Message) []*entity.Message {
	snapshot := make([]*entity.Message, 0, len(prior)+len(extra))
	snapshot = append(snapshot, prior...)
	snapshot = append(snapshot, extra...)
	return snapshot
}

func toHistoryItems(messages []*entity.Message) []*dto.ChatHistoryItem {
	items := make([]*dto.ChatHistoryItem, 0, len(messages))
	for _, msg := range messages {
		items = append(items, &dto.ChatHistoryItem{
			Id:        msg.Id,
			Role:      string(msg.Role),
			Content:   msg.Content,
			Sentiment: msg.Sentiment,
			CreatedAt: msg.CreatedAt,
		})
	}
	return items
}

func deriveTitle(content string) string {
	title := strings.TrimSpace(content)
	runes := []rune(title)
	if len(runes) > maxTitleLength {
		title = string(runes[:maxTitleLength]) + "..."
	}
	if title == "" {
		title = defaultConversationTitle
	}
	return title
}
