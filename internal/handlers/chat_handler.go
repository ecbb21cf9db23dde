package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glamflow/salon-scheduler/internal/httperr"
	"github.com/glamflow/salon-scheduler/internal/httpresp"
	"github.com/glamflow/salon-scheduler/internal/models"
)

// ChatHandler exposes the customer/support message threads. Threads are
// keyed by the customer's user id.
type ChatHandler struct {
	db *gorm.DB
}

func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{db: db}
}

type SendMessageRequest struct {
	Text string `json:"text" binding:"required"`

	// ConversationID is required for admins answering a thread; customers
	// always post into their own.
	ConversationID uint `json:"conversation_id"`
}

func (h *ChatHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	userID := currentUserID(c)
	role := currentUserRole(c)

	msg := models.Message{
		Text:       req.Text,
		FromUserID: userID,
	}

	if role == models.RoleAdmin {
		if req.ConversationID == 0 {
			httperr.BadRequest(c, "conversation_required", "")
			return
		}
		to := req.ConversationID
		msg.ToUserID = &to
		msg.ConversationID = req.ConversationID
	} else {
		msg.ConversationID = userID
	}

	if err := h.db.Create(&msg).Error; err != nil {
		httperr.Internal(c, "failed_to_send_message", "")
		return
	}
	httpresp.Created(c, msg)
}

func (h *ChatHandler) History(c *gin.Context) {
	userID := currentUserID(c)
	role := currentUserRole(c)

	conversationID := userID
	if role == models.RoleAdmin {
		id, ok := queryUint(c, "conversation_id")
		if !ok {
			httperr.BadRequest(c, "conversation_required", "")
			return
		}
		conversationID = id
	}

	page, limit, offset := pageParams(c)

	q := h.db.Model(&models.Message{}).Where("conversation_id = ?", conversationID)

	var total int64
	q.Count(&total)

	var messages []models.Message
	if err := q.
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&messages).Error; err != nil {
		httperr.Internal(c, "failed_to_list_messages", "")
		return
	}
	httpresp.Page(c, messages, total, page, limit)
}

// Conversations lists open threads for the support inbox.
func (h *ChatHandler) Conversations(c *gin.Context) {
	type thread struct {
		ConversationID uint   `json:"conversation_id"`
		Name           string `json:"name"`
		Messages       int64  `json:"messages"`
	}

	var threads []thread
	if err := h.db.
		Table("messages").
		Select("messages.conversation_id, users.name, COUNT(*) AS messages").
		Joins("JOIN users ON users.id = messages.conversation_id").
		Group("messages.conversation_id, users.name").
		Order("MAX(messages.created_at) DESC").
		Scan(&threads).Error; err != nil {
		httperr.Internal(c, "failed_to_list_conversations", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": threads})
}
