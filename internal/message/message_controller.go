package message

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parthsharma-2/skillswap/config"
	"github.com/parthsharma-2/skillswap/internal/middleware"
	"github.com/parthsharma-2/skillswap/internal/user"
	"github.com/parthsharma-2/skillswap/pkg/responses"
)

type MessageController struct {
	repo   MessageRepository
	config *config.Config
}

func NewMessageController(repo MessageRepository, cfg *config.Config) *MessageController {
	return &MessageController{repo: repo, config: cfg}
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

type ThreadResponse struct {
	SelectedUser ConversationUser `json:"selected_user"`
	Messages     []Message        `json:"messages"`
}

// ListConversations godoc
// @Summary List the current user's conversations
// @Description One entry per counterpart with the last message and unread count, newest conversation first.
// @Tags Messages
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Conversation}
// @Router /messages [get]
// @Security BearerAuth
func (mc *MessageController) ListConversations(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	conversations, err := mc.repo.Conversations(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve conversations")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Conversations retrieved successfully", conversations)
}

// ViewThread godoc
// @Summary Open the conversation with one user
// @Description Marks every unread message from that user as read and returns the full history, oldest first.
// @Tags Messages
// @Produce json
// @Param user_id path int true "Counterpart user ID"
// @Success 200 {object} responses.SuccessResponse{data=ThreadResponse}
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Router /messages/{user_id} [get]
// @Security BearerAuth
func (mc *MessageController) ViewThread(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	counterpartID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID format")
		return
	}

	counterpart, err := mc.repo.GetUser(uint(counterpartID))
	if err != nil {
		responses.NotFound(c, "User")
		return
	}

	thread, err := mc.repo.OpenThread(userID, counterpart.ID)
	if err != nil {
		responses.InternalServerError(c, "Failed to open conversation")
		return
	}

	name := counterpart.DisplayName()
	responses.SendSuccess(c, http.StatusOK, "Conversation retrieved successfully", ThreadResponse{
		SelectedUser: ConversationUser{
			ID:       counterpart.ID,
			Name:     name,
			Initials: user.Initials(name),
		},
		Messages: thread,
	})
}

// Send godoc
// @Summary Send a message
// @Description Whitespace-only content is silently ignored and the thread is returned unchanged.
// @Tags Messages
// @Accept json
// @Produce json
// @Param user_id path int true "Counterpart user ID"
// @Param message body SendMessageRequest true "Message content"
// @Success 201 {object} responses.SuccessResponse{data=Message}
// @Success 200 {object} responses.SuccessResponse "Empty content, nothing sent"
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Router /messages/{user_id} [post]
// @Security BearerAuth
func (mc *MessageController) Send(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	counterpartID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID format")
		return
	}

	counterpart, err := mc.repo.GetUser(uint(counterpartID))
	if err != nil {
		responses.NotFound(c, "User")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid message payload")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		// Empty sends are not an error; nothing is written.
		responses.SendSuccess(c, http.StatusOK, "Nothing to send", nil)
		return
	}

	m := Message{
		SenderID:   userID,
		ReceiverID: counterpart.ID,
		Content:    content,
	}
	if err := mc.repo.Create(&m); err != nil {
		responses.InternalServerError(c, "Failed to send message")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Message sent", m)
}
