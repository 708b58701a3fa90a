package message_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	"github.com/parthsharma-2/skillswap/internal/message"
	"github.com/parthsharma-2/skillswap/internal/middleware"
	"github.com/parthsharma-2/skillswap/internal/testutil"
)

func sendRequest(t *testing.T, db *gorm.DB, senderID uint, counterpartID uint, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	controller := message.NewMessageController(message.NewMessageRepository(db), &config.Config{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "user_id", Value: fmt.Sprint(counterpartID)}}
	c.Set(middleware.AuthUserIDKey, senderID)
	c.Request = httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	controller.Send(c)
	return w
}

func TestSendCreatesMessage(t *testing.T) {
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	w := sendRequest(t, db, alice.ID, bob.ID, `{"content":"  see you at 5  "}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var m message.Message
	require.NoError(t, db.First(&m).Error)
	assert.Equal(t, "see you at 5", m.Content, "content is stored trimmed")
	assert.Equal(t, alice.ID, m.SenderID)
	assert.Equal(t, bob.ID, m.ReceiverID)
	assert.False(t, m.IsRead)
}

func TestSendEmptyContentIsSilentNoOp(t *testing.T) {
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	w := sendRequest(t, db, alice.ID, bob.ID, `{"content":"   \n\t "}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Nothing to send", resp.Message)

	var n int64
	require.NoError(t, db.Model(&message.Message{}).Count(&n).Error)
	assert.EqualValues(t, 0, n, "nothing may be written for an empty send")
}

func TestSendToUnknownUser(t *testing.T) {
	db := testutil.OpenDB(t)
	alice := testutil.CreateUser(t, db, "alice")

	w := sendRequest(t, db, alice.ID, 9999, `{"content":"hello?"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
