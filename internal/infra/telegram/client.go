package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type UpdateHandler func(context.Context, tgbotapi.Update)

// Identity is what we can learn about a Telegram user from getChat.
type Identity struct {
	UserID    int64
	Username  string
	FirstName string
	LastName  string
}

// Label picks the best human-readable handle: @username, then full name,
// then the bare id.
func (i Identity) Label() string {
	if i.Username != "" {
		return "@" + i.Username
	}
	name := strings.TrimSpace(strings.TrimSpace(i.FirstName) + " " + strings.TrimSpace(i.LastName))
	if name != "" {
		return name
	}
	return "id:" + strconv.FormatInt(i.UserID, 10)
}

type Client struct {
	api         *tgbotapi.BotAPI
	logger      *zap.Logger
	handler     UpdateHandler
	pollTimeout int
	dryRun      bool
}

func NewClient(token string, pollTimeout int, logger *zap.Logger, handler UpdateHandler) (*Client, error) {
	if handler == nil {
		return nil, errors.New("telegram update handler is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if strings.TrimSpace(token) == "" {
		return &Client{
			logger:      logger,
			handler:     handler,
			pollTimeout: pollTimeout,
			dryRun:      true,
		}, nil
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Client{
		api:         api,
		logger:      logger,
		handler:     handler,
		pollTimeout: pollTimeout,
	}, nil
}

// Start consumes updates over long polling until the context is cancelled.
func (c *Client) Start(ctx context.Context) error {
	if c.dryRun {
		c.logger.Warn("BOT_TOKEN is empty, running in dry mode")
		<-ctx.Done()
		return nil
	}

	timeout := c.pollTimeout
	if timeout <= 0 {
		timeout = 30
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = timeout
	updates := c.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			c.handler(ctx, update)
		}
	}
}

// HandleUpdate feeds a single update into the router. Used by the webhook
// server instead of polling.
func (c *Client) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	c.handler(ctx, update)
}

func (c *Client) SetWebhook(url, secret string) error {
	if c.dryRun {
		return nil
	}

	params := tgbotapi.Params{"url": url}
	if secret != "" {
		params["secret_token"] = secret
	}
	if _, err := c.api.MakeRequest("setWebhook", params); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	return nil
}

func (c *Client) Send(msg tgbotapi.Chattable) error {
	if c.dryRun {
		return nil
	}
	_, err := c.api.Send(msg)
	return err
}

func (c *Client) SendText(chatID int64, text string) error {
	return c.Send(tgbotapi.NewMessage(chatID, text))
}

// SendToThread posts a text card into a forum topic and returns its message
// id. The v5 library has no message_thread_id support, so the request is
// assembled by hand.
func (c *Client) SendToThread(chatID int64, threadID int, text string, markup *tgbotapi.InlineKeyboardMarkup) (int, error) {
	if c.dryRun {
		return 0, nil
	}

	params := tgbotapi.Params{
		"chat_id": strconv.FormatInt(chatID, 10),
		"text":    text,
	}
	if threadID > 0 {
		params["message_thread_id"] = strconv.Itoa(threadID)
	}
	if markup != nil {
		data, err := json.Marshal(markup)
		if err != nil {
			return 0, fmt.Errorf("marshal reply markup: %w", err)
		}
		params["reply_markup"] = string(data)
	}

	resp, err := c.api.MakeRequest("sendMessage", params)
	if err != nil {
		return 0, fmt.Errorf("send thread message: %w", err)
	}

	var sent tgbotapi.Message
	if err := json.Unmarshal(resp.Result, &sent); err != nil {
		return 0, fmt.Errorf("decode sent message: %w", err)
	}
	return sent.MessageID, nil
}

type inputMediaPhoto struct {
	Type  string `json:"type"`
	Media string `json:"media"`
}

// SendMediaGroup sends an album of photos by file_id, optionally into a forum
// topic, and returns the ids of the sent messages.
func (c *Client) SendMediaGroup(chatID int64, threadID int, fileIDs []string) ([]int64, error) {
	if c.dryRun || len(fileIDs) == 0 {
		return nil, nil
	}

	media := make([]inputMediaPhoto, 0, len(fileIDs))
	for _, fileID := range fileIDs {
		media = append(media, inputMediaPhoto{Type: "photo", Media: fileID})
	}
	payload, err := json.Marshal(media)
	if err != nil {
		return nil, fmt.Errorf("marshal media group: %w", err)
	}

	params := tgbotapi.Params{
		"chat_id": strconv.FormatInt(chatID, 10),
		"media":   string(payload),
	}
	if threadID > 0 {
		params["message_thread_id"] = strconv.Itoa(threadID)
	}

	resp, err := c.api.MakeRequest("sendMediaGroup", params)
	if err != nil {
		return nil, fmt.Errorf("send media group: %w", err)
	}

	var sent []tgbotapi.Message
	if err := json.Unmarshal(resp.Result, &sent); err != nil {
		return nil, fmt.Errorf("decode media group response: %w", err)
	}

	ids := make([]int64, 0, len(sent))
	for _, message := range sent {
		ids = append(ids, int64(message.MessageID))
	}
	return ids, nil
}

func (c *Client) DeleteMessage(chatID int64, messageID int) error {
	if c.dryRun {
		return nil
	}
	_, err := c.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func (c *Client) AnswerCallback(callbackID, text string, showAlert bool) error {
	if c.dryRun {
		return nil
	}

	callback := tgbotapi.NewCallback(callbackID, text)
	callback.ShowAlert = showAlert
	_, err := c.api.Request(callback)
	return err
}

func (c *Client) EditMessageText(chatID int64, messageID int, text string) error {
	if c.dryRun {
		return nil
	}
	_, err := c.api.Request(tgbotapi.NewEditMessageText(chatID, messageID, text))
	return err
}

func (c *Client) ChatIdentity(ctx context.Context, userID int64) (Identity, error) {
	if c.dryRun {
		return Identity{UserID: userID}, nil
	}

	chat, err := c.api.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: userID},
	})
	if err != nil {
		return Identity{}, fmt.Errorf("get chat %d: %w", userID, err)
	}

	return Identity{
		UserID:    userID,
		Username:  chat.UserName,
		FirstName: chat.FirstName,
		LastName:  chat.LastName,
	}, nil
}

// CreateInviteLink issues a single-use invite link that expires at the given
// time.
func (c *Client) CreateInviteLink(chatID int64, name string, expireAt time.Time) (string, error) {
	if c.dryRun {
		return "", nil
	}

	params := tgbotapi.Params{
		"chat_id":      strconv.FormatInt(chatID, 10),
		"name":         name,
		"member_limit": "1",
		"expire_date":  strconv.FormatInt(expireAt.Unix(), 10),
	}

	resp, err := c.api.MakeRequest("createChatInviteLink", params)
	if err != nil {
		return "", fmt.Errorf("create invite link: %w", err)
	}

	var link tgbotapi.ChatInviteLink
	if err := json.Unmarshal(resp.Result, &link); err != nil {
		return "", fmt.Errorf("decode invite link: %w", err)
	}
	return link.InviteLink, nil
}
