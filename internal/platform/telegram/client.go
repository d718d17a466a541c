// Package telegram is a minimal Bot API client used for doctor
// notifications.
package telegram

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	token      string
	httpClient *resty.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		httpClient: resty.New().SetTimeout(10 * time.Second),
	}
}

func (c *Client) url(method string) string {
	return fmt.Sprintf("https://api.telegram.org/bot%s/%s", c.token, method)
}

func (c *Client) SendMessage(chatID int64, text string) error {
	resp, err := c.httpClient.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"chat_id": chatID,
			"text":    text,
		}).
		Post(c.url("sendMessage"))
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("telegram api returned status %s: %s", resp.Status(), resp.String())
	}
	return nil
}

func (c *Client) SendDocument(chatID int64, fileData []byte, fileName string) error {
	resp, err := c.httpClient.R().
		SetFormData(map[string]string{"chat_id": strconv.FormatInt(chatID, 10)}).
		SetFileReader("document", fileName, bytes.NewReader(fileData)).
		Post(c.url("sendDocument"))
	if err != nil {
		return fmt.Errorf("failed to send telegram document: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("telegram api returned status %s: %s", resp.Status(), resp.String())
	}
	return nil
}
