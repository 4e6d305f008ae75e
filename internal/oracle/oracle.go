// Package oracle asks an OpenAI-compatible model whether a piece of text
// is plausibly a task name. The oracle is strictly advisory: callers treat
// any failure as "keep the task name" and never let it change a
// reconciliation outcome.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zulandar/motorpool/internal/config"
)

// Validator reports whether text is plausibly a task name.
type Validator interface {
	Validate(ctx context.Context, text string) (bool, error)
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	httpc    *http.Client
}

// NewClient builds a Client from the oracle configuration.
func NewClient(cfg config.OracleConfig) *Client {
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		httpc:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

const promptTemplate = `判斷以下文字是否為軍事任務名稱或派車任務說明。

文字: "%s"

軍事任務名稱範例:
- 9A觀測所佈覽
- 三分隊線巡
- 連排線巡
- 95砲指揮車巡視
- 兩棲登陸演習

非任務名稱範例:
- 待搶用車
- 用車
- 派車
- 出車
- 人員載運
- 副隊
- 輜重隊

請只回答 "是" 或 "否"，不要其他說明。`

// Validate asks the model whether text is a task name. Empty text is never
// a task name. Transport or decode failures are returned as errors so the
// caller can apply its keep-by-default policy.
func (c *Client) Validate(ctx context.Context, text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, nil
	}

	type chatReq struct {
		Model       string              `json:"model"`
		Messages    []map[string]string `json:"messages"`
		Temperature float64             `json:"temperature"`
	}
	body, err := json.Marshal(chatReq{
		Model: c.model,
		Messages: []map[string]string{
			{"role": "user", "content": fmt.Sprintf(promptTemplate, text)},
		},
		Temperature: 0,
	})
	if err != nil {
		return false, fmt.Errorf("oracle: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("oracle: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return false, fmt.Errorf("oracle: call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("oracle: model returned status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("oracle: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return false, fmt.Errorf("oracle: empty response")
	}

	answer := strings.ToLower(strings.TrimSpace(out.Choices[0].Message.Content))
	return strings.Contains(answer, "是") || strings.Contains(answer, "yes"), nil
}
