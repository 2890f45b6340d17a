package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("board config invalid")
	ErrRequestFailed   = errors.New("board request failed")
	ErrResponseInvalid = errors.New("board response invalid")
)

const defaultTimeout = 10 * time.Second

// Config Trello 看板配置
type Config struct {
	BaseURL string // API 地址，如 https://api.trello.com/1
	Key     string // API Key
	Token   string // API Token
	ListID  string // 目标列表 ID
	Timeout time.Duration
}

func (c *Config) normalize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	c.Key = strings.TrimSpace(c.Key)
	c.Token = strings.TrimSpace(c.Token)
	c.ListID = strings.TrimSpace(c.ListID)
	if c.BaseURL == "" {
		c.BaseURL = "https://api.trello.com/1"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// ValidateConfig 校验配置
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.Key) == "" {
		return fmt.Errorf("%w: key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.Token) == "" {
		return fmt.Errorf("%w: token is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.ListID) == "" {
		return fmt.Errorf("%w: list_id is required", ErrConfigInvalid)
	}
	return nil
}

// CardInput 创建卡片输入
type CardInput struct {
	Name        string
	Description string
}

// CardResult 创建卡片结果
type CardResult struct {
	CardID   string
	ShortURL string
}

// Client Trello HTTP 客户端
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient 创建看板客户端
func NewClient(cfg Config) *Client {
	cfg.normalize()
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// CreateCard 在配置的列表下创建卡片
// Trello 的鉴权通过 query 参数传递（key/token），不走请求头
func (c *Client) CreateCard(ctx context.Context, input CardInput) (*CardResult, error) {
	if err := ValidateConfig(&c.cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: card name is required", ErrConfigInvalid)
	}

	query := url.Values{}
	query.Set("idList", c.cfg.ListID)
	query.Set("key", c.cfg.Key)
	query.Set("token", c.cfg.Token)
	query.Set("name", input.Name)
	query.Set("desc", input.Description)

	endpoint := c.cfg.BaseURL + "/cards?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}

	var card struct {
		ID       string `json:"id"`
		ShortURL string `json:"shortUrl"`
	}
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if card.ID == "" {
		return nil, fmt.Errorf("%w: empty card id", ErrResponseInvalid)
	}

	return &CardResult{CardID: card.ID, ShortURL: card.ShortURL}, nil
}
