package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"agribot-wa-relay/internal/types"
)

// ErrUnavailable covers transport failures, non-2xx statuses, and replies the
// client cannot decode. Callers surface it as the fixed connectivity message.
var ErrUnavailable = errors.New("backend unavailable")

// MalformedReplyError reports a mentioned product missing a mandatory field.
type MalformedReplyError struct {
	Index int
	Field string
}

func (e *MalformedReplyError) Error() string {
	return fmt.Sprintf("backend reply: product %d missing %s", e.Index, e.Field)
}

func (e *MalformedReplyError) Is(target error) bool {
	return target == ErrUnavailable
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Request is the wire format the conversational backend accepts. Type and
// ProductTitle belong to the contract but stay empty here: product-detail
// requests resolve against the local catalog instead.
type Request struct {
	SessionID    string    `json:"session_id"`
	Message      string    `json:"message,omitempty"`
	FirstName    string    `json:"first_name"`
	Location     *Location `json:"location,omitempty"`
	Type         string    `json:"type,omitempty"`
	ProductTitle string    `json:"product_title,omitempty"`
}

// Reply is the backend's answer with its product mentions already validated.
type Reply struct {
	Text     string
	Products []types.ProductSummary
}

type wireReply struct {
	Reply             string        `json:"reply"`
	MentionedProducts []wireProduct `json:"mentioned_products"`
}

type wireProduct struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageLink   string `json:"image_link"`
	Link        string `json:"link"`
}

// Client posts structured requests to the conversational backend. One attempt
// per call, no retry: a duplicate chat reply is a worse experience than one
// failure message.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Query(ctx context.Context, req Request) (*Reply, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrUnavailable, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	var wire wireReply
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: decode reply: %v", ErrUnavailable, err)
	}

	out := &Reply{Text: wire.Reply}
	for i, p := range wire.MentionedProducts {
		if strings.TrimSpace(p.Title) == "" {
			return nil, &MalformedReplyError{Index: i, Field: "title"}
		}
		if strings.TrimSpace(p.Description) == "" {
			return nil, &MalformedReplyError{Index: i, Field: "description"}
		}
		img := p.ImageLink
		if img == "" {
			img = p.Link
		}
		out.Products = append(out.Products, types.ProductSummary{
			Title:       p.Title,
			Description: p.Description,
			ImageURL:    img,
		})
	}
	return out, nil
}
