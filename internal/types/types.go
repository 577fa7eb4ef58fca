package types

// ProductSummary is one product the conversational backend referenced in its
// latest reply. Read-only once received.
type ProductSummary struct {
	Title       string
	Description string
	ImageURL    string
}

// Message is a single outbound message unit. The transport layer renders it
// into provider-specific reply markup.
type Message struct {
	Text     string
	MediaURL string
}

type SendMessageRequest struct {
	To       string `json:"to"`
	Body     string `json:"body"`
	MediaURL string `json:"mediaUrl,omitempty"`
}

type SendMessageResponse struct {
	Sid    string `json:"sid"`
	Status string `json:"status,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
