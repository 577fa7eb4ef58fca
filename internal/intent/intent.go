package intent

import (
	"strings"

	"agribot-wa-relay/internal/store"
)

// DetailKeyword prefixes an explicit product-detail request, e.g.
// "DETAILS Tractor". Matched case-insensitively on the first token.
const DetailKeyword = "DETAILS"

type Kind string

const (
	// KindEmpty means neither location nor a non-empty text body was present.
	// It never reaches the backend; the caller replies with a fixed prompt.
	KindEmpty Kind = "empty"
	// KindLocation wins unconditionally whenever coordinates are present,
	// regardless of any text body.
	KindLocation Kind = "location"
	// KindProductDetail resolves against the local catalog.
	KindProductDetail Kind = "product_detail"
	// KindMalformedDetail is the detail keyword without a product title; the
	// caller replies with a corrective prompt rather than falling through to
	// free text.
	KindMalformedDetail Kind = "malformed_detail"
	// KindFreeText is forwarded to the conversational backend verbatim.
	KindFreeText Kind = "free_text"
)

type Location struct {
	Latitude  float64
	Longitude float64
}

// Event is one inbound message, already decoded from the transport form.
type Event struct {
	Identity string
	Body     string
	Location *Location
}

type Intent struct {
	Kind     Kind
	Title    string
	Body     string
	Location Location
}

// Classify decides what an inbound event means, given the user's session.
// A detail request is recognised in two forms, tried in order: the keyword
// form ("DETAILS <title>"), then the bare trimmed body matching the title of
// a product from the backend's last reply.
func Classify(ev Event, sess store.Session) Intent {
	if ev.Location != nil {
		return Intent{Kind: KindLocation, Location: *ev.Location}
	}
	body := strings.TrimSpace(ev.Body)
	if body == "" {
		return Intent{Kind: KindEmpty}
	}
	first, rest := splitToken(body)
	if strings.EqualFold(first, DetailKeyword) {
		title := strings.TrimSpace(rest)
		if title == "" {
			return Intent{Kind: KindMalformedDetail}
		}
		return Intent{Kind: KindProductDetail, Title: title}
	}
	for _, p := range sess.LastMentioned {
		if strings.EqualFold(body, p.Title) {
			return Intent{Kind: KindProductDetail, Title: p.Title}
		}
	}
	return Intent{Kind: KindFreeText, Body: body}
}

func splitToken(s string) (first, rest string) {
	if i := strings.IndexAny(s, " \t\n"); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}
