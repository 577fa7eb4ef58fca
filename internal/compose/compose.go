// Package compose turns backend replies and catalog lookups into outbound
// message bodies. Every user-facing string the relay can emit lives here.
package compose

import (
	"fmt"

	"agribot-wa-relay/internal/catalog"
	"agribot-wa-relay/internal/gateway"
	"agribot-wa-relay/internal/types"
)

const (
	GreetingMessage        = "Hello! Please send your query or location."
	MalformedDetailMessage = "Please specify which product details you want, e.g. DETAILS Tractor"
	BackendTroubleMessage  = "Sorry, I'm having trouble connecting to the server. Please try again later."
	CatalogTroubleMessage  = "Error loading product details. Please try again later."

	noURLText = "No URL available"
)

// FromBackend renders a backend reply into outbound messages: the reply text
// first, then one message per mentioned product in reply order. The lead text
// is never dropped, even with no products.
func FromBackend(reply gateway.Reply) []types.Message {
	out := make([]types.Message, 0, 1+len(reply.Products))
	out = append(out, types.Message{Text: reply.Text})
	for _, p := range reply.Products {
		out = append(out, types.Message{
			Text: fmt.Sprintf("*%s*\n%s\nReply with: DETAILS %s to see more.",
				p.Title, p.Description, p.Title),
			MediaURL: p.ImageURL,
		})
	}
	return out
}

// ProductDetail resolves title against the catalog and renders the detail
// message. The returned message is always usable; the error, when non-nil,
// is the catalog failure for the caller to log.
func ProductDetail(store *catalog.Store, title string) (types.Message, error) {
	p, err := store.FindByTitle(title)
	if err != nil {
		return types.Message{Text: CatalogTroubleMessage}, err
	}
	if p == nil {
		return types.Message{Text: fmt.Sprintf("Sorry, I couldn't find details for '%s'.", title)}, nil
	}
	url := p.ProductURL
	if url == "" {
		url = noURLText
	}
	text := fmt.Sprintf("*%s*\n%s\n\n%s\nView Product: %s",
		p.Title, p.Description, catalog.FormatDetail(p.DetailedDescription), url)
	return types.Message{Text: text}, nil
}
