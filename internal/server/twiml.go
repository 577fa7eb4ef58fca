package server

import (
	"github.com/twilio/twilio-go/twiml"

	"agribot-wa-relay/internal/types"
)

// renderTwiML renders outbound messages as a TwiML <Response> document, one
// <Message> per unit with an optional <Media> child.
func renderTwiML(msgs []types.Message) (string, error) {
	verbs := make([]twiml.Element, 0, len(msgs))
	for _, m := range msgs {
		inner := []twiml.Element{&twiml.MessagingBody{Message: m.Text}}
		if m.MediaURL != "" {
			inner = append(inner, &twiml.MessagingMedia{Url: m.MediaURL})
		}
		verbs = append(verbs, &twiml.MessagingMessage{InnerElements: inner})
	}
	return twiml.Messages(verbs)
}
