package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"agribot-wa-relay/internal/compose"
	"agribot-wa-relay/internal/gateway"
	"agribot-wa-relay/internal/intent"
	"agribot-wa-relay/internal/store"
	"agribot-wa-relay/internal/types"
)

// locationMessage is the text sent to the backend alongside shared coordinates.
const locationMessage = "Here is my location."

// defaultIdentity is used when the provider sends no From address.
const defaultIdentity = "default_session"

// handleWebhook is the inbound Twilio WhatsApp webhook: classify the event,
// resolve it locally or relay it to the backend, and answer with TwiML.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	identity := identityFromAddress(r.PostFormValue("From"))
	if name := strings.TrimSpace(r.PostFormValue("ProfileName")); name != "" {
		s.sessions.SetDisplayName(identity, name)
	}

	ev := intent.Event{
		Identity: identity,
		Body:     r.PostFormValue("Body"),
	}
	if loc, ok := parseLocation(r.PostFormValue("Latitude"), r.PostFormValue("Longitude")); ok {
		ev.Location = &loc
	}

	sess := s.sessions.Get(identity)
	in := intent.Classify(ev, sess)

	var msgs []types.Message
	switch in.Kind {
	case intent.KindEmpty:
		msgs = []types.Message{{Text: compose.GreetingMessage}}
	case intent.KindMalformedDetail:
		msgs = []types.Message{{Text: compose.MalformedDetailMessage}}
	case intent.KindProductDetail:
		msg, err := compose.ProductDetail(s.catalog, in.Title)
		if err != nil {
			log.Error().Err(err).Str("title", in.Title).Msg("product detail lookup failed")
		}
		msgs = []types.Message{msg}
	default:
		msgs = s.relay(r.Context(), identity, sess, in)
	}

	body, err := renderTwiML(msgs)
	if err != nil {
		log.Error().Err(err).Msg("twiml rendering failed")
		s.writeError(w, http.StatusInternalServerError, "reply rendering failed")
		return
	}
	w.Header().Set("Content-Type", "text/xml")
	_, _ = w.Write([]byte(body))
}

// relay forwards a free-text message or location share to the backend and
// composes its reply. The session is updated only on success, and only while
// the request is still alive: a result arriving after cancellation must not
// clobber the mentioned-products list.
func (s *Server) relay(ctx context.Context, identity string, sess store.Session, in intent.Intent) []types.Message {
	log := zerolog.Ctx(ctx)
	req := gateway.Request{
		SessionID: identity,
		FirstName: sess.DisplayName,
	}
	if in.Kind == intent.KindLocation {
		req.Message = locationMessage
		req.Location = &gateway.Location{
			Latitude:  in.Location.Latitude,
			Longitude: in.Location.Longitude,
		}
	} else {
		req.Message = in.Body
	}

	reply, err := s.backend.Query(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("identity", identity).Msg("backend request failed")
		return []types.Message{{Text: compose.BackendTroubleMessage}}
	}
	if ctx.Err() == nil {
		s.sessions.SetLastMentioned(identity, reply.Products)
	}
	return compose.FromBackend(*reply)
}

// identityFromAddress derives the session identity from the transport
// address, e.g. "whatsapp:+123456789" -> "+123456789".
func identityFromAddress(from string) string {
	from = strings.TrimSpace(from)
	if from == "" {
		return defaultIdentity
	}
	if i := strings.Index(from, ":"); i >= 0 {
		if rest := from[i+1:]; rest != "" {
			return rest
		}
	}
	return from
}

// parseLocation accepts the pair of decimal-string coordinates from the
// webhook form. Both must be present and parseable.
func parseLocation(lat, lng string) (intent.Location, bool) {
	if lat == "" || lng == "" {
		return intent.Location{}, false
	}
	latF, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return intent.Location{}, false
	}
	lngF, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return intent.Location{}, false
	}
	return intent.Location{Latitude: latF, Longitude: lngF}, true
}
