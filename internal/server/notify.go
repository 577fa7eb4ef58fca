package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"agribot-wa-relay/internal/types"
)

// handleSendMessage sends a proactive WhatsApp message through the Twilio
// REST API. Only available when Twilio credentials are configured.
func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())
	if s.twilioClient == nil {
		s.writeError(w, http.StatusServiceUnavailable, "twilio credentials not configured")
		return
	}
	var req types.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.To) == "" || strings.TrimSpace(req.Body) == "" {
		s.writeError(w, http.StatusBadRequest, "to and body are required")
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(whatsappAddress(req.To))
	params.SetFrom(whatsappAddress(s.cfg.TwilioFromNumber))
	params.SetBody(req.Body)
	if req.MediaURL != "" {
		params.SetMediaUrl([]string{req.MediaURL})
	}

	msg, err := s.twilioClient.Api.CreateMessage(params)
	if err != nil {
		log.Error().Err(err).Msg("proactive send failed")
		s.writeError(w, http.StatusBadGateway, "message send failed")
		return
	}

	resp := types.SendMessageResponse{}
	if msg.Sid != nil {
		resp.Sid = *msg.Sid
	}
	if msg.Status != nil {
		resp.Status = *msg.Status
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// whatsappAddress ensures the Twilio WhatsApp channel prefix on a number.
func whatsappAddress(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
