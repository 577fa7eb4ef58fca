package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	twilio "github.com/twilio/twilio-go"

	"agribot-wa-relay/internal/catalog"
	"agribot-wa-relay/internal/config"
	"agribot-wa-relay/internal/gateway"
	"agribot-wa-relay/internal/logging"
	"agribot-wa-relay/internal/store"
	"agribot-wa-relay/internal/types"
)

type Server struct {
	router   *chi.Mux
	cfg      config.Config
	sessions *store.Memory
	catalog  *catalog.Store
	backend  *gateway.Client
	// nil when proactive credentials are not configured.
	twilioClient *twilio.RestClient
}

func NewServer(cfg config.Config) *Server {
	r := chi.NewRouter()
	r.Use(requestLogger(logging.WithComponent("http")))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	var tc *twilio.RestClient
	if cfg.ProactiveEnabled() {
		tc = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}

	s := &Server{
		router:       r,
		cfg:          cfg,
		sessions:     store.NewMemory(),
		catalog:      catalog.NewStore(cfg.CatalogFile),
		backend:      gateway.NewClient(cfg.APIEndpoint, cfg.APITimeout),
		twilioClient: tc,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Post("/whatsapp/webhook", s.handleWebhook)
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/messages", s.handleSendMessage)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}
