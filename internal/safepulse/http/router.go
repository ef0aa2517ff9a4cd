package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/safepulse/internal/safepulse/service"
	"github.com/aussiebroadwan/safepulse/internal/safepulse/store"
	"github.com/aussiebroadwan/safepulse/pkg/httpx"
	"github.com/aussiebroadwan/safepulse/pkg/jwtx"
	"github.com/aussiebroadwan/safepulse/pkg/slogx"

	_ "github.com/aussiebroadwan/safepulse/api/safepulse" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	UserService  *service.UserService
	AlertService *service.AlertService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Logging wraps recovery so a recovered panic is still logged as a 500.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.RecoverMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerProfile()
	r.registerSOS()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			SafePulse API
//	@version		0.1.0
//	@description	Emergency alert backend. Users sign up with a phone number, a numeric PIN and emergency contacts,
//	@description	then trigger an SOS that texts their location to those contacts.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/safepulse
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token from /signup or /login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authn(h http.Handler) http.Handler {
	return httpx.Chain(h, httpx.AuthnMiddleware(r.verifier))
}

func (r *Router) registerAccounts() {
	r.Mux.Handle("POST /signup", &SignupHandler{UserService: r.UserService})
	r.Mux.Handle("POST /login", &LoginHandler{UserService: r.UserService})
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{UserService: r.UserService}

	r.Mux.Handle("GET /profile/{phone}", r.authn(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("PATCH /profile", r.authn(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("PUT /profile/pin", r.authn(&ChangePINHandler{UserService: r.UserService}))
}

func (r *Router) registerSOS() {
	r.Mux.Handle("POST /sos", r.authn(&SOSHandler{AlertService: r.AlertService}))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /health", HealthHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
