/*
Package handler provides the HTTP handlers and routing setup for the KT Chat Server.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to specific handlers (API and WebSocket).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"ktchat/internal/pkg/auth/jwt"
	"ktchat/internal/pkg/limiter"
	"ktchat/internal/pkg/logx"
	"ktchat/internal/pkg/resp"
)

const (
	// UploadRate limits presign-upload requests per IP (tokens per second).
	UploadRate = 1.0
	// UploadBurst is the burst capacity for presign-upload requests.
	UploadBurst = 10
	// StreamRate limits WebSocket subscription attempts per IP.
	StreamRate = 0.2
	// StreamBurst is the burst capacity for WebSocket subscription attempts.
	StreamBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	uploadLimiter := limiter.NewIPRateLimiter(rate.Limit(UploadRate), UploadBurst)
	streamLimiter := limiter.NewIPRateLimiter(rate.Limit(StreamRate), StreamBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "KT Chat Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/files", func(files chi.Router) {
			rateLimitedUpload := uploadLimiter.Middleware(HandleRequestUpload(deps))
			files.Post("/upload", http.HandlerFunc(rateLimitedUpload.ServeHTTP))
			files.Get("/download/{filename}", HandleDownloadFile(deps))
			files.Get("/view/{filename}", HandleViewFile(deps))
			files.Delete("/{id}", HandleDeleteFile(deps))
		})

		api.Route("/users", func(users chi.Router) {
			rateLimitedPresign := uploadLimiter.Middleware(HandlePresignProfileImage(deps))
			users.Post("/profile-image", http.HandlerFunc(rateLimitedPresign.ServeHTTP))
			users.Get("/profile-image", HandleGetProfileImage(deps))
			users.Delete("/profile-image", HandleDeleteProfileImage(deps))
		})

		api.Route("/rooms", func(rooms chi.Router) {
			rooms.Post("/", HandleCreateRoom(deps))
			rooms.Post("/{roomID}/join", HandleJoinRoom(deps))
			rooms.Post("/{roomID}/messages", HandlePostMessage(deps))
			rooms.Get("/{roomID}/messages", HandleListMessages(deps))
			rooms.Delete("/{roomID}/messages/{messageID}", HandleDeleteMessage(deps))
		})
	})

	r.Get("/ws/rooms/{roomID}", HandleRoomStream(wsUpgrader, streamLimiter, deps))

	return r
}
