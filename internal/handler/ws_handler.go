/*
Package handler provides the HTTP handler function for WebSocket connection upgrading.

This file contains HandleRoomStream, which authenticates the caller, verifies
room membership, upgrades the connection, and subscribes it to the room's
message broadcast.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"ktchat/internal/pkg/auth/jwt"
	"ktchat/internal/pkg/errs"
	"ktchat/internal/pkg/limiter"
	"ktchat/internal/pkg/logx"
	"ktchat/internal/pkg/resp"
)

// HandleRoomStream creates an HTTP HandlerFunc to process WebSocket
// subscriptions to a room's message stream. Browsers cannot set headers on
// WebSocket requests, so the JWT is carried in the "token" query parameter.
func HandleRoomStream(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		identity, err := jwt.ParseToken(tokenString, deps.Config.JWTSecret)
		if err != nil {
			logx.Warn("WebSocket connection rejected: Invalid token", "error", err.Error())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		roomID := chi.URLParam(r, "roomID")
		if roomID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if _, customErr := deps.ChatService.RequireMembership(r.Context(), roomID, identity.ID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		deps.Hub.Subscribe(roomID, conn)
		logx.Info("WebSocket subscriber registered", "room_id", roomID, "user_id", identity.ID)

		// The read loop only consumes control frames; messages are posted
		// over REST and fanned out by the hub.
		go func() {
			defer func() {
				deps.Hub.Unsubscribe(roomID, conn)
				_ = conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
