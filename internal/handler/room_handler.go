/*
Package handler provides HTTP handler functions for room and message management.
*/
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ktchat/internal/pkg/auth/jwt"
	"ktchat/internal/pkg/errs"
	"ktchat/internal/pkg/req"
	"ktchat/internal/pkg/resp"
)

type CreateRoomInput struct {
	Name string `json:"name"`
}

// HandleCreateRoom creates an HTTP HandlerFunc to process room creation requests.
func HandleCreateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input CreateRoomInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		room, customErr := deps.ChatService.CreateRoom(r.Context(), input.Name, identity.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, room)
	}
}

// HandleJoinRoom processes the request to join a room.
func HandleJoinRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		roomID := chi.URLParam(r, "roomID")
		room, customErr := deps.ChatService.JoinRoom(r.Context(), roomID, identity.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, room)
	}
}

type PostMessageInput struct {
	Content string `json:"content"`
	FileID  string `json:"fileId,omitempty"`
}

// HandlePostMessage posts a message to a room, optionally linking an uploaded
// chat attachment to it.
func HandlePostMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input PostMessageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		roomID := chi.URLParam(r, "roomID")
		msg, customErr := deps.ChatService.PostMessage(r.Context(), roomID, identity.ID, input.Content, input.FileID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, msg)
	}
}

// HandleListMessages returns the recent messages of a room the requester belongs to.
func HandleListMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		roomID := chi.URLParam(r, "roomID")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		msgs, customErr := deps.ChatService.ListMessages(r.Context(), roomID, identity.ID, limit)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"messages": msgs,
		})
	}
}

// HandleDeleteMessage deletes a message the requester sent, cascading any
// attached file into the file subsystem.
func HandleDeleteMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		roomID := chi.URLParam(r, "roomID")
		messageID := chi.URLParam(r, "messageID")

		if customErr := deps.ChatService.DeleteMessage(r.Context(), roomID, messageID, identity.ID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"deleted": true,
		})
	}
}
