/*
Package handler provides HTTP handler functions for the presigned file endpoints.

File bytes never pass through these handlers: uploads and downloads are
performed by clients directly against the object store using the short-lived
signed URLs issued here.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ktchat/internal/app/file"
	"ktchat/internal/pkg/auth/jwt"
	"ktchat/internal/pkg/errs"
	"ktchat/internal/pkg/req"
	"ktchat/internal/pkg/resp"
)

// HandleRequestUpload creates an HTTP HandlerFunc that validates declared file
// metadata and issues a presigned PUT URL for a chat attachment.
func HandleRequestUpload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var meta file.UploadMetadata
		if customErr := req.BindJSON(r, &meta); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		grant, customErr := deps.FileService.RequestUpload(r.Context(), meta, identity.ID, file.CategoryChat)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, grant)
	}
}

// HandleDownloadFile creates an HTTP HandlerFunc that issues a presigned GET
// URL with attachment disposition for the stored filename in the path.
func HandleDownloadFile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		storedName := chi.URLParam(r, "filename")
		if storedName == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		grant, customErr := deps.FileService.RequestAccess(r.Context(), storedName, identity.ID, false)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, grant)
	}
}

// HandleViewFile creates an HTTP HandlerFunc that issues a presigned GET URL
// with inline disposition. Non-previewable file types are rejected before the
// access check runs.
func HandleViewFile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		storedName := chi.URLParam(r, "filename")
		if storedName == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		rec, customErr := deps.FileService.GetByStoredName(r.Context(), storedName)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !rec.Previewable() {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileNotPreviewable))
			return
		}

		grant, customErr := deps.FileService.RequestAccess(r.Context(), storedName, identity.ID, true)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, grant)
	}
}

// HandleDeleteFile creates an HTTP HandlerFunc that deletes a file the
// requester uploaded, by record identifier.
func HandleDeleteFile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		fileID := chi.URLParam(r, "id")
		if fileID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		deleted, customErr := deps.FileService.DeleteOwned(r.Context(), fileID, identity.ID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"deleted": deleted,
		})
	}
}
