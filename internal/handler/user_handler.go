/*
Package handler provides HTTP handler functions for profile image management.
*/
package handler

import (
	"net/http"

	"ktchat/internal/app/file"
	"ktchat/internal/pkg/auth/jwt"
	"ktchat/internal/pkg/errs"
	"ktchat/internal/pkg/req"
	"ktchat/internal/pkg/resp"
)

// HandlePresignProfileImage creates an HTTP HandlerFunc that validates a
// profile image upload request, replaces the previous image, and issues a
// presigned PUT URL for the new one.
func HandlePresignProfileImage(deps *AppDeps) http.HandlerFunc {
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

		grant, customErr := deps.ProfileService.RequestImageUpload(r.Context(), identity.ID, meta)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, grant)
	}
}

// HandleGetProfileImage creates an HTTP HandlerFunc that issues a presigned
// inline view URL for the requester's own profile image.
func HandleGetProfileImage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		grant, customErr := deps.ProfileService.ImageAccess(r.Context(), identity.ID, true)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, grant)
	}
}

// HandleDeleteProfileImage creates an HTTP HandlerFunc that removes the
// requester's profile image.
func HandleDeleteProfileImage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if customErr := deps.ProfileService.RemoveImage(r.Context(), identity.ID); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"deleted": true,
		})
	}
}
