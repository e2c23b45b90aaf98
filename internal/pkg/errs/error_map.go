/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Room and Message Business Logic Errors
	ErrRoomNotFound:           {Code: ErrRoomNotFound, Message: "Chat room not found.", Status: http.StatusNotFound},
	ErrNotRoomParticipant:     {Code: ErrNotRoomParticipant, Message: "You are not a participant of this room.", Status: http.StatusForbidden},
	ErrMessageNotFound:        {Code: ErrMessageNotFound, Message: "Message not found.", Status: http.StatusNotFound},
	ErrMessageContentTooLong:  {Code: ErrMessageContentTooLong, Message: "Message is too long.", Status: http.StatusBadRequest},
	ErrMessageDeleteForbidden: {Code: ErrMessageDeleteForbidden, Message: "You do not have permission to delete this message.", Status: http.StatusForbidden},

	// 3xxx: User and Session Errors
	ErrUnauthorized: {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrUserNotFound: {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},

	// 4xxx: File Metadata and Access Errors
	ErrFileNameRequired:      {Code: ErrFileNameRequired, Message: "File name is required.", Status: http.StatusBadRequest},
	ErrFileNameTooLong:       {Code: ErrFileNameTooLong, Message: "File name is too long.", Status: http.StatusBadRequest},
	ErrFileTypeUnsupported:   {Code: ErrFileTypeUnsupported, Message: "Unsupported file type.", Status: http.StatusBadRequest},
	ErrFileExtensionMismatch: {Code: ErrFileExtensionMismatch, Message: "%s file extension does not match its type.", Status: http.StatusBadRequest},
	ErrFileSizeInvalid:       {Code: ErrFileSizeInvalid, Message: "File size is invalid.", Status: http.StatusBadRequest},
	ErrFileSizeTooLarge:      {Code: ErrFileSizeTooLarge, Message: "%s files cannot exceed %dMB.", Status: http.StatusBadRequest},

	ErrProfileImageTypeInvalid: {Code: ErrProfileImageTypeInvalid, Message: "Only image files can be uploaded.", Status: http.StatusBadRequest},
	ErrProfileImageTooLarge:    {Code: ErrProfileImageTooLarge, Message: "Profile images cannot exceed %dMB.", Status: http.StatusBadRequest},

	ErrFileNotFound:             {Code: ErrFileNotFound, Message: "File not found.", Status: http.StatusNotFound},
	ErrFileMessageNotFound:      {Code: ErrFileMessageNotFound, Message: "Message linked to this file was not found.", Status: http.StatusNotFound},
	ErrFileAccessDenied:         {Code: ErrFileAccessDenied, Message: "You do not have permission to access this file.", Status: http.StatusForbidden},
	ErrProfileImageAccessDenied: {Code: ErrProfileImageAccessDenied, Message: "You do not have permission to access this profile image.", Status: http.StatusForbidden},
	ErrFileDeleteForbidden:      {Code: ErrFileDeleteForbidden, Message: "You do not have permission to delete this file.", Status: http.StatusForbidden},
	ErrFileNotPreviewable:       {Code: ErrFileNotPreviewable, Message: "Preview is not supported for this file type.", Status: http.StatusUnsupportedMediaType},
	ErrAttachmentInvalid:        {Code: ErrAttachmentInvalid, Message: "Invalid attachment.", Status: http.StatusBadRequest},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "File storage request failed. Please try again.", Status: http.StatusInternalServerError},
}
