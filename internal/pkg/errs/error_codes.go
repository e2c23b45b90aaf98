/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Room and Message Business Logic Errors
const (
	// ErrRoomNotFound indicates that the requested room does not exist.
	ErrRoomNotFound = 2101

	// ErrNotRoomParticipant indicates that the requester is not a member of the room.
	ErrNotRoomParticipant = 2102

	// ErrMessageNotFound indicates that the requested message does not exist.
	ErrMessageNotFound = 2201

	// ErrMessageContentTooLong indicates that the message content exceeded the maximum length limit.
	ErrMessageContentTooLong = 2202

	// ErrMessageDeleteForbidden indicates that a non-sender attempted to delete a message.
	ErrMessageDeleteForbidden = 2203
)

// 3xxx: User and Session Errors
const (
	// ErrUnauthorized indicates that the request lacks a valid authenticated identity.
	ErrUnauthorized = 3001

	// ErrUserNotFound indicates that the referenced user account does not exist.
	ErrUserNotFound = 3002
)

// 4xxx: File Metadata and Access Errors
const (
	// ErrFileNameRequired indicates that the declared filename is empty after trimming.
	ErrFileNameRequired = 4001

	// ErrFileNameTooLong indicates that the declared filename exceeds 255 bytes when UTF-8 encoded.
	ErrFileNameTooLong = 4002

	// ErrFileTypeUnsupported indicates that the declared content type is not in the allow-list.
	ErrFileTypeUnsupported = 4003

	// ErrFileExtensionMismatch indicates that the filename extension does not match the declared content type.
	ErrFileExtensionMismatch = 4004

	// ErrFileSizeInvalid indicates that the declared size is not a positive integer.
	ErrFileSizeInvalid = 4005

	// ErrFileSizeTooLarge indicates that the declared size exceeds the per-family limit.
	ErrFileSizeTooLarge = 4006

	// ErrProfileImageTypeInvalid indicates that a profile image upload declared a non-image content type.
	ErrProfileImageTypeInvalid = 4007

	// ErrProfileImageTooLarge indicates that a profile image exceeds the configured maximum size.
	ErrProfileImageTooLarge = 4008

	// ErrFileNotFound indicates that no file record matches the requested identifier or stored name.
	ErrFileNotFound = 4101

	// ErrFileMessageNotFound indicates that a chat file has no linked message (inconsistent state).
	ErrFileMessageNotFound = 4102

	// ErrFileAccessDenied indicates that the requester may not read the file.
	ErrFileAccessDenied = 4103

	// ErrProfileImageAccessDenied indicates that the requester is not the owner of the profile image.
	ErrProfileImageAccessDenied = 4104

	// ErrFileDeleteForbidden indicates that a non-uploader attempted to delete a file.
	ErrFileDeleteForbidden = 4105

	// ErrFileNotPreviewable indicates that the file type does not support inline preview.
	ErrFileNotPreviewable = 4106

	// ErrAttachmentInvalid indicates that a message referenced an attachment the sender does not own.
	ErrAttachmentInvalid = 4107
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates that the object store or URL signer failed.
	ErrFileStorageFailed = 5001
)
