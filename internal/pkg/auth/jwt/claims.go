package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the structure of the JSON Web Token (JWT) claims for KT Chat.
// It includes standard claims required by the JWT specification and custom claims
// necessary for identifying and authorizing users within the chat system.
type Payload struct {
	// StandardClaims embeds the necessary JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer). These are crucial for token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the unique identifier of the authenticated user. It is the requester
	// identity used by all file access and ownership checks.
	ID string `json:"id"`

	// Nickname is the display name of the user.
	Nickname string `json:"nickname,omitempty"`
}
