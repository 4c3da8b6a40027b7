package session

import "time"

// UserData is the credential payload persisted at login: the bearer token
// plus the minimal profile the screens need without a network round trip.
// It is serialized as a JSON string into the credential store's single
// "session" record.
type UserData struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Firstname string    `json:"firstname"`
	ExpiresAt time.Time `json:"expiresAt"`
}
