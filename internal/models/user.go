package models

import "time"

type User struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	UserID     string    `json:"userId"`
	Email      string    `json:"email"`
	Bio        string    `json:"bio"`
	ProfilePic string    `json:"profilePic"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Profile is the /profile/getUserProfile payload: the user plus their posts.
type Profile struct {
	User  User   `json:"user"`
	Posts []Post `json:"posts"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is what the backend hands back on login/register: an opaque
// bearer token and the authenticated user.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
