package models

import "time"

// User é o perfil mínimo mantido pelo servidor. A password nunca sai em JSON.
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	LastSeenAt   time.Time `json:"last_seen_at" db:"last_seen_at"`
}
