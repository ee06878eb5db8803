package models

import "time"

type User struct {
    ID           int64      `json:"id"`
    Name         string     `json:"name"`
    Email        string     `json:"email"`
    PasswordHash string     `json:"-"`
    GoogleID     *string    `json:"-"`
    Role         string     `json:"role"`
    CreatedAt    time.Time  `json:"created_at"`
    LastLoginAt  *time.Time `json:"last_login_at"`
}
