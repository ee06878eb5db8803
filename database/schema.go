package database

import (
    "context"
    "log"
)

// EnsureSchema creates required tables if they do not exist.
func EnsureSchema() {
    if Pool == nil { return }
    ctx := context.Background()

    stmts := []string{
        `CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT,
            google_id TEXT,
            role TEXT NOT NULL DEFAULT 'user',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            last_login_at TIMESTAMPTZ
        )`,
        `CREATE TABLE IF NOT EXISTS files (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            original_name TEXT NOT NULL,
            remote_url TEXT NOT NULL,
            remote_id TEXT NOT NULL,
            size_bytes BIGINT NOT NULL DEFAULT 0,
            row_count INT NOT NULL DEFAULT 0,
            uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
        `CREATE INDEX IF NOT EXISTS files_user_id_idx ON files(user_id, uploaded_at DESC)`,
        `CREATE TABLE IF NOT EXISTS activities (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            type TEXT NOT NULL, -- 'upload' | 'delete' | 'chat' | 'ai_analysis'
            description TEXT NOT NULL,
            file_id BIGINT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`,
        `CREATE INDEX IF NOT EXISTS activities_user_id_idx ON activities(user_id, created_at DESC)`,
    }

    for _, s := range stmts {
        if _, err := Pool.Exec(ctx, s); err != nil {
            log.Printf("schema ensure error: %v in stmt: %s", err, s)
        }
    }
}
