package database

import (
    "context"
    "errors"
    "strings"

    "github.com/jackc/pgx/v5"

    "excellytics/backend/models"
    "excellytics/backend/utils"
)

// FileStore reads and writes the files table through the shared pool.
type FileStore struct{}

// FindForUser loads a file only when it belongs to userID and still has a
// usable remote location; everything else is ErrNotFound so callers cannot
// distinguish "missing" from "not yours".
func (FileStore) FindForUser(ctx context.Context, fileID, userID int64) (*models.File, error) {
    var f models.File
    err := Pool.QueryRow(ctx,
        `SELECT id, user_id, original_name, remote_url, remote_id, size_bytes, row_count, uploaded_at
         FROM files WHERE id=$1 AND user_id=$2`, fileID, userID).
        Scan(&f.ID, &f.UserID, &f.OriginalName, &f.RemoteURL, &f.RemoteID, &f.SizeBytes, &f.RowCount, &f.UploadedAt)
    if errors.Is(err, pgx.ErrNoRows) {
        return nil, utils.ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    if strings.TrimSpace(f.RemoteURL) == "" {
        return nil, utils.ErrNotFound
    }
    return &f, nil
}

func (FileStore) Insert(ctx context.Context, f *models.File) error {
    return Pool.QueryRow(ctx,
        `INSERT INTO files(user_id, original_name, remote_url, remote_id, size_bytes, row_count)
         VALUES($1,$2,$3,$4,$5,$6) RETURNING id, uploaded_at`,
        f.UserID, f.OriginalName, f.RemoteURL, f.RemoteID, f.SizeBytes, f.RowCount).
        Scan(&f.ID, &f.UploadedAt)
}

func (FileStore) ListForUser(ctx context.Context, userID int64) ([]models.File, error) {
    rows, err := Pool.Query(ctx,
        `SELECT id, user_id, original_name, remote_url, remote_id, size_bytes, row_count, uploaded_at
         FROM files WHERE user_id=$1 ORDER BY uploaded_at DESC`, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    list := []models.File{}
    for rows.Next() {
        var f models.File
        if err := rows.Scan(&f.ID, &f.UserID, &f.OriginalName, &f.RemoteURL, &f.RemoteID, &f.SizeBytes, &f.RowCount, &f.UploadedAt); err == nil {
            list = append(list, f)
        }
    }
    return list, rows.Err()
}

// Delete removes the row and reports whether it existed for this user.
func (FileStore) Delete(ctx context.Context, fileID, userID int64) (bool, error) {
    res, err := Pool.Exec(ctx, `DELETE FROM files WHERE id=$1 AND user_id=$2`, fileID, userID)
    if err != nil {
        return false, err
    }
    return res.RowsAffected() > 0, nil
}
