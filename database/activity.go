package database

import (
    "context"

    "excellytics/backend/models"
)

// ActivityStore appends to and lists the audit trail. Writes are best-effort
// from the controllers' point of view; nothing in the serving path reads them.
type ActivityStore struct{}

func (ActivityStore) Record(ctx context.Context, userID int64, activityType, description string, fileID *int64) error {
    _, err := Pool.Exec(ctx,
        `INSERT INTO activities(user_id, type, description, file_id) VALUES($1,$2,$3,$4)`,
        userID, activityType, description, fileID)
    return err
}

func (ActivityStore) ListForUser(ctx context.Context, userID int64, limit int) ([]models.Activity, error) {
    if limit <= 0 || limit > 200 {
        limit = 50
    }
    rows, err := Pool.Query(ctx,
        `SELECT id, user_id, type, description, file_id, created_at
         FROM activities WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    list := []models.Activity{}
    for rows.Next() {
        var a models.Activity
        if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Description, &a.FileID, &a.CreatedAt); err == nil {
            list = append(list, a)
        }
    }
    return list, rows.Err()
}
