package controllers

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/gin-gonic/gin"

    "excellytics/backend/database"
    "excellytics/backend/models"
)

func AdminListUsers() gin.HandlerFunc {
    return func(c *gin.Context) {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        rows, err := database.Pool.Query(ctx,
            `SELECT id, name, email, role, created_at, last_login_at FROM users ORDER BY created_at DESC`)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        defer rows.Close()
        list := []models.User{}
        for rows.Next() {
            var u models.User
            if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.LastLoginAt); err == nil {
                list = append(list, u)
            }
        }
        c.JSON(http.StatusOK, list)
    }
}

func AdminSetRole() gin.HandlerFunc {
    return func(c *gin.Context) {
        targetID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
        var req models.SetRoleRequest
        if err := c.ShouldBindJSON(&req); err != nil || (req.Role != "user" && req.Role != "admin") {
            c.JSON(http.StatusBadRequest, gin.H{"error": "role must be 'user' or 'admin'"})
            return
        }
        if targetID == c.GetInt64("user_id") {
            c.JSON(http.StatusBadRequest, gin.H{"error": "cannot change your own role"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        res, err := database.Pool.Exec(ctx, `UPDATE users SET role=$1 WHERE id=$2`, req.Role, targetID)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        if res.RowsAffected() == 0 {
            c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
            return
        }
        c.JSON(http.StatusOK, gin.H{"status": "ok"})
    }
}

// AdminDeleteUser removes a user; files and activities cascade in the schema.
func AdminDeleteUser() gin.HandlerFunc {
    return func(c *gin.Context) {
        targetID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
        if targetID == c.GetInt64("user_id") {
            c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete yourself"})
            return
        }
        ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        res, err := database.Pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, targetID)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        if res.RowsAffected() == 0 {
            c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
            return
        }
        c.JSON(http.StatusOK, gin.H{"status": "deleted"})
    }
}

func AdminStats() gin.HandlerFunc {
    return func(c *gin.Context) {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        var users, files, activities int64
        _ = database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users)
        _ = database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM files`).Scan(&files)
        _ = database.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM activities`).Scan(&activities)
        c.JSON(http.StatusOK, gin.H{
            "users":      users,
            "files":      files,
            "activities": activities,
        })
    }
}
