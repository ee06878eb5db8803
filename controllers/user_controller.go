package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"excellytics/backend/database"
	"excellytics/backend/models"
)

func Me() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        var u models.User
        err := database.Pool.QueryRow(ctx,
            `SELECT id, name, email, role, created_at, last_login_at FROM users WHERE id=$1`, uid).
            Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt, &u.LastLoginAt)
        if err != nil {
            c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
            return
        }
        c.JSON(http.StatusOK, u)
    }
}
