package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"excellytics/backend/database"
)

// ListActivities returns the caller's recent activity, newest first.
func ListActivities() gin.HandlerFunc {
    return func(c *gin.Context) {
        uid := c.GetInt64("user_id")
        limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        list, err := (database.ActivityStore{}).ListForUser(ctx, uid, limit)
        if err != nil {
            c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
            return
        }
        c.JSON(http.StatusOK, list)
    }
}
