package models

import "time"

// Activity types written by the controllers.
const (
    ActivityUpload     = "upload"
    ActivityDelete     = "delete"
    ActivityChat       = "chat"
    ActivityAIAnalysis = "ai_analysis"
)

type Activity struct {
    ID          int64     `json:"id"`
    UserID      int64     `json:"-"`
    Type        string    `json:"type"`
    Description string    `json:"description"`
    FileID      *int64    `json:"file_id,omitempty"`
    CreatedAt   time.Time `json:"created_at"`
}
