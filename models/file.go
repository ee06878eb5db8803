package models

import "time"

// File is a stored spreadsheet. The bytes live in Cloudinary; RemoteURL is the
// only way this service reads them back.
type File struct {
    ID           int64     `json:"id"`
    UserID       int64     `json:"-"`
    OriginalName string    `json:"original_name"`
    RemoteURL    string    `json:"remote_url"`
    RemoteID     string    `json:"-"`
    SizeBytes    int64     `json:"size_bytes"`
    RowCount     int       `json:"row_count"`
    UploadedAt   time.Time `json:"uploaded_at"`
}
