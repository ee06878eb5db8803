package utils

import (
    "bytes"
    "context"

    "github.com/cloudinary/cloudinary-go/v2"
    "github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage holds uploaded spreadsheets as raw assets. The service
// never keeps file bytes locally; reads go through the asset's secure URL.
type CloudinaryStorage struct {
    cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cloudinaryURL string) (*CloudinaryStorage, error) {
    cld, err := cloudinary.NewFromURL(cloudinaryURL)
    if err != nil {
        return nil, err
    }
    return &CloudinaryStorage{cld: cld}, nil
}

// Upload pushes content and returns (secure URL, public ID).
func (s *CloudinaryStorage) Upload(ctx context.Context, content []byte, publicID string) (string, string, error) {
    res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(content), uploader.UploadParams{
        PublicID:     publicID,
        Folder:       "excellytics",
        ResourceType: "raw",
    })
    if err != nil {
        return "", "", err
    }
    return res.SecureURL, res.PublicID, nil
}

func (s *CloudinaryStorage) Destroy(ctx context.Context, remoteID string) error {
    _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
        PublicID:     remoteID,
        ResourceType: "raw",
    })
    return err
}
