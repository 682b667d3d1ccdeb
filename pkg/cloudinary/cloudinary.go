// Package cloudinary wraps the Cloudinary uploader for program images.
package cloudinary

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Client uploads program images and returns the delivered URL.
type Client interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (url string, err error)
}

// Eager transformation applied at upload so the frontend gets a right-sized
// asset without a second request.
const imageEager = "q_auto,f_auto,w_1200,c_fill"

var eagerAsyncFalse = false

// OptimizedURL builds a delivery URL with on-the-fly transformations for an
// existing public id.
func OptimizedURL(cloudName, publicID string, width int) string {
	if width <= 0 {
		width = 1200
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d,c_fill/%s",
		cloudName, width, publicID)
}

type client struct {
	cloudName string
	uploader  *uploader.API
}

func (c *client) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	result, err := c.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:     folder,
		PublicID:   publicID,
		Eager:      imageEager,
		EagerAsync: &eagerAsyncFalse,
	})
	if err != nil {
		return "", err
	}
	if len(result.Eager) > 0 && result.Eager[0].SecureURL != "" {
		return result.Eager[0].SecureURL, nil
	}
	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	return OptimizedURL(c.cloudName, result.PublicID, 0), nil
}

// New builds a Client from credentials. Returns an error when the credentials
// are malformed; empty credentials should be handled by the caller (uploads
// disabled).
func New(cloudName, apiKey, apiSecret string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &client{cloudName: cloudName, uploader: up}, nil
}
