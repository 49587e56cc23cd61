package vision

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/abhisek/roadsign/internal/errs"
)

// Fetch downloads an image. Responses larger than maxBytes or without an
// image content type are rejected with errs.ErrInvalidArgument.
func Fetch(ctx context.Context, client *http.Client, url string, maxBytes int64) (Image, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Image{}, fmt.Errorf("image url %q: %v: %w", url, err, errs.ErrInvalidArgument)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Image{}, fmt.Errorf("fetch image: status %d: %w", resp.StatusCode, errs.ErrInvalidArgument)
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return Image{}, fmt.Errorf("image exceeds %d bytes: %w", maxBytes, errs.ErrInvalidArgument)
	}

	if mediaType == "" || mediaType == "application/octet-stream" {
		mediaType, _, _ = mime.ParseMediaType(http.DetectContentType(data))
	}

	img := Image{MediaType: mediaType, Data: data}
	if err := img.Validate(); err != nil {
		return Image{}, err
	}
	return img, nil
}
