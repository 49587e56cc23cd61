package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/abhisek/roadsign/internal/errs"
	"github.com/abhisek/roadsign/internal/roadsign"
	"github.com/abhisek/roadsign/internal/vision"
)

// RecognizeRequest names an image to download and analyse.
type RecognizeRequest struct {
	ImageURL string `json:"image_url" validate:"required,http_url"`
}

// RecognizeResponse is the model's description of the signs found.
type RecognizeResponse struct {
	Text string `json:"text"`
}

func handleRecognize(logger *slog.Logger, svc *roadsign.Service, opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		img, err := readImage(w, r, opts)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}

		text, err := svc.RecognizeSign(r.Context(), img)
		if err != nil {
			writeServiceError(w, r, logger, err)
			return
		}

		writeJSON(w, http.StatusOK, RecognizeResponse{Text: text})
	}
}

// readImage accepts a multipart "image" file or a JSON body with an
// image_url to fetch.
func readImage(w http.ResponseWriter, r *http.Request, opts Options) (vision.Image, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "multipart/form-data" {
		// Room for the multipart envelope around the file.
		r.Body = http.MaxBytesReader(w, r.Body, opts.MaxImageBytes+64<<10)
		file, header, err := r.FormFile("image")
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				return vision.Image{}, fmt.Errorf("image exceeds %d bytes: %w", opts.MaxImageBytes, errs.ErrInvalidArgument)
			}
			return vision.Image{}, fmt.Errorf("read image field: %v: %w", err, errs.ErrInvalidArgument)
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, opts.MaxImageBytes+1))
		if err != nil {
			return vision.Image{}, fmt.Errorf("read image: %w", err)
		}
		if int64(len(data)) > opts.MaxImageBytes {
			return vision.Image{}, fmt.Errorf("image exceeds %d bytes: %w", opts.MaxImageBytes, errs.ErrInvalidArgument)
		}

		ct, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
		if err != nil || ct == "application/octet-stream" {
			ct, _, _ = mime.ParseMediaType(http.DetectContentType(data))
		}
		return vision.Image{MediaType: ct, Data: data}, nil
	}

	var req RecognizeRequest
	if err := readJSON(r, &req); err != nil {
		return vision.Image{}, fmt.Errorf("invalid JSON body: %v: %w", err, errs.ErrInvalidArgument)
	}
	if err := validateRequest(req); err != nil {
		return vision.Image{}, err
	}
	return vision.Fetch(r.Context(), opts.HTTPClient, req.ImageURL, opts.MaxImageBytes)
}
