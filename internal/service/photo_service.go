package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"net/http"
	"strings"

	"shoplist/internal/config"
	"shoplist/internal/featureflags"
	"shoplist/internal/models"
	"shoplist/internal/observability"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultPhotoMaxUploadMB  = 5
	DefaultPhotoMaxDimension = 1024
	DefaultPhotoWebPQuality  = 75
)

type UploadPhotoInput struct {
	UserID      string
	ContentType string
	Content     []byte
}

// PhotoResult is an inline data URL ready to be stored in an item's photo_url.
type PhotoResult struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type PhotoService struct {
	flags              *featureflags.Manager
	maxUploadSizeBytes int64
	maxDimension       int
	quality            int
}

func NewPhotoService(cfg *config.Config, flags *featureflags.Manager) *PhotoService {
	maxUploadMB := DefaultPhotoMaxUploadMB
	maxDimension := DefaultPhotoMaxDimension
	quality := DefaultPhotoWebPQuality

	if cfg != nil {
		if cfg.PhotoMaxUploadMB > 0 {
			maxUploadMB = cfg.PhotoMaxUploadMB
		}
		if cfg.PhotoMaxDimension > 0 {
			maxDimension = cfg.PhotoMaxDimension
		}
		if cfg.PhotoWebPQuality > 0 {
			quality = cfg.PhotoWebPQuality
		}
	}

	return &PhotoService{
		flags:              flags,
		maxUploadSizeBytes: int64(maxUploadMB) * 1024 * 1024,
		maxDimension:       maxDimension,
		quality:            quality,
	}
}

// MaxUploadBytes is the largest accepted upload.
func (s *PhotoService) MaxUploadBytes() int64 {
	return s.maxUploadSizeBytes
}

// Upload checks an image and returns it as a data URL. With photo_transcode
// enabled for the caller the image is downscaled and re-encoded as WebP;
// otherwise the original bytes are returned untouched.
func (s *PhotoService) Upload(_ context.Context, in UploadPhotoInput) (*PhotoResult, error) {
	result, err := s.upload(in)
	switch {
	case err == nil:
		observability.PhotoUploads.WithLabelValues("ok").Inc()
	case models.CodeOf(err) == models.CodeValidation:
		observability.PhotoUploads.WithLabelValues("rejected").Inc()
	default:
		observability.PhotoUploads.WithLabelValues("error").Inc()
	}
	return result, err
}

func (s *PhotoService) upload(in UploadPhotoInput) (*PhotoResult, error) {
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(in.Content)
	if !isAllowedImageMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}
	if !isSupportedDecodedFormat(format) {
		return nil, models.NewValidationError("Unsupported image format")
	}

	sourceMimeType := decodedFormatToMime(format)
	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !isMatchingContentType(provided, sourceMimeType) {
		return nil, models.NewValidationError("Image content type mismatch")
	}

	if s.flags == nil || !s.flags.Enabled(featureflags.FlagPhotoTranscode, in.UserID) {
		b := decoded.Bounds()
		return &PhotoResult{
			URL:      dataURL(sourceMimeType, in.Content),
			MimeType: sourceMimeType,
			Width:    b.Dx(),
			Height:   b.Dy(),
		}, nil
	}

	resized := resizeToFit(decoded, s.maxDimension, s.maxDimension)
	encoded, err := encodeWebP(resized, s.quality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	b := resized.Bounds()
	return &PhotoResult{
		URL:      dataURL("image/webp", encoded),
		MimeType: "image/webp",
		Width:    b.Dx(),
		Height:   b.Dy(),
	}, nil
}

func dataURL(mimeType string, content []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content)
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func isSupportedDecodedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg", "png", "gif", "webp":
		return true
	default:
		return false
	}
}

func decodedFormatToMime(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}
