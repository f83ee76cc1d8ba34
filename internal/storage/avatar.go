// Package storage persists uploaded media on local disk.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register decoders for uploaded avatars
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"ironlog/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// AvatarSize is the square edge length avatars are resized to.
	AvatarSize = 256
	// AvatarWebPQuality balances size against visible banding on gradients.
	AvatarWebPQuality = 80
	// MaxAvatarUploadBytes caps the accepted upload size.
	MaxAvatarUploadBytes = 5 * 1024 * 1024
)

// AvatarStore writes resized WebP avatars under a local directory and
// serves them from a public base URL.
type AvatarStore struct {
	dir     string
	baseURL string
}

// NewAvatarStore creates the store, ensuring the target directory exists.
func NewAvatarStore(dir, baseURL string) (*AvatarStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create avatar dir: %w", err)
	}
	return &AvatarStore{dir: dir, baseURL: baseURL}, nil
}

// Save decodes the upload, center-crops it square, resizes to AvatarSize
// and writes it as WebP under a random name. Returns the public URL.
func (s *AvatarStore) Save(ctx context.Context, userID uint, r io.Reader) (string, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxAvatarUploadBytes+1))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if len(content) > MaxAvatarUploadBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", MaxAvatarUploadBytes/(1024*1024)))
	}

	if !isAllowedImageMIME(http.DetectContentType(content)) {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	resized := resizeSquare(cropSquare(decoded), AvatarSize)

	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, resized, &webp.Options{Quality: AvatarWebPQuality}); err != nil {
		return "", models.NewInternalError(err)
	}

	name := fmt.Sprintf("%d-%s.webp", userID, uuid.NewString())
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", models.NewInternalError(err)
	}

	return s.baseURL + "/" + name, nil
}

// cropSquare returns the centered square region of src.
func cropSquare(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == h {
		return src
	}

	side := w
	if h < side {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2
	rect := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.Copy(dst, image.Point{}, src, rect, xdraw.Over, nil)
	return dst
}

// resizeSquare scales a square image down (or up) to size x size.
func resizeSquare(src image.Image, size int) image.Image {
	b := src.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

func isAllowedImageMIME(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}
