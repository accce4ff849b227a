package uploads

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxImageBytes = 5 * 1024 * 1024
const maxImagesPerRequest = 5

var (
	ErrNoFiles         = errors.New("No files uploaded")
	ErrTooManyFiles    = errors.New("Too many files")
	ErrUnsupportedType = errors.New("Unsupported file type")
	ErrFileTooLarge    = errors.New("File too large")
	ErrEmptyMetadata   = errors.New("No JSON body provided")
)

// Service stores uploaded assets on disk and returns retrievable URLs.
// The registry consumes those URLs as opaque metadata references.
type Service struct {
	Dir           string // local storage directory, served at /uploads
	PublicBaseURL string // absolute base for returned URLs
}

// SaveImages stores image files under timestamped names and returns their URLs.
// Only image mimetypes are accepted, capped at 5 MB each, 5 per request.
func (s *Service) SaveImages(files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > maxImagesPerRequest {
		return nil, ErrTooManyFiles
	}
	for _, f := range files {
		if !strings.HasPrefix(f.Header.Get("Content-Type"), "image/") {
			return nil, ErrUnsupportedType
		}
		if f.Size > maxImageBytes {
			return nil, ErrFileTooLarge
		}
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		name := fmt.Sprintf("images-%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1e9), filepath.Ext(f.Filename))
		if err := s.saveFile(f, filepath.Join(s.Dir, name)); err != nil {
			return nil, err
		}
		urls = append(urls, s.publicURL(name))
	}
	return urls, nil
}

// SaveMetadata stores a JSON document and returns its URL. An empty body is
// rejected; when "image" is missing but "cover" is present, cover is mirrored
// into image so metadata consumers always find a primary image field.
func (s *Service) SaveMetadata(doc map[string]interface{}) (string, error) {
	if len(doc) == 0 {
		return "", ErrEmptyMetadata
	}
	if _, ok := doc["image"]; !ok {
		if cover, ok := doc["cover"]; ok {
			doc["image"] = cover
		}
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("metadata-%d.json", time.Now().UnixMilli())
	if err := os.WriteFile(filepath.Join(s.Dir, name), b, 0o644); err != nil {
		return "", err
	}
	return s.publicURL(name), nil
}

func (s *Service) saveFile(f *multipart.FileHeader, dst string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func (s *Service) publicURL(name string) string {
	return strings.TrimRight(s.PublicBaseURL, "/") + "/uploads/" + name
}
