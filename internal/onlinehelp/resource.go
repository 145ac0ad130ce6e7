package onlinehelp

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is used for text resources that do not declare a charset.
const DefaultEncoding = "utf-8"

// Resource is a file used inside a rendered help topic, e.g. a screenshot.
type Resource struct {
	fs          afero.Fs
	name        string
	path        string
	contentType string
	encoding    string
	size        int64
	width       int
	height      int
}

// NewResource reads the file once to determine its size and content type.
// Image resources also record their dimensions.
func NewResource(fs afero.Fs, path string) (*Resource, error) {
	path = filepath.Clean(path)
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read resource %s: %w", path, err)
	}

	r := &Resource{
		fs:   fs,
		name: filepath.Base(path),
		path: path,
		size: int64(len(data)),
	}

	mediaType, params := guessContentType(path, data)
	if strings.HasPrefix(mediaType, "image/") {
		// trust the bytes over the extension for images
		if detected := mimetype.Detect(data); strings.HasPrefix(detected.String(), "image/") {
			mediaType, _, _ = mime.ParseMediaType(detected.String())
		}
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			r.width, r.height = cfg.Width, cfg.Height
		}
	}
	r.contentType = mediaType

	r.encoding = params["charset"]
	if r.encoding == "" {
		r.encoding = DefaultEncoding
	}
	return r, nil
}

// guessContentType uses the file extension first and falls back to sniffing
// the content.
func guessContentType(path string, data []byte) (string, map[string]string) {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if ct == "" {
		ct = mimetype.Detect(data).String()
	}
	mediaType, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return "application/octet-stream", nil
	}
	return mediaType, params
}

// Name is the key of the resource inside its topic.
func (r *Resource) Name() string { return r.name }

// Path is the location of the resource file.
func (r *Resource) Path() string { return r.path }

// ContentType is the media type without parameters.
func (r *Resource) ContentType() string { return r.contentType }

// Encoding is the charset used to decode text resources.
func (r *Resource) Encoding() string { return r.encoding }

// Size is the length of the file when the resource was created.
func (r *Resource) Size() int64 { return r.size }

// Dimensions returns the image size; zero for non-images.
func (r *Resource) Dimensions() (width, height int) { return r.width, r.height }

// IsText reports whether the resource holds text.
func (r *Resource) IsText() bool {
	return strings.HasPrefix(r.contentType, "text/")
}

// Data reads the raw bytes of the resource.
func (r *Resource) Data() ([]byte, error) {
	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		return nil, fmt.Errorf("read resource %s: %w", r.path, err)
	}
	return data, nil
}

// Text reads a text resource and decodes it from its charset.
func (r *Resource) Text() (string, error) {
	if !r.IsText() {
		return "", fmt.Errorf("resource %s is not text but %s", r.path, r.contentType)
	}
	data, err := r.Data()
	if err != nil {
		return "", err
	}

	enc, err := htmlindex.Get(r.encoding)
	if err != nil {
		return "", fmt.Errorf("resource %s: unsupported charset %q: %w", r.path, r.encoding, err)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode resource %s: %w", r.path, err)
	}
	return string(decoded), nil
}
