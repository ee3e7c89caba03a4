package tmdb

import (
	"context"
	"fmt"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"
	"golang.org/x/sync/singleflight"
)

// ImageKind selects the size list an image is rendered with
type ImageKind string

// Image kinds
const (
	ImageBackdrop ImageKind = "backdrop"
	ImagePoster   ImageKind = "poster"
	ImageLogo     ImageKind = "logo"
	ImageProfile  ImageKind = "profile"
	ImageStill    ImageKind = "still"
)

var imageKinds = []any{ImageBackdrop, ImagePoster, ImageLogo, ImageProfile, ImageStill}

// Image is an immutable reference to one artwork file
type Image struct {
	client *Client

	Kind        ImageKind
	FilePath    string
	Width       int
	Height      int
	AspectRatio float64
	Language    string
	Vote        Vote
}

// NewImage builds an Image from a raw image object. kind must be one of the
// Image* constants and data must carry a file_path.
func NewImage(c *Client, data map[string]any, kind ImageKind) (*Image, error) {
	if err := validation.Validate(kind, validation.Required, validation.In(imageKinds...)); err != nil {
		return nil, &ConstructionError{Kind: "image", Field: "kind", Err: err}
	}
	filePath, err := cast.ToStringE(data["file_path"])
	if err == nil {
		err = validation.Validate(filePath, validation.Required)
	}
	if err != nil {
		return nil, &ConstructionError{Kind: "image", Field: "file_path", Err: err}
	}

	r := newRecord("image", string(kind), data)
	image := &Image{
		client:      c,
		Kind:        kind,
		FilePath:    filePath,
		Width:       r.optInt("width"),
		Height:      r.optInt("height"),
		AspectRatio: r.optFloat("aspect_ratio"),
		Language:    r.optStr("iso_639_1"),
		Vote:        Vote{Average: r.optFloat("vote_average"), Count: r.optInt("vote_count")},
	}
	if r.err != nil {
		return nil, &ConstructionError{Kind: "image", Err: r.err}
	}
	return image, nil
}

func (i *Image) String() string { return i.FilePath }

// Sizes lists the size tokens available for the image kind
func (i *Image) Sizes(ctx context.Context) ([]string, error) {
	settings, err := i.client.imageSettings(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), settings.sizes[i.Kind]...), nil
}

// URL returns the address of the image rendered at size; "" means "original"
func (i *Image) URL(ctx context.Context, size string) (string, error) {
	settings, err := i.client.imageSettings(ctx)
	if err != nil {
		return "", err
	}
	if size == "" {
		size = "original"
	}
	if err := validation.Validate(size, validation.In(toAny(settings.sizes[i.Kind])...)); err != nil {
		return "", fmt.Errorf("%w: %q for %s", ErrUnknownImageSize, size, i.Kind)
	}
	return settings.baseURL + size + i.FilePath, nil
}

// URLs returns the address of the image at every available size, keyed by size
func (i *Image) URLs(ctx context.Context) (map[string]string, error) {
	settings, err := i.client.imageSettings(ctx)
	if err != nil {
		return nil, err
	}
	urls := make(map[string]string, len(settings.sizes[i.Kind]))
	for _, size := range settings.sizes[i.Kind] {
		urls[size] = settings.baseURL + size + i.FilePath
	}
	return urls, nil
}

// imageConfiguration caches the /configuration image settings for a Client.
// Concurrent first use shares one request; a failed fetch is not cached.
type imageConfiguration struct {
	mu       sync.RWMutex
	group    singleflight.Group
	settings *imageSettings
}

type imageSettings struct {
	baseURL string
	sizes   map[ImageKind][]string
}

func (c *Client) imageSettings(ctx context.Context) (*imageSettings, error) {
	c.images.mu.RLock()
	settings := c.images.settings
	c.images.mu.RUnlock()
	if settings != nil {
		return settings, nil
	}

	value, err, _ := c.images.group.Do("configuration", func() (any, error) {
		c.images.mu.RLock()
		cached := c.images.settings
		c.images.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		c.logger.Debug().Msg("Fetching image configuration")
		payload, err := c.transport.Get(ctx, "/configuration", nil)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image configuration: %w", err)
		}
		fetched, err := parseImageSettings(payload)
		if err != nil {
			return nil, err
		}

		c.images.mu.Lock()
		c.images.settings = fetched
		c.images.mu.Unlock()
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*imageSettings), nil
}

// ResetImageConfiguration drops the cached image configuration so the next
// Image access fetches it again.
func (c *Client) ResetImageConfiguration() {
	c.images.mu.Lock()
	c.images.settings = nil
	c.images.mu.Unlock()
}

func parseImageSettings(payload map[string]any) (*imageSettings, error) {
	images, ok := payload["images"].(map[string]any)
	if !ok {
		return nil, &ShapeError{Kind: "configuration", Field: "images"}
	}

	r := newRecord("configuration", "images", images)
	baseURL := r.optStr("secure_base_url")
	if baseURL == "" {
		baseURL = r.str("base_url")
	}
	if r.err != nil {
		return nil, r.err
	}

	settings := &imageSettings{baseURL: baseURL, sizes: make(map[ImageKind][]string, len(imageKinds))}
	for _, kind := range imageKinds {
		kind := kind.(ImageKind)
		field := string(kind) + "_sizes"
		sizes, err := asStrings("configuration", "images."+field, images[field])
		if err != nil {
			return nil, err
		}
		settings.sizes[kind] = sizes
	}
	return settings, nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
