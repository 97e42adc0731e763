package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"
	"time"

	// Decoders for the logo formats we accept.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// httpLogoLoader fetches logos over HTTP(S) and also accepts base64 data URLs,
// which is how uploaded logos are stored.
type httpLogoLoader struct {
	client *http.Client
}

// HTTPLogoLoader returns the default loader with a short fetch timeout. Logo
// loading must never stall an export.
func HTTPLogoLoader() LogoLoader {
	return &httpLogoLoader{client: &http.Client{Timeout: 10 * time.Second}}
}

func (l *httpLogoLoader) Load(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, errors.New("empty logo url")
	}
	if strings.HasPrefix(url, "data:") {
		return decodeDataURL(url)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("logo fetch: status %d", resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	return img, err
}

func decodeDataURL(url string) (image.Image, error) {
	idx := strings.Index(url, ",")
	if idx < 0 {
		return nil, errors.New("malformed data url")
	}
	meta, payload := url[:idx], url[idx+1:]
	if !strings.Contains(meta, "base64") {
		return nil, errors.New("unsupported data url encoding")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	return img, err
}
