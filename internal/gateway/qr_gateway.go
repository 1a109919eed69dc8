package gateway

import (
	"encoding/base64"
	"fmt"
	"sync"

	qrcode "github.com/skip2/go-qrcode"
)

// QRRenderer turns a tracking URL into an opaque image data URI.
type QRRenderer interface {
	RenderQRCode(url string) (string, error)
}

// PNGQRRenderer renders a PNG QR code and returns it as a data URI, so the
// result can be stored and served without a file store.
type PNGQRRenderer struct {
	size int
}

func NewPNGQRRenderer() *PNGQRRenderer {
	return &PNGQRRenderer{size: 256}
}

func (r *PNGQRRenderer) RenderQRCode(url string) (string, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, r.size)
	if err != nil {
		return "", fmt.Errorf("qr render error: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// MockQRRenderer returns a predictable marker for tests and can be told to
// fail, optionally only for specific URLs.
type MockQRRenderer struct {
	mu       sync.Mutex
	Fail     bool
	FailFor  map[string]bool
	Rendered []string
}

func NewMockQRRenderer() *MockQRRenderer {
	return &MockQRRenderer{FailFor: make(map[string]bool)}
}

func (m *MockQRRenderer) RenderQRCode(url string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Fail || m.FailFor[url] {
		return "", fmt.Errorf("qr renderer unavailable")
	}
	m.Rendered = append(m.Rendered, url)
	return "data:image/png;base64,mock-" + url, nil
}

func (m *MockQRRenderer) RenderedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Rendered)
}
