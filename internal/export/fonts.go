package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrFontLoad marks a failed font resource fetch. The export that
// triggered it fails whole; nothing is cached so a later export retries.
var ErrFontLoad = errors.New("font resources unavailable")

// FontSet holds the two embeddable faces every paginated document
// needs: a latin primary and a Japanese secondary.
type FontSet struct {
	Primary   []byte
	Secondary []byte
}

// FontSource fetches one font resource by location.
type FontSource interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// FileFontSource reads fonts from the local filesystem.
type FileFontSource struct{}

func (FileFontSource) Fetch(_ context.Context, location string) ([]byte, error) {
	return os.ReadFile(location)
}

// HTTPFontSource fetches fonts over HTTP.
type HTTPFontSource struct {
	Client *http.Client
}

func (s HTTPFontSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// FontLoader resolves the font set once per process. Concurrent first
// callers share a single in-flight fetch; the cache is written only
// after both faces load, so a partial failure never sticks.
type FontLoader struct {
	src       FontSource
	primary   string
	secondary string

	group  singleflight.Group
	mu     sync.Mutex
	cached *FontSet
}

func NewFontLoader(src FontSource, primary, secondary string) *FontLoader {
	return &FontLoader{src: src, primary: primary, secondary: secondary}
}

// Load returns the cached font set, fetching it on first use. Duplicate
// concurrent fetches of the large binary assets are coalesced.
func (l *FontLoader) Load(ctx context.Context) (*FontSet, error) {
	l.mu.Lock()
	if l.cached != nil {
		set := l.cached
		l.mu.Unlock()
		return set, nil
	}
	l.mu.Unlock()

	v, err, _ := l.group.Do("fonts", func() (any, error) {
		primary, err := l.src.Fetch(ctx, l.primary)
		if err != nil {
			return nil, fmt.Errorf("%w: primary %s: %v", ErrFontLoad, l.primary, err)
		}
		secondary, err := l.src.Fetch(ctx, l.secondary)
		if err != nil {
			return nil, fmt.Errorf("%w: secondary %s: %v", ErrFontLoad, l.secondary, err)
		}
		set := &FontSet{Primary: primary, Secondary: secondary}
		l.mu.Lock()
		l.cached = set
		l.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*FontSet), nil
}
