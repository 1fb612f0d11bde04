package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
)

// ErrArchiveWrite marks a failed bundle build. Documents already
// rendered are discarded with it; no partial archive ever reaches the
// caller.
var ErrArchiveWrite = errors.New("archive write failed")

// Bundle compresses documents into one zip blob. Names are preserved
// verbatim; callers already encode account and date range into them.
func Bundle(docs []Document) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, d := range docs {
		w, err := zw.Create(d.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %s: %v", ErrArchiveWrite, d.Name, err)
		}
		if _, err := w.Write(d.Data); err != nil {
			return nil, fmt.Errorf("%w: entry %s: %v", ErrArchiveWrite, d.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchiveWrite, err)
	}
	return buf.Bytes(), nil
}

// BundleAll renders one document per name and bundles the results.
// Rendering is strictly sequential: each document holds a full page
// buffer in memory while it renders, so the concurrency bound of
// exactly one keeps peak memory to a single in-flight render. Any
// render error fails the whole bundle.
func BundleAll(ctx context.Context, names []string, render func(ctx context.Context, name string) (Document, error)) ([]byte, error) {
	docs := make([]Document, 0, len(names))
	for _, name := range names {
		doc, err := render(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		docs = append(docs, doc)
	}
	return Bundle(docs)
}
