// Package page abstracts the DOM queries the scraper needs, so the same
// extraction runs against a live browser or a parsed HTML document.
package page

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a selector matches nothing.
var ErrNotFound = errors.New("element not found")

// Element is a node in the page. Lookups never wait: an absent
// element is reported immediately.
type Element interface {
	// Text returns the element's visible text with surrounding whitespace trimmed.
	Text(ctx context.Context) (string, error)
	// Find returns the first descendant matching a CSS selector, or ErrNotFound.
	Find(ctx context.Context, selector string) (Element, error)
	// FindAll returns all descendants matching a CSS selector in document order.
	FindAll(ctx context.Context, selector string) ([]Element, error)
}

// Page is a loaded document.
type Page interface {
	Navigate(ctx context.Context, url string) error
	// WaitPresent blocks until selector matches at least one element or
	// ctx is done.
	WaitPresent(ctx context.Context, selector string) error
	FindAll(ctx context.Context, selector string) ([]Element, error)
	// ClickText clicks the first tag element whose own text contains
	// label, waiting for it until ctx is done.
	ClickText(ctx context.Context, tag, label string) error
	// HTML returns the serialized document.
	HTML(ctx context.Context) (string, error)
	Close() error
}
