package page

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
)

var ErrNoDocument = errors.New("no document loaded")

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0 Safari/537.36"

// Document is a static HTML page parsed with goquery. It sees only the
// HTML as served, so pages rendered by JavaScript should be captured
// with a browser first.
type Document struct {
	client *resty.Client
	doc    *goquery.Document
}

func NewDocument(client *resty.Client) *Document {
	if client == nil {
		client = resty.New()
	}
	client.SetHeader("User-Agent", userAgent)
	return &Document{client: client}
}

// Navigate fetches http(s) URLs and reads anything else as a local
// file, with or without a file:// prefix.
func (d *Document) Navigate(ctx context.Context, url string) error {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		res, err := d.client.R().SetContext(ctx).Get(url)
		if err != nil {
			return fmt.Errorf("navigation failed: %w", err)
		}
		if res.IsError() {
			return fmt.Errorf("navigation failed: %s returned %d", url, res.StatusCode())
		}
		return d.Load(bytes.NewReader(res.Body()))
	}

	f, err := os.Open(strings.TrimPrefix(url, "file://"))
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	defer f.Close()
	return d.Load(f)
}

// Load replaces the current document with HTML read from r.
func (d *Document) Load(r io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return fmt.Errorf("failed to parse html: %w", err)
	}
	d.doc = doc
	return nil
}

func (d *Document) WaitPresent(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.doc == nil {
		return ErrNoDocument
	}
	if d.doc.Find(selector).Length() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, selector)
	}
	return nil
}

func (d *Document) FindAll(ctx context.Context, selector string) ([]Element, error) {
	if d.doc == nil {
		return nil, ErrNoDocument
	}
	return docElement{sel: d.doc.Selection}.FindAll(ctx, selector)
}

// ClickText succeeds if a matching element exists. A static document
// has no scripts to react to the click.
func (d *Document) ClickText(ctx context.Context, tag, label string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.doc == nil {
		return ErrNoDocument
	}
	found := d.doc.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(ownText(s), label)
	})
	if found.Length() == 0 {
		return fmt.Errorf("%w: %s containing %q", ErrNotFound, tag, label)
	}
	return nil
}

func (d *Document) HTML(_ context.Context) (string, error) {
	if d.doc == nil {
		return "", ErrNoDocument
	}
	return d.doc.Html()
}

func (d *Document) Close() error {
	return nil
}

// ownText joins the text nodes that are direct children of s.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if len(c.Nodes) > 0 && c.Nodes[0].Type == html.TextNode {
			b.WriteString(c.Nodes[0].Data)
		}
	})
	return b.String()
}

type docElement struct {
	sel *goquery.Selection
}

func (e docElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(e.sel.Text()), nil
}

func (e docElement) Find(ctx context.Context, selector string) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	found := e.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, selector)
	}
	return docElement{sel: found}, nil
}

func (e docElement) FindAll(ctx context.Context, selector string) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []Element
	e.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, docElement{sel: s})
	})
	return out, nil
}
