package page

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// Chrome drives a live browser tab. Contexts passed to its methods must
// derive from the chromedp browser context.
type Chrome struct {
	closer        func() error
	actionTimeout time.Duration
}

// NewChrome wraps a browser tab; closer releases the browser. Element
// lookups give up after actionTimeout, page-level waits run until the
// caller's deadline.
func NewChrome(closer func() error, actionTimeout time.Duration) *Chrome {
	return &Chrome{closer: closer, actionTimeout: actionTimeout}
}

// withTimeout runs fn under its own deadline when timeout is positive and
// names timeouts and cancellations. An expired action deadline leaves ctx
// usable for the next call.
func withTimeout(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("parent context canceled: %w", err)
	}

	actionCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		actionCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err := fn(actionCtx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("action context canceled during execution: %w", err)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			if timeout > 0 && ctx.Err() == nil {
				return fmt.Errorf("action timed out after %v: %w", timeout, err)
			}
			return fmt.Errorf("action timed out: %w", err)
		}
		return err
	}
	return nil
}

// run executes chromedp actions, bounded by timeout when it is positive.
func run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	return withTimeout(ctx, timeout, func(ctx context.Context) error {
		return chromedp.Run(ctx, actions...)
	})
}

func (c *Chrome) Navigate(ctx context.Context, url string) error {
	if err := run(ctx, 0, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (c *Chrome) WaitPresent(ctx context.Context, selector string) error {
	return run(ctx, 0, chromedp.WaitReady(selector, chromedp.ByQuery))
}

func (c *Chrome) FindAll(ctx context.Context, selector string) ([]Element, error) {
	var nodes []*cdp.Node
	err := run(ctx, c.actionTimeout, chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return nil, err
	}
	return c.wrapNodes(nodes), nil
}

func (c *Chrome) ClickText(ctx context.Context, tag, label string) error {
	xpath := fmt.Sprintf(`//%s[contains(text(), %s)]`, tag, xpathLiteral(label))
	return run(ctx, 0, chromedp.Click(xpath, chromedp.BySearch, chromedp.NodeVisible))
}

func (c *Chrome) HTML(ctx context.Context) (string, error) {
	var html string
	if err := run(ctx, c.actionTimeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

func (c *Chrome) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer()
}

// chromeElement holds a node ID that goes stale if the page re-renders;
// chromedp retries queries on stale IDs, so every call is bounded.
type chromeElement struct {
	node    *cdp.Node
	timeout time.Duration
}

func (c *Chrome) wrapNodes(nodes []*cdp.Node) []Element {
	return wrapNodes(nodes, c.actionTimeout)
}

func wrapNodes(nodes []*cdp.Node, timeout time.Duration) []Element {
	out := make([]Element, len(nodes))
	for i, n := range nodes {
		out[i] = chromeElement{node: n, timeout: timeout}
	}
	return out
}

func (e chromeElement) Text(ctx context.Context) (string, error) {
	var text string
	err := run(ctx, e.timeout, chromedp.JavascriptAttribute(
		[]cdp.NodeID{e.node.NodeID}, "innerText", &text, chromedp.ByNodeID,
	))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (e chromeElement) Find(ctx context.Context, selector string) (Element, error) {
	var nodes []*cdp.Node
	err := run(ctx, e.timeout, chromedp.Nodes(selector, &nodes,
		chromedp.ByQuery, chromedp.FromNode(e.node), chromedp.AtLeast(0),
	))
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, selector)
	}
	return chromeElement{node: nodes[0], timeout: e.timeout}, nil
}

func (e chromeElement) FindAll(ctx context.Context, selector string) ([]Element, error) {
	var nodes []*cdp.Node
	err := run(ctx, e.timeout, chromedp.Nodes(selector, &nodes,
		chromedp.ByQueryAll, chromedp.FromNode(e.node), chromedp.AtLeast(0),
	))
	if err != nil {
		return nil, err
	}
	return wrapNodes(nodes, e.timeout), nil
}

// xpathLiteral quotes s as an XPath string literal. XPath has no escape
// sequences, so strings holding both quote kinds are built with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	if !strings.Contains(s, `'`) {
		return `'` + s + `'`
	}
	parts := strings.Split(s, `"`)
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = `"` + p + `"`
	}
	return `concat(` + strings.Join(quoted, `, '"', `) + `)`
}
