package sources

import (
	"context"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/agentstation/quotebook/internal/transport"
	"github.com/agentstation/quotebook/pkg/constants"
	"github.com/agentstation/quotebook/pkg/errors"
	"github.com/agentstation/quotebook/pkg/logging"
	"github.com/agentstation/quotebook/pkg/quotes"
)

// HTTPGateway reads quotes from a JSON endpoint and pushes quotes to it
// with POST. Field mapping uses gjson paths so that arbitrary APIs can be
// read without a schema.
type HTTPGateway struct {
	url             string
	pushURL         string
	itemsPath       string
	textPath        string
	categoryPath    string
	defaultCategory string
	limit           int
	authScheme      string
	token           string
	timeout         time.Duration
	client          *transport.Client
}

// HTTPOption configures an HTTPGateway.
type HTTPOption func(*HTTPGateway)

// WithItemsPath sets the gjson path of the item array. Empty means the
// document root.
func WithItemsPath(path string) HTTPOption {
	return func(g *HTTPGateway) { g.itemsPath = path }
}

// WithTextPath sets the gjson path of the quote text inside an item.
func WithTextPath(path string) HTTPOption {
	return func(g *HTTPGateway) {
		if path != "" {
			g.textPath = path
		}
	}
}

// WithCategoryPath sets the gjson path of the category inside an item.
func WithCategoryPath(path string) HTTPOption {
	return func(g *HTTPGateway) {
		if path != "" {
			g.categoryPath = path
		}
	}
}

// WithDefaultCategory sets the category used when an item has none.
func WithDefaultCategory(category string) HTTPOption {
	return func(g *HTTPGateway) {
		if category != "" {
			g.defaultCategory = category
		}
	}
}

// WithLimit keeps only the first n items. Zero keeps all.
func WithLimit(n int) HTTPOption {
	return func(g *HTTPGateway) { g.limit = n }
}

// WithPushURL sends pushes to a different endpoint than fetches.
func WithPushURL(url string) HTTPOption {
	return func(g *HTTPGateway) { g.pushURL = url }
}

// WithAuth authenticates requests with token using the given scheme
// (see transport.AuthFor).
func WithAuth(scheme, token string) HTTPOption {
	return func(g *HTTPGateway) {
		g.authScheme = scheme
		g.token = token
	}
}

// WithRequestTimeout bounds each HTTP request.
func WithRequestTimeout(d time.Duration) HTTPOption {
	return func(g *HTTPGateway) { g.timeout = d }
}

// NewHTTP creates a gateway for url. By default the document root must be
// an array whose items carry the text under "title" and the category under
// "category", falling back to "Server".
func NewHTTP(url string, opts ...HTTPOption) *HTTPGateway {
	g := &HTTPGateway{
		url:             url,
		textPath:        "title",
		categoryPath:    "category",
		defaultCategory: constants.DefaultRemoteCategory,
	}
	for _, opt := range opts {
		opt(g)
	}

	var auth transport.Authenticator
	if g.token != "" {
		auth = transport.AuthFor(g.authScheme)
	}
	g.client = transport.New(auth, g.token).
		WithTimeout(g.timeout).
		WithHeader("User-Agent", "quotebook")
	if g.pushURL == "" {
		g.pushURL = g.url
	}
	return g
}

// ID returns "http".
func (g *HTTPGateway) ID() string { return "http" }

// URL returns the fetch endpoint.
func (g *HTTPGateway) URL() string { return g.url }

// Fetch downloads and maps the remote list. Items without a usable text
// are skipped.
func (g *HTTPGateway) Fetch(ctx context.Context) ([]quotes.Quote, error) {
	resp, err := g.client.Get(ctx, g.url)
	if err != nil {
		return nil, errors.WrapResource("fetch", "gateway", g.url, err)
	}
	body, err := transport.ReadBody(resp, g.ID())
	if err != nil {
		return nil, err
	}
	return g.mapItems(ctx, body)
}

func (g *HTTPGateway) mapItems(ctx context.Context, body []byte) ([]quotes.Quote, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.NewParseError("json", g.url, "response is not valid JSON", nil)
	}

	items := gjson.ParseBytes(body)
	if g.itemsPath != "" {
		items = items.Get(g.itemsPath)
	}
	if !items.IsArray() {
		return nil, errors.NewParseError("json", g.url, "expected an array of items", nil)
	}

	out := make([]quotes.Quote, 0)
	skipped := 0
	items.ForEach(func(_, item gjson.Result) bool {
		if g.limit > 0 && len(out) >= g.limit {
			return false
		}
		q, ok := g.mapItem(item)
		if !ok {
			skipped++
			return true
		}
		out = append(out, q)
		return true
	})

	if skipped > 0 {
		logging.FromContext(ctx).Debug().
			Int("skipped", skipped).
			Str("url", g.url).
			Msg("Skipped remote items without text")
	}
	return out, nil
}

func (g *HTTPGateway) mapItem(item gjson.Result) (quotes.Quote, bool) {
	text := item.Get(g.textPath)
	if text.Type != gjson.String || strings.TrimSpace(text.Str) == "" {
		return quotes.Quote{}, false
	}

	category := g.defaultCategory
	if c := item.Get(g.categoryPath); c.Type == gjson.String && strings.TrimSpace(c.Str) != "" {
		category = strings.TrimSpace(c.Str)
	}
	return quotes.Quote{Text: strings.TrimSpace(text.Str), Category: category}, true
}

// Push POSTs a single quote, laid out with the gateway's text and
// category paths.
func (g *HTTPGateway) Push(ctx context.Context, q quotes.Quote) error {
	body, err := g.encode(q)
	if err != nil {
		return err
	}
	resp, err := g.client.Post(ctx, g.pushURL, body)
	if err != nil {
		return errors.WrapResource("push", "gateway", g.pushURL, err)
	}
	_, err = transport.ReadBody(resp, g.ID())
	return err
}

func (g *HTTPGateway) encode(q quotes.Quote) ([]byte, error) {
	body, err := sjson.SetBytes([]byte(`{}`), g.textPath, q.Text)
	if err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	body, err = sjson.SetBytes(body, g.categoryPath, q.Category)
	if err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	return body, nil
}
