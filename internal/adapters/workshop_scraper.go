package adapters

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"pz-mod-installer/internal/ports"
	"pz-mod-installer/internal/shared"
	"pz-mod-installer/internal/types"
)

const (
	DefaultWorkshopBaseURL   = "https://steamcommunity.com"
	defaultScraperTimeout    = 30 * time.Second
	defaultScraperUserAgent  = "pz-mod-installer/1.0"
	maxWorkshopPageBytes     = 8 << 20
	requiredItemsClass       = "requiredItemsContainer"
	publishedFileIDAttribute = "data-publishedfileid"
)

// WorkshopScraperAdapter reads "Required items" from Steam Workshop item
// pages.
type WorkshopScraperAdapter struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Client    *http.Client
}

func NewWorkshopScraperAdapter(baseURL string, timeout time.Duration) WorkshopScraperAdapter {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultWorkshopBaseURL
	}
	if timeout <= 0 {
		timeout = defaultScraperTimeout
	}
	return WorkshopScraperAdapter{
		BaseURL:   base,
		UserAgent: defaultScraperUserAgent,
		Timeout:   timeout,
	}
}

// ItemURL is the public page of a workshop item.
func (a WorkshopScraperAdapter) ItemURL(id types.ModID) string {
	base := strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if base == "" {
		base = DefaultWorkshopBaseURL
	}
	return base + "/sharedfiles/filedetails/?id=" + url.QueryEscape(id.String())
}

// FetchDependencies returns the ids linked from the item's required items
// block. Pages without that block fall back to every published file id on
// the page other than the item itself. Any failure yields an empty list
// and the error.
func (a WorkshopScraperAdapter) FetchDependencies(ctx context.Context, id types.ModID) ([]types.ModID, error) {
	pageURL := a.ItemURL(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return []types.ModID{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create workshop request").
			WithCause(err)
	}
	if a.UserAgent != "" {
		req.Header.Set("User-Agent", a.UserAgent)
	}
	resp, err := a.client().Do(req)
	if err != nil {
		return []types.ModID{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("workshop request failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	body := io.LimitReader(resp.Body, maxWorkshopPageBytes)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message, _ := io.ReadAll(io.LimitReader(body, 1024))
		code := errbuilder.CodeInternal
		if resp.StatusCode == http.StatusNotFound {
			code = errbuilder.CodeNotFound
		}
		return []types.ModID{}, errbuilder.New().
			WithCode(code).
			WithMsg("workshop page request failed").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, pageURL, string(message)))
	}
	doc, err := html.Parse(body)
	if err != nil {
		return []types.ModID{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse workshop page").
			WithCause(err)
	}

	deps := ParseRequiredItems(doc)
	if len(deps) == 0 {
		deps = ParsePublishedFileIDs(doc, id)
	}
	log.Debug().
		Str("mod_id", id.String()).
		Int("dependencies", len(deps)).
		Msg("workshop page scraped")
	return deps, nil
}

func (a WorkshopScraperAdapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return &http.Client{Timeout: a.Timeout}
}

// ParseRequiredItems collects the id query parameter of every link inside
// the required items container.
func ParseRequiredItems(doc *html.Node) []types.ModID {
	var ids []types.ModID
	for _, container := range findAll(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "div" && hasClass(n, requiredItemsClass)
	}) {
		for _, link := range findAll(container, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "a"
		}) {
			href, ok := attr(link, "href")
			if !ok {
				continue
			}
			if id, ok := idFromHref(href); ok {
				ids = append(ids, id)
			}
		}
	}
	return types.DedupModIDs(ids)
}

// ParsePublishedFileIDs collects every data-publishedfileid on the page
// except self, in document order.
func ParsePublishedFileIDs(doc *html.Node, self types.ModID) []types.ModID {
	var ids []types.ModID
	for _, node := range findAll(doc, func(n *html.Node) bool {
		_, ok := attr(n, publishedFileIDAttribute)
		return n.Type == html.ElementNode && ok
	}) {
		value, _ := attr(node, publishedFileIDAttribute)
		id, err := types.NormalizeModID(value)
		if err != nil || id == self {
			continue
		}
		ids = append(ids, id)
	}
	return types.DedupModIDs(ids)
}

func idFromHref(href string) (types.ModID, bool) {
	if !strings.Contains(href, "id=") {
		return "", false
	}
	raw := ""
	if parsed, err := url.Parse(href); err == nil {
		raw = parsed.Query().Get("id")
	}
	if raw == "" {
		_, after, _ := strings.Cut(href, "id=")
		raw, _, _ = strings.Cut(after, "&")
	}
	id, err := types.NormalizeModID(raw)
	if err != nil {
		return "", false
	}
	return id, true
}

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			found = append(found, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return found
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	value, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, field := range strings.Fields(value) {
		if field == class {
			return true
		}
	}
	return false
}

var _ ports.DependencyFetcherPort = WorkshopScraperAdapter{}
