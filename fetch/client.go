// Package fetch talks to the outside world: it downloads target page, its
// style sheets and images, and asks headless browser for computed styles.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"wse/config"
	"wse/css"
)

// maxBodySize limits any single download.
const maxBodySize = 32 << 20

// maxImportDepth limits @import chains.
const maxImportDepth = 3

// ErrNoStyleText is returned (wrapped) when target page itself cannot be
// fetched or parsed, nothing could be extracted in this case.
var ErrNoStyleText = errors.New("unable to obtain page style text")

// SheetResult records outcome of a single linked or imported style sheet
// download.
type SheetResult struct {
	URL   string
	Bytes int
	Err   error
	// ImportedBy is URL of the sheet (or page for <style> elements) with
	// @import rule, empty for sheets linked from the page.
	ImportedBy string
}

// Page is everything collected from the target page markup.
type Page struct {
	URL       *url.URL
	StyleText string
	Sheets    []SheetResult
	// ImageURL is resolved src of the first image, empty when page has none.
	ImageURL string
}

// Client downloads pages and resources over HTTP.
type Client struct {
	cfg  config.FetchConfig
	http *http.Client
	log  *zap.Logger
	// forced replaces encoding detection when set
	forced encoding.Encoding
}

// NewClient creates HTTP client using fetch configuration. When hc is nil
// default transport is used.
func NewClient(cfg *config.FetchConfig, hc *http.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if hc == nil {
		hc = &http.Client{}
	}
	c := &Client{cfg: *cfg, http: hc, log: log.Named("fetch")}

	if cs := cfg.ForceCharset; len(cs) > 0 {
		enc, err := ianaindex.IANA.Encoding(cs)
		if err != nil || enc == nil {
			c.log.Warn("Unknown character set name, ignoring", zap.String("charset", cs), zap.Error(err))
		} else {
			n, _ := ianaindex.IANA.Name(enc)
			c.log.Debug("Forcefully decoding pages", zap.String("charset", n))
			c.forced = enc
		}
	}
	return c
}

func (c *Client) decoder(body []byte, contentType string) (io.Reader, error) {
	if c.forced != nil {
		return c.forced.NewDecoder().Reader(bytes.NewReader(body)), nil
	}
	return charset.NewReader(bytes.NewReader(body), contentType)
}

// Page downloads target page and collects raw style text from it: every
// style attribute, every <style> element and every linked style sheet, in
// this order, each followed by a new line. Failing style sheets are skipped
// and reported in Sheets.
func (c *Client) Page(ctx context.Context, pageURL string) (*Page, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: bad url: %w", ErrNoStyleText, err)
	}

	body, hdr, err := c.get(ctx, base.String(), c.cfg.PageTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoStyleText, err)
	}

	r, err := c.decoder(body, hdr.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: unable to detect page encoding: %w", ErrNoStyleText, err)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to parse page: %w", ErrNoStyleText, err)
	}

	page := &Page{URL: base}
	var sb strings.Builder

	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		// declaration list is always terminated, rules follow it
		if v := strings.TrimSpace(s.AttrOr("style", "")); v != "" {
			sb.WriteString(strings.TrimSuffix(v, ";"))
			sb.WriteString(";\n")
		}
	})

	seen := make(map[string]bool)

	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		if text := s.Text(); text != "" {
			c.imports(ctx, page, &sb, []byte(text), base, seen, 0)
			sb.WriteString(text)
			sb.WriteByte('\n')
		}
	})

	doc.Find("link[rel]").Each(func(_ int, s *goquery.Selection) {
		if !isStylesheetLink(s) {
			return
		}
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		c.sheet(ctx, page, &sb, SheetResult{URL: Resolve(base, href)}, seen, 0)
	})

	if src, ok := doc.Find("img").First().Attr("src"); ok && strings.TrimSpace(src) != "" {
		page.ImageURL = Resolve(base, src)
	}

	page.StyleText = sb.String()
	c.log.Debug("Page collected",
		zap.String("url", base.String()),
		zap.Int("style_bytes", len(page.StyleText)),
		zap.Int("sheets", len(page.Sheets)),
		zap.String("image", page.ImageURL))
	return page, nil
}

// sheet downloads style sheet and appends it to sb preceded by everything it
// imports. Failures are recorded in page.Sheets and skipped.
func (c *Client) sheet(ctx context.Context, page *Page, sb *strings.Builder, res SheetResult, seen map[string]bool, depth int) {
	seen[res.URL] = true

	data, _, err := c.get(ctx, res.URL, c.cfg.ResourceTimeout)
	if err != nil {
		res.Err = err
		c.log.Debug("Skipping style sheet", zap.String("url", res.URL), zap.Error(err))
		page.Sheets = append(page.Sheets, res)
		return
	}
	res.Bytes = len(data)
	page.Sheets = append(page.Sheets, res)

	if base, err := url.Parse(res.URL); err == nil {
		c.imports(ctx, page, sb, data, base, seen, depth)
	}
	sb.Write(data)
	sb.WriteByte('\n')
}

// imports follows @import rules of style text, every sheet is downloaded
// once and nesting is limited to maxImportDepth.
func (c *Client) imports(ctx context.Context, page *Page, sb *strings.Builder, text []byte, base *url.URL, seen map[string]bool, depth int) {
	if depth >= maxImportDepth {
		return
	}
	sheet, err := css.NewParser(c.log).Parse(text, base.String())
	if err != nil {
		c.log.Debug("Style text is malformed, imports may be missing", zap.String("base", base.String()), zap.Error(err))
	}
	for _, ref := range sheet.Imports() {
		target := Resolve(base, ref)
		if seen[target] {
			continue
		}
		c.sheet(ctx, page, sb, SheetResult{URL: target, ImportedBy: base.String()}, seen, depth+1)
	}
}

// Image downloads image bytes.
func (c *Client) Image(ctx context.Context, imageURL string) ([]byte, error) {
	data, _, err := c.get(ctx, imageURL, c.cfg.ResourceTimeout)
	if err != nil {
		return nil, fmt.Errorf("unable to download image: %w", err)
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, target string, timeout time.Duration) ([]byte, http.Header, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create request for %s: %w", target, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request to %s failed: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("request to %s failed: %s", target, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read response from %s: %w", target, err)
	}
	return data, resp.Header, nil
}

func isStylesheetLink(s *goquery.Selection) bool {
	rel, _ := s.Attr("rel")
	for f := range strings.FieldsSeq(rel) {
		if strings.EqualFold(f, "stylesheet") {
			return true
		}
	}
	return false
}

// Resolve makes reference absolute: protocol relative references get https
// scheme, relative ones are resolved against base.
func Resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
