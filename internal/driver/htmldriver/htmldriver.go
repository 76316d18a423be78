// Package htmldriver implements driver.Driver without a browser: documents are
// fetched over HTTP, queried with goquery, and clicks follow links or submit
// forms. There is no script execution, so it only suits server-rendered pages
// such as the local storefront.
package htmldriver

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/swaglabs/checkout-e2e/internal/driver"
)

const blankPage = "<html><head></head><body></body></html>"

var _ driver.Driver = (*Browser)(nil)

// Browser is a cookie-aware HTTP client holding one current document
type Browser struct {
	client  *http.Client
	current *url.URL
	doc     *goquery.Document
}

// Option configures a Browser
type Option func(*Browser)

// WithHTTPClient uses c for all requests. A cookie jar is attached if c has none.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Browser) {
		clone := *c
		if clone.Jar == nil {
			clone.Jar = b.client.Jar
		}
		b.client = &clone
	}
}

// WithTimeout bounds every request made by the browser
func WithTimeout(d time.Duration) Option {
	return func(b *Browser) {
		b.client.Timeout = d
	}
}

// New returns a browser positioned on an empty document
func New(opts ...Option) (*Browser, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(blankPage))
	if err != nil {
		return nil, err
	}

	b := &Browser{
		client: &http.Client{Jar: jar, Timeout: 30 * time.Second},
		doc:    doc,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Browser) Goto(rawURL string) error {
	target, err := b.resolve(rawURL)
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", rawURL, err)
	}
	req, err := http.NewRequest(http.MethodGet, target.String(), nil)
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", rawURL, err)
	}
	return b.load(req)
}

func (b *Browser) URL() string {
	if b.current == nil {
		return "about:blank"
	}
	return b.current.String()
}

func (b *Browser) Locator(selector string) driver.Locator {
	return &locator{
		b:    b,
		desc: selector,
		resolve: func() *goquery.Selection {
			return b.doc.Find(selector)
		},
	}
}

// WaitForLoadState returns immediately: a document is fully parsed before
// Goto or Click return.
func (b *Browser) WaitForLoadState() error {
	return nil
}

// Capture writes the current document's HTML to path
func (b *Browser) Capture(path string) error {
	html, err := b.doc.Html()
	if err != nil {
		return fmt.Errorf("render document: %w", err)
	}
	return os.WriteFile(path, []byte(html), 0o644)
}

func (b *Browser) Close() error {
	b.client.CloseIdleConnections()
	return nil
}

func (b *Browser) resolve(ref string) (*url.URL, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, err
	}
	if b.current != nil {
		u = b.current.ResolveReference(u)
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("cannot resolve relative URL %q without a current page", ref)
	}
	return u, nil
}

// load performs req, follows redirects and replaces the current document
func (b *Browser) load(req *http.Request) error {
	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("parse %s: %w", resp.Request.URL, err)
	}
	doc.Url = resp.Request.URL
	b.doc = doc
	b.current = resp.Request.URL
	return nil
}

// activate performs the default action of a clicked element
func (b *Browser) activate(el *goquery.Selection, desc string) error {
	if _, disabled := el.Attr("disabled"); disabled {
		return fmt.Errorf("%w: %s is disabled", driver.ErrNotInteractable, desc)
	}

	if goquery.NodeName(el) == "a" {
		if href, ok := el.Attr("href"); ok {
			return b.Goto(href)
		}
	}
	if isSubmitter(el) {
		if form := el.Closest("form"); form.Length() > 0 {
			return b.submit(form, el)
		}
	}
	if link := el.Find("a[href]").First(); link.Length() > 0 {
		href, _ := link.Attr("href")
		return b.Goto(href)
	}
	if link := el.Closest("a[href]"); link.Length() > 0 {
		href, _ := link.Attr("href")
		return b.Goto(href)
	}
	return fmt.Errorf("%w: %s has no link or form action", driver.ErrNotInteractable, desc)
}

// submit serialises form the way a browser does for the given submitter
func (b *Browser) submit(form, submitter *goquery.Selection) error {
	values := url.Values{}
	form.Find("input, textarea, select").Each(func(_ int, field *goquery.Selection) {
		name, ok := field.Attr("name")
		if !ok || name == "" {
			return
		}
		if _, disabled := field.Attr("disabled"); disabled {
			return
		}
		switch goquery.NodeName(field) {
		case "textarea":
			values.Add(name, field.Text())
		case "select":
			opt := field.Find("option[selected]").First()
			if opt.Length() == 0 {
				opt = field.Find("option").First()
			}
			if opt.Length() > 0 {
				values.Add(name, optionValue(opt))
			}
		default:
			switch inputType(field) {
			case "submit", "image", "button", "reset", "file":
			case "checkbox", "radio":
				if _, checked := field.Attr("checked"); checked {
					values.Add(name, field.AttrOr("value", "on"))
				}
			default:
				values.Add(name, field.AttrOr("value", ""))
			}
		}
	})
	if name, ok := submitter.Attr("name"); ok && name != "" {
		values.Add(name, submitter.AttrOr("value", ""))
	}

	action := submitter.AttrOr("formaction", form.AttrOr("action", ""))
	target, err := b.resolve(action)
	if err != nil {
		return fmt.Errorf("resolve form action %q: %w", action, err)
	}

	method := strings.ToUpper(submitter.AttrOr("formmethod", form.AttrOr("method", http.MethodGet)))
	if method != http.MethodPost {
		target.RawQuery = values.Encode()
		req, err := http.NewRequest(http.MethodGet, target.String(), nil)
		if err != nil {
			return err
		}
		return b.load(req)
	}

	req, err := http.NewRequest(http.MethodPost, target.String(), strings.NewReader(values.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.load(req)
}

func isSubmitter(el *goquery.Selection) bool {
	switch goquery.NodeName(el) {
	case "button":
		t := strings.ToLower(el.AttrOr("type", "submit"))
		return t == "submit"
	case "input":
		t := inputType(el)
		return t == "submit" || t == "image"
	}
	return false
}

func inputType(el *goquery.Selection) string {
	return strings.ToLower(el.AttrOr("type", "text"))
}

func optionValue(opt *goquery.Selection) string {
	if v, ok := opt.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(opt.Text())
}

// visible walks el and its ancestors looking for anything that hides it
func visible(el *goquery.Selection) bool {
	hidden := false
	el.Parents().AddBack().Each(func(_ int, s *goquery.Selection) {
		if hidden {
			return
		}
		switch goquery.NodeName(s) {
		case "head", "script", "style", "template", "noscript":
			hidden = true
			return
		case "input":
			if inputType(s) == "hidden" {
				hidden = true
				return
			}
		}
		if _, ok := s.Attr("hidden"); ok {
			hidden = true
			return
		}
		style := strings.ReplaceAll(strings.ToLower(s.AttrOr("style", "")), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			hidden = true
		}
	})
	return !hidden
}
