package crawler

import (
	"errors"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ErrNoSelector is returned when the anchor selector could not be compiled.
var ErrNoSelector = errors.New("anchor selector unavailable")

// anchorSelector matches every anchor; elements without href are skipped later.
var anchorSelector, anchorSelectorErr = cascadia.Compile("a")

// ExtractLinks returns the URLs linked from body that share the hostname of
// source, preceded by source itself. Each URL appears once, in document order.
//
// An error means nothing was learned from the page.
func ExtractLinks(body string, source *url.URL) ([]string, error) {
	if anchorSelectorErr != nil {
		return nil, errors.Join(ErrNoSelector, anchorSelectorErr)
	}

	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	doc := goquery.NewDocumentFromNode(root)

	host := source.Hostname()
	self := source.String()

	seen := map[string]struct{}{self: {}}
	links := []string{self}

	doc.FindMatcher(anchorSelector).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		link, ok := resolveLink(href, source, host)
		if !ok {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	return links, nil
}

// resolveLink turns one href into an absolute URL on host.
// It reports false for absolute links to another host or with no host at all.
func resolveLink(href string, source *url.URL, host string) (string, bool) {
	href = strings.TrimSpace(href)

	if link, err := url.Parse(href); err == nil && link.IsAbs() {
		if link.Hostname() == "" || link.Hostname() != host {
			return "", false
		}
		return link.String(), true
	}

	return replacePath(source, href), true
}

// replacePath returns source with its path set to p.
func replacePath(source *url.URL, p string) string {
	u := *source
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u.Path = p
	u.RawPath = ""
	return u.String()
}
