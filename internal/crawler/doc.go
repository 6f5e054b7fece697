// Package crawler implements the same-host link traversal.
//
// # Components
//
//   - ExtractLinks: pulls anchor hrefs out of a page and keeps the ones on the
//     page's own hostname
//   - Spider: walks a LIFO frontier from one seed, at most MaxPagesPerRequest
//     fetches per call, recording links in a store.Store
//   - HTTPFetcher: the net/http implementation of Fetcher
//
// # Relative links
//
// An href that does not parse as an absolute URL replaces the path of the page
// it was found on; scheme, host, port, query and fragment of that page are kept.
// Dot segments are not resolved against the page path, so "../a" found on
// http://example.com/x/y becomes http://example.com/../a.
//
// # Failures
//
// A page that cannot be fetched, returns a non-2xx status, or cannot be parsed
// contributes nothing and the traversal moves on. Only store faults are
// returned to the caller.
//
// # Usage
//
//	fetcher := crawler.NewHTTPFetcher(http.DefaultClient)
//	spider := crawler.NewSpider(fetcher, store.NewMemory())
//	result, err := spider.Crawl(ctx, "http://example.com", "example.com")
package crawler
