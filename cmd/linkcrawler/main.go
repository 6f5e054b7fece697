// Package main provides the entry point for the link-crawler CLI.
//
// link-crawler records the same-host links reachable from submitted seed URLs.
//
// Usage:
//
//	linkcrawler serve
//	linkcrawler crawl https://example.com/
//
// See --help for all available options.
package main

func main() {
	Execute()
}
