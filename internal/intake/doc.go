// Package intake receives crawl submissions and runs them one at a time.
//
// Queue is an unbounded FIFO fed by the submission surface. Worker is its
// only consumer: it validates each submitted URL and runs the crawl for it to
// completion before taking the next one, so submissions are processed in
// receipt order and never overlap.
package intake
