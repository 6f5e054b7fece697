// Package model defines the result types shared by the crawl command,
// the report writers and the HTTP API.
//
// The types are plain data with JSON tags and carry no behavior that needs
// the network or a store, so every other package can import model without
// creating cycles.
package model
