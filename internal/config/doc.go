// Package config holds runtime settings for link-crawler.
//
// Config is built from CLI flags on top of NewConfig defaults and checked
// once with Validate. Per-host request settings come from an optional YAML
// file (see File and LoadConfigFile), located by FindConfigFile.
package config
