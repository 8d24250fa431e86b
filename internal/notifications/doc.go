// Package notifications delivers run lifecycle events via ntfy.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when no topic is set, so
// callers never need nil checks. The pipeline depends only on the small
// Service interface; extend this package for alternative transports.
package notifications
