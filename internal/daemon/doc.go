// Package daemon runs the long-lived scenarr API process.
//
// It wires configuration, the catalog store, and the matching service into an
// HTTP server with flock-based locking so only one server owns a data
// directory. Start and Stop manage the lifecycle; Run blocks until the context
// is cancelled and then shuts the listener down gracefully.
//
// Request handling stays thin: handlers decode JSON, call api.CatalogService,
// and map errors to status codes with api.StatusCode.
package daemon
