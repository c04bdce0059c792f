// Package api defines the wire-format types and the catalog service shared by
// the HTTP server and the CLI.
//
// # Key Types
//
// CatalogService: validates requests, applies them to the catalog store, and
// runs match suggestions through the matching engine.
//
// AddSiteResponse, MatchSceneRequest, SetHomeDirectoryRequest, SuggestRequest:
// request and response bodies for the JSON endpoints.
//
// # Design Notes
//
// JSON keys use snake_case to stay compatible with existing catalog clients.
// Collection and suggestion responses are plain arrays. Errors wrap the
// catalog and matching sentinels so transports can map them to status codes
// with StatusCode.
package api
