// Package client contains the Billio client's transport layer.
//
// # Overview
//
//  1. Client, the API contract the services depend on, and HTTPClient, its
//     REST/JSON implementation.
//  2. AuthTransport, the request pipeline: an http.RoundTripper that attaches
//     the session's bearer token to every request and ends the session when
//     the API rejects that token with 401.
//  3. InitDatabase and RunMigrations, which open the local SQLite database and
//     apply the embedded goose migrations.
//
// # Error Handling
//
// Sentinel errors are matched with errors.Is: ErrUnavailable for dial failures
// and 5xx, ErrUnauthorized for 401 (joined with ErrSessionExpired when a token
// had been sent). Other non-2xx statuses come back as *APIError.
//
// The pipeline never retries.
package client
