// Package session owns the logged-in identity of the Billio client.
//
// A session is a bearer token plus the user it belongs to, a remember-me flag
// and a last-activity marker. The durable form lives in the local metadata
// table under four keys:
//
//	authToken     opaque bearer token
//	user          JSON {"id","email","name"}
//	rememberMe    "true" or "false"
//	lastActivity  epoch milliseconds, decimal
//
// Store is the only component that reads or writes these keys. The request
// pipeline and the inactivity monitor go through its methods.
//
// Invariant: the store is authenticated iff a token and a parseable user are
// both persisted. Anything else found at start-up is discarded.
package session
