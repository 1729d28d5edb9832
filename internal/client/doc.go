// Package client implements the HTTP client for the showsaver download
// server. Every call carries a generated X-Request-ID so client requests can
// be correlated in server logs. Errors from this package mean the exchange
// itself failed; application-level rejections arrive as decoded payloads
// with Success=false.
package client
