// Package api fetches the service catalog from the marketplace REST API.
//
// Requests go to
//
//	GET {base}/api/services/tenant/{tenant}/vehicle/{vehicle}/category/{category}
//
// and answer with a {success, data, error} envelope. Calls are throttled
// with a token bucket and the server's rate limit headers are honoured.
package api
