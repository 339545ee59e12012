// Package catalog provides an HTTP client for the storefront backend's product
// catalog.
//
// # Overview
//
// The backend exposes a single read endpoint used by the storefront list view:
//
//   - GET /customer/getProductListings: JSON array of product records
//
// Every request carries the caller's bearer token:
//
//	client, err := catalog.NewClient("http://127.0.0.1:5000")
//	if err != nil {
//		return err
//	}
//	products, err := client.FetchProductListings(ctx, token)
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation; there is no client side timeout
//   - Set Authorization: Bearer <token>
//   - Set Accept and Content-Type to application/json
//   - Include User-Agent: farmstand/0.1 and a fresh X-Request-ID
//
// A request is attempted exactly once. Retrying, backing off and deciding
// which response wins are left to the caller (see package fetch).
//
// # Error Handling
//
// Failures fall into a small taxonomy, recoverable with Classify:
//
//   - missing credential: ErrMissingToken, no request is sent
//   - transport: *TransportError (connection refused, DNS, reset)
//   - server: *StatusError for any non-2xx status
//   - decode: *DecodeError when a 2xx body is not a product array
//   - canceled: the context ended before the response arrived
package catalog
