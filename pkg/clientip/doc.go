// Package clientip extracts the originating client IP from HTTP requests
// behind reverse proxies. The checkout flow forwards it to the payment
// processor as a fraud-screening signal.
package clientip
