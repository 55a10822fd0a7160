// Package api provides the HTTP transport that sends prepared batch requests
// to the Namsor v2 REST API.
//
// # Overview
//
// Every batch call is a POST of a JSON body to BaseURL + request path. The
// provider adds the content negotiation headers, the X-API-KEY credential and
// any operation-specific headers carried on the request (for example the US
// race/ethnicity taxonomy header).
//
// # Configuration Example
//
//	namsor {
//	  api_key     = "..."
//	  base_url    = "https://v2.namsor.com/NamSorAPIv2"
//	  timeout     = "30s"
//	  max_retries = 0
//	  retry_delay = "1s"
//	  rate_limit  = 0
//	}
//
// # Retries
//
// Retries are off by default: one invocation produces exactly one HTTP
// request. With max_retries set, network errors, 429 and 5xx responses are
// retried with exponential backoff starting at retry_delay. Other non-2xx
// responses fail immediately with a *StatusError.
//
// # Credentials
//
// VerifyCredentials calls the account service with the configured key. It is
// the only non-batch call the provider makes.
package api
