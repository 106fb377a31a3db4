package repository

import "net/http"

// NewClientWithHTTPForTest exposes newClientWithHTTP to the external test package.
func NewClientWithHTTPForTest(client *http.Client) *Client {
	return newClientWithHTTP(client)
}
