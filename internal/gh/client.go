// Package gh provides a GraphQL client for the GitHub Projects v2 API.
// It exposes exactly the operations the updater needs and hides the
// query text and response plumbing behind typed methods.
//
// Every method distinguishes two failure channels: transport and
// GraphQL-level errors return a non-nil error, while lookups that
// complete but find nothing return an absent value (empty string or
// nil) with a nil error. Callers decide what absent means.
package gh

import (
	"context"
	"net/http"

	"github.com/machinebox/graphql"
)

const defaultEndpoint = "https://api.github.com/graphql"

// Client is a GitHub GraphQL API client scoped to Projects v2.
type Client struct {
	gql   *graphql.Client
	token string
}

type options struct {
	endpoint   string
	httpClient *http.Client
}

// Option customizes the client, primarily for tests.
type Option func(*options)

// WithEndpoint overrides the GraphQL endpoint URL.
func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = url }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// New creates a client that authenticates with the given token.
func New(token string, opts ...Option) *Client {
	o := options{endpoint: defaultEndpoint}
	for _, opt := range opts {
		opt(&o)
	}

	var gqlOpts []graphql.ClientOption
	if o.httpClient != nil {
		gqlOpts = append(gqlOpts, graphql.WithHTTPClient(o.httpClient))
	}

	return &Client{
		gql:   graphql.NewClient(o.endpoint, gqlOpts...),
		token: token,
	}
}

// makeRequest executes a GraphQL request with authentication.
func (c *Client) makeRequest(ctx context.Context, req *graphql.Request, resp interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	return c.gql.Run(ctx, req, resp)
}
