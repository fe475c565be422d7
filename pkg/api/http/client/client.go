package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/voidshard/easel/pkg/api"
	"github.com/voidshard/easel/pkg/api/http/common"
	"github.com/voidshard/easel/pkg/structs"
)

var _ api.API = &Client{}

// Client talks to an Easel HTTP server.
type Client struct {
	url  *url.URL
	http *http.Client
}

func New(address string) (*Client, error) {
	u, err := url.Parse(address)
	return &Client{url: u, http: &http.Client{}}, err
}

func (c *Client) Submit(ctx context.Context, req *structs.SubmitRequest) (*structs.Job, error) {
	var out structs.Job
	return &out, c.do(ctx, http.MethodPost, c.addr(common.API_JOBS, ""), req, &out)
}

func (c *Client) Job(ctx context.Context, id string) (*structs.JobView, error) {
	var out structs.JobView
	return &out, c.do(ctx, http.MethodGet, c.addr(common.API_JOB, id), nil, &out)
}

func (c *Client) Jobs(ctx context.Context, q *structs.Query) ([]*structs.Job, error) {
	addr := c.addr(common.API_JOBS, "")
	setQueryString(addr, q)
	var out []*structs.Job
	return out, c.do(ctx, http.MethodGet, addr, nil, &out)
}

func (c *Client) Cancel(ctx context.Context, id string) error {
	var out common.IDResponse
	return c.do(ctx, http.MethodPost, c.addr(common.API_CANCEL, id), nil, &out)
}

func (c *Client) Retry(ctx context.Context, id string) (*structs.Job, error) {
	var out structs.Job
	return &out, c.do(ctx, http.MethodPost, c.addr(common.API_RETRY, id), nil, &out)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	var out common.IDResponse
	return c.do(ctx, http.MethodDelete, c.addr(common.API_JOB, id), nil, &out)
}

func (c *Client) CreateWorkboard(ctx context.Context, spec *structs.WorkboardSpec) (*structs.Workboard, error) {
	var out structs.Workboard
	return &out, c.do(ctx, http.MethodPost, c.addr(common.API_WORKBOARDS, ""), spec, &out)
}

func (c *Client) Workboard(ctx context.Context, id string) (*structs.Workboard, error) {
	var out structs.Workboard
	return &out, c.do(ctx, http.MethodGet, c.addr(common.API_WORKBOARD, id), nil, &out)
}

func (c *Client) Workboards(ctx context.Context, q *structs.Query) ([]*structs.Workboard, error) {
	addr := c.addr(common.API_WORKBOARDS, "")
	setQueryString(addr, q)
	var out []*structs.Workboard
	return out, c.do(ctx, http.MethodGet, addr, nil, &out)
}

func (c *Client) Media(ctx context.Context, q *structs.Query) ([]*structs.Media, error) {
	addr := c.addr(common.API_MEDIA, "")
	setQueryString(addr, q)
	var out []*structs.Media
	return out, c.do(ctx, http.MethodGet, addr, nil, &out)
}

// addr builds the url for a route, filling in {id} if the route has one.
func (c *Client) addr(path, id string) *url.URL {
	path = strings.Replace(path, "{id}", url.PathEscape(id), 1)
	return &url.URL{Scheme: c.url.Scheme, Host: c.url.Host, Path: strings.TrimRight(c.url.Path, "/") + path}
}
