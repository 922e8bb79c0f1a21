// Package catalogapi talks to the remote catalog REST service. The access
// token is an explicit argument on every authenticated call; the client
// itself holds no session state.
package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"catalogadmin.dev/app/internal/modules/products"
	"catalogadmin.dev/app/internal/shared/reqid"
)

const headerRequestID = "X-Request-ID"

type Config struct {
	BaseURL string
	APIPath string
	Timeout time.Duration
	Logger  *slog.Logger
}

type Client struct {
	http    *resty.Client
	apiPath string
	log     *slog.Logger
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	l := cfg.Logger
	if l == nil {
		l = slog.Default()
	}

	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		http:    rc,
		apiPath: strings.Trim(cfg.APIPath, "/"),
		log:     l,
	}
}

// SignInResult is what the remote sign-in returns.
type SignInResult struct {
	UID       string
	Token     string
	ExpiresAt time.Time
}

type envelope struct {
	Success bool            `json:"success"`
	Message json.RawMessage `json:"message"`
}

type signInResponse struct {
	envelope
	UID     string `json:"uid"`
	Token   string `json:"token"`
	Expired int64  `json:"expired"`
}

type listResponse struct {
	envelope
	Products   []products.Product  `json:"products"`
	Pagination products.Pagination `json:"pagination"`
}

type productResponse struct {
	envelope
	Product products.Product `json:"product"`
}

type dataBody struct {
	Data products.Payload `json:"data"`
}

func (c *Client) SignIn(ctx context.Context, username, password string) (SignInResult, error) {
	var out signInResponse
	err := c.do(ctx, "", http.MethodPost, "/admin/signin", func(r *resty.Request) {
		r.SetBody(map[string]string{"username": username, "password": password}).
			SetResult(&out)
	}, &out.envelope)
	if err != nil {
		return SignInResult{}, err
	}
	if out.Token == "" {
		return SignInResult{}, &APIError{Status: http.StatusUnauthorized, Message: "empty token"}
	}
	return SignInResult{
		UID:       out.UID,
		Token:     out.Token,
		ExpiresAt: time.UnixMilli(out.Expired),
	}, nil
}

// Check verifies that token still grants admin access.
func (c *Client) Check(ctx context.Context, token string) error {
	var out envelope
	return c.do(ctx, token, http.MethodPost, "/api/user/check", func(r *resty.Request) {
		r.SetResult(&out)
	}, &out)
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	var out envelope
	return c.do(ctx, token, http.MethodPost, "/logout", func(r *resty.Request) {
		r.SetResult(&out)
	}, &out)
}

func (c *Client) ListProducts(ctx context.Context, token string, page int) ([]products.Product, products.Pagination, error) {
	if page < 1 {
		page = 1
	}
	var out listResponse
	err := c.do(ctx, token, http.MethodGet, c.path("/admin/products"), func(r *resty.Request) {
		r.SetQueryParam("page", strconv.Itoa(page)).SetResult(&out)
	}, &out.envelope)
	if err != nil {
		return nil, products.Pagination{}, err
	}
	return out.Products, out.Pagination, nil
}

func (c *Client) GetProduct(ctx context.Context, token, id string) (products.Product, error) {
	var out productResponse
	err := c.do(ctx, token, http.MethodGet, c.path("/product/{id}"), func(r *resty.Request) {
		r.SetPathParam("id", id).SetResult(&out)
	}, &out.envelope)
	if err != nil {
		return products.Product{}, err
	}
	return out.Product, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, p products.Payload) error {
	var out envelope
	return c.do(ctx, token, http.MethodPost, c.path("/admin/product"), func(r *resty.Request) {
		r.SetBody(dataBody{Data: p}).SetResult(&out)
	}, &out)
}

func (c *Client) UpdateProduct(ctx context.Context, token, id string, p products.Payload) error {
	var out envelope
	return c.do(ctx, token, http.MethodPut, c.path("/admin/product/{id}"), func(r *resty.Request) {
		r.SetPathParam("id", id).SetBody(dataBody{Data: p}).SetResult(&out)
	}, &out)
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	var out envelope
	return c.do(ctx, token, http.MethodDelete, c.path("/admin/product/{id}"), func(r *resty.Request) {
		r.SetPathParam("id", id).SetResult(&out)
	}, &out)
}

func (c *Client) path(suffix string) string {
	return "/api/" + c.apiPath + suffix
}

// do runs one request. env is the decoded success envelope; a 2xx with
// success=false is treated as an error too.
func (c *Client) do(ctx context.Context, token, method, url string, build func(*resty.Request), env *envelope) error {
	var errBody errorBody
	req := c.http.R().SetContext(ctx).SetError(&errBody)
	if token != "" {
		req.SetHeader("Authorization", token)
	}
	if rid := reqid.From(ctx); rid != "" {
		req.SetHeader(headerRequestID, rid)
	}
	build(req)

	start := time.Now()
	resp, err := req.Execute(method, url)
	if err != nil {
		c.log.LogAttrs(ctx, slog.LevelError, "catalog_request_failed",
			slog.String("method", method),
			slog.String("url", url),
			slog.Any("err", err),
		)
		return fmt.Errorf("catalog api %s %s: %w", method, url, err)
	}

	c.log.LogAttrs(ctx, slog.LevelDebug, "catalog_request",
		slog.String("request_id", reqid.From(ctx)),
		slog.String("method", method),
		slog.String("url", resp.Request.URL),
		slog.Int("status", resp.StatusCode()),
		slog.Duration("latency", time.Since(start)),
	)

	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Message: errBody.text()}
	}
	if env != nil && !env.Success {
		return &APIError{Status: resp.StatusCode(), Message: errorBody{Message: env.Message}.text()}
	}
	return nil
}
