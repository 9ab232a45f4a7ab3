package model

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
)

const (
	HEADER_REQUEST_ID         = "X-Request-ID"
	HEADER_REQUESTED_WITH     = "X-Requested-With"
	HEADER_REQUESTED_WITH_XML = "XMLHttpRequest"
	HEADER_CSRF_TOKEN         = "X-CSRFToken"
	HEADER_CONTENT_TYPE       = "Content-Type"

	CONTENT_TYPE_JSON = "application/json"

	API_URL_SUFFIX = "/api"
)

type Response struct {
	StatusCode int
	Error      *AppError
	RequestId  string
	Header     http.Header
}

type Client struct {
	Url        string
	ApiUrl     string
	HttpClient *http.Client
	// CsrfToken is sent in CsrfHeader on every request. An empty token omits the header.
	CsrfToken  string
	CsrfHeader string
	HttpHeader map[string]string
}

func NewAPIClient(url string) *Client {
	url = strings.TrimRight(url, "/")
	return &Client{
		Url:        url,
		ApiUrl:     url + API_URL_SUFFIX,
		HttpClient: &http.Client{},
		CsrfHeader: HEADER_CSRF_TOKEN,
		HttpHeader: map[string]string{},
	}
}

func BuildErrorResponse(r *http.Response, err *AppError) *Response {
	var statusCode int
	var header http.Header
	if r != nil {
		statusCode = r.StatusCode
		header = r.Header
	} else {
		statusCode = 0
		header = make(http.Header)
	}

	return &Response{
		StatusCode: statusCode,
		Error:      err,
		RequestId:  err.RequestId,
		Header:     header,
	}
}

func closeBody(r *http.Response) {
	if r.Body != nil {
		_, _ = io.Copy(ioutil.Discard, r.Body)
		_ = r.Body.Close()
	}
}

func BuildResponse(r *http.Response) *Response {
	return &Response{
		StatusCode: r.StatusCode,
		RequestId:  requestIdFromResponse(r),
		Header:     r.Header,
	}
}

// requestIdFromResponse prefers the id echoed by the server and falls back to the one we sent.
func requestIdFromResponse(r *http.Response) string {
	if id := r.Header.Get(HEADER_REQUEST_ID); id != "" {
		return id
	}
	if r.Request != nil {
		return r.Request.Header.Get(HEADER_REQUEST_ID)
	}
	return ""
}

func (c *Client) GetPostsRoute() string {
	return "/posts"
}

// GetPostRoute treats postId as opaque and escapes it as a single path segment.
func (c *Client) GetPostRoute(postId string) string {
	return fmt.Sprintf(c.GetPostsRoute()+"/%v", url.PathEscape(postId))
}

func (c *Client) GetPostViewRoute(postId string) string {
	return c.GetPostRoute(postId) + "/view/"
}

func (c *Client) GetPostLikeRoute(postId string) string {
	return c.GetPostRoute(postId) + "/like/"
}

// RegisterPostView records one view of the post and returns the server's view count.
func (c *Client) RegisterPostView(ctx context.Context, postId string) (*PostViewCount, *Response) {
	r, err := c.DoApiPost(ctx, c.GetPostViewRoute(postId), "")
	if err != nil {
		return nil, BuildErrorResponse(r, err)
	}
	defer closeBody(r)

	views, err := PostViewCountFromJson(r.Body)
	if err != nil {
		err.RequestId = requestIdFromResponse(r)
		return nil, BuildErrorResponse(r, err)
	}
	return views, BuildResponse(r)
}

// TogglePostLike asks the server to flip the viewer's like. No current state is sent.
func (c *Client) TogglePostLike(ctx context.Context, postId string) (*PostLikeStatus, *Response) {
	r, err := c.DoApiPostJson(ctx, c.GetPostLikeRoute(postId), "")
	if err != nil {
		return nil, BuildErrorResponse(r, err)
	}
	defer closeBody(r)

	status, err := PostLikeStatusFromJson(r.Body)
	if err != nil {
		err.RequestId = requestIdFromResponse(r)
		return nil, BuildErrorResponse(r, err)
	}
	return status, BuildResponse(r)
}

func (c *Client) DoApiPost(ctx context.Context, url string, data string) (*http.Response, *AppError) {
	return c.DoApiRequest(ctx, http.MethodPost, c.ApiUrl+url, data, nil)
}

func (c *Client) DoApiPostJson(ctx context.Context, url string, data string) (*http.Response, *AppError) {
	return c.DoApiRequest(ctx, http.MethodPost, c.ApiUrl+url, data, map[string]string{HEADER_CONTENT_TYPE: CONTENT_TYPE_JSON})
}

func (c *Client) DoApiRequest(ctx context.Context, method, url, data string, headers map[string]string) (*http.Response, *AppError) {
	return c.doApiRequestReader(ctx, method, url, strings.NewReader(data), headers)
}

func (c *Client) doApiRequestReader(ctx context.Context, method, url string, data io.Reader, headers map[string]string) (*http.Response, *AppError) {
	rq, err := http.NewRequestWithContext(ctx, method, url, data)
	if err != nil {
		return nil, NewAppError(url, "model.client.connecting.app_error", nil, err.Error(), http.StatusBadRequest)
	}

	requestId := NewId()
	rq.Header.Set(HEADER_REQUEST_ID, requestId)
	rq.Header.Set(HEADER_REQUESTED_WITH, HEADER_REQUESTED_WITH_XML)

	if c.CsrfToken != "" {
		rq.Header.Set(c.CsrfHeader, c.CsrfToken)
	}

	for k, v := range headers {
		rq.Header.Set(k, v)
	}

	if c.HttpHeader != nil && len(c.HttpHeader) > 0 {
		for k, v := range c.HttpHeader {
			rq.Header.Set(k, v)
		}
	}

	rp, err := c.HttpClient.Do(rq)
	if err != nil {
		appErr := NewAppError(url, "model.client.connecting.app_error", nil, err.Error(), 0)
		appErr.RequestId = requestId
		return nil, appErr
	}

	if rp.StatusCode >= 300 {
		defer closeBody(rp)
		appErr := AppErrorFromJson(rp.Body)
		appErr.StatusCode = rp.StatusCode
		appErr.Where = url
		appErr.RequestId = requestIdFromResponse(rp)
		return rp, appErr
	}

	return rp, nil
}
