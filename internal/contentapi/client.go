// Package contentapi talks to the headless CMS that serves knowledge base articles.
package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mithrel/kbreader/pkg/api"
)

// articlesPath asks the API to embed the category relation in each article.
const articlesPath = "/articles?populate=category"

// Client fetches the article list from one content API deployment.
type Client struct {
	baseURL    string
	prefix     string
	httpClient *http.Client
}

// New builds a client. baseURL is used verbatim; prefix is the API path
// (usually "/api") placed between it and the articles route.
// A zero timeout leaves the call unbounded.
func New(baseURL, prefix string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		prefix:     prefix,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ArticlesURL is the single endpoint this client calls.
func (c *Client) ArticlesURL() string {
	prefix := strings.TrimRight(c.prefix, "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return c.baseURL + prefix + articlesPath
}

// FetchArticles performs one GET and returns the decoded, validated data list.
// The status code is not consulted: any body that decodes into an article
// list is accepted. Every failure is a *FetchError.
func (c *Client) FetchArticles(ctx context.Context) ([]api.Article, error) {
	url := c.ArticlesURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Op: OpRequest, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Op: OpTransport, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: OpRead, URL: url, Err: err}
	}
	list, op, err := decodeList(body)
	if err != nil {
		return nil, &FetchError{Op: op, URL: url, Err: err}
	}
	return list.Data, nil
}

func decodeList(body []byte) (*api.ArticleList, Op, error) {
	var list api.ArticleList
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&list); err != nil {
		return nil, OpDecode, fmt.Errorf("decode body: %w", err)
	}
	if err := validateList(&list); err != nil {
		return nil, OpValidate, err
	}
	return &list, "", nil
}
