// Package twitter is a minimal Twitter (X) API v2 client covering the four
// calls the tool server needs: create, recent search, user lookup, delete.
// Requests are signed with OAuth 1.0a user context.
package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/twmcp-io/twmcp/internal/config"
)

const (
	defaultBaseURL = "https://api.twitter.com"
	defaultTimeout = 30 * time.Second
)

// Client talks to the Twitter API v2.
type Client struct {
	client  *http.Client
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient sets a custom HTTP client, replacing the OAuth-signing one.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// New creates a client bound to one credential set. The credentials are not
// validated here; an empty set produces a client whose calls fail with 401.
func New(creds config.Credentials, opts ...Option) *Client {
	oc := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)

	hc := oc.Client(oauth1.NoContext, token)
	hc.Timeout = defaultTimeout

	c := &Client{
		client:  hc,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// --- API calls ---

type createTweetRequest struct {
	Text  string      `json:"text"`
	Reply *tweetReply `json:"reply,omitempty"`
}

type tweetReply struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

// CreateTweet posts a tweet. When replyToID is non-empty the tweet is
// created as a reply to it.
func (c *Client) CreateTweet(ctx context.Context, text, replyToID string) (*Tweet, error) {
	reqBody := createTweetRequest{Text: text}
	if replyToID != "" {
		reqBody.Reply = &tweetReply{InReplyToTweetID: replyToID}
	}

	body, err := c.do(ctx, http.MethodPost, "/2/tweets", nil, reqBody)
	if err != nil {
		return nil, err
	}

	var tw Tweet
	if err := decodeData(body, &tw); err != nil {
		return nil, fmt.Errorf("twitter: decode create response: %w", err)
	}
	return &tw, nil
}

// SearchRecent searches recent tweets. The query uses Twitter search syntax
// and is passed through opaquely. Author users are side-loaded via the
// author_id expansion.
func (c *Client) SearchRecent(ctx context.Context, query string, maxResults int) (*SearchResult, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("max_results", strconv.Itoa(maxResults))
	q.Set("tweet.fields", "created_at,public_metrics,author_id")
	q.Set("expansions", "author_id")
	q.Set("user.fields", "username,name,verified")

	body, err := c.do(ctx, http.MethodGet, "/2/tweets/search/recent", q, nil)
	if err != nil {
		return nil, err
	}

	var env struct {
		Data     []Tweet `json:"data"`
		Includes struct {
			Users []User `json:"users"`
		} `json:"includes"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("twitter: decode search response: %w", err)
	}
	return &SearchResult{Tweets: env.Data, Users: env.Includes.Users}, nil
}

// UserByUsername looks up a user by handle (without the @).
// Returns (nil, nil) when the user does not exist.
func (c *Client) UserByUsername(ctx context.Context, username string) (*User, error) {
	q := url.Values{}
	q.Set("user.fields", "created_at,description,public_metrics,verified")

	body, err := c.do(ctx, http.MethodGet, "/2/users/by/username/"+url.PathEscape(username), q, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}

	// Unknown users come back as a 200 with an errors array and no data.
	var env struct {
		Data   json.RawMessage   `json:"data"`
		Errors []json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &env); err == nil {
		if present(env.Data) {
			var u User
			if err := json.Unmarshal(env.Data, &u); err != nil {
				return nil, fmt.Errorf("twitter: decode user response: %w", err)
			}
			return &u, nil
		}
		if len(env.Errors) > 0 {
			return nil, nil
		}
	}

	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("twitter: decode user response: %w", err)
	}
	if u.ID == "" {
		return nil, nil
	}
	return &u, nil
}

// DeleteTweet deletes a tweet by id. The returned bool is the API's
// data.deleted flag; false when the flag is absent.
func (c *Client) DeleteTweet(ctx context.Context, id string) (bool, error) {
	body, err := c.do(ctx, http.MethodDelete, "/2/tweets/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return false, err
	}

	var env struct {
		Data struct {
			Deleted bool `json:"deleted"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return false, fmt.Errorf("twitter: decode delete response: %w", err)
	}
	return env.Data.Deleted, nil
}

// --- plumbing ---

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var rdr io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("twitter: marshal request: %w", err)
		}
		rdr = bytes.NewReader(payload)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, fmt.Errorf("twitter: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("twitter: request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("twitter: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// decodeData unmarshals the entity of a v2 response. The API wraps entities
// in a "data" envelope, but some gateway deployments return the entity at the
// top level; try the envelope first and fall back to the body itself.
func decodeData(body []byte, v any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && present(env.Data) {
		return json.Unmarshal(env.Data, v)
	}
	return json.Unmarshal(body, v)
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}
