package twitter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Tweet is a v2 tweet object. Optional fields are only populated when the
// matching tweet.fields selector was requested.
type Tweet struct {
	ID            string        `json:"id"`
	Text          string        `json:"text"`
	AuthorID      string        `json:"author_id,omitempty"`
	CreatedAt     string        `json:"created_at,omitempty"`
	PublicMetrics *TweetMetrics `json:"public_metrics,omitempty"`
}

// TweetMetrics is the public_metrics block of a tweet.
type TweetMetrics struct {
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	LikeCount    int `json:"like_count"`
	QuoteCount   int `json:"quote_count"`
}

// User is a v2 user object. Verified is a pointer so that "field not
// requested" is distinguishable from "not verified".
type User struct {
	ID            string       `json:"id"`
	Username      string       `json:"username"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Verified      *bool        `json:"verified,omitempty"`
	CreatedAt     string       `json:"created_at,omitempty"`
	PublicMetrics *UserMetrics `json:"public_metrics,omitempty"`
}

// UserMetrics is the public_metrics block of a user.
type UserMetrics struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	TweetCount     int `json:"tweet_count"`
}

// SearchResult holds the tweets of a recent-search call plus the users
// side-loaded via the author_id expansion.
type SearchResult struct {
	Tweets []Tweet
	Users  []User
}

// APIError is a non-2xx response from the Twitter API.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, e.Title)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Title, e.Detail)
}

// parseAPIError extracts title/detail from a v2 error body, best effort.
// Bodies come in two shapes: {"title":..,"detail":..,"status":..} for
// request-level problems and {"errors":[{"message":..}]} for partial ones.
func parseAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status, Title: http.StatusText(status)}

	var payload struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
		Errors []struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Title != "" {
			e.Title = payload.Title
		}
		switch {
		case payload.Detail != "":
			e.Detail = payload.Detail
		case len(payload.Errors) > 0:
			var parts []string
			for _, pe := range payload.Errors {
				if pe.Message != "" {
					parts = append(parts, pe.Message)
				} else if pe.Detail != "" {
					parts = append(parts, pe.Detail)
				}
			}
			e.Detail = strings.Join(parts, "; ")
		}
	}

	if e.Detail == "" {
		s := strings.TrimSpace(string(body))
		if len(s) > 512 {
			s = s[:512]
		}
		e.Detail = s
	}
	return e
}
