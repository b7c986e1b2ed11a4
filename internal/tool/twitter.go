package tool

// The four Twitter tools. Each one validates its inputs, makes exactly one
// platform call through a fresh session, and returns a single text result.
// Failures are absorbed into classified messages; Execute never returns a
// non-nil error to the transport layer.

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxTweetLength   = 280
	minSearchResults = 10
	maxSearchResults = 100
)

// --- post_tweet ---

// PostTweetTool posts a tweet, optionally as a reply.
type PostTweetTool struct {
	Session *Session
}

func (t *PostTweetTool) Name() string { return "post_tweet" }
func (t *PostTweetTool) Description() string {
	return "Post a tweet to Twitter, optionally as a reply to another tweet"
}
func (t *PostTweetTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{
				"type":        "string",
				"description": "The content of the tweet (max 280 characters)",
			},
			"reply_to_tweet_id": map[string]any{
				"type":        "string",
				"description": "Optional tweet ID to reply to (empty string for no reply)",
			},
		},
		"required": []string{"text"},
	}
}

func (t *PostTweetTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	text := getString(params, "text")
	replyTo := getString(params, "reply_to_tweet_id")

	if text == "" {
		return "Error: Tweet text cannot be empty", nil
	}
	if n := utf8.RuneCountInString(text); n > maxTweetLength {
		return fmt.Sprintf("Error: Tweet text exceeds %d characters (current: %d)", maxTweetLength, n), nil
	}

	client, err := t.Session.Client()
	if err != nil {
		return classify(t.Name(), err), nil
	}

	tw, err := client.CreateTweet(ctx, text, replyTo)
	if err != nil {
		return classify(t.Name(), err), nil
	}

	if replyTo != "" {
		return fmt.Sprintf("Tweet posted successfully as reply! Tweet ID: %s\nText: %s", tw.ID, tw.Text), nil
	}
	return fmt.Sprintf("Tweet posted successfully! Tweet ID: %s\nText: %s", tw.ID, tw.Text), nil
}

// --- search_tweets ---

// SearchTweetsTool searches recent tweets.
type SearchTweetsTool struct {
	Session *Session
}

func (t *SearchTweetsTool) Name() string { return "search_tweets" }
func (t *SearchTweetsTool) Description() string {
	return "Search for recent tweets on Twitter using Twitter search syntax"
}
func (t *SearchTweetsTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Search query string (supports Twitter search operators)",
			},
			"max_results": map[string]any{
				"type":        "integer",
				"description": "Maximum number of tweets to return (10-100, default 10)",
			},
		},
		"required": []string{"query"},
	}
}

func (t *SearchTweetsTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	query := getString(params, "query")
	maxResults := getInt(params, "max_results", minSearchResults)

	// Clamp rather than reject: the platform hard-errors outside [10,100].
	if maxResults < minSearchResults {
		maxResults = minSearchResults
	} else if maxResults > maxSearchResults {
		maxResults = maxSearchResults
	}

	client, err := t.Session.Client()
	if err != nil {
		return classify(t.Name(), err), nil
	}

	res, err := client.SearchRecent(ctx, query, maxResults)
	if err != nil {
		return classify(t.Name(), err), nil
	}

	if len(res.Tweets) == 0 {
		return fmt.Sprintf("No tweets found for query: %s", query), nil
	}
	return formatSearchResults(query, res), nil
}

// --- get_user_info ---

// GetUserInfoTool looks up a user profile by handle.
type GetUserInfoTool struct {
	Session *Session
}

func (t *GetUserInfoTool) Name() string { return "get_user_info" }
func (t *GetUserInfoTool) Description() string {
	return "Get information about a Twitter user"
}
func (t *GetUserInfoTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"username": map[string]any{
				"type":        "string",
				"description": "Twitter username, with or without the leading @",
			},
		},
		"required": []string{"username"},
	}
}

func (t *GetUserInfoTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	username := strings.TrimLeft(getString(params, "username"), "@")

	client, err := t.Session.Client()
	if err != nil {
		return classify(t.Name(), err), nil
	}

	u, err := client.UserByUsername(ctx, username)
	if err != nil {
		return classify(t.Name(), err), nil
	}
	if u == nil {
		return fmt.Sprintf("User not found: @%s", username), nil
	}
	return formatUser(u), nil
}

// --- delete_tweet ---

// DeleteTweetTool deletes a tweet by id.
type DeleteTweetTool struct {
	Session *Session
}

func (t *DeleteTweetTool) Name() string { return "delete_tweet" }
func (t *DeleteTweetTool) Description() string {
	return "Delete a tweet"
}
func (t *DeleteTweetTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tweet_id": map[string]any{
				"type":        "string",
				"description": "ID of the tweet to delete",
			},
		},
		"required": []string{"tweet_id"},
	}
}

func (t *DeleteTweetTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	tweetID := getString(params, "tweet_id")

	client, err := t.Session.Client()
	if err != nil {
		return classify(t.Name(), err), nil
	}

	deleted, err := client.DeleteTweet(ctx, tweetID)
	if err != nil {
		return classify(t.Name(), err), nil
	}

	if deleted {
		return fmt.Sprintf("Tweet %s deleted successfully!", tweetID), nil
	}
	return fmt.Sprintf("Failed to delete tweet %s", tweetID), nil
}

// NewTwitterTools returns the four tools sharing one session provider.
func NewTwitterTools(session *Session) []Tool {
	return []Tool{
		&PostTweetTool{Session: session},
		&SearchTweetsTool{Session: session},
		&GetUserInfoTool{Session: session},
		&DeleteTweetTool{Session: session},
	}
}
