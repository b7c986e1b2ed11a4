package tool

import (
	"errors"
	"strings"

	"github.com/twmcp-io/twmcp/internal/config"
	"github.com/twmcp-io/twmcp/internal/twitter"
)

const unauthorizedMessage = `Twitter API error: 401 Unauthorized

This usually means:
1. Your access tokens are invalid or expired
2. You changed app permissions but didn't regenerate tokens
3. Your app doesn't have Read+Write permissions

To fix:
- Go to https://developer.twitter.com/en/portal/dashboard
- Navigate to your app settings
- Ensure 'Read and Write' permissions are enabled
- Regenerate your Access Token and Secret
- Update your environment variables with the new tokens`

const rateLimitMessage = `Twitter API error: 429 Rate Limit Exceeded

You've hit the Twitter API rate limit for search.
Rate limits for Twitter API v2 (Free tier):
- Recent search: 180 requests per 15 minutes
- You may need to wait before searching again

If this happens frequently, consider:
1. Reducing search frequency
2. Upgrading to a higher Twitter API tier
3. Implementing caching for repeated searches`

// classify maps a failure to a user-facing message. The substring dispatch
// on the API error text is a deliberately lightweight heuristic: the error
// shapes coming back from the platform vary, but 401s and 429s always carry
// their status somewhere in the text.
func classify(op string, err error) string {
	var apiErr *twitter.APIError
	var credErr *config.MissingCredentialsError

	switch {
	case errors.As(err, &apiErr):
		detail := apiErr.Error()
		if strings.Contains(detail, "401") || strings.Contains(detail, "Unauthorized") {
			return unauthorizedMessage
		}
		// Only search has a meaningful quota story to tell.
		if op == "search_tweets" &&
			(strings.Contains(detail, "429") || strings.Contains(detail, "Too Many Requests")) {
			return rateLimitMessage
		}
		return "Twitter API error: " + detail
	case errors.As(err, &credErr):
		return "Configuration error: " + credErr.Error()
	default:
		return "Unexpected error: " + err.Error()
	}
}
