package tool

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/twmcp-io/twmcp/internal/twitter"
)

// formatSearchResults renders a numbered list of tweets with author handles
// resolved from the side-loaded users. Authors missing from the expansion
// are rendered as "User <author_id>".
func formatSearchResults(query string, res *twitter.SearchResult) string {
	users := make(map[string]twitter.User, len(res.Users))
	for _, u := range res.Users {
		users[u.ID] = u
	}

	parts := make([]string, 0, len(res.Tweets)+1)
	parts = append(parts, fmt.Sprintf("Found %d tweets for query: '%s'\n", len(res.Tweets), query))

	for i, tw := range res.Tweets {
		author := fmt.Sprintf("User %s", tw.AuthorID)
		if u, ok := users[tw.AuthorID]; ok {
			author = "@" + u.Username
		}

		var likes, retweets int
		if tw.PublicMetrics != nil {
			likes = tw.PublicMetrics.LikeCount
			retweets = tw.PublicMetrics.RetweetCount
		}

		parts = append(parts, fmt.Sprintf(
			"\n%d. %s (ID: %s)\n   %s\n   ❤️  %d likes | 🔁 %d retweets",
			i+1, author, tw.ID, tw.Text, likes, retweets,
		))
	}

	return strings.Join(parts, "\n")
}

// formatUser renders a user profile. Fields the platform did not return are
// omitted entirely; no line is ever emitted with an empty value.
func formatUser(u *twitter.User) string {
	lines := []string{
		fmt.Sprintf("User: @%s", u.Username),
		fmt.Sprintf("Name: %s", u.Name),
		fmt.Sprintf("ID: %s", u.ID),
	}

	if u.Description != "" {
		lines = append(lines, "Bio: "+u.Description)
	}
	if u.Verified != nil {
		mark := "✗"
		if *u.Verified {
			mark = "✓"
		}
		lines = append(lines, "Verified: "+mark)
	}
	if m := u.PublicMetrics; m != nil {
		lines = append(lines,
			"",
			"Followers: "+humanize.Comma(int64(m.FollowersCount)),
			"Following: "+humanize.Comma(int64(m.FollowingCount)),
			"Tweets: "+humanize.Comma(int64(m.TweetCount)),
		)
	}
	if u.CreatedAt != "" {
		lines = append(lines, "Joined: "+u.CreatedAt)
	}

	return strings.Join(lines, "\n")
}
