package tool

import (
	"strings"
	"testing"

	"github.com/twmcp-io/twmcp/internal/twitter"
)

func boolPtr(b bool) *bool { return &b }

func TestFormatUser_AllFields(t *testing.T) {
	u := &twitter.User{
		ID:          "10",
		Username:    "gopher",
		Name:        "The Gopher",
		Description: "I write Go",
		Verified:    boolPtr(false),
		CreatedAt:   "2009-06-01T00:00:00.000Z",
		PublicMetrics: &twitter.UserMetrics{
			FollowersCount: 1234567,
			FollowingCount: 89,
			TweetCount:     4021,
		},
	}

	out := formatUser(u)
	want := strings.Join([]string{
		"User: @gopher",
		"Name: The Gopher",
		"ID: 10",
		"Bio: I write Go",
		"Verified: ✗",
		"",
		"Followers: 1,234,567",
		"Following: 89",
		"Tweets: 4,021",
		"Joined: 2009-06-01T00:00:00.000Z",
	}, "\n")

	if out != want {
		t.Errorf("unexpected rendering:\n got: %q\nwant: %q", out, want)
	}
}

func TestFormatUser_NoLabelWithEmptyValue(t *testing.T) {
	u := &twitter.User{ID: "10", Username: "gopher", Name: "The Gopher"}
	out := formatUser(u)

	want := "User: @gopher\nName: The Gopher\nID: 10"
	if out != want {
		t.Errorf("optional fields must be omitted entirely:\n got: %q\nwant: %q", out, want)
	}
}

func TestFormatUser_VerifiedMark(t *testing.T) {
	u := &twitter.User{ID: "10", Username: "g", Name: "G", Verified: boolPtr(true)}
	if out := formatUser(u); !strings.Contains(out, "Verified: ✓") {
		t.Errorf("expected check mark, got %q", out)
	}
}

func TestFormatSearchResults(t *testing.T) {
	res := &twitter.SearchResult{
		Tweets: []twitter.Tweet{
			{ID: "1", Text: "first", AuthorID: "10",
				PublicMetrics: &twitter.TweetMetrics{LikeCount: 7, RetweetCount: 3}},
			{ID: "2", Text: "second", AuthorID: "11"},
		},
		Users: []twitter.User{{ID: "10", Username: "gopher", Name: "Gopher"}},
	}

	out := formatSearchResults("go", res)

	if !strings.HasPrefix(out, "Found 2 tweets for query: 'go'") {
		t.Errorf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "1. @gopher (ID: 1)") {
		t.Errorf("missing first entry: %q", out)
	}
	if !strings.Contains(out, "❤️  7 likes | 🔁 3 retweets") {
		t.Errorf("missing metrics: %q", out)
	}
	if !strings.Contains(out, "2. User 11 (ID: 2)") {
		t.Errorf("missing author placeholder: %q", out)
	}
	if !strings.Contains(out, "❤️  0 likes | 🔁 0 retweets") {
		t.Errorf("missing zero defaults: %q", out)
	}
}
