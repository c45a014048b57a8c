package poster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedditPoster(t *testing.T) {
	p := NewRedditPoster(RedditConfig{
		ClientID:  "id",
		Username:  "bot",
		UserAgent: "threadscout:test",
	})

	assert.NotNil(t, p)
	assert.Equal(t, "bot", p.username)
	assert.Equal(t, "threadscout:test", p.userAgent)
}

func TestRedditPoster_Platform(t *testing.T) {
	p := NewRedditPoster(RedditConfig{})
	assert.Equal(t, "reddit", p.Platform())
}

func TestPermalinkURL(t *testing.T) {
	assert.Equal(t,
		"https://www.reddit.com/r/smallbusiness/comments/abc/x/def/",
		permalinkURL("/r/smallbusiness/comments/abc/x/def/"))

	// Already absolute URLs pass through
	assert.Equal(t,
		"https://www.reddit.com/r/a/comments/b/",
		permalinkURL("https://www.reddit.com/r/a/comments/b/"))
}
