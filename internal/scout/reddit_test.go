package scout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRedditSource_Defaults(t *testing.T) {
	r := NewRedditSource(RedditConfig{ClientID: "id", ClientSecret: "secret"})

	assert.Equal(t, "reddit", r.Name())
	assert.Equal(t, 100, r.listingLimit)
	assert.Equal(t, 20, r.searchLimit)
}

func TestNewRedditSource_CustomLimits(t *testing.T) {
	r := NewRedditSource(RedditConfig{ListingLimit: 25, SearchLimit: 5})

	assert.Equal(t, 25, r.listingLimit)
	assert.Equal(t, 5, r.searchLimit)
}

func TestPermalinkURL(t *testing.T) {
	assert.Equal(t,
		"https://www.reddit.com/r/smallbusiness/comments/abc/",
		permalinkURL("/r/smallbusiness/comments/abc/"))
	assert.Equal(t,
		"https://example.test/already-absolute",
		permalinkURL("https://example.test/already-absolute"))
}
