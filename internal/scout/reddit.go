package scout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	redditAuthURL = "https://www.reddit.com/api/v1/access_token"
	redditAPIURL  = "https://oauth.reddit.com"
)

// RedditSource fetches candidate posts from subreddits.
type RedditSource struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	userAgent    string
	accessToken  string
	tokenExpiry  time.Time
	listingLimit int
	searchLimit  int
}

// RedditConfig holds configuration for the Reddit source.
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	ListingLimit int // posts per listing call (default 100)
	SearchLimit  int // posts per search call (default 20)
}

// NewRedditSource creates a new Reddit post source using app-only OAuth.
func NewRedditSource(cfg RedditConfig) *RedditSource {
	listingLimit := cfg.ListingLimit
	if listingLimit <= 0 {
		listingLimit = 100
	}
	searchLimit := cfg.SearchLimit
	if searchLimit <= 0 {
		searchLimit = 20
	}
	return &RedditSource{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		userAgent:    cfg.UserAgent,
		listingLimit: listingLimit,
		searchLimit:  searchLimit,
	}
}

// Name returns the source name.
func (r *RedditSource) Name() string {
	return "reddit"
}

// redditListing represents a Reddit API listing response.
type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID          string  `json:"id"`
				Title       string  `json:"title"`
				Selftext    string  `json:"selftext"`
				Subreddit   string  `json:"subreddit"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
				Permalink   string  `json:"permalink"`
				Author      string  `json:"author"`
				IsSelf      bool    `json:"is_self"`
				Flair       string  `json:"link_flair_text"`
				Over18      bool    `json:"over_18"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Listing fetches recent posts from a subreddit's new listing.
func (r *RedditSource) Listing(ctx context.Context, sourceID string) ([]CandidatePost, error) {
	endpoint := fmt.Sprintf("%s/r/%s/new?limit=%d", redditAPIURL, sourceID, r.listingLimit)
	return r.fetchListing(ctx, sourceID, endpoint)
}

// Search fetches posts from a subreddit matching a query term, restricted
// to the last month and sorted by relevance.
func (r *RedditSource) Search(ctx context.Context, sourceID, term string) ([]CandidatePost, error) {
	endpoint := fmt.Sprintf("%s/r/%s/search?q=%s&restrict_sr=1&sort=relevance&t=month&limit=%d",
		redditAPIURL, sourceID, url.QueryEscape(term), r.searchLimit)
	return r.fetchListing(ctx, sourceID, endpoint)
}

func (r *RedditSource) fetchListing(ctx context.Context, sourceID, endpoint string) ([]CandidatePost, error) {
	if err := r.ensureAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("get access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+r.accessToken)
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Reddit API error (status %d): %s", resp.StatusCode, string(body))
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, err
	}

	posts := make([]CandidatePost, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		data := child.Data
		if data.Over18 {
			continue
		}

		author := data.Author
		if author == "" {
			author = "[deleted]"
		}

		posts = append(posts, CandidatePost{
			ID:         data.ID,
			Title:      data.Title,
			Body:       data.Selftext,
			SourceID:   sourceID,
			Score:      data.Score,
			NumReplies: data.NumComments,
			CreatedAt:  int64(data.CreatedUTC),
			URL:        permalinkURL(data.Permalink),
			Author:     author,
			Flair:      data.Flair,
			IsTextual:  data.IsSelf,
		})
	}

	slog.Debug("fetched Reddit posts", "community", sourceID, "count", len(posts))
	return posts, nil
}

func (r *RedditSource) ensureAccessToken(ctx context.Context) error {
	if r.accessToken != "" && time.Now().Before(r.tokenExpiry) {
		return nil
	}

	data := url.Values{}
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, "POST", redditAuthURL,
		strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}

	req.SetBasicAuth(r.clientID, r.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Reddit auth failed (status %d): %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return err
	}

	r.accessToken = tokenResp.AccessToken
	r.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)

	slog.Debug("obtained Reddit access token", "expires_in", tokenResp.ExpiresIn)
	return nil
}

func permalinkURL(permalink string) string {
	if strings.HasPrefix(permalink, "/") {
		return "https://www.reddit.com" + permalink
	}
	return permalink
}
