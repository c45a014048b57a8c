package poster

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
	redditAuthURL    = "https://www.reddit.com/api/v1/access_token"
	redditAPIURL     = "https://oauth.reddit.com"
	redditCommentURL = redditAPIURL + "/api/comment"
)

// RedditPoster publishes comments through an authenticated Reddit account
// (password-grant OAuth).
type RedditPoster struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	username     string
	password     string
	userAgent    string
	accessToken  string
	tokenExpiry  time.Time
}

// RedditConfig holds configuration for the Reddit poster.
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
}

// NewRedditPoster creates a new Reddit poster.
func NewRedditPoster(cfg RedditConfig) *RedditPoster {
	return &RedditPoster{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		username:     cfg.Username,
		password:     cfg.Password,
		userAgent:    cfg.UserAgent,
	}
}

// Platform returns the platform name.
func (p *RedditPoster) Platform() string {
	return "reddit"
}

// ValidateCredentials authenticates and checks the account identity.
func (p *RedditPoster) ValidateCredentials(ctx context.Context) error {
	if err := p.ensureAccessToken(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", redditAPIURL+"/api/v1/me", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.accessToken)
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("identity check failed (status %d): %s", resp.StatusCode, string(body))
	}

	var me struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return err
	}

	slog.Info("Reddit credentials validated", "username", me.Name)
	return nil
}

// Publish posts a comment under the candidate post.
func (p *RedditPoster) Publish(ctx context.Context, reply Reply) (*Result, error) {
	if err := p.ensureAccessToken(ctx); err != nil {
		return nil, fmt.Errorf("get access token: %w", err)
	}

	data := url.Values{}
	data.Set("api_type", "json")
	data.Set("thing_id", "t3_"+reply.CandidateID)
	data.Set("text", reply.Text)

	req, err := http.NewRequestWithContext(ctx, "POST", redditCommentURL,
		strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("comment failed (status %d): %s", resp.StatusCode, string(body))
	}

	var commentResp struct {
		JSON struct {
			Errors [][]any `json:"errors"`
			Data   struct {
				Things []struct {
					Data struct {
						ID        string `json:"id"`
						Permalink string `json:"permalink"`
					} `json:"data"`
				} `json:"things"`
			} `json:"data"`
		} `json:"json"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&commentResp); err != nil {
		return nil, fmt.Errorf("decode comment response: %w", err)
	}

	if len(commentResp.JSON.Errors) > 0 {
		return nil, fmt.Errorf("Reddit rejected comment: %v", commentResp.JSON.Errors)
	}
	if len(commentResp.JSON.Data.Things) == 0 {
		return nil, fmt.Errorf("comment response contained no comment")
	}

	comment := commentResp.JSON.Data.Things[0].Data
	result := &Result{
		CommentID:  comment.ID,
		CommentURL: permalinkURL(comment.Permalink),
	}

	slog.Info("comment published",
		"candidate", reply.CandidateID,
		"url", result.CommentURL,
	)
	return result, nil
}

func (p *RedditPoster) ensureAccessToken(ctx context.Context) error {
	if p.accessToken != "" && time.Now().Before(p.tokenExpiry) {
		return nil
	}

	data := url.Values{}
	data.Set("grant_type", "password")
	data.Set("username", p.username)
	data.Set("password", p.password)

	req, err := http.NewRequestWithContext(ctx, "POST", redditAuthURL,
		strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}

	req.SetBasicAuth(p.clientID, p.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
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
	if tokenResp.AccessToken == "" {
		return fmt.Errorf("Reddit auth returned no token (check username/password)")
	}

	p.accessToken = tokenResp.AccessToken
	p.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn-60) * time.Second)
	return nil
}

func permalinkURL(permalink string) string {
	if strings.HasPrefix(permalink, "/") {
		return "https://www.reddit.com" + permalink
	}
	return permalink
}
