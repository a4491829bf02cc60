// Package profile fetches and normalizes user profiles from the external
// user service. The service is read-only; profiles are fetched fresh per
// call and never cached.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"scholar-ai/internal/apperr"
)

// Profile carries the semantic fields used in essay prompts. Absent
// upstream fields stay empty strings so prompt text remains well-formed.
type Profile struct {
	Name       string
	Major      string
	CareerGoal string
	Achievement string
	Background string
	Challenges string
}

// rawUser mirrors the upstream JSON field names.
type rawUser struct {
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Major       string          `json:"major"`
	CareerGoal  string          `json:"career_goal"`
	Achievement string          `json:"achievement"`
	Background  string          `json:"background"`
	Challenges  string          `json:"challenges"`
	Education   string          `json:"education"`
}

// idString renders the upstream id for exact string comparison,
// tolerating both numeric and string ids.
func (u rawUser) idString() string {
	if len(u.ID) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(u.ID, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(u.ID, &n); err == nil {
		return n.String()
	}
	return string(u.ID)
}

// Gateway fetches profiles over HTTP.
type Gateway struct {
	apiURL string
	client *http.Client
}

func NewGateway(apiURL string) *Gateway {
	return &Gateway{
		apiURL: apiURL,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch retrieves the profile for userID. When the id does not match any
// upstream entry the first entry is used instead; this mirrors upstream
// behavior and is logged so misattributed personalization is visible.
func (g *Gateway) Fetch(ctx context.Context, userID string) (Profile, error) {
	u, err := g.fetchUser(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		Name:        u.Name,
		Major:       u.Major,
		CareerGoal:  u.CareerGoal,
		Achievement: u.Achievement,
		Background:  u.Background,
		Challenges:  u.Challenges,
	}, nil
}

// FetchAll returns every upstream user, with the education field mapped
// to a scholarship level by the caller.
func (g *Gateway) FetchAll(ctx context.Context) ([]User, error) {
	users, err := g.fetchUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = User{
			ID:        u.idString(),
			Name:      u.Name,
			Education: u.Education,
			Profile: Profile{
				Name:        u.Name,
				Major:       u.Major,
				CareerGoal:  u.CareerGoal,
				Achievement: u.Achievement,
				Background:  u.Background,
				Challenges:  u.Challenges,
			},
		}
	}
	return out, nil
}

// User is an upstream user record with its opaque id.
type User struct {
	ID        string
	Name      string
	Education string
	Profile   Profile
}

func (g *Gateway) fetchUser(ctx context.Context, userID string) (rawUser, error) {
	users, err := g.fetchUsers(ctx)
	if err != nil {
		return rawUser{}, err
	}
	for _, u := range users {
		if u.idString() == userID {
			return u, nil
		}
	}
	log.Printf("[Profile] no user matched id %q, falling back to first entry", userID)
	return users[0], nil
}

func (g *Gateway) fetchUsers(ctx context.Context) ([]rawUser, error) {
	if g.apiURL == "" {
		return nil, fmt.Errorf("%w: user API URL not configured", apperr.ErrConfiguration)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build user API request: %v", apperr.ErrIntegration, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: user API call exceeded deadline", apperr.ErrTimeout)
		}
		return nil, fmt.Errorf("%w: user API unreachable: %v", apperr.ErrIntegration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: user API returned status %d", apperr.ErrIntegration, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read user API response: %v", apperr.ErrIntegration, err)
	}

	users, err := decodeUsers(body)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: user list empty from API", apperr.ErrFormat)
	}
	return users, nil
}

// decodeUsers accepts the upstream payload in one of four shapes, tried
// in fixed priority order: bare array, {"data":[...]}, {"users":[...]},
// single user object. Anything else fails closed.
func decodeUsers(body []byte) ([]rawUser, error) {
	var arr []rawUser
	if err := json.Unmarshal(body, &arr); err == nil {
		return arr, nil
	}

	var wrapped struct {
		Data  []rawUser `json:"data"`
		Users []rawUser `json:"users"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if wrapped.Data != nil {
			return wrapped.Data, nil
		}
		if wrapped.Users != nil {
			return wrapped.Users, nil
		}
	}

	var single rawUser
	if err := json.Unmarshal(body, &single); err == nil && len(single.ID) > 0 {
		return []rawUser{single}, nil
	}

	return nil, fmt.Errorf("%w: user API returned unexpected format", apperr.ErrFormat)
}
