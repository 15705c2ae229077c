// SPDX-License-Identifier: AGPL-3.0-only
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fluffyriot/postview/internal/normalize"
)

var ErrNoToken = errors.New("login response carried no token")

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(ctx context.Context, username, password string) (map[string]any, error) {
	var resp loginResponse
	err := c.doJSON(ctx, Request{
		Method:  http.MethodPost,
		Path:    "/auth/login/",
		Payload: map[string]string{"username": username, "password": password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, ErrNoToken
	}
	if c.tokens != nil {
		if err := c.tokens.Set(resp.Token); err != nil {
			return nil, fmt.Errorf("failed to store token: %w", err)
		}
	}
	return resp.User, nil
}

// Logout ends the remote session. The local token is cleared even when the
// remote call fails.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Do(ctx, Request{Method: http.MethodPost, Path: "/setting/auth/logout/"})
	if c.tokens != nil {
		if clearErr := c.tokens.Clear(); clearErr != nil {
			return errors.Join(err, clearErr)
		}
	}
	return err
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.doJSON(ctx, Request{Path: "/setting/me/"}, &u)
	return u, err
}

func (c *Client) Search(ctx context.Context, q SearchQuery) (Page, error) {
	query := url.Values{}
	if q.Keyword != "" {
		query.Set("keyword", q.Keyword)
	}
	if q.Tag != "" {
		query.Set("tag", q.Tag)
	}
	if q.Date != "" {
		query.Set("date", q.Date)
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = 20
	}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("pageSize", strconv.Itoa(q.PageSize))

	var resp searchResponse
	if err := c.doJSON(ctx, Request{Path: "/search", Query: query}, &resp); err != nil {
		return Page{}, err
	}
	if !resp.Success && resp.Message != "" {
		return Page{}, fmt.Errorf("search failed: %s", resp.Message)
	}

	return Page{Posts: resp.Data.Results, Total: resp.Data.Total, Users: resp.Data.Users}, nil
}

// FetchFeed returns one page of the discovery feed. The feed shares the
// search endpoint with no filters set.
func (c *Client) FetchFeed(ctx context.Context, page, pageSize int) (Page, error) {
	return c.Search(ctx, SearchQuery{Page: page, PageSize: pageSize})
}

func (c *Client) FetchMyPosts(ctx context.Context) ([]normalize.RawPost, error) {
	var posts []normalize.RawPost
	if err := c.doJSON(ctx, Request{Path: "/publish/posts/"}, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
