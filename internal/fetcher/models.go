// SPDX-License-Identifier: AGPL-3.0-only
package fetcher

import (
	"github.com/fluffyriot/postview/internal/normalize"
)

type searchResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Results []normalize.RawPost `json:"results"`
		Total   int                 `json:"total"`
		Users   []map[string]any    `json:"users"`
	} `json:"data"`
}

type loginResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    map[string]any `json:"user"`
}

// Page is one page of raw posts from the search endpoint.
type Page struct {
	Posts []normalize.RawPost
	Total int
	Users []map[string]any
}

type SearchQuery struct {
	Keyword  string
	Tag      string
	Date     string
	Page     int
	PageSize int
}

type User struct {
	ID       any    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}
