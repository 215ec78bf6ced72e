// Package query caches paginated list requests keyed by their parameters and
// invalidates them by tag after mutations.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ruminaider/coach-admin/internal/api"
)

// Key is the canonical request tuple of a list fetch.
type Key struct {
	Resource string
	Page     int
	Limit    int
	Query    string
}

// NewKey builds a Key with the query trimmed, so "ali " and "ali" share a
// cache entry.
func NewKey(resource string, page, limit int, q string) Key {
	return Key{
		Resource: resource,
		Page:     page,
		Limit:    limit,
		Query:    strings.TrimSpace(q),
	}
}

// String is the cache key, e.g. "coaches?limit=10&page=1&q=ali".
func (k Key) String() string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(k.Page))
	v.Set("limit", strconv.Itoa(k.Limit))
	v.Set("q", k.Query)
	return k.Resource + "?" + v.Encode()
}

// Validate enforces page >= 1 and limit >= 1.
func (k Key) Validate() error {
	if k.Resource == "" {
		return fmt.Errorf("%w: empty resource", api.ErrInvalidParams)
	}
	if k.Page < 1 || k.Limit < 1 {
		return fmt.Errorf("%w: page=%d limit=%d", api.ErrInvalidParams, k.Page, k.Limit)
	}
	return nil
}

// Tags returns the invalidation tags of the entry cached under k.
func (k Key) Tags() []string {
	return []string{k.Resource}
}

// Params converts k into api list parameters.
func (k Key) Params() api.ListParams {
	return api.ListParams{Page: k.Page, Limit: k.Limit, Query: k.Query}
}

// WithPage returns a copy of k for another page.
func (k Key) WithPage(page int) Key {
	k.Page = page
	return k
}
