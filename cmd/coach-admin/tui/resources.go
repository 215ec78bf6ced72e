package tui

import (
	"github.com/dustin/go-humanize"

	"github.com/ruminaider/coach-admin/internal/api"
	"github.com/ruminaider/coach-admin/internal/query"
)

// FormatPrice renders an amount with thousands separators.
func FormatPrice(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

// CoachSelector configures a selector over coaches. Coaches list on an empty
// query.
func CoachSelector(cache *query.Cache, fetch query.Fetcher[api.Coach]) SelectorConfig[api.Coach] {
	return SelectorConfig[api.Coach]{
		Resource:          api.ResourceCoaches,
		Label:             "Coaches",
		IDOf:              func(c api.Coach) string { return c.ID },
		Title:             func(c api.Coach) string { return c.Name },
		Detail:            func(c api.Coach) string { return c.Expertise },
		FetchOnEmptyQuery: true,
		Cache:             cache,
		Fetch:             fetch,
	}
}

// ProductSelector configures a selector over products. Products list on an
// empty query.
func ProductSelector(cache *query.Cache, fetch query.Fetcher[api.Product]) SelectorConfig[api.Product] {
	return SelectorConfig[api.Product]{
		Resource:          api.ResourceProducts,
		Label:             "Products",
		IDOf:              func(p api.Product) string { return p.ID },
		Title:             func(p api.Product) string { return p.Name },
		Detail:            func(p api.Product) string { return FormatPrice(p.Price) },
		FetchOnEmptyQuery: true,
		Cache:             cache,
		Fetch:             fetch,
	}
}

// UserSelector configures a selector over users. The user list is large, so
// nothing is fetched until a query is typed.
func UserSelector(cache *query.Cache, fetch query.Fetcher[api.User]) SelectorConfig[api.User] {
	return SelectorConfig[api.User]{
		Resource:          api.ResourceUsers,
		Label:             "Users",
		IDOf:              func(u api.User) string { return u.ID },
		Title:             func(u api.User) string { return u.FullName() },
		Detail:            func(u api.User) string { return u.Mobile },
		FetchOnEmptyQuery: false,
		Cache:             cache,
		Fetch:             fetch,
	}
}
