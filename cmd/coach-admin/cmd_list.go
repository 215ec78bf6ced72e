package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ruminaider/coach-admin/cmd/coach-admin/tui"
	"github.com/ruminaider/coach-admin/internal/api"
	"github.com/ruminaider/coach-admin/internal/query"
	"github.com/ruminaider/coach-admin/internal/schedule"
	"github.com/ruminaider/coach-admin/internal/selection"
)

const dateLayout = "2006-01-02"

var (
	listPage  int
	listLimit int
	listQuery string
)

var listCmd = &cobra.Command{
	Use:       "list <resource>",
	Short:     "List one page of a resource",
	Long:      "List one page of coupons, transactions, coaches, products, users or programs.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: api.Resources,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		limit := listLimit
		if limit == 0 {
			limit = rt.cfg.Selector.PageSize
		}
		l, err := loadListing(cmd.Context(), rt, args[0], api.ListParams{Page: listPage, Limit: limit, Query: listQuery})
		if err != nil {
			return err
		}
		renderListing(os.Stdout, l)
		return nil
	},
}

// listing is one rendered page of a resource.
type listing struct {
	Resource   string
	Headers    []string
	Rows       [][]string
	Page       int
	TotalPages int
}

func fetchListing[E any](ctx context.Context, rt *runtime, resource string, p api.ListParams, headers []string, row func(E) []string) (listing, error) {
	loader := query.NewLoader(rt.cache, query.ListFetcher[E](rt.client), query.LoaderConfig{
		FetchOnEmptyQuery: true,
		Logger:            rt.log,
	})
	res, err := loader.Load(ctx, query.NewKey(resource, p.Page, p.Limit, p.Query))
	if err != nil {
		return listing{}, err
	}
	l := listing{
		Resource:   resource,
		Headers:    headers,
		Page:       p.Page,
		TotalPages: res.Page.TotalPages,
	}
	for _, e := range res.Page.Results {
		l.Rows = append(l.Rows, row(e))
	}
	return l, nil
}

// loadListing fetches one page of resource through the shared cache.
func loadListing(ctx context.Context, rt *runtime, resource string, p api.ListParams) (listing, error) {
	switch resource {
	case api.ResourceCoupons:
		return fetchListing(ctx, rt, resource, p,
			[]string{"ID", "CODE", "DISCOUNT", "USED", "EXPIRES", "PRODUCTS", "USERS"},
			couponRow)
	case api.ResourceTransactions:
		return fetchListing(ctx, rt, resource, p,
			[]string{"ID", "USER", "PRODUCT", "AMOUNT", "STATUS", "COUPON", "DATE"},
			func(tx api.Transaction) []string {
				return []string{tx.ID, tx.UserName, tx.ProductName, tui.FormatPrice(tx.Amount), tx.Status, tx.CouponCode, tx.CreatedAt.Format("2006-01-02 15:04")}
			})
	case api.ResourceCoaches:
		return fetchListing(ctx, rt, resource, p,
			[]string{"ID", "NAME", "EMAIL", "EXPERTISE"},
			func(c api.Coach) []string {
				return []string{c.ID, c.Name, c.Email, c.Expertise}
			})
	case api.ResourceProducts:
		return fetchListing(ctx, rt, resource, p,
			[]string{"ID", "NAME", "KIND", "PRICE"},
			func(pr api.Product) []string {
				return []string{pr.ID, pr.Name, pr.Kind, tui.FormatPrice(pr.Price)}
			})
	case api.ResourceUsers:
		return fetchListing(ctx, rt, resource, p,
			[]string{"ID", "NAME", "MOBILE"},
			func(u api.User) []string {
				return []string{u.ID, u.FullName(), u.Mobile}
			})
	case api.ResourcePrograms:
		return fetchListing(ctx, rt, resource, p,
			[]string{"ID", "TITLE", "COACH", "SESSIONS", "STARTS"},
			func(pg api.Program) []string {
				coach := pg.CoachName
				if pg.CoachID == "" {
					coach = schedule.Unassigned
				}
				starts := "-"
				if len(pg.Sessions) > 0 {
					first := pg.Sessions[0].StartsAt
					for _, s := range pg.Sessions[1:] {
						if s.StartsAt.Before(first) {
							first = s.StartsAt
						}
					}
					starts = first.Format(dateLayout)
				}
				return []string{pg.ID, pg.Title, coach, strconv.Itoa(len(pg.Sessions)), starts}
			})
	}
	return listing{}, fmt.Errorf("unknown resource %q (want one of %s)", resource, strings.Join(api.Resources, ", "))
}

func couponRow(c api.Coupon) []string {
	discount := tui.FormatPrice(c.Amount)
	if c.DiscountType == api.DiscountPercent {
		discount = strconv.FormatFloat(c.Amount, 'f', -1, 64) + "%"
	}
	used := strconv.Itoa(c.UsedCount) + "/∞"
	if c.UsageLimit > 0 {
		used = fmt.Sprintf("%d/%d", c.UsedCount, c.UsageLimit)
	}
	return []string{
		c.ID, c.Code, discount, used, c.ExpiresAt.Format(dateLayout),
		describeScope(c.Products, c.ProductMode),
		describeScope(c.Users, c.UserMode),
	}
}

// describeScope summarizes a coupon scope. An empty include list means all.
func describeScope(ids []string, mode string) string {
	set := selection.New(ids...)
	if mode == selection.Except.String() {
		return set.Describe(selection.Except)
	}
	if set.Len() == 0 {
		return "all"
	}
	return set.Describe(selection.Include)
}

func renderListing(w io.Writer, l listing) {
	if len(l.Rows) == 0 {
		fmt.Fprintln(w, tui.DimStyle.Render("Nothing found"))
		fmt.Fprintln(w, tui.DimStyle.Render(fmt.Sprintf("page %d/%d", l.Page, l.TotalPages)))
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tui.DimStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tui.TableHeaderStyle.Padding(0, 1)
			}
			return tui.TableCellStyle.Padding(0, 1)
		}).
		Headers(l.Headers...).
		Rows(l.Rows...)

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, tui.DimStyle.Render(fmt.Sprintf("page %d/%d", l.Page, l.TotalPages)))
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number (1-based)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Rows per page (default from config)")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Search term")
}
