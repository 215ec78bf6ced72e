package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ruminaider/coach-admin/cmd/coach-admin/tui"
	"github.com/ruminaider/coach-admin/internal/api"
	"github.com/ruminaider/coach-admin/internal/query"
	"github.com/ruminaider/coach-admin/internal/selection"
)

// Coupon scopes offered for products and users.
const (
	scopeAll    = "all"
	scopeOnly   = "only"
	scopeExcept = "except"
)

var couponCmd = &cobra.Command{
	Use:   "coupon",
	Short: "Manage coupons",
}

// couponDraft is the coupon as entered, before parsing.
type couponDraft struct {
	Code         string
	DiscountType string
	Amount       string
	UsageLimit   string
	ExpiresOn    string // YYYY-MM-DD, valid through the end of that day
	ProductScope string
	Products     []string
	UserScope    string
	Users        []string
}

var (
	couponFlags couponDraft
	couponYes   bool
)

var couponCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a coupon",
	Long:  "Create a coupon. Without --code the details are asked for interactively and product or user scopes are picked with the searchable selectors.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		draft := couponFlags
		if draft.Code == "" {
			if err := requireTerminal("coupon create without --code"); err != nil {
				return err
			}
			if err := promptCoupon(rt, &draft); err != nil {
				return err
			}
		}

		in, err := draft.input(time.Local)
		if err != nil {
			return err
		}
		if !couponYes && interactive() {
			ok, err := confirmCoupon(in)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Cancelled.")
				return nil
			}
		}
		return createCoupon(cmd.Context(), rt, os.Stdout, in)
	},
}

// input parses the draft into an API payload. Expiry dates are read in loc.
func (d couponDraft) input(loc *time.Location) (api.CouponInput, error) {
	in := api.CouponInput{
		Code:         strings.ToUpper(strings.TrimSpace(d.Code)),
		DiscountType: d.DiscountType,
	}
	if in.DiscountType == "" {
		in.DiscountType = api.DiscountPercent
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(d.Amount), 64)
	if err != nil {
		return api.CouponInput{}, fmt.Errorf("parsing amount %q: %w", d.Amount, err)
	}
	in.Amount = amount

	if s := strings.TrimSpace(d.UsageLimit); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil {
			return api.CouponInput{}, fmt.Errorf("parsing usage limit %q: %w", d.UsageLimit, err)
		}
		in.UsageLimit = limit
	}

	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(d.ExpiresOn), loc)
	if err != nil {
		return api.CouponInput{}, fmt.Errorf("parsing expiry %q (want YYYY-MM-DD): %w", d.ExpiresOn, err)
	}
	in.ExpiresAt = day.AddDate(0, 0, 1).Add(-time.Second)

	in.Products, in.ProductMode, err = scopeOf("product", d.ProductScope, d.Products)
	if err != nil {
		return api.CouponInput{}, err
	}
	in.Users, in.UserMode, err = scopeOf("user", d.UserScope, d.Users)
	if err != nil {
		return api.CouponInput{}, err
	}
	return in, nil
}

// scopeOf maps a scope choice to the payload ids and mode.
func scopeOf(noun, scope string, ids []string) ([]string, string, error) {
	set := selection.New(ids...)
	switch scope {
	case "", scopeAll:
		return nil, selection.Include.String(), nil
	case scopeOnly:
		if set.Len() == 0 {
			return nil, "", fmt.Errorf("pick at least one %s or use scope %q", noun, scopeAll)
		}
		return set.IDs(), selection.Include.String(), nil
	case scopeExcept:
		return set.IDs(), selection.Except.String(), nil
	}
	return nil, "", fmt.Errorf("unknown %s scope %q (want all, only or except)", noun, scope)
}

func promptCoupon(rt *runtime, d *couponDraft) error {
	if d.DiscountType == "" {
		d.DiscountType = api.DiscountPercent
	}
	if d.ProductScope == "" {
		d.ProductScope = scopeAll
	}
	if d.UserScope == "" {
		d.UserScope = scopeAll
	}
	scopes := []huh.Option[string]{
		huh.NewOption("Everyone / everything", scopeAll),
		huh.NewOption("Only the ones I pick", scopeOnly),
		huh.NewOption("All except the ones I pick", scopeExcept),
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Code").
				Placeholder("e.g. SPRING-25").
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if len(s) < 3 || len(s) > 32 {
						return errors.New("3-32 characters")
					}
					return nil
				}).
				Value(&d.Code),
			huh.NewSelect[string]().
				Title("Discount type").
				Options(
					huh.NewOption("Percent", api.DiscountPercent),
					huh.NewOption("Fixed amount", api.DiscountFixed),
				).
				Value(&d.DiscountType),
			huh.NewInput().
				Title("Amount").
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v <= 0 {
						return errors.New("enter a positive number")
					}
					return nil
				}).
				Value(&d.Amount),
			huh.NewInput().
				Title("Usage limit").
				Description("Leave empty for unlimited").
				Value(&d.UsageLimit),
			huh.NewInput().
				Title("Expires on").
				Placeholder(time.Now().AddDate(0, 1, 0).Format(dateLayout)).
				Validate(func(s string) error {
					_, err := time.Parse(dateLayout, strings.TrimSpace(s))
					return err
				}).
				Value(&d.ExpiresOn),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Products").
				Options(scopes...).
				Value(&d.ProductScope),
			huh.NewSelect[string]().
				Title("Users").
				Options(scopes...).
				Value(&d.UserScope),
		),
	).Run()
	if err != nil {
		return err
	}

	if d.ProductScope != scopeAll {
		ids, aborted, err := runSelector(rt, api.ResourceProducts, d.Products, d.ProductScope == scopeExcept)
		if err != nil {
			return err
		}
		if aborted {
			return errReported
		}
		d.Products = ids
	}
	if d.UserScope != scopeAll {
		ids, aborted, err := runSelector(rt, api.ResourceUsers, d.Users, d.UserScope == scopeExcept)
		if err != nil {
			return err
		}
		if aborted {
			return errReported
		}
		d.Users = ids
	}
	return nil
}

func confirmCoupon(in api.CouponInput) (bool, error) {
	ok := true
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Create coupon %s?", in.Code)).
				Description(summarizeCoupon(in)).
				Value(&ok),
		),
	).Run()
	return ok, err
}

func summarizeCoupon(in api.CouponInput) string {
	discount := tui.FormatPrice(in.Amount)
	if in.DiscountType == api.DiscountPercent {
		discount = strconv.FormatFloat(in.Amount, 'f', -1, 64) + "%"
	}
	limit := "unlimited"
	if in.UsageLimit > 0 {
		limit = strconv.Itoa(in.UsageLimit) + " uses"
	}
	return fmt.Sprintf("%s off, %s, until %s\nproducts: %s\nusers: %s",
		discount, limit, in.ExpiresAt.Format(dateLayout),
		describeScope(in.Products, in.ProductMode),
		describeScope(in.Users, in.UserMode))
}

// createCoupon validates and posts in, then invalidates cached coupon pages
// and shows the stored coupon. Failures are printed as a toast line and
// reported as errReported.
func createCoupon(ctx context.Context, rt *runtime, w io.Writer, in api.CouponInput) error {
	if err := api.ValidateCouponInput(in, time.Now()); err != nil {
		fmt.Fprintln(w, tui.ToastStyle.Render("✗ "+err.Error()))
		return errReported
	}

	lookup := query.NewKey(api.ResourceCoupons, 1, rt.cfg.Selector.PageSize, in.Code)
	existing, err := findCoupon(ctx, rt, lookup, in.Code)
	if err != nil {
		rt.log.Warn("duplicate check failed", zap.Error(err))
	} else if existing != nil {
		fmt.Fprintln(w, tui.ToastStyle.Render(fmt.Sprintf("✗ coupon code %s already exists", existing.Code)))
		return errReported
	}

	coupon, err := rt.client.CreateCoupon(ctx, in)
	if err != nil {
		rt.log.Warn("create coupon failed", zap.String("code", in.Code), zap.Error(err))
		fmt.Fprintln(w, tui.ToastStyle.Render("✗ "+api.MessageOf(err)))
		return errReported
	}
	if err := rt.bus.Publish(api.ResourceCoupons); err != nil {
		rt.log.Warn("invalidating coupons", zap.Error(err))
	}
	rt.log.Info("coupon created", zap.String("id", coupon.ID), zap.String("code", coupon.Code))

	fmt.Fprintln(w, tui.SuccessStyle.Render(fmt.Sprintf("✓ Created coupon %s (%s)", coupon.Code, coupon.ID)))
	l, err := loadListing(ctx, rt, api.ResourceCoupons, lookup.Params())
	if err != nil {
		return err
	}
	renderListing(w, l)
	return nil
}

// findCoupon looks code up through the cache.
func findCoupon(ctx context.Context, rt *runtime, key query.Key, code string) (*api.Coupon, error) {
	loader := query.NewLoader(rt.cache, query.ListFetcher[api.Coupon](rt.client), query.LoaderConfig{
		FetchOnEmptyQuery: true,
		Logger:            rt.log,
	})
	res, err := loader.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	for _, c := range res.Page.Results {
		if strings.EqualFold(c.Code, code) {
			return &c, nil
		}
	}
	return nil, nil
}

func init() {
	f := couponCreateCmd.Flags()
	f.StringVar(&couponFlags.Code, "code", "", "Coupon code (letters, digits, dashes)")
	f.StringVar(&couponFlags.DiscountType, "type", api.DiscountPercent, "Discount type: percent or fixed")
	f.StringVar(&couponFlags.Amount, "amount", "", "Discount amount")
	f.StringVar(&couponFlags.UsageLimit, "limit", "", "Maximum number of uses (empty for unlimited)")
	f.StringVar(&couponFlags.ExpiresOn, "expires", "", "Last valid day, YYYY-MM-DD")
	f.StringVar(&couponFlags.ProductScope, "product-scope", scopeAll, "Product scope: all, only or except")
	f.StringSliceVar(&couponFlags.Products, "products", nil, "Product ids for --product-scope only/except")
	f.StringVar(&couponFlags.UserScope, "user-scope", scopeAll, "User scope: all, only or except")
	f.StringSliceVar(&couponFlags.Users, "users", nil, "User ids for --user-scope only/except")
	f.BoolVarP(&couponYes, "yes", "y", false, "Skip the confirmation prompt")
	couponCmd.AddCommand(couponCreateCmd)
}
