package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruminaider/coach-admin/internal/api"
	"github.com/ruminaider/coach-admin/internal/fixtures"
)

func validDraft() couponDraft {
	return couponDraft{
		Code:         " summer-15 ",
		DiscountType: api.DiscountPercent,
		Amount:       "15",
		ExpiresOn:    time.Now().AddDate(0, 1, 0).Format(dateLayout),
	}
}

func TestCouponDraftInput(t *testing.T) {
	d := couponDraft{
		Code:         "spring",
		DiscountType: api.DiscountFixed,
		Amount:       "50000",
		UsageLimit:   "25",
		ExpiresOn:    "2030-04-01",
		ProductScope: scopeOnly,
		Products:     []string{"p001", "p002", "p001"},
		UserScope:    scopeExcept,
		Users:        []string{"u009"},
	}
	in, err := d.input(time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "SPRING", in.Code)
	assert.Equal(t, 50000.0, in.Amount)
	assert.Equal(t, 25, in.UsageLimit)
	assert.Equal(t, time.Date(2030, 4, 1, 23, 59, 59, 0, time.UTC), in.ExpiresAt)
	assert.Equal(t, []string{"p001", "p002"}, in.Products)
	assert.Equal(t, "include", in.ProductMode)
	assert.Equal(t, []string{"u009"}, in.Users)
	assert.Equal(t, "except", in.UserMode)
}

func TestCouponDraftInput_AllScopesDropIDs(t *testing.T) {
	d := validDraft()
	d.Products = []string{"p001"}
	in, err := d.input(time.UTC)
	require.NoError(t, err)
	assert.Nil(t, in.Products)
	assert.Equal(t, "include", in.ProductMode)
	assert.Equal(t, "include", in.UserMode)
	assert.Zero(t, in.UsageLimit)
}

func TestCouponDraftInput_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*couponDraft)
		want   string
	}{
		{"bad amount", func(d *couponDraft) { d.Amount = "ten" }, "parsing amount"},
		{"bad limit", func(d *couponDraft) { d.UsageLimit = "many" }, "parsing usage limit"},
		{"bad date", func(d *couponDraft) { d.ExpiresOn = "01/04/2030" }, "want YYYY-MM-DD"},
		{"only without ids", func(d *couponDraft) { d.ProductScope = scopeOnly }, "pick at least one product"},
		{"unknown scope", func(d *couponDraft) { d.UserScope = "some" }, `unknown user scope "some"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			_, err := d.input(time.UTC)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestCreateCoupon_Success(t *testing.T) {
	rt, store := fixtureRuntime(t, fixtures.Options{})
	in, err := validDraft().input(time.Local)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, createCoupon(context.Background(), rt, &buf, in))

	out := buf.String()
	assert.Contains(t, out, "Created coupon SUMMER-15")
	assert.Contains(t, out, "15%")
	assert.NotContains(t, out, "Nothing found", "the lookup cached before creation was invalidated")
	// duplicate check, create, fresh lookup
	assert.Equal(t, 3, store.TotalHits(api.ResourceCoupons))
	assert.Equal(t, 1, store.Hits("/coupons"))
}

func TestCreateCoupon_DuplicateCaughtBeforePost(t *testing.T) {
	rt, store := fixtureRuntime(t, fixtures.Options{})
	d := validDraft()
	d.Code = "welcome10"
	in, err := d.input(time.Local)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = createCoupon(context.Background(), rt, &buf, in)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, buf.String(), "coupon code WELCOME10 already exists")
	assert.Zero(t, store.Hits("/coupons"))
}

func TestCreateCoupon_ServerRejectionShownAsToast(t *testing.T) {
	// The server's clock is far ahead, so it rejects an expiry the client accepts.
	rt, _ := fixtureRuntime(t, fixtures.Options{Now: func() time.Time {
		return time.Now().AddDate(10, 0, 0)
	}})
	in, err := validDraft().input(time.Local)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = createCoupon(context.Background(), rt, &buf, in)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, buf.String(), "✗ expiry must be in the future")
}

func TestCreateCoupon_ClientValidation(t *testing.T) {
	rt, store := fixtureRuntime(t, fixtures.Options{})
	d := validDraft()
	d.Amount = "150"
	in, err := d.input(time.Local)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = createCoupon(context.Background(), rt, &buf, in)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, buf.String(), "percent discount cannot exceed 100")
	assert.Zero(t, store.TotalHits(api.ResourceCoupons))
}

func TestSummarizeCoupon(t *testing.T) {
	in := api.CouponInput{
		Code: "X-1", DiscountType: api.DiscountFixed, Amount: 1250000, UsageLimit: 3,
		ExpiresAt:   time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC),
		ProductMode: "include", Users: []string{"u1"}, UserMode: "except",
	}
	assert.Equal(t, "1,250,000 off, 3 uses, until 2030-01-02\nproducts: all\nusers: all except 1", summarizeCoupon(in))
}
