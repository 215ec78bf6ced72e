package api

import (
	"strings"
	"time"
)

// Resource names as they appear in API paths.
const (
	ResourceCoaches      = "coaches"
	ResourceProducts     = "products"
	ResourceUsers        = "users"
	ResourceCoupons      = "coupons"
	ResourceTransactions = "transactions"
	ResourcePrograms     = "programs"
)

// Resources lists every listable resource.
var Resources = []string{
	ResourceCoupons,
	ResourceTransactions,
	ResourceCoaches,
	ResourceProducts,
	ResourceUsers,
	ResourcePrograms,
}

// Page is one page of a paginated list response. Results may be nil.
type Page[E any] struct {
	Results    []E `json:"results"`
	TotalPages int `json:"totalPages"`
}

// ListParams are the query parameters of a list request.
type ListParams struct {
	Page  int
	Limit int
	Query string
}

// Coach is a course coach. The API names its identifier "id".
type Coach struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Expertise string `json:"expertise,omitempty"`
}

// Product is a purchasable course or package. The API names its identifier "_id".
type Product struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Kind  string  `json:"kind,omitempty"`
}

// User is a platform customer. The API names its identifier "_id".
type User struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Mobile    string `json:"mobile"`
}

// FullName joins the non-empty name parts.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Discount types accepted by the coupon endpoint.
const (
	DiscountPercent = "percent"
	DiscountFixed   = "fixed"
)

// Coupon is a discount code.
type Coupon struct {
	ID           string    `json:"_id"`
	Code         string    `json:"code"`
	DiscountType string    `json:"discountType"`
	Amount       float64   `json:"amount"`
	UsageLimit   int       `json:"usageLimit,omitempty"`
	UsedCount    int       `json:"usedCount"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Products     []string  `json:"products"`
	ProductMode  string    `json:"productMode"`
	Users        []string  `json:"users"`
	UserMode     string    `json:"userMode"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CouponInput is the body of POST /coupons. ProductMode and UserMode are
// "include" or "except"; an empty include list means "all".
type CouponInput struct {
	Code         string    `json:"code" validate:"required,min=3,max=32,couponcode"`
	DiscountType string    `json:"discountType" validate:"required,oneof=percent fixed"`
	Amount       float64   `json:"amount" validate:"gt=0"`
	UsageLimit   int       `json:"usageLimit,omitempty" validate:"gte=0"`
	ExpiresAt    time.Time `json:"expiresAt" validate:"required"`
	Products     []string  `json:"products"`
	ProductMode  string    `json:"productMode" validate:"oneof=include except"`
	Users        []string  `json:"users"`
	UserMode     string    `json:"userMode" validate:"oneof=include except"`
}

// Transaction is a completed or attempted payment.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	ProductName string    `json:"productName"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	CouponCode  string    `json:"couponCode,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Program is a course program run by a coach as a series of sessions.
type Program struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	CoachID   string    `json:"coachId"`
	CoachName string    `json:"coachName"`
	Sessions  []Session `json:"sessions"`
}

// Session is one scheduled meeting of a program.
type Session struct {
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}
