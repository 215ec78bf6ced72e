// Package fixtures serves an in-memory copy of the platform API for local
// development and tests.
package fixtures

import (
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ruminaider/coach-admin/internal/api"
)

// Store holds the fixture records. It is safe for concurrent use.
type Store struct {
	mu           sync.RWMutex
	coaches      []api.Coach
	products     []api.Product
	users        []api.User
	coupons      []api.Coupon
	transactions []api.Transaction
	programs     []api.Program
	hits         map[string]int
}

// NewStore returns a store seeded with reproducible demo data.
func NewStore() *Store {
	coaches := seedCoaches()
	products := seedProducts()
	users := seedUsers()
	return &Store{
		coaches:      coaches,
		products:     products,
		users:        users,
		coupons:      seedCoupons(),
		transactions: seedTransactions(users, products),
		programs:     seedPrograms(coaches),
		hits:         make(map[string]int),
	}
}

// Hits returns how many requests were served for the raw request URI
// (path plus query), e.g. "/coaches?limit=10&page=1&q=ali".
func (s *Store) Hits(requestURI string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits[requestURI]
}

// TotalHits returns the number of requests served for a resource path.
func (s *Store) TotalHits(resource string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	prefix := "/" + resource
	for uri, count := range s.hits {
		if uri == prefix || strings.HasPrefix(uri, prefix+"?") {
			n += count
		}
	}
	return n
}

// Options configures NewApp.
type Options struct {
	// Latency delays every response.
	Latency time.Duration
	Logger  *zap.Logger
	// Now anchors coupon expiry validation. Defaults to time.Now.
	Now func() time.Time
}

type server struct {
	store *Store
	opts  Options
	log   *zap.Logger
}

// NewApp builds the fiber app serving store.
func NewApp(store *Store, opts Options) *fiber.App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	srv := &server{store: store, opts: opts, log: log.Named("fixtures")}

	app := fiber.New(fiber.Config{
		AppName:               "coach-admin fixtures",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(srv.track)
	app.Get("/:resource", srv.handleList)
	app.Post("/"+api.ResourceCoupons, srv.handleCreateCoupon)
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"message": err.Error()})
}

func (s *server) track(c *fiber.Ctx) error {
	uri := string(c.Request().URI().RequestURI())
	s.store.mu.Lock()
	s.store.hits[uri]++
	s.store.mu.Unlock()

	if s.opts.Latency > 0 {
		time.Sleep(s.opts.Latency)
	}
	err := c.Next()
	s.log.Debug("served", zap.String("method", c.Method()), zap.String("uri", uri), zap.Int("status", c.Response().StatusCode()))
	return err
}

func (s *server) handleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 || limit < 1 {
		return fiber.NewError(fiber.StatusBadRequest, "page and limit must be positive")
	}
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	switch c.Params("resource") {
	case api.ResourceCoaches:
		return c.JSON(paginate(s.store.coaches, page, limit, func(v api.Coach) bool {
			return matches(q, v.Name, v.Email, v.Expertise)
		}))
	case api.ResourceProducts:
		return c.JSON(paginate(s.store.products, page, limit, func(v api.Product) bool {
			return matches(q, v.Name, v.Kind)
		}))
	case api.ResourceUsers:
		return c.JSON(paginate(s.store.users, page, limit, func(v api.User) bool {
			return matches(q, v.FullName(), v.Mobile)
		}))
	case api.ResourceCoupons:
		return c.JSON(paginate(s.store.coupons, page, limit, func(v api.Coupon) bool {
			return matches(q, v.Code)
		}))
	case api.ResourceTransactions:
		return c.JSON(paginate(s.store.transactions, page, limit, func(v api.Transaction) bool {
			return matches(q, v.UserName, v.ProductName, v.Status, v.CouponCode)
		}))
	case api.ResourcePrograms:
		return c.JSON(paginate(s.store.programs, page, limit, func(v api.Program) bool {
			return matches(q, v.Title, v.CoachName)
		}))
	}
	return fiber.NewError(fiber.StatusNotFound, "unknown resource")
}

func (s *server) handleCreateCoupon(c *fiber.Ctx) error {
	var in api.CouponInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid coupon body")
	}
	if err := api.ValidateCouponInput(in, s.opts.Now()); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for _, existing := range s.store.coupons {
		if strings.EqualFold(existing.Code, in.Code) {
			return fiber.NewError(fiber.StatusConflict, "coupon code already exists")
		}
	}
	coupon := api.Coupon{
		ID:           uuid.NewString(),
		Code:         strings.ToUpper(in.Code),
		DiscountType: in.DiscountType,
		Amount:       in.Amount,
		UsageLimit:   in.UsageLimit,
		ExpiresAt:    in.ExpiresAt,
		Products:     in.Products,
		ProductMode:  in.ProductMode,
		Users:        in.Users,
		UserMode:     in.UserMode,
		CreatedAt:    s.opts.Now().UTC(),
	}
	s.store.coupons = append(s.store.coupons, coupon)
	s.log.Info("coupon created", zap.String("id", coupon.ID), zap.String("code", coupon.Code))
	return c.Status(fiber.StatusCreated).JSON(coupon)
}

func matches(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func paginate[E any](items []E, page, limit int, keep func(E) bool) api.Page[E] {
	filtered := make([]E, 0, len(items))
	for _, it := range items {
		if keep(it) {
			filtered = append(filtered, it)
		}
	}
	totalPages := int(math.Ceil(float64(len(filtered)) / float64(limit)))
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * limit
	if start >= len(filtered) {
		return api.Page[E]{Results: []E{}, TotalPages: totalPages}
	}
	end := min(start+limit, len(filtered))
	return api.Page[E]{Results: filtered[start:end], TotalPages: totalPages}
}
