package fixtures

import (
	"fmt"
	"time"

	"github.com/ruminaider/coach-admin/internal/api"
)

var coachNames = []string{
	"Sara Ahmadi", "Reza Karimi", "Mina Rahimi", "Ali Moradi", "Neda Hosseini",
	"Omid Jafari", "Leila Sadeghi", "Kian Bahrami", "Parisa Ebrahimi", "Hamed Nouri",
	"Yasmin Farahani", "Babak Tehrani",
}

var expertise = []string{"fitness", "nutrition", "career", "language", "mindfulness", "finance"}

var productNames = []string{
	"Foundations", "Advanced Track", "Weekend Bootcamp", "1:1 Mentoring", "Group Circle",
	"Masterclass", "Starter Pack", "Annual Pass",
}

var firstNames = []string{
	"Alireza", "Ali", "Maryam", "Zahra", "Hossein", "Fatemeh", "Mohammad", "Sara",
	"Amir", "Narges", "Mehdi", "Elham", "Saeed", "Shirin", "Arash", "Roya",
}

var lastNames = []string{"Rostami", "Kazemi", "Ghasemi", "Amini", "Mousavi"}

// seedBase anchors generated timestamps so fixture data is reproducible.
var seedBase = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

func seedCoaches() []api.Coach {
	out := make([]api.Coach, 0, len(coachNames))
	for i, name := range coachNames {
		out = append(out, api.Coach{
			ID:        fmt.Sprintf("c%02d", i+1),
			Name:      name,
			Email:     fmt.Sprintf("coach%02d@example.com", i+1),
			Expertise: expertise[i%len(expertise)],
		})
	}
	return out
}

func seedProducts() []api.Product {
	var out []api.Product
	for i, topic := range expertise {
		for j, name := range productNames {
			if (i+j)%3 != 0 {
				continue
			}
			out = append(out, api.Product{
				ID:    fmt.Sprintf("p%03d", len(out)+1),
				Name:  fmt.Sprintf("%s %s", capitalize(topic), name),
				Price: float64(490_000 + 150_000*j + 10_000*i),
				Kind:  kindFor(j),
			})
		}
	}
	return out
}

func kindFor(i int) string {
	switch i % 3 {
	case 0:
		return "course"
	case 1:
		return "program"
	default:
		return "session"
	}
}

func seedUsers() []api.User {
	var out []api.User
	for i, first := range firstNames {
		for j, last := range lastNames {
			if (i+j)%2 != 0 {
				continue
			}
			n := len(out) + 1
			out = append(out, api.User{
				ID:        fmt.Sprintf("u%03d", n),
				FirstName: first,
				LastName:  last,
				Mobile:    fmt.Sprintf("0912%07d", 1000000+n*7919%9000000),
			})
		}
	}
	return out
}

func seedCoupons() []api.Coupon {
	return []api.Coupon{
		{ID: "k001", Code: "WELCOME10", DiscountType: api.DiscountPercent, Amount: 10, ExpiresAt: seedBase.AddDate(1, 0, 0), ProductMode: "include", UserMode: "include", CreatedAt: seedBase},
		{ID: "k002", Code: "SPRING-50K", DiscountType: api.DiscountFixed, Amount: 50_000, UsageLimit: 100, UsedCount: 12, ExpiresAt: seedBase.AddDate(0, 4, 0), Products: []string{"p001", "p002"}, ProductMode: "include", UserMode: "include", CreatedAt: seedBase.AddDate(0, 0, 3)},
		{ID: "k003", Code: "VIP25", DiscountType: api.DiscountPercent, Amount: 25, UsageLimit: 20, UsedCount: 4, ExpiresAt: seedBase.AddDate(0, 6, 0), ProductMode: "include", Users: []string{"u001", "u003"}, UserMode: "include", CreatedAt: seedBase.AddDate(0, 0, 9)},
		{ID: "k004", Code: "NOBOOT", DiscountType: api.DiscountPercent, Amount: 15, ExpiresAt: seedBase.AddDate(0, 2, 0), Products: []string{"p003"}, ProductMode: "except", UserMode: "include", CreatedAt: seedBase.AddDate(0, 0, 14)},
	}
}

func seedTransactions(users []api.User, products []api.Product) []api.Transaction {
	statuses := []string{"paid", "paid", "paid", "refunded", "failed"}
	var out []api.Transaction
	for i := 0; i < 36; i++ {
		u := users[(i*5)%len(users)]
		p := products[(i*3)%len(products)]
		tx := api.Transaction{
			ID:          fmt.Sprintf("t%04d", i+1),
			UserID:      u.ID,
			UserName:    u.FullName(),
			ProductName: p.Name,
			Amount:      p.Price,
			Status:      statuses[i%len(statuses)],
			CreatedAt:   seedBase.Add(time.Duration(i) * 7 * time.Hour),
		}
		if i%6 == 0 {
			tx.CouponCode = "WELCOME10"
			tx.Amount = p.Price * 0.9
		}
		out = append(out, tx)
	}
	return out
}

func seedPrograms(coaches []api.Coach) []api.Program {
	var out []api.Program
	for i := 0; i < 10; i++ {
		c := coaches[(i*2)%len(coaches)]
		start := seedBase.AddDate(0, 0, 7*i).Add(time.Duration(i%4) * time.Hour)
		prog := api.Program{
			ID:        fmt.Sprintf("g%02d", i+1),
			Title:     fmt.Sprintf("%s cohort %d", capitalize(c.Expertise), i+1),
			CoachID:   c.ID,
			CoachName: c.Name,
		}
		for s := 0; s < 3+i%3; s++ {
			at := start.AddDate(0, 0, 2*s)
			prog.Sessions = append(prog.Sessions, api.Session{StartsAt: at, EndsAt: at.Add(90 * time.Minute)})
		}
		out = append(out, prog)
	}
	out = append(out, api.Program{
		ID:    "g99",
		Title: "Open office hours",
		Sessions: []api.Session{
			{StartsAt: seedBase.AddDate(0, 1, 0), EndsAt: seedBase.AddDate(0, 1, 0).Add(time.Hour)},
		},
	})
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
