package api

import (
	"context"
	"errors"
	"sort"
	"sync"

	"bike_market/internal/domain"
	"bike_market/internal/gateway"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("store unavailable")

type memUsers struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	inserts int
}

func (m *memUsers) add(email string, role domain.Role) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &domain.User{ID: primitive.NewObjectID(), Email: email, Type: role}
	m.users[email] = u
	return u
}

func (m *memUsers) byID(id primitive.ObjectID) *domain.User {
	for _, u := range m.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Register(_ context.Context, user *domain.User) (domain.RegisterResult, primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return domain.RegisterExisted, primitive.NilObjectID, nil
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	m.users[user.Email] = &cp
	m.inserts++
	return domain.RegisterCreated, user.ID, nil
}

func (m *memUsers) ListByRole(_ context.Context, role domain.Role, page, pageSize int) ([]domain.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []domain.User{}
	for _, u := range m.users {
		if u.Type == role {
			all = append(all, *u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	start := min((page-1)*pageSize, len(all))
	end := min(start+pageSize, len(all))
	return all[start:end], int64(len(all)), nil
}

func (m *memUsers) DeleteBuyer(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.byID(id)
	if u == nil || u.Type != domain.RoleBuyer {
		return domain.ErrNotFound
	}
	delete(m.users, u.Email)
	return nil
}

func (m *memUsers) VerifySeller(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.byID(id)
	if u == nil || u.Type != domain.RoleSeller {
		return domain.ErrNotFound
	}
	u.Verify = true
	return nil
}

func (m *memUsers) PromoteAdmin(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.byID(id)
	if u == nil {
		return domain.ErrNotFound
	}
	u.Type = domain.RoleAdmin
	return nil
}

type memBikes struct {
	mu    sync.Mutex
	bikes map[primitive.ObjectID]*domain.Bike
	reads int
}

func (m *memBikes) list(keep func(*domain.Bike) bool) []domain.Bike {
	out := []domain.Bike{}
	for _, b := range m.bikes {
		if keep(b) {
			out = append(out, *b)
		}
	}
	return out
}

func (m *memBikes) ListByCategory(_ context.Context, category string) ([]domain.Bike, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	return m.list(func(b *domain.Bike) bool { return b.Category == category }), nil
}

func (m *memBikes) ListBySeller(_ context.Context, email string) ([]domain.Bike, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(b *domain.Bike) bool { return b.Email == email }), nil
}

func (m *memBikes) Get(_ context.Context, id primitive.ObjectID) (*domain.Bike, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bikes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memBikes) Create(_ context.Context, bike *domain.Bike) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bike.ID = primitive.NewObjectID()
	bike.Sold = false
	// Store the encoded document so listings go through the same codec as Mongo
	raw, err := bson.Marshal(bike)
	if err != nil {
		return primitive.NilObjectID, err
	}
	var cp domain.Bike
	if err := bson.Unmarshal(raw, &cp); err != nil {
		return primitive.NilObjectID, err
	}
	m.bikes[bike.ID] = &cp
	return bike.ID, nil
}

func (m *memBikes) DeleteOwned(_ context.Context, id primitive.ObjectID, email string) (*domain.Bike, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bikes[id]
	if !ok || b.Email != email {
		return nil, domain.ErrNotFound
	}
	delete(m.bikes, id)
	return b, nil
}

func (m *memBikes) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bikes[id]; !ok {
		return 0, nil
	}
	delete(m.bikes, id)
	return 1, nil
}

type memCatalog struct {
	categories []domain.Category
	blogs      []domain.Blog
	reads      int
	err        error
}

func (m *memCatalog) ListCategories(context.Context) ([]domain.Category, error) {
	m.reads++
	return m.categories, m.err
}

func (m *memCatalog) ListCategoryNames(context.Context) ([]string, error) {
	m.reads++
	names := []string{}
	for _, c := range m.categories {
		names = append(names, c.Name)
	}
	return names, m.err
}

func (m *memCatalog) ListBlogs(context.Context) ([]domain.Blog, error) {
	return m.blogs, m.err
}

type memBookings struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*domain.Booking
}

func (m *memBookings) Create(_ context.Context, b *domain.Booking) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = primitive.NewObjectID()
	b.Paid = false
	cp := *b
	m.bookings[b.ID] = &cp
	return b.ID, nil
}

func (m *memBookings) ListByEmail(_ context.Context, email string) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Booking{}
	for _, b := range m.bookings {
		if b.Email == email {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookings) Get(_ context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memBookings) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.bookings, id)
	return nil
}

// memPayments implements the recorder's store over the booking and bike fakes
type memPayments struct {
	bookings *memBookings
	bikes    *memBikes
	rows     map[primitive.ObjectID]domain.Payment
}

func (m *memPayments) InsertPayment(_ context.Context, p *domain.Payment) (primitive.ObjectID, error) {
	for _, row := range m.rows {
		if row.BookingID == p.BookingID {
			return primitive.NilObjectID, domain.ErrConflict
		}
	}
	p.ID = primitive.NewObjectID()
	m.rows[p.ID] = *p
	return p.ID, nil
}

func (m *memPayments) DeletePayment(_ context.Context, id primitive.ObjectID) error {
	delete(m.rows, id)
	return nil
}

func (m *memPayments) MarkBookingPaid(_ context.Context, id, bikeID primitive.ObjectID, tx string) error {
	b, ok := m.bookings.bookings[id]
	if !ok {
		return domain.ErrNotFound
	}
	if b.BikeID != bikeID {
		return domain.ErrMismatch
	}
	if b.Paid {
		return domain.ErrConflict
	}
	b.Paid, b.TransactionID = true, tx
	return nil
}

func (m *memPayments) UnmarkBookingPaid(_ context.Context, id primitive.ObjectID) error {
	if b, ok := m.bookings.bookings[id]; ok {
		b.Paid, b.TransactionID = false, ""
	}
	return nil
}

func (m *memPayments) MarkBikeSold(_ context.Context, id primitive.ObjectID) error {
	b, ok := m.bikes.bikes[id]
	if !ok {
		return domain.ErrNotFound
	}
	if b.Sold {
		return domain.ErrConflict
	}
	b.Sold = true
	return nil
}

type memReports struct {
	reports map[primitive.ObjectID]*domain.Report
}

func (m *memReports) List(_ context.Context, page, pageSize int) ([]domain.Report, int64, error) {
	all := []domain.Report{}
	for _, r := range m.reports {
		all = append(all, *r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.Hex() < all[j].ID.Hex() })
	start := min((page-1)*pageSize, len(all))
	end := min(start+pageSize, len(all))
	return all[start:end], int64(len(all)), nil
}

func (m *memReports) Create(_ context.Context, r *domain.Report) (primitive.ObjectID, error) {
	r.ID = primitive.NewObjectID()
	cp := *r
	m.reports[r.ID] = &cp
	return r.ID, nil
}

func (m *memReports) Delete(_ context.Context, id primitive.ObjectID) (*domain.Report, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(m.reports, id)
	return r, nil
}

type memAds struct {
	ads map[primitive.ObjectID]*domain.Advertise
}

func (m *memAds) List(context.Context) ([]domain.Advertise, error) {
	out := []domain.Advertise{}
	for _, a := range m.ads {
		out = append(out, *a)
	}
	return out, nil
}

func (m *memAds) Create(_ context.Context, a *domain.Advertise) (primitive.ObjectID, error) {
	a.ID = primitive.NewObjectID()
	cp := *a
	m.ads[a.ID] = &cp
	return a.ID, nil
}

func (m *memAds) DeleteOwned(_ context.Context, id primitive.ObjectID, email string) error {
	a, ok := m.ads[id]
	if !ok || a.Email != email {
		return domain.ErrNotFound
	}
	delete(m.ads, id)
	return nil
}

type fakeGateway struct {
	amounts []int64
	keys    []string
	err     error
}

func (f *fakeGateway) CreateIntent(_ context.Context, amount int64, key string) (*gateway.Intent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.amounts = append(f.amounts, amount)
	f.keys = append(f.keys, key)
	return &gateway.Intent{ID: "pi_test", ClientSecret: "pi_test_secret", Amount: amount, Currency: "usd"}, nil
}
