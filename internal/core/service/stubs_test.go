package service

import (
	"context"
	"fmt"
	"time"

	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
)

// Well-formed object ids for seeding.
const (
	testArtistID = "64a1f0000000000000000a01"
	testUserID   = "64a1f0000000000000000b02"
	testOtherID  = "64a1f0000000000000000c03"
)

const (
	testTitle   = "Watercolor portrait"
	testDetails = "A full-body character illustration in watercolor style, A4 print resolution."
	testComment = "Beautiful work, exactly what I asked for."
)

func newTestArtist(id string) *domain.User {
	return &domain.User{
		ID:                   id,
		Role:                 domain.RoleArtist,
		Username:             "inkwell",
		Email:                "inkwell@example.com",
		RequestedCommissions: []string{},
		ReviewsGiven:         []string{},
		ArtistProfile: &domain.ArtistProfile{
			Bio:                "watercolor and ink",
			Portfolio:          []string{"https://example.com/p1"},
			PricingInfo:        map[string]float64{"portrait": 40},
			Tags:               []string{"watercolor"},
			Availability:       true,
			TOS:                "no refunds after sketch approval",
			CreatedCommissions: []string{},
			ReviewsReceived:    []string{},
		},
	}
}

func newTestUser(id string) *domain.User {
	return &domain.User{
		ID:                   id,
		Role:                 domain.RoleUser,
		Username:             "collector",
		Email:                "collector@example.com",
		RequestedCommissions: []string{},
		ReviewsGiven:         []string{},
	}
}

// --- user repository stub ---

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int

	failAppendCreated   bool
	failAppendRequested bool
	failApplyReview     bool
	failAppendGiven     bool
}

func newStubUserRepo(seed ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range seed {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) nextID() string {
	r.seq++
	return fmt.Sprintf("%024x", r.seq)
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	u.ID = r.nextID()
	r.users[u.ID] = u
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindArtistByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || !u.IsArtist() {
		return nil, domain.ErrArtistNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) AppendRequestedCommission(_ context.Context, userID, commissionID string) error {
	if r.failAppendRequested {
		return &domain.WriteConflictError{Entity: "user", Op: "add commission"}
	}
	u, ok := r.users[userID]
	if !ok {
		return &domain.WriteConflictError{Entity: "user", Op: "add commission"}
	}
	u.RequestedCommissions = append(u.RequestedCommissions, commissionID)
	return nil
}

func (r *stubUserRepo) AppendCreatedCommission(_ context.Context, artistID, commissionID string) error {
	if r.failAppendCreated {
		return &domain.WriteConflictError{Entity: "artist", Op: "add commission"}
	}
	u, ok := r.users[artistID]
	if !ok || u.ArtistProfile == nil {
		return &domain.WriteConflictError{Entity: "artist", Op: "add commission"}
	}
	u.ArtistProfile.CreatedCommissions = append(u.ArtistProfile.CreatedCommissions, commissionID)
	return nil
}

func (r *stubUserRepo) AppendReviewGiven(_ context.Context, userID, reviewID string) error {
	if r.failAppendGiven {
		return &domain.WriteConflictError{Entity: "user", Op: "add review"}
	}
	u, ok := r.users[userID]
	if !ok {
		return &domain.WriteConflictError{Entity: "user", Op: "add review"}
	}
	u.ReviewsGiven = append(u.ReviewsGiven, reviewID)
	return nil
}

func (r *stubUserRepo) ApplyReviewToArtist(_ context.Context, artistID, reviewID string, rating float64) error {
	if r.failApplyReview {
		return &domain.WriteConflictError{Entity: "artist", Op: "add review"}
	}
	u, ok := r.users[artistID]
	if !ok || u.ArtistProfile == nil {
		return &domain.WriteConflictError{Entity: "artist", Op: "add review"}
	}
	u.ArtistProfile.ReviewsReceived = append(u.ArtistProfile.ReviewsReceived, reviewID)
	u.ArtistProfile.Rating = rating
	return nil
}

func (r *stubUserRepo) UpdateArtistProfile(_ context.Context, artistID string, upd ports.ArtistProfileUpdate) error {
	u, ok := r.users[artistID]
	if !ok || u.ArtistProfile == nil {
		return domain.ErrArtistNotFound
	}
	p := u.ArtistProfile
	if upd.Bio != nil {
		p.Bio = *upd.Bio
	}
	if upd.Portfolio != nil {
		p.Portfolio = upd.Portfolio
	}
	if upd.PricingInfo != nil {
		p.PricingInfo = upd.PricingInfo
	}
	if upd.Tags != nil {
		p.Tags = upd.Tags
	}
	if upd.Availability != nil {
		p.Availability = *upd.Availability
	}
	if upd.TOS != nil {
		p.TOS = *upd.TOS
	}
	return nil
}

func (r *stubUserRepo) SetArtistCardID(_ context.Context, artistID, cardID string) error {
	u, ok := r.users[artistID]
	if !ok || u.ArtistProfile == nil {
		return &domain.WriteConflictError{Entity: "artist", Op: "set card"}
	}
	u.ArtistProfile.CardID = cardID
	return nil
}

func (r *stubUserRepo) SetRole(_ context.Context, userID, role string, profile *domain.ArtistProfile) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	u.ArtistProfile = profile
	return nil
}

func (r *stubUserRepo) ListArtistIDs(_ context.Context) ([]string, error) {
	var ids []string
	for id, u := range r.users {
		if u.IsArtist() {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// --- commission repository stub ---

type stubCommissionRepo struct {
	commissions map[string]*domain.Commission
	seq         int
	createErr   error
}

func newStubCommissionRepo() *stubCommissionRepo {
	return &stubCommissionRepo{commissions: make(map[string]*domain.Commission)}
}

func (r *stubCommissionRepo) seed(c *domain.Commission) *domain.Commission {
	r.seq++
	c.ID = fmt.Sprintf("c%023x", r.seq)
	r.commissions[c.ID] = c
	return c
}

func (r *stubCommissionRepo) Create(_ context.Context, c *domain.Commission) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.seq++
	c.ID = fmt.Sprintf("c%023x", r.seq)
	r.commissions[c.ID] = c
	return c.ID, nil
}

func (r *stubCommissionRepo) FindByID(_ context.Context, id string) (*domain.Commission, error) {
	c, ok := r.commissions[id]
	if !ok {
		return nil, domain.ErrCommissionNotFound
	}
	return c, nil
}

func (r *stubCommissionRepo) UpdateStatus(_ context.Context, id string, status domain.CommissionStatus) error {
	c, ok := r.commissions[id]
	if !ok {
		return &domain.WriteConflictError{Entity: "commission", Op: "set status"}
	}
	c.Status = status
	return nil
}

func (r *stubCommissionRepo) AppendProgressUpdate(_ context.Context, id string, upd domain.ProgressUpdate) error {
	c, ok := r.commissions[id]
	if !ok {
		return &domain.WriteConflictError{Entity: "commission", Op: "add progress update"}
	}
	c.ProgressUpdates = append(c.ProgressUpdates, upd)
	return nil
}

func (r *stubCommissionRepo) ListByArtist(_ context.Context, artistID string) ([]*domain.Commission, error) {
	var out []*domain.Commission
	for _, c := range r.commissions {
		if c.ArtistID == artistID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubCommissionRepo) ListByUser(_ context.Context, userID string) ([]*domain.Commission, error) {
	var out []*domain.Commission
	for _, c := range r.commissions {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// --- review repository stub ---

type stubReviewRepo struct {
	reviews []*domain.Review
	seq     int
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{}
}

func (r *stubReviewRepo) seed(rev *domain.Review) *domain.Review {
	r.seq++
	rev.ID = fmt.Sprintf("e%023x", r.seq)
	r.reviews = append(r.reviews, rev)
	return rev
}

func (r *stubReviewRepo) Create(_ context.Context, rev *domain.Review) (string, error) {
	r.seq++
	rev.ID = fmt.Sprintf("e%023x", r.seq)
	r.reviews = append(r.reviews, rev)
	return rev.ID, nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	for _, rev := range r.reviews {
		if rev.ID == id {
			return rev, nil
		}
	}
	return nil, domain.ErrReviewNotFound
}

func (r *stubReviewRepo) CountByCommissionAndUser(_ context.Context, commissionID, userID string) (int64, error) {
	var n int64
	for _, rev := range r.reviews {
		if rev.CommissionID == commissionID && rev.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *stubReviewRepo) ListByArtist(_ context.Context, artistID string) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, rev := range r.reviews {
		if rev.ArtistID == artistID {
			out = append(out, rev)
		}
	}
	return out, nil
}

// --- card repository stub ---

type stubCardRepo struct {
	cards map[string]*domain.Card
	seq   int
}

func newStubCardRepo() *stubCardRepo {
	return &stubCardRepo{cards: make(map[string]*domain.Card)}
}

func (r *stubCardRepo) Create(_ context.Context, c *domain.Card) (string, error) {
	r.seq++
	c.ID = fmt.Sprintf("d%023x", r.seq)
	r.cards[c.ID] = c
	return c.ID, nil
}

func (r *stubCardRepo) FindByID(_ context.Context, id string) (*domain.Card, error) {
	c, ok := r.cards[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	return c, nil
}

func (r *stubCardRepo) FindByOwner(_ context.Context, ownerID string) (*domain.Card, error) {
	for _, c := range r.cards {
		if c.OwnerID == ownerID {
			return c, nil
		}
	}
	return nil, domain.ErrCardNotFound
}

func (r *stubCardRepo) UpdateSnapshot(_ context.Context, cardID string, snap domain.ProfileSnapshot) error {
	c, ok := r.cards[cardID]
	if !ok {
		return &domain.WriteConflictError{Entity: "card", Op: "sync snapshot"}
	}
	c.Snapshot = &snap
	return nil
}

func (r *stubCardRepo) List(_ context.Context, filter ports.CardFilter) ([]*domain.Card, error) {
	var out []*domain.Card
	for _, c := range r.cards {
		if filter.RecommendedOnly && !c.IsUserRecommended {
			continue
		}
		if filter.AvailableOnly && (c.Snapshot == nil || !c.Snapshot.Availability) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// --- message repository stub ---

type stubMessageRepo struct {
	messages []*domain.Message
	seq      int
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{}
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) (*domain.Message, error) {
	r.seq++
	m.ID = fmt.Sprintf("f%023x", r.seq)
	r.messages = append(r.messages, m)
	return m, nil
}

func (r *stubMessageRepo) ListConversation(_ context.Context, userA, userB string, limit int) ([]*domain.Message, error) {
	var out []*domain.Message
	for _, m := range r.messages {
		if (m.SenderID == userA && m.RecipientID == userB) || (m.SenderID == userB && m.RecipientID == userA) {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- card service stub (for services that only trigger syncs) ---

type stubCardService struct {
	syncCalls []string
	syncErr   error
}

func (s *stubCardService) CreateForArtist(_ context.Context, artist *domain.User) (*domain.Card, error) {
	return &domain.Card{ID: "d" + artist.ID[1:], OwnerID: artist.ID}, nil
}

func (s *stubCardService) Sync(_ context.Context, artistID string) error {
	s.syncCalls = append(s.syncCalls, artistID)
	return s.syncErr
}

func (s *stubCardService) Get(_ context.Context, _ string) (*domain.Card, error) {
	return nil, domain.ErrCardNotFound
}

func (s *stubCardService) List(_ context.Context, _ ports.CardFilter) ([]*domain.Card, error) {
	return nil, nil
}

// --- rate limiter / counter stubs ---

type stubLimiter struct {
	err    error
	checks int
}

func (l *stubLimiter) Check(_ context.Context, _ string) error {
	l.checks++
	return l.err
}

type stubCounter struct {
	count   int64
	resetAt time.Time
	err     error
}

func (c *stubCounter) Increment(_ context.Context, _ string, window time.Duration) (int64, time.Time, error) {
	if c.err != nil {
		return 0, time.Time{}, c.err
	}
	c.count++
	if c.resetAt.IsZero() {
		c.resetAt = time.Now().Add(window)
	}
	return c.count, c.resetAt, nil
}
