package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/testivo/testimonial-system/internal/core/domain"
	"github.com/testivo/testimonial-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubAdminRepo struct {
	admins map[string]*domain.Admin // keyed by username
	seq    int
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Admin) (*domain.Admin, error) {
	if _, exists := r.admins[admin.Username]; exists {
		return nil, domain.ErrAdminExists
	}
	r.seq++
	clone := *admin
	clone.ID = fmt.Sprintf("admin_%d", r.seq)
	r.admins[clone.Username] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubAdminRepo) FindByUsername(_ context.Context, username string) (*domain.Admin, error) {
	a, ok := r.admins[username]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAdminRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, a := range r.admins {
		if a.Username == username || a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type stubProjectRepo struct {
	projects map[string]*domain.Project
	seq      int
	findErr  error // if set, FindByID returns this error
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Insert(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.seq++
	clone := *p
	clone.ID = fmt.Sprintf("proj_%d", r.seq)
	r.projects[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) List(_ context.Context, includeArchived bool) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.projects {
		if !includeArchived && p.Status == domain.ProjectArchived {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, id string, upd domain.ProjectUpdate, now time.Time) error {
	p, ok := r.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.ClientName != nil {
		p.ClientName = *upd.ClientName
	}
	if upd.ClientEmail != nil {
		p.ClientEmail = *upd.ClientEmail
	}
	if upd.ClientCompany != nil {
		p.ClientCompany = *upd.ClientCompany
	}
	if upd.ProjectURL != nil {
		p.ProjectURL = *upd.ProjectURL
	}
	if upd.ProjectImage != nil {
		p.ProjectImage = *upd.ProjectImage
	}
	if upd.Tags != nil {
		p.Tags = *upd.Tags
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	p.UpdatedAt = now
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepo) Count(_ context.Context, includeArchived bool) (int64, error) {
	var n int64
	for _, p := range r.projects {
		if !includeArchived && p.Status == domain.ProjectArchived {
			continue
		}
		n++
	}
	return n, nil
}

type stubTokenRepo struct {
	tokens           map[string]*domain.InviteToken // keyed by id
	seq              int
	markExpiredCalls int
	markUsedErr      error
	reactivateCalls  int
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: make(map[string]*domain.InviteToken)}
}

func (r *stubTokenRepo) Insert(_ context.Context, t *domain.InviteToken) (*domain.InviteToken, error) {
	r.seq++
	clone := *t
	clone.ID = fmt.Sprintf("tok_%d", r.seq)
	r.tokens[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubTokenRepo) FindByToken(_ context.Context, token string) (*domain.InviteToken, error) {
	for _, t := range r.tokens {
		if t.Token == token {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTokenNotFound
}

func (r *stubTokenRepo) List(_ context.Context, projectID string) ([]*domain.InviteToken, error) {
	var out []*domain.InviteToken
	for _, t := range r.tokens {
		if projectID != "" && t.ProjectID != projectID {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// MarkExpired mirrors the conditional Mongo write: only active tokens match.
func (r *stubTokenRepo) MarkExpired(_ context.Context, id string) error {
	r.markExpiredCalls++
	t, ok := r.tokens[id]
	if ok && t.Status == domain.TokenActive {
		t.Status = domain.TokenExpired
	}
	return nil
}

// MarkUsed mirrors the conditional Mongo write: only active tokens match.
func (r *stubTokenRepo) MarkUsed(_ context.Context, id string, usedAt time.Time) (bool, error) {
	if r.markUsedErr != nil {
		return false, r.markUsedErr
	}
	t, ok := r.tokens[id]
	if !ok || t.Status != domain.TokenActive {
		return false, nil
	}
	t.Status = domain.TokenUsed
	at := usedAt
	t.UsedAt = &at
	return true, nil
}

func (r *stubTokenRepo) Reactivate(_ context.Context, id string) error {
	r.reactivateCalls++
	if t, ok := r.tokens[id]; ok {
		t.Status = domain.TokenActive
		t.UsedAt = nil
	}
	return nil
}

func (r *stubTokenRepo) Revoke(_ context.Context, id string) error {
	t, ok := r.tokens[id]
	if !ok {
		return domain.ErrTokenNotFound
	}
	t.Status = domain.TokenRevoked
	return nil
}

func (r *stubTokenRepo) DeleteByProject(_ context.Context, projectID string) (int64, error) {
	var n int64
	for id, t := range r.tokens {
		if t.ProjectID == projectID {
			delete(r.tokens, id)
			n++
		}
	}
	return n, nil
}

func (r *stubTokenRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.tokens)), nil
}

func (r *stubTokenRepo) CountActive(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, t := range r.tokens {
		if t.Status == domain.TokenActive && t.ExpiresAt.After(now) {
			n++
		}
	}
	return n, nil
}

type stubTestimonialRepo struct {
	items     map[string]*domain.Testimonial
	seq       int
	insertErr error // if set, Insert returns this error
}

func newStubTestimonialRepo() *stubTestimonialRepo {
	return &stubTestimonialRepo{items: make(map[string]*domain.Testimonial)}
}

func (r *stubTestimonialRepo) Insert(_ context.Context, t *domain.Testimonial) (*domain.Testimonial, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.seq++
	clone := *t
	clone.ID = fmt.Sprintf("test_%d", r.seq)
	r.items[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubTestimonialRepo) FindByID(_ context.Context, id string) (*domain.Testimonial, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, domain.ErrTestimonialNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTestimonialRepo) matches(t *domain.Testimonial, f ports.ListTestimonialsFilter) bool {
	if f.ProjectID != "" && t.ProjectID != f.ProjectID {
		return false
	}
	if f.FeaturedOnly && !t.IsFeatured {
		return false
	}
	if f.PublishedOnly && !t.IsPublished {
		return false
	}
	return true
}

func (r *stubTestimonialRepo) List(_ context.Context, f ports.ListTestimonialsFilter) ([]*domain.Testimonial, error) {
	var out []*domain.Testimonial
	for _, t := range r.items {
		if !r.matches(t, f) {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && int64(len(out)) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *stubTestimonialRepo) Update(_ context.Context, id string, upd domain.TestimonialUpdate, now time.Time) error {
	t, ok := r.items[id]
	if !ok {
		return domain.ErrTestimonialNotFound
	}
	if upd.ClientName != nil {
		t.ClientName = *upd.ClientName
	}
	if upd.ClientRole != nil {
		t.ClientRole = *upd.ClientRole
	}
	if upd.ClientCompany != nil {
		t.ClientCompany = *upd.ClientCompany
	}
	if upd.ClientAvatar != nil {
		t.ClientAvatar = *upd.ClientAvatar
	}
	if upd.Rating != nil {
		t.Rating = *upd.Rating
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Content != nil {
		t.Content = *upd.Content
	}
	if upd.IsFeatured != nil {
		t.IsFeatured = *upd.IsFeatured
	}
	if upd.IsPublished != nil {
		t.IsPublished = *upd.IsPublished
	}
	t.UpdatedAt = now
	return nil
}

func (r *stubTestimonialRepo) SetFeatured(_ context.Context, id string, featured bool, now time.Time) error {
	t, ok := r.items[id]
	if !ok {
		return domain.ErrTestimonialNotFound
	}
	t.IsFeatured = featured
	t.UpdatedAt = now
	return nil
}

func (r *stubTestimonialRepo) SetPublished(_ context.Context, id string, published bool, now time.Time) error {
	t, ok := r.items[id]
	if !ok {
		return domain.ErrTestimonialNotFound
	}
	t.IsPublished = published
	t.UpdatedAt = now
	return nil
}

func (r *stubTestimonialRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrTestimonialNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubTestimonialRepo) DeleteByProject(_ context.Context, projectID string) (int64, error) {
	var n int64
	for id, t := range r.items {
		if t.ProjectID == projectID {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *stubTestimonialRepo) Count(_ context.Context, f ports.ListTestimonialsFilter) (int64, error) {
	var n int64
	for _, t := range r.items {
		if r.matches(t, f) {
			n++
		}
	}
	return n, nil
}

func (r *stubTestimonialRepo) AverageRating(_ context.Context, publishedOnly bool) (float64, bool, error) {
	var sum, n float64
	for _, t := range r.items {
		if publishedOnly && !t.IsPublished {
			continue
		}
		sum += float64(t.Rating)
		n++
	}
	if n == 0 {
		return 0, false, nil
	}
	return sum / n, true, nil
}

func (r *stubTestimonialRepo) RatingHistogram(_ context.Context) (map[int]int64, error) {
	out := map[int]int64{}
	for _, t := range r.items {
		if !t.IsPublished {
			continue
		}
		out[t.Rating]++
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Redemption guard stub
// ---------------------------------------------------------------------------

type stubGuard struct {
	deny     bool
	err      error
	held     map[string]bool
	acquired []string
	released []string
}

func newStubGuard() *stubGuard {
	return &stubGuard{held: make(map[string]bool)}
}

// Acquire mirrors the SETNX semantics: a claim persists until released.
func (g *stubGuard) Acquire(_ context.Context, tokenID string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	if g.deny || g.held[tokenID] {
		return false, nil
	}
	g.held[tokenID] = true
	g.acquired = append(g.acquired, tokenID)
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, tokenID string) error {
	if g.err != nil {
		return g.err
	}
	delete(g.held, tokenID)
	g.released = append(g.released, tokenID)
	return nil
}

// ---------------------------------------------------------------------------
// Seeding helpers
// ---------------------------------------------------------------------------

func seedProject(repo *stubProjectRepo, name string) *domain.Project {
	now := time.Now().UTC()
	p, _ := repo.Insert(context.Background(), &domain.Project{
		Name:       name,
		ClientName: "Client",
		Tags:       []string{},
		Status:     domain.ProjectActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	return p
}

func seedToken(repo *stubTokenRepo, projectID string, status domain.TokenStatus, expiresAt time.Time) *domain.InviteToken {
	t, _ := repo.Insert(context.Background(), &domain.InviteToken{
		Token:     fmt.Sprintf("raw-token-%d", repo.seq+1),
		ProjectID: projectID,
		Status:    status,
		CreatedAt: time.Now().UTC(),
		ExpiresAt: expiresAt,
	})
	return t
}

func seedTestimonial(repo *stubTestimonialRepo, projectID string, rating int, published, featured bool) *domain.Testimonial {
	t, _ := repo.Insert(context.Background(), &domain.Testimonial{
		ProjectID:   projectID,
		ClientName:  "Client",
		Rating:      rating,
		Title:       "Great work",
		Content:     "Everything was delivered on time and the quality was excellent.",
		IsFeatured:  featured,
		IsPublished: published,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	})
	return t
}
