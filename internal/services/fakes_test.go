package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillgraph-backend/internal/realtime"
)

func asStudent(id string) context.Context {
	return ctxutil.WithIdentity(context.Background(), &ctxutil.Identity{UserID: id, Role: "student"})
}

func asFaculty(id string) context.Context {
	return ctxutil.WithIdentity(context.Background(), &ctxutil.Identity{UserID: id, Role: "faculty"})
}

func ptrInt(v int) *int              { return &v }
func ptrFloat(v float64) *float64    { return &v }
func ptrTime(v time.Time) *time.Time { return &v }

type fakePeople struct {
	byID     map[string]*domain.Person
	order    []string
	err      error
	embedded map[string][]float32
}

func newFakePeople(people ...*domain.Person) *fakePeople {
	f := &fakePeople{byID: map[string]*domain.Person{}, embedded: map[string][]float32{}}
	for _, p := range people {
		f.byID[p.UserID] = p
		f.order = append(f.order, p.UserID)
	}
	return f
}

func (f *fakePeople) GetPerson(_ context.Context, userID string) (*domain.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.byID[userID]
	if !ok {
		return nil, domainagg.NotFound("graph.get_person", "person not found")
	}
	return p, nil
}

func (f *fakePeople) ListByRole(_ context.Context, role domain.Role) ([]*domain.Person, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Person
	for _, id := range f.order {
		if p := f.byID[id]; p.Role == role {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePeople) ListEmbedded(ctx context.Context, role domain.Role) ([]*domain.Person, error) {
	all, err := f.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	var out []*domain.Person
	for _, p := range all {
		if len(p.Embedding) > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePeople) SetEmbedding(_ context.Context, userID string, vec []float32) error {
	f.embedded[userID] = vec
	return nil
}

type fakeOpenings struct {
	byID       map[string]*domain.Opening
	order      []string
	applied    map[string]map[string]struct{} // student -> openings
	applicants map[string]map[string]struct{} // opening -> students
}

func newFakeOpenings(openings ...*domain.Opening) *fakeOpenings {
	f := &fakeOpenings{
		byID:       map[string]*domain.Opening{},
		applied:    map[string]map[string]struct{}{},
		applicants: map[string]map[string]struct{}{},
	}
	for _, o := range openings {
		f.byID[o.ID] = o
		f.order = append(f.order, o.ID)
	}
	return f
}

func (f *fakeOpenings) markApplied(studentID, openingID string) {
	if f.applied[studentID] == nil {
		f.applied[studentID] = map[string]struct{}{}
	}
	f.applied[studentID][openingID] = struct{}{}
	if f.applicants[openingID] == nil {
		f.applicants[openingID] = map[string]struct{}{}
	}
	f.applicants[openingID][studentID] = struct{}{}
}

func (f *fakeOpenings) GetOpening(_ context.Context, id string) (*domain.Opening, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, domainagg.NotFound("graph.get_opening", "opening not found")
	}
	return o, nil
}

func (f *fakeOpenings) ListActive(context.Context) ([]*domain.Opening, error) {
	var out []*domain.Opening
	for _, id := range f.order {
		if o := f.byID[id]; o.Status == domain.OpeningActive {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOpenings) AppliedOpeningIDs(_ context.Context, studentID string) (map[string]struct{}, error) {
	out := map[string]struct{}{}
	for k := range f.applied[studentID] {
		out[k] = struct{}{}
	}
	return out, nil
}

func (f *fakeOpenings) ApplicantIDs(_ context.Context, openingID string) (map[string]struct{}, error) {
	out := map[string]struct{}{}
	for k := range f.applicants[openingID] {
		out[k] = struct{}{}
	}
	return out, nil
}

type fakeEmbedder struct {
	vecs map[string][]float32
	err  error
}

func (f *fakeEmbedder) Embed(_ context.Context, inputs []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(inputs))
	for i, in := range inputs {
		out[i] = f.vecs[in]
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int { return 3 }
func (f *fakeEmbedder) Model() string   { return "fake" }

type fakeAggregate struct {
	applyIn   domainagg.ApplyInput
	applyRes  domainagg.ApplyResult
	updateIn  domainagg.UpdateStatusInput
	updateRes domainagg.UpdateStatusResult
	withdraw  domainagg.WithdrawResult
	err       error
	calls     int
}

func (f *fakeAggregate) Contract() domainagg.Contract { return domainagg.ApplicationAggregateContract }

func (f *fakeAggregate) Apply(_ context.Context, in domainagg.ApplyInput) (domainagg.ApplyResult, error) {
	f.calls++
	f.applyIn = in
	return f.applyRes, f.err
}

func (f *fakeAggregate) UpdateStatus(_ context.Context, in domainagg.UpdateStatusInput) (domainagg.UpdateStatusResult, error) {
	f.calls++
	f.updateIn = in
	return f.updateRes, f.err
}

func (f *fakeAggregate) Withdraw(_ context.Context, in domainagg.WithdrawInput) (domainagg.WithdrawResult, error) {
	f.calls++
	return f.withdraw, f.err
}

type fakeApplications struct {
	student map[string][]domain.ApplicationView
	faculty map[string][]domain.ApplicationView
}

func (f *fakeApplications) ListForStudent(_ context.Context, id string) ([]domain.ApplicationView, error) {
	return f.student[id], nil
}

func (f *fakeApplications) ListForFaculty(_ context.Context, id string) ([]domain.ApplicationView, error) {
	return f.faculty[id], nil
}

func (f *fakeApplications) GetView(context.Context, string) (*domain.ApplicationView, error) {
	return nil, domainagg.NotFound("graph.get_application", "application not found")
}

// spyNotifications records CreateNotification calls synchronously.
type spyNotifications struct {
	mu   sync.Mutex
	sent []NotificationInput
}

func (s *spyNotifications) CreateNotification(_ context.Context, in NotificationInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, in)
}

func (s *spyNotifications) List(context.Context, string, int) ([]*domain.Notification, error) {
	return nil, nil
}
func (s *spyNotifications) MarkRead(context.Context, string, string) error { return nil }
func (s *spyNotifications) MarkAllRead(context.Context, string) (int64, error) {
	return 0, nil
}
func (s *spyNotifications) CountUnread(context.Context, string) (int64, error) { return 0, nil }
func (s *spyNotifications) Wait(context.Context) error                          { return nil }

type memNotificationRepo struct {
	mu    sync.Mutex
	items []*domain.Notification
	err   error
}

func (r *memNotificationRepo) Create(_ context.Context, _ *gorm.DB, n *domain.Notification) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.items = append(r.items, n)
	return n, nil
}

func (r *memNotificationRepo) ListForRecipient(_ context.Context, _ *gorm.DB, recipientID string, limit int) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Notification
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		if r.items[i].RecipientID == recipientID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *memNotificationRepo) MarkRead(_ context.Context, _ *gorm.DB, id uuid.UUID, recipientID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ID == id && n.RecipientID == recipientID {
			n.IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (r *memNotificationRepo) MarkAllRead(_ context.Context, _ *gorm.DB, recipientID string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, it := range r.items {
		if it.RecipientID == recipientID && !it.IsRead {
			it.IsRead = true
			n++
		}
	}
	return n, nil
}

func (r *memNotificationRepo) CountUnread(_ context.Context, _ *gorm.DB, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, it := range r.items {
		if it.RecipientID == recipientID && !it.IsRead {
			n++
		}
	}
	return n, nil
}

type recordingEmitter struct {
	mu   sync.Mutex
	msgs []realtime.SSEMessage
}

func (e *recordingEmitter) Emit(_ context.Context, msg realtime.SSEMessage) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.msgs = append(e.msgs, msg)
}
