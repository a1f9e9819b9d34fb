package services

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"sync"

	"conventions/internal/domain"
)

// fakeStore is an in-memory implementation of every repository the services
// use. Fail holds errors to return, keyed by "<entity>.<method>".
type fakeStore struct {
	mu     sync.Mutex
	nextID int

	venues      map[string]domain.Venue
	conventions map[string]domain.Convention
	users       map[string]domain.User
	talks       map[string]domain.Talk
	convRegs    map[[2]string]bool
	talkRegs    map[[2]string]bool

	fail  map[string]error
	calls map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		venues:      make(map[string]domain.Venue),
		conventions: make(map[string]domain.Convention),
		users:       make(map[string]domain.User),
		talks:       make(map[string]domain.Talk),
		convRegs:    make(map[[2]string]bool),
		talkRegs:    make(map[[2]string]bool),
		fail:        make(map[string]error),
		calls:       make(map[string]int),
	}
}

func (f *fakeStore) enter(op string) error {
	f.calls[op]++
	return f.fail[op]
}

func (f *fakeStore) id() string {
	f.nextID++
	return strconv.Itoa(f.nextID)
}

func (f *fakeStore) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func page[T any](m map[string]T, key func(T) string, keep func(T) bool, p domain.PaginationParams) []*T {
	items := make([]T, 0, len(m))
	for _, v := range m {
		if keep == nil || keep(v) {
			items = append(items, v)
		}
	}
	slices.SortFunc(items, func(a, b T) int {
		ai, _ := strconv.Atoi(key(a))
		bi, _ := strconv.Atoi(key(b))
		return cmp.Compare(ai, bi)
	})
	out := make([]*T, 0)
	for i := p.Offset(); i < len(items) && len(out) < p.Limit(); i++ {
		v := items[i]
		out = append(out, &v)
	}
	return out
}

type fakeVenueRepo struct{ *fakeStore }

func (f fakeVenueRepo) Create(ctx context.Context, v *domain.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("venue.Create"); err != nil {
		return err
	}
	v.ID = f.id()
	f.venues[v.ID] = *v
	return nil
}

func (f fakeVenueRepo) Update(ctx context.Context, v *domain.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("venue.Update"); err != nil {
		return err
	}
	if _, ok := f.venues[v.ID]; !ok {
		return domain.ErrNotFound
	}
	f.venues[v.ID] = *v
	return nil
}

func (f fakeVenueRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("venue.Delete"); err != nil {
		return err
	}
	delete(f.venues, id)
	return nil
}

func (f fakeVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("venue.GetByID"); err != nil {
		return nil, err
	}
	v, ok := f.venues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (f fakeVenueRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Venue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("venue.List"); err != nil {
		return nil, err
	}
	return page(f.venues, func(v domain.Venue) string { return v.ID }, nil, p), nil
}

type fakeConventionRepo struct{ *fakeStore }

func (f fakeConventionRepo) Create(ctx context.Context, c *domain.Convention) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("convention.Create"); err != nil {
		return err
	}
	c.ID = f.id()
	f.conventions[c.ID] = *c
	return nil
}

func (f fakeConventionRepo) Update(ctx context.Context, c *domain.Convention) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("convention.Update"); err != nil {
		return err
	}
	if _, ok := f.conventions[c.ID]; !ok {
		return domain.ErrNotFound
	}
	f.conventions[c.ID] = *c
	return nil
}

func (f fakeConventionRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("convention.Delete"); err != nil {
		return err
	}
	delete(f.conventions, id)
	return nil
}

func (f fakeConventionRepo) GetByID(ctx context.Context, id string) (*domain.Convention, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("convention.GetByID"); err != nil {
		return nil, err
	}
	c, ok := f.conventions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (f fakeConventionRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Convention, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("convention.List"); err != nil {
		return nil, err
	}
	return page(f.conventions, func(c domain.Convention) string { return c.ID }, nil, p), nil
}

type fakeUserRepo struct{ *fakeStore }

func (f fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("user.Create"); err != nil {
		return err
	}
	if _, ok := f.users[u.ID]; ok {
		return domain.ErrIdentityAlreadyExists
	}
	f.users[u.ID] = *u
	return nil
}

func (f fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("user.Update"); err != nil {
		return err
	}
	if _, ok := f.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	f.users[u.ID] = *u
	return nil
}

func (f fakeUserRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("user.Delete"); err != nil {
		return err
	}
	delete(f.users, id)
	return nil
}

func (f fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("user.GetByID"); err != nil {
		return nil, err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (f fakeUserRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("user.List"); err != nil {
		return nil, err
	}
	// User ids are identities, not numbers; order lexically.
	items := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		items = append(items, u)
	}
	slices.SortFunc(items, func(a, b domain.User) int { return cmp.Compare(a.ID, b.ID) })
	out := make([]*domain.User, 0)
	for i := p.Offset(); i < len(items) && len(out) < p.Limit(); i++ {
		u := items[i]
		out = append(out, &u)
	}
	return out, nil
}

type fakeTalkRepo struct{ *fakeStore }

func (f fakeTalkRepo) Create(ctx context.Context, t *domain.Talk) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("talk.Create"); err != nil {
		return err
	}
	t.ID = f.id()
	f.talks[t.ID] = *t
	return nil
}

func (f fakeTalkRepo) Update(ctx context.Context, t *domain.Talk) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("talk.Update"); err != nil {
		return err
	}
	if _, ok := f.talks[t.ID]; !ok {
		return domain.ErrNotFound
	}
	f.talks[t.ID] = *t
	return nil
}

func (f fakeTalkRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("talk.Delete"); err != nil {
		return err
	}
	delete(f.talks, id)
	return nil
}

func (f fakeTalkRepo) GetByID(ctx context.Context, id string) (*domain.Talk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("talk.GetByID"); err != nil {
		return nil, err
	}
	t, ok := f.talks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (f fakeTalkRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Talk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("talk.List"); err != nil {
		return nil, err
	}
	return page(f.talks, func(t domain.Talk) string { return t.ID }, nil, p), nil
}

type fakeConventionRegRepo struct{ *fakeStore }

func (f fakeConventionRegRepo) Add(ctx context.Context, conventionID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("convreg.Add"); err != nil {
		return err
	}
	key := [2]string{conventionID, userID}
	if f.convRegs[key] {
		return domain.ErrAlreadyJoined
	}
	f.convRegs[key] = true
	return nil
}

func (f fakeConventionRegRepo) Remove(ctx context.Context, conventionID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("convreg.Remove"); err != nil {
		return err
	}
	delete(f.convRegs, [2]string{conventionID, userID})
	return nil
}

func (f fakeConventionRegRepo) IsMember(ctx context.Context, conventionID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("convreg.IsMember"); err != nil {
		return false, err
	}
	return f.convRegs[[2]string{conventionID, userID}], nil
}

func (f fakeConventionRegRepo) ListConventionsByUserID(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Convention, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("convreg.List"); err != nil {
		return nil, err
	}
	keep := func(c domain.Convention) bool { return f.convRegs[[2]string{c.ID, userID}] }
	return page(f.conventions, func(c domain.Convention) string { return c.ID }, keep, p), nil
}

type fakeTalkRegRepo struct{ *fakeStore }

func (f fakeTalkRegRepo) Add(ctx context.Context, talkID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("talkreg.Add"); err != nil {
		return err
	}
	key := [2]string{talkID, userID}
	if f.talkRegs[key] {
		return domain.ErrAlreadyJoined
	}
	f.talkRegs[key] = true
	return nil
}

func (f fakeTalkRegRepo) Remove(ctx context.Context, talkID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("talkreg.Remove"); err != nil {
		return err
	}
	delete(f.talkRegs, [2]string{talkID, userID})
	return nil
}

func (f fakeTalkRegRepo) IsMember(ctx context.Context, talkID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("talkreg.IsMember"); err != nil {
		return false, err
	}
	return f.talkRegs[[2]string{talkID, userID}], nil
}

func (f fakeTalkRegRepo) ListTalksByUserID(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Talk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("talkreg.List"); err != nil {
		return nil, err
	}
	keep := func(t domain.Talk) bool { return f.talkRegs[[2]string{t.ID, userID}] }
	return page(f.talks, func(t domain.Talk) string { return t.ID }, keep, p), nil
}

// fakeEmailService records sent confirmations.
type fakeEmailService struct {
	mu          sync.Mutex
	conventions []*domain.ConventionJoinedEmailData
	talks       []*domain.TalkJoinedEmailData
	err         error
}

func (f *fakeEmailService) SendConventionJoined(ctx context.Context, data *domain.ConventionJoinedEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conventions = append(f.conventions, data)
	return f.err
}

func (f *fakeEmailService) SendTalkJoined(ctx context.Context, data *domain.TalkJoinedEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.talks = append(f.talks, data)
	return f.err
}

// testServices bundles every service over one fakeStore.
type testServices struct {
	store       *fakeStore
	venues      domain.VenueService
	users       domain.UserService
	conventions domain.ConventionService
	talks       domain.TalkService
}

func newTestServices(opts ...Option) *testServices {
	st := newFakeStore()
	return &testServices{
		store:       st,
		venues:      NewVenueService(fakeVenueRepo{st}, opts...),
		users:       NewUserService(fakeUserRepo{st}, opts...),
		conventions: NewConventionService(fakeConventionRepo{st}, fakeVenueRepo{st}, fakeUserRepo{st}, fakeConventionRegRepo{st}, opts...),
		talks:       NewTalkService(fakeTalkRepo{st}, fakeConventionRepo{st}, fakeUserRepo{st}, fakeConventionRegRepo{st}, fakeTalkRegRepo{st}, opts...),
	}
}
