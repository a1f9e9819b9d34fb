package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"conventions/internal/delivery/http/helpers"
	"conventions/internal/delivery/http/middleware"
	"conventions/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newRequest builds a request with pattern path values set and, when p is non-nil, a principal.
func newRequest(t *testing.T, method, target string, body any, p *domain.Principal, pathValues map[string]string) *http.Request {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	if p != nil {
		req = req.WithContext(middleware.SetPrincipal(req.Context(), *p))
	}
	return req
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, data any) helpers.APIResponse {
	t.Helper()
	var resp struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	if data != nil && len(resp.Data) > 0 && string(resp.Data) != "null" {
		if err := json.Unmarshal(resp.Data, data); err != nil {
			t.Fatalf("failed to unmarshal data: %v", err)
		}
	}
	return helpers.APIResponse{Data: data, Error: resp.Error}
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d (body %s)", want, w.Code, w.Body.String())
	}
}

func expectErrorCode(t *testing.T, w *httptest.ResponseRecorder, want string) {
	t.Helper()
	resp := decodeResponse(t, w, nil)
	if resp.Error == nil || resp.Error.Code != want {
		t.Fatalf("expected error code %q, got %+v", want, resp.Error)
	}
}

type mockVenueService struct {
	created  *domain.Venue
	updateID string
	page     domain.PaginationParams
	venues   []*domain.Venue
	venue    *domain.Venue
	err      error
}

func (m *mockVenueService) CreateVenue(ctx context.Context, v *domain.Venue) error {
	if m.err != nil {
		return m.err
	}
	v.ID = "1"
	m.created = v
	return nil
}

func (m *mockVenueService) UpdateVenue(ctx context.Context, venueID string, v *domain.Venue) error {
	m.updateID = venueID
	if m.err != nil {
		return m.err
	}
	v.ID = venueID
	return nil
}

func (m *mockVenueService) DeleteVenue(ctx context.Context, venueID string) error { return m.err }

func (m *mockVenueService) GetVenue(ctx context.Context, venueID string) (*domain.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.venue, nil
}

func (m *mockVenueService) ListVenues(ctx context.Context, p domain.PaginationParams) ([]*domain.Venue, error) {
	m.page = p
	return m.venues, m.err
}

type mockConventionService struct {
	joined     [2]string
	left       [2]string
	forUser    string
	convention *domain.Convention
	list       []*domain.Convention
	err        error
}

func (m *mockConventionService) CreateConvention(ctx context.Context, c *domain.Convention) error {
	if m.err != nil {
		return m.err
	}
	c.ID = "7"
	return nil
}

func (m *mockConventionService) UpdateConvention(ctx context.Context, conventionID string, c *domain.Convention) error {
	if m.err != nil {
		return m.err
	}
	c.ID = conventionID
	return nil
}

func (m *mockConventionService) DeleteConvention(ctx context.Context, conventionID string) error {
	return m.err
}

func (m *mockConventionService) GetConvention(ctx context.Context, conventionID string) (*domain.Convention, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.convention, nil
}

func (m *mockConventionService) ListConventions(ctx context.Context, p domain.PaginationParams) ([]*domain.Convention, error) {
	return m.list, m.err
}

func (m *mockConventionService) JoinConvention(ctx context.Context, conventionID, userID string) error {
	m.joined = [2]string{conventionID, userID}
	return m.err
}

func (m *mockConventionService) LeaveConvention(ctx context.Context, conventionID, userID string) error {
	m.left = [2]string{conventionID, userID}
	return m.err
}

func (m *mockConventionService) ListConventionsForUser(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Convention, error) {
	m.forUser = userID
	return m.list, m.err
}

type mockTalkService struct {
	talk      *domain.Talk
	getErr    error
	err       error
	created   *domain.Talk
	deleted   string
	updated   *domain.Talk
	joined    [2]string
	left      [2]string
	forUser   string
	talks     []*domain.Talk
	joinCalls int
}

func (m *mockTalkService) CreateTalk(ctx context.Context, t *domain.Talk) error {
	if m.err != nil {
		return m.err
	}
	t.ID = "3"
	m.created = t
	return nil
}

func (m *mockTalkService) UpdateTalk(ctx context.Context, talkID string, t *domain.Talk) error {
	if m.err != nil {
		return m.err
	}
	t.ID = talkID
	m.updated = t
	return nil
}

func (m *mockTalkService) DeleteTalk(ctx context.Context, talkID string) error {
	m.deleted = talkID
	return m.err
}

func (m *mockTalkService) GetTalk(ctx context.Context, talkID string) (*domain.Talk, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.talk, nil
}

func (m *mockTalkService) ListTalks(ctx context.Context, p domain.PaginationParams) ([]*domain.Talk, error) {
	return m.talks, m.err
}

func (m *mockTalkService) JoinTalk(ctx context.Context, talkID, userID string) error {
	m.joinCalls++
	m.joined = [2]string{talkID, userID}
	return m.err
}

func (m *mockTalkService) LeaveTalk(ctx context.Context, talkID, userID string) error {
	m.left = [2]string{talkID, userID}
	return m.err
}

func (m *mockTalkService) ListTalksForUser(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Talk, error) {
	m.forUser = userID
	return m.talks, m.err
}

type mockUserService struct {
	created *domain.User
	updated *domain.User
	user    *domain.User
	users   []*domain.User
	err     error
}

func (m *mockUserService) CreateUser(ctx context.Context, u *domain.User) error {
	if m.err != nil {
		return m.err
	}
	m.created = u
	return nil
}

func (m *mockUserService) UpdateUser(ctx context.Context, userID string, u *domain.User) error {
	if m.err != nil {
		return m.err
	}
	m.updated = u
	return nil
}

func (m *mockUserService) DeleteUser(ctx context.Context, userID string) error { return m.err }

func (m *mockUserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockUserService) ListUsers(ctx context.Context, p domain.PaginationParams) ([]*domain.User, error) {
	return m.users, m.err
}
