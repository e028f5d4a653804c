package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ostaapp/osta-backend/api/middleware"
	"github.com/ostaapp/osta-backend/internal/bookings"
	"github.com/ostaapp/osta-backend/pkg/db/models"
	"github.com/ostaapp/osta-backend/pkg/enums"
	pkgerrors "github.com/ostaapp/osta-backend/pkg/errors"
	"github.com/ostaapp/osta-backend/pkg/logger"
)

type testBookingsService struct {
	createFn     func(ctx context.Context, input bookings.CreateBookingInput) (*models.Job, error)
	quoteFn      func(ctx context.Context, input bookings.SubmitQuoteInput) (*models.Job, error)
	transitionFn func(ctx context.Context, input bookings.TransitionInput) (*models.Job, error)
	resolveFn    func(ctx context.Context, input bookings.ResolveDisputeInput) (*models.Job, error)
	getFn        func(ctx context.Context, jobID uuid.UUID, actor bookings.Actor) (*models.Job, error)
	listFn       func(ctx context.Context, input bookings.ListInput) (*bookings.ListResult, error)
}

func (s *testBookingsService) CreateBooking(ctx context.Context, input bookings.CreateBookingInput) (*models.Job, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return &models.Job{}, nil
}

func (s *testBookingsService) SubmitQuote(ctx context.Context, input bookings.SubmitQuoteInput) (*models.Job, error) {
	if s.quoteFn != nil {
		return s.quoteFn(ctx, input)
	}
	return &models.Job{}, nil
}

func (s *testBookingsService) Transition(ctx context.Context, input bookings.TransitionInput) (*models.Job, error) {
	if s.transitionFn != nil {
		return s.transitionFn(ctx, input)
	}
	return &models.Job{}, nil
}

func (s *testBookingsService) ResolveDispute(ctx context.Context, input bookings.ResolveDisputeInput) (*models.Job, error) {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, input)
	}
	return &models.Job{}, nil
}

func (s *testBookingsService) Get(ctx context.Context, jobID uuid.UUID, actor bookings.Actor) (*models.Job, error) {
	if s.getFn != nil {
		return s.getFn(ctx, jobID, actor)
	}
	return &models.Job{}, nil
}

func (s *testBookingsService) List(ctx context.Context, input bookings.ListInput) (*bookings.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, input)
	}
	return &bookings.ListResult{}, nil
}

func (s *testBookingsService) SweepArrivedTimeouts(context.Context) (int, error) {
	return 0, nil
}

func testLogg() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return d
}

func asActor(req *http.Request, userID uuid.UUID, role enums.UserRole) *http.Request {
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithRole(ctx, string(role))
	return req.WithContext(ctx)
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCreateBookingSuccess(t *testing.T) {
	customerID := uuid.New()
	providerID := uuid.New()
	var captured bookings.CreateBookingInput
	svc := &testBookingsService{
		createFn: func(ctx context.Context, input bookings.CreateBookingInput) (*models.Job, error) {
			captured = input
			return &models.Job{ID: uuid.New(), CustomerID: input.CustomerID, ProviderID: input.ProviderID}, nil
		},
	}

	body := `{"provider_id":"` + providerID.String() + `","service_type":"plumbing","initial_price":"320.50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req = asActor(req, customerID, enums.UserRoleCustomer)
	resp := httptest.NewRecorder()
	CreateBooking(svc, testLogg())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.CustomerID != customerID {
		t.Fatalf("expected customer %s got %s", customerID, captured.CustomerID)
	}
	if captured.ProviderID != providerID {
		t.Fatalf("expected provider %s got %s", providerID, captured.ProviderID)
	}
	if !captured.InitialPrice.Equal(mustDecimal(t, "320.50")) {
		t.Fatalf("unexpected initial price %s", captured.InitialPrice)
	}
}

func TestCreateBookingRejectsBadProviderID(t *testing.T) {
	body := `{"provider_id":"not-a-uuid","service_type":"plumbing"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req = asActor(req, uuid.New(), enums.UserRoleCustomer)
	resp := httptest.NewRecorder()
	CreateBooking(&testBookingsService{}, testLogg())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCreateBookingRequiresAuthContext(t *testing.T) {
	body := `{"provider_id":"` + uuid.NewString() + `","service_type":"plumbing"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CreateBooking(&testBookingsService{}, testLogg())(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestSubmitQuoteParsesItems(t *testing.T) {
	jobID := uuid.New()
	var captured bookings.SubmitQuoteInput
	svc := &testBookingsService{
		quoteFn: func(ctx context.Context, input bookings.SubmitQuoteInput) (*models.Job, error) {
			captured = input
			return &models.Job{ID: jobID}, nil
		},
	}

	body := `{"items":[{"label":"Labor","amount":"200","type":"labor"},{"label":"Pipe","amount":"120.25","type":"material"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+jobID.String()+"/quote", strings.NewReader(body))
	req = asActor(req, uuid.New(), enums.UserRoleProvider)
	req = addRouteParam(req, "bookingId", jobID.String())
	resp := httptest.NewRecorder()
	SubmitQuote(svc, testLogg())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.JobID != jobID {
		t.Fatalf("expected job %s got %s", jobID, captured.JobID)
	}
	if len(captured.Items) != 2 {
		t.Fatalf("expected 2 items got %d", len(captured.Items))
	}
	if captured.Items[1].Type != enums.QuoteItemTypeMaterial {
		t.Fatalf("unexpected item type %s", captured.Items[1].Type)
	}
}

func TestSubmitQuoteRejectsEmptyItems(t *testing.T) {
	jobID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+jobID.String()+"/quote", strings.NewReader(`{"items":[]}`))
	req = asActor(req, uuid.New(), enums.UserRoleProvider)
	req = addRouteParam(req, "bookingId", jobID.String())
	resp := httptest.NewRecorder()
	SubmitQuote(&testBookingsService{}, testLogg())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestTransitionBookingRejectsUnknownStatus(t *testing.T) {
	jobID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+jobID.String()+"/transition", strings.NewReader(`{"status":"teleported"}`))
	req = asActor(req, uuid.New(), enums.UserRoleCustomer)
	req = addRouteParam(req, "bookingId", jobID.String())
	resp := httptest.NewRecorder()
	TransitionBooking(&testBookingsService{}, testLogg())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestTransitionBookingSurfacesStateConflict(t *testing.T) {
	jobID := uuid.New()
	svc := &testBookingsService{
		transitionFn: func(ctx context.Context, input bookings.TransitionInput) (*models.Job, error) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "transition disallowed")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+jobID.String()+"/transition", strings.NewReader(`{"status":"completed"}`))
	req = asActor(req, uuid.New(), enums.UserRoleProvider)
	req = addRouteParam(req, "bookingId", jobID.String())
	resp := httptest.NewRecorder()
	TransitionBooking(svc, testLogg())(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeStateConflict) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
}

func TestListBookingsPassesFilters(t *testing.T) {
	userID := uuid.New()
	var captured bookings.ListInput
	svc := &testBookingsService{
		listFn: func(ctx context.Context, input bookings.ListInput) (*bookings.ListResult, error) {
			captured = input
			return &bookings.ListResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?limit=5&status=completed&cursor=abc", nil)
	req = asActor(req, userID, enums.UserRoleCustomer)
	resp := httptest.NewRecorder()
	ListBookings(svc, testLogg())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured.Limit != 5 {
		t.Fatalf("expected limit 5 got %d", captured.Limit)
	}
	if captured.Status == nil || *captured.Status != enums.JobStatusCompleted {
		t.Fatalf("expected completed filter got %v", captured.Status)
	}
	if captured.Cursor != "abc" {
		t.Fatalf("expected cursor abc got %q", captured.Cursor)
	}
}
