package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/petfolk/petcare/internal/service/order"
)

type MockOrderUseCase struct {
	mock.Mock
}

func (m *MockOrderUseCase) Create(ctx context.Context, authMemberID string, in order.CreateOrderInput) (*order.CreateOrderResult, error) {
	args := m.Called(ctx, authMemberID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.CreateOrderResult), args.Error(1)
}

func (m *MockOrderUseCase) ListByMember(ctx context.Context, memberID string) ([]order.Summary, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Summary), args.Error(1)
}

func (m *MockOrderUseCase) Items(ctx context.Context, memberID, bookingNo string) ([]order.Item, error) {
	args := m.Called(ctx, memberID, bookingNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Item), args.Error(1)
}

func (m *MockOrderUseCase) Pending(ctx context.Context, memberID string) (*order.PendingSummary, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.PendingSummary), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestOrderHandler_create(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := order.CreateOrderInput{
		MemberID:   "m0001",
		SitterID:   strPtr("t0001"),
		StartDate:  strPtr("2026-09-01"),
		EndDate:    strPtr("2026-09-03"),
		TotalPrice: 1000,
		Items: []order.CreateOrderItem{
			{ServiceID: strPtr("s0001"), PetID: "p0001", Amount: 2, Price: 500},
		},
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/api/orders", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set(memberHeader, "m0001")

	mockService.On("Create", c.Request.Context(), "m0001", input).
		Return(&order.CreateOrderResult{BookingNo: "b0001", ReservedAt: "2026-08-31 14:30:00"}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		OK         bool   `json:"ok"`
		BookingNo  string `json:"bNo"`
		ReservedAt string `json:"rDate"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.OK)
	assert.Equal(t, "b0001", response.BookingNo)
	assert.Equal(t, "2026-08-31 14:30:00", response.ReservedAt)

	mockService.AssertExpectations(t)
}

func TestOrderHandler_createWithoutHeaderUsesBodyMember(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := order.CreateOrderInput{
		MemberID:   "m0001",
		TotalPrice: 500,
		Items:      []order.CreateOrderItem{{PetID: "p0001", Amount: 1, Price: 500}},
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/api/orders", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Create", c.Request.Context(), "m0001", input).
		Return(&order.CreateOrderResult{BookingNo: "b0002", ReservedAt: "2026-08-31 14:30:00"}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_createIdentityMismatch(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := order.CreateOrderInput{
		MemberID: "m0002",
		Items:    []order.CreateOrderItem{{PetID: "p0001"}},
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/api/orders", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set(memberHeader, "m0001")

	mockService.On("Create", c.Request.Context(), "m0001", input).
		Return(nil, fmt.Errorf("%w: cannot place an order for another member", order.ErrForbidden))

	handler.create(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderHandler_listQueryMemberMismatch(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/orders?mId=m0002", nil)
	c.Request.Header.Set(memberHeader, "m0001")

	handler.list(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertNotCalled(t, "ListByMember")
}

func TestOrderHandler_listWithoutHeaderUsesQueryMember(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/orders?mId=m0001", nil)

	mockService.On("ListByMember", c.Request.Context(), "m0001").Return([]order.Summary{}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestOrderHandler_list(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/orders", nil)
	c.Request.Header.Set(memberHeader, "m0001")

	mockService.On("ListByMember", c.Request.Context(), "m0001").Return([]order.Summary{
		{BookingNo: "b0001", MemberID: "m0001", Status: "reserved", TotalPrice: 2100},
	}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		OK     bool            `json:"ok"`
		Orders []order.Summary `json:"orders"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Orders, 1)
	assert.Equal(t, "b0001", response.Orders[0].BookingNo)
}

func TestOrderHandler_itemsNotFound(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "bNo", Value: "b0099"}}
	c.Request = httptest.NewRequest("GET", "/api/orders/b0099/items", nil)
	c.Request.Header.Set(memberHeader, "m0001")

	mockService.On("Items", c.Request.Context(), "m0001", "b0099").
		Return(nil, fmt.Errorf("%w: booking b0099", order.ErrNotFound))

	handler.items(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_pending(t *testing.T) {
	mockService := &MockOrderUseCase{}
	handler := NewOrderHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/orders/pending/summary", nil)
	c.Request.Header.Set(memberHeader, "m0001")

	mockService.On("Pending", c.Request.Context(), "m0001").
		Return(&order.PendingSummary{Count: 2, Total: 3100}, nil)

	handler.pending(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		OK    bool    `json:"ok"`
		Count int64   `json:"pendingCount"`
		Total float64 `json:"pendingTotalPrice"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), response.Count)
	assert.Equal(t, 3100.0, response.Total)
}
