package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/shopfront/order-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/shopfront/order-api/internal/domains/catalog/domain"
	membermemory "github.com/shopfront/order-api/internal/domains/members/adapters/memory"
	memberdomain "github.com/shopfront/order-api/internal/domains/members/domain"
	ordermemory "github.com/shopfront/order-api/internal/domains/orders/adapters/memory"
	"github.com/shopfront/order-api/internal/domains/orders/application"
	"github.com/shopfront/order-api/internal/domains/orders/application/types"
	orderports "github.com/shopfront/order-api/internal/domains/orders/ports"
)

func setupRouter(t *testing.T) (*gin.Engine, []int64) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	memberRepo := membermemory.NewRepository()
	itemRepo := catalogmemory.NewRepository()
	orderRepo := ordermemory.NewRepository(itemRepo)
	service := application.NewService(orderRepo, memberRepo, itemRepo, ordermemory.NewTransactor())

	var orderIDs []int64
	for i := 0; i < 3; i++ {
		member, err := memberdomain.NewMember(
			fmt.Sprintf("member%d", i+1),
			memberdomain.NewAddress("Seoul", fmt.Sprintf("street %d", i+1), "04524"),
		)
		require.NoError(t, err)
		member, err = memberRepo.Save(ctx, member)
		require.NoError(t, err)

		item, err := catalogdomain.NewItem(fmt.Sprintf("item%d", i+1), 10000, 10)
		require.NoError(t, err)
		item, err = itemRepo.Save(ctx, item)
		require.NoError(t, err)

		orderID, err := service.PlaceOrder(ctx, types.PlaceOrderInput{MemberID: member.ID, ItemID: item.ID, Count: 2})
		require.NoError(t, err)
		orderIDs = append(orderIDs, orderID)
	}

	entity := application.NewEntityViews(orderRepo)
	handler := NewHandler(service, map[Strategy]orderports.OrderViews{
		StrategyEntity:   entity,
		StrategyPerOrder: entity,
		StrategyBatched:  entity,
		StrategyFlatJoin: application.WithoutPagination(entity),
	})
	router := gin.New()
	handler.Register(router)
	return router, orderIDs
}

func doRequest(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestListOrders_AllVersions(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{"/api/v1/orders", "/api/v2/orders", "/api/v3/orders", "/api/v4/orders", "/api/orders"} {
		recorder := doRequest(t, router, path)
		require.Equal(t, http.StatusOK, recorder.Code, path)

		var views []types.OrderView
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &views), path)
		require.Len(t, views, 3, path)
		assert.Equal(t, "member1", views[0].MemberName, path)
		require.Len(t, views[0].Lines, 1, path)
		assert.Equal(t, int64(10000), views[0].Lines[0].Price, path)
	}
}

func TestListOrders_FilterByMemberName(t *testing.T) {
	router, _ := setupRouter(t)

	recorder := doRequest(t, router, "/api/orders?memberName=member2")
	require.Equal(t, http.StatusOK, recorder.Code)

	var views []types.OrderView
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "member2", views[0].MemberName)
}

func TestListOrders_Pagination(t *testing.T) {
	router, _ := setupRouter(t)

	recorder := doRequest(t, router, "/api/orders?offset=1&limit=1")
	require.Equal(t, http.StatusOK, recorder.Code)

	var views []types.OrderView
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "member2", views[0].MemberName)
}

func TestListOrders_FlatJoinRejectsPagination(t *testing.T) {
	router, _ := setupRouter(t)

	recorder := doRequest(t, router, "/api/v4/orders?limit=10")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/problem+json")
}

func TestListOrders_InvalidPageParams(t *testing.T) {
	router, _ := setupRouter(t)

	for _, path := range []string{"/api/orders?offset=-1", "/api/orders?limit=0", "/api/orders?limit=abc"} {
		recorder := doRequest(t, router, path)
		assert.Equal(t, http.StatusBadRequest, recorder.Code, path)
	}
}

func TestGetOrder(t *testing.T) {
	router, orderIDs := setupRouter(t)

	recorder := doRequest(t, router, fmt.Sprintf("/api/orders/%d", orderIDs[0]))
	require.Equal(t, http.StatusOK, recorder.Code)

	var view types.OrderView
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &view))
	assert.Equal(t, orderIDs[0], view.OrderID)
	assert.Equal(t, "ORDER", view.Status)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Count)

	// Unmarshal matches keys case-insensitively, so pin the exact wire keys.
	body := recorder.Body.String()
	assert.Contains(t, body, `"city":"Seoul"`)
	assert.Contains(t, body, `"street":"street 1"`)
	assert.Contains(t, body, `"zipcode":"04524"`)
}

func TestGetOrder_NotFound(t *testing.T) {
	router, _ := setupRouter(t)

	recorder := doRequest(t, router, "/api/orders/9999")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "application/problem+json")
}

func TestGetOrder_InvalidID(t *testing.T) {
	router, _ := setupRouter(t)

	recorder := doRequest(t, router, "/api/orders/not-a-number")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
