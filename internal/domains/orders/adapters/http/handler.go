// Package http exposes the read side of the orders context over gin.
// Placement and cancellation are service calls, not HTTP operations.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopfront/order-api/internal/domains/orders/application/types"
	orderdomain "github.com/shopfront/order-api/internal/domains/orders/domain"
	orderports "github.com/shopfront/order-api/internal/domains/orders/ports"
	sharederrors "github.com/shopfront/order-api/internal/shared/errors"
)

// Strategy names the projection behind a listing route.
type Strategy string

const (
	StrategyEntity   Strategy = "entity"
	StrategyPerOrder Strategy = "perOrder"
	StrategyBatched  Strategy = "batched"
	StrategyFlatJoin Strategy = "flatJoin"
)

const defaultLimit = 100

// Handler serves the order read API. Each versioned listing route is backed
// by one projection strategy; all of them return the same view shape.
type Handler struct {
	service   orderports.Service
	views     map[Strategy]orderports.OrderViews
	responder *sharederrors.ChainedResponder
}

// NewHandler wires the read API over the given projection strategies.
func NewHandler(service orderports.Service, views map[Strategy]orderports.OrderViews) *Handler {
	return &Handler{
		service:   service,
		views:     views,
		responder: sharederrors.NewChainedResponder("", mapOrderError),
	}
}

// Register mounts the read routes on the router.
func (h *Handler) Register(router gin.IRouter) {
	api := router.Group("/api")
	api.GET("/v1/orders", h.listWith(StrategyEntity))
	api.GET("/v2/orders", h.listWith(StrategyPerOrder))
	api.GET("/v3/orders", h.listWith(StrategyBatched))
	api.GET("/v4/orders", h.listWith(StrategyFlatJoin))
	api.GET("/orders", h.listWith(StrategyBatched))
	api.GET("/orders/:orderId", h.getOrder)
}

func (h *Handler) listWith(strategy Strategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		views, ok := h.views[strategy]
		if !ok {
			h.responder.InternalError(c, "projection strategy not configured: "+string(strategy))
			return
		}
		query, err := parseViewQuery(c)
		if err != nil {
			h.responder.BadRequest(c, err.Error())
			return
		}
		result, err := views.ListOrders(c.Request.Context(), query)
		if err != nil {
			h.responder.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (h *Handler) getOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		h.responder.BadRequest(c, "orderId must be an integer")
		return
	}
	order, err := h.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, orderports.ErrNotFound) {
			h.responder.NotFound(c, "order", orderID)
			return
		}
		h.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(order))
}

// parseViewQuery builds the listing filter. The page is nil unless the
// caller sent offset or limit, so capped unpaginated scans stay reachable.
func parseViewQuery(c *gin.Context) (orderports.ViewQuery, error) {
	query := orderports.ViewQuery{
		Search: orderports.Search{
			Status:     orderdomain.Status(c.Query("status")),
			MemberName: c.Query("memberName"),
		},
	}
	offsetParam, hasOffset := c.GetQuery("offset")
	limitParam, hasLimit := c.GetQuery("limit")
	if !hasOffset && !hasLimit {
		return query, nil
	}

	page := orderports.Page{Limit: defaultLimit}
	if hasOffset {
		offset, err := strconv.Atoi(offsetParam)
		if err != nil || offset < 0 {
			return query, errors.New("offset must be a non-negative integer")
		}
		page.Offset = offset
	}
	if hasLimit {
		limit, err := strconv.Atoi(limitParam)
		if err != nil || limit <= 0 {
			return query, errors.New("limit must be a positive integer")
		}
		page.Limit = limit
	}
	query.Page = &page
	return query, nil
}

func toView(order *orderdomain.Order) types.OrderView {
	view := types.OrderView{
		OrderID:   order.ID,
		OrderedAt: order.OrderedAt,
		Status:    string(order.Status),
		Lines:     make([]types.OrderLineView, 0, len(order.Lines)),
	}
	if order.Member != nil {
		view.MemberName = order.Member.Name
	}
	if order.Delivery != nil {
		view.Address = types.AddressViewOf(order.Delivery.Address)
	}
	for _, line := range order.Lines {
		name := ""
		if line.Item != nil {
			name = line.Item.Name
		}
		view.Lines = append(view.Lines, types.OrderLineView{ItemName: name, Price: line.Price, Count: line.Count})
	}
	return view
}

// mapOrderError translates read-side failures into problem details.
func mapOrderError(err error) (sharederrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, orderports.ErrPaginationUnsupported):
		return sharederrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, orderports.ErrNotFound):
		return sharederrors.NewNotFoundProblem("order", nil), true
	default:
		return sharederrors.ProblemDetail{}, false
	}
}
