package http

import (
	"log/slog"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = &Server{}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	deleteOrderHandler       commands.DeleteOrderCommandHandler

	// Query handlers
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		deleteOrderHandler:       deleteOrderHandler,
		getActiveOrdersHandler:   getActiveOrdersHandler,
		logger:                   logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /orders - places an order for the calling client.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var newOrder servers.CreateOrderJSONRequestBody
	if err = ctx.Bind(&newOrder); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	restaurantID, err := kernel.UUIDFromBytes(newOrder.RestaurantId[:])
	if err != nil {
		return s.respondError(ctx, err)
	}
	method, err := order.ParsePaymentMethod(string(newOrder.PaymentMethod))
	if err != nil {
		return s.respondError(ctx, err)
	}

	items := make([]commands.OrderItemRequest, 0, len(newOrder.Items))
	for _, item := range newOrder.Items {
		productID, idErr := kernel.UUIDFromBytes(item.ProductId[:])
		if idErr != nil {
			return s.respondError(ctx, idErr)
		}
		items = append(items, commands.OrderItemRequest{ProductID: productID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(principal, restaurantID, method, items)
	if err != nil {
		return s.respondError(ctx, err)
	}

	placed, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(placed))
}

// GetCustomerOrders handles GET /orders/customer - active orders of the calling client.
func (s *Server) GetCustomerOrders(ctx echo.Context) error {
	return s.listActiveOrders(ctx, queries.CustomerScope)
}

// GetRestaurantOrders handles GET /orders/restaurant - active orders of the calling restaurant.
func (s *Server) GetRestaurantOrders(ctx echo.Context) error {
	return s.listActiveOrders(ctx, queries.RestaurantScope)
}

func (s *Server) listActiveOrders(ctx echo.Context, scope queries.Scope) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	query, err := queries.NewGetActiveOrdersQuery(principal, scope)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = toOrderResponse(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateOrderStatus handles PUT /orders/{id}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id servers.OrderId) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	var update servers.UpdateOrderStatusJSONRequestBody
	if err = ctx.Bind(&update); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status := order.Unknown
	if update.Status != nil {
		if status, err = order.ParseStatus(string(*update.Status)); err != nil {
			return s.respondError(ctx, err)
		}
	}
	paymentStatus := order.UnknownPaymentStatus
	if update.PaymentStatus != nil {
		if paymentStatus, err = order.ParsePaymentStatus(string(*update.PaymentStatus)); err != nil {
			return s.respondError(ctx, err)
		}
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(principal, orderID, status, paymentStatus)
	if err != nil {
		return s.respondError(ctx, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// DeleteOrder handles DELETE /orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context, id servers.OrderId) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return s.respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(principal, orderID)
	if err != nil {
		return s.respondError(ctx, err)
	}

	if err = s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.DeletedMessage{Message: "Order deleted"})
}

func toOrderResponse(o *order.Order) servers.Order {
	items := make([]servers.LineItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, servers.LineItem{
			ProductId: item.ProductID().Bytes(),
			Name:      item.Name(),
			Price:     item.Price().String(),
			Quantity:  item.Quantity(),
		})
	}

	return servers.Order{
		Id:            o.ID().Bytes(),
		OrderNumber:   o.Number().String(),
		CustomerId:    o.CustomerID().Bytes(),
		RestaurantId:  o.RestaurantID().Bytes(),
		Items:         items,
		TotalAmount:   o.Total().String(),
		PaymentMethod: servers.PaymentMethod(o.PaymentMethod().Code()),
		Status:        servers.OrderStatus(o.Status().Code()),
		PaymentStatus: servers.PaymentStatus(o.PaymentStatus().Code()),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}
