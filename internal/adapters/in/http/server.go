// Package http exposes the order lifecycle over a JSON API. Handlers parse
// and validate input, delegate to the use case layer and translate its error
// taxonomy into HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/application/usecases/queries"
	"tailoring/internal/core/domain/model/confirmation"
	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler        commands.PlaceOrderCommandHandler
	requestTransitionHandler commands.RequestTransitionCommandHandler
	verifyDeliveryHandler    commands.VerifyDeliveryCommandHandler
	setFittingDateHandler    commands.SetFittingDateCommandHandler

	// Query handlers
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	requestTransitionHandler commands.RequestTransitionCommandHandler,
	verifyDeliveryHandler commands.VerifyDeliveryCommandHandler,
	setFittingDateHandler commands.SetFittingDateCommandHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:        placeOrderHandler,
		requestTransitionHandler: requestTransitionHandler,
		verifyDeliveryHandler:    verifyDeliveryHandler,
		setFittingDateHandler:    setFittingDateHandler,
		getOrderHistoryHandler:   getOrderHistoryHandler,
	}
}

// RegisterRoutes attaches all API routes to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.PlaceOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
	api.POST("/orders/:id/delivery/verify", s.VerifyDelivery)
	api.PUT("/orders/:id/fitting-date", s.SetFittingDate)
	api.GET("/orders/:id/history", s.GetOrderHistory)

	e.GET("/health", s.Health)
}

// PlaceOrder handles POST /api/v1/orders - places a new order in pending status.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var request PlaceOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+request.CustomerID)
	}
	tailorID, err := kernel.UUIDFromString(request.TailorID)
	if err != nil {
		return badRequest(ctx, "Invalid tailor id: "+request.TailorID)
	}
	serviceType, err := order.NewServiceType(request.ServiceType)
	if err != nil {
		return badRequest(ctx, "Invalid service type: "+request.ServiceType)
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		customerID,
		tailorID,
		serviceType,
		request.GarmentType,
		request.Quantity,
		request.MeasurementRef,
		request.EstimatedPrice,
		request.DeliveryDate,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(placed))
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - requests a
// lifecycle transition on behalf of the acting party.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+ctx.Param("id"))
	}

	var request ChangeStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return badRequest(ctx, "Invalid actor id: "+request.ActorID)
	}
	actorRole, err := order.RoleFromString(request.ActorRole)
	if err != nil {
		return badRequest(ctx, "Invalid actor role: "+request.ActorRole)
	}
	targetStatus, err := order.StatusFromString(request.TargetStatus)
	if err != nil {
		return badRequest(ctx, "Invalid target status: "+request.TargetStatus)
	}

	cmd, err := commands.NewRequestTransitionCommand(orderID, actorID, actorRole, targetStatus, request.Note)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	updated, err := s.requestTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// VerifyDelivery handles POST /api/v1/orders/:id/delivery/verify - confirms
// handover with the customer's delivery code and completes the order.
func (s *Server) VerifyDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+ctx.Param("id"))
	}

	var request VerifyDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	tailorID, err := kernel.UUIDFromString(request.TailorID)
	if err != nil {
		return badRequest(ctx, "Invalid tailor id: "+request.TailorID)
	}

	cmd, err := commands.NewVerifyDeliveryCommand(orderID, tailorID, request.Code)
	if err != nil {
		return badRequest(ctx, "Invalid verification data: "+err.Error())
	}

	completed, err := s.verifyDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(completed))
}

// SetFittingDate handles PUT /api/v1/orders/:id/fitting-date - schedules the
// final fitting without touching the lifecycle.
func (s *Server) SetFittingDate(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+ctx.Param("id"))
	}

	var request SetFittingDateRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	tailorID, err := kernel.UUIDFromString(request.TailorID)
	if err != nil {
		return badRequest(ctx, "Invalid tailor id: "+request.TailorID)
	}

	cmd, err := commands.NewSetFittingDateCommand(orderID, tailorID, request.FittingDate)
	if err != nil {
		return badRequest(ctx, "Invalid fitting date data: "+err.Error())
	}

	updated, err := s.setFittingDateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - returns the
// order's transition trail, oldest first, to the order's parties.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+ctx.Param("id"))
	}

	actorID, err := kernel.UUIDFromString(ctx.QueryParam("actorId"))
	if err != nil {
		return badRequest(ctx, "Invalid actor id: "+ctx.QueryParam("actorId"))
	}
	actorRole, err := order.RoleFromString(ctx.QueryParam("actorRole"))
	if err != nil {
		return badRequest(ctx, "Invalid actor role: "+ctx.QueryParam("actorRole"))
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID, actorID, actorRole)
	if err != nil {
		return badRequest(ctx, "Invalid history query: "+err.Error())
	}

	trail, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]HistoryEntryResponse, len(trail))
	for i, entry := range trail {
		response[i] = toHistoryEntryResponse(entry)
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps the use case error taxonomy onto HTTP status codes.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, commands.ErrOrderAccessForbidden),
		errors.Is(err, queries.ErrHistoryAccessForbidden):
		status = http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, commands.ErrOrderStateStale):
		status = http.StatusConflict
	case errors.Is(err, confirmation.ErrConfirmationExpired):
		status = http.StatusGone
	case errors.Is(err, confirmation.ErrTooManyAttempts):
		status = http.StatusTooManyRequests
	case errors.Is(err, commands.ErrCodeMismatch):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
