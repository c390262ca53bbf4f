// Package http exposes the dispatch core over a JSON API. Handlers translate
// requests into commands and queries and map core errors onto stable
// machine-readable codes.
package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"smartdelivery/internal/core/application/usecases/commands"
	"smartdelivery/internal/core/application/usecases/queries"
	"smartdelivery/internal/core/domain/model/condition"
	"smartdelivery/internal/core/domain/model/driver"
	"smartdelivery/internal/core/domain/model/kernel"
	"smartdelivery/internal/pkg/auth"
)

// Server wires the HTTP surface to the command and query handlers.
type Server struct {
	tokens *auth.Tokens

	createOrder      commands.CreateOrderCommandHandler
	requestDispatch  commands.RequestDispatchCommandHandler
	acceptOrder      commands.AcceptOrderCommandHandler
	startDelivery    commands.StartDeliveryCommandHandler
	deliverOrder     commands.DeliverOrderCommandHandler
	failDelivery     commands.FailDeliveryCommandHandler
	cancelOrder      commands.CancelOrderCommandHandler
	registerDriver   commands.RegisterDriverCommandHandler
	reviewDriver     commands.ReviewDriverCommandHandler
	updateLocation   commands.UpdateDriverLocationCommandHandler
	registerFCMToken commands.RegisterFCMTokenCommandHandler
	setAvailability  commands.SetDriverAvailabilityCommandHandler
	registerSender   commands.RegisterEnterpriseCommandHandler
	registerPayment  commands.RegisterCashPaymentCommandHandler

	login            queries.LoginQueryHandler
	getOrder         queries.GetOrderQueryHandler
	availableOrders  queries.GetAvailableOrdersQueryHandler
	driverOrders     queries.GetDriverOrdersQueryHandler
	enterpriseOrders queries.GetEnterpriseOrdersQueryHandler
}

// Handlers bundles everything the server needs, keeping the constructor
// readable at the composition root.
type Handlers struct {
	Tokens *auth.Tokens

	CreateOrder      commands.CreateOrderCommandHandler
	RequestDispatch  commands.RequestDispatchCommandHandler
	AcceptOrder      commands.AcceptOrderCommandHandler
	StartDelivery    commands.StartDeliveryCommandHandler
	DeliverOrder     commands.DeliverOrderCommandHandler
	FailDelivery     commands.FailDeliveryCommandHandler
	CancelOrder      commands.CancelOrderCommandHandler
	RegisterDriver   commands.RegisterDriverCommandHandler
	ReviewDriver     commands.ReviewDriverCommandHandler
	UpdateLocation   commands.UpdateDriverLocationCommandHandler
	RegisterFCMToken commands.RegisterFCMTokenCommandHandler
	SetAvailability  commands.SetDriverAvailabilityCommandHandler
	RegisterSender   commands.RegisterEnterpriseCommandHandler
	RegisterPayment  commands.RegisterCashPaymentCommandHandler

	Login            queries.LoginQueryHandler
	GetOrder         queries.GetOrderQueryHandler
	AvailableOrders  queries.GetAvailableOrdersQueryHandler
	DriverOrders     queries.GetDriverOrdersQueryHandler
	EnterpriseOrders queries.GetEnterpriseOrdersQueryHandler
}

// NewServer creates the HTTP server.
func NewServer(h Handlers) *Server {
	return &Server{
		tokens:           h.Tokens,
		createOrder:      h.CreateOrder,
		requestDispatch:  h.RequestDispatch,
		acceptOrder:      h.AcceptOrder,
		startDelivery:    h.StartDelivery,
		deliverOrder:     h.DeliverOrder,
		failDelivery:     h.FailDelivery,
		cancelOrder:      h.CancelOrder,
		registerDriver:   h.RegisterDriver,
		reviewDriver:     h.ReviewDriver,
		updateLocation:   h.UpdateLocation,
		registerFCMToken: h.RegisterFCMToken,
		setAvailability:  h.SetAvailability,
		registerSender:   h.RegisterSender,
		registerPayment:  h.RegisterPayment,
		login:            h.Login,
		getOrder:         h.GetOrder,
		availableOrders:  h.AvailableOrders,
		driverOrders:     h.DriverOrders,
		enterpriseOrders: h.EnterpriseOrders,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance. Registration and
// login are public; everything else requires a bearer token.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api")

	api.POST("/auth/login", s.handleLogin)
	api.POST("/drivers", s.handleRegisterDriver)
	api.POST("/enterprises", s.handleRegisterEnterprise)

	protected := api.Group("", JWTMiddleware(s.tokens))

	protected.POST("/drivers/:id/approve", s.handleApproveDriver)
	protected.POST("/drivers/:id/reject", s.handleRejectDriver)
	protected.POST("/drivers/location", s.handleUpdateLocation)
	protected.POST("/drivers/availability", s.handleSetAvailability)
	protected.POST("/fcm-token", s.handleRegisterFCMToken)
	protected.GET("/drivers/orders", s.handleDriverOrders)

	protected.POST("/orders", s.handleCreateOrder)
	protected.GET("/orders", s.handleEnterpriseOrders)
	protected.GET("/orders/available", s.handleAvailableOrders)
	protected.GET("/orders/:id", s.handleGetOrder)
	protected.POST("/orders/:id/dispatch", s.handleDispatch)
	protected.POST("/orders/:id/accept", s.handleAccept)
	protected.POST("/orders/:id/start", s.handleStartDelivery)
	protected.POST("/orders/:id/deliver", s.handleDeliver)
	protected.POST("/orders/:id/fail", s.handleFail)
	protected.POST("/orders/:id/cancel", s.handleCancel)
	protected.POST("/orders/:id/payments/cash", s.handleCashPayment)
}

func (s *Server) handleLogin(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, err)
	}

	query, err := queries.NewLoginQuery(req.Email, req.Password)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	resp, err := s.login.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, loginResponse{
		Token:       resp.Token,
		PrincipalID: resp.PrincipalID,
		Role:        resp.Role,
	})
}

func (s *Server) handleRegisterDriver(ctx echo.Context) error {
	var req registerDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, err)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewRegisterDriverCommand(
		req.Name, req.Phone, req.Email, req.NNI,
		driver.VehicleType(req.VehicleType), req.Sectors, hash,
	)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	id, err := s.registerDriver.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleRegisterEnterprise(ctx echo.Context) error {
	var req registerEnterpriseRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, err)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewRegisterEnterpriseCommand(req.Name, req.Phone, req.Email, req.PartnerRef, hash)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	id, err := s.registerSender.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleApproveDriver(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewReviewDriverCommand(id, commands.ReviewApprove, "")
	if err != nil {
		return respondBadRequest(ctx, err)
	}
	if err := s.reviewDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) handleRejectDriver(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	var req rejectDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewReviewDriverCommand(id, commands.ReviewReject, req.Reason)
	if err != nil {
		return respondBadRequest(ctx, err)
	}
	if err := s.reviewDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) handleUpdateLocation(ctx echo.Context) error {
	principal, ok := requireRole(ctx, "driver")
	if !ok {
		return nil
	}

	var req updateLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, err)
	}

	location, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewUpdateDriverLocationCommand(principal.ID, location)
	if err != nil {
		return respondBadRequest(ctx, err)
	}
	if err := s.updateLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) handleSetAvailability(ctx echo.Context) error {
	principal, ok := requireRole(ctx, "driver")
	if !ok {
		return nil
	}

	var req availabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewSetDriverAvailabilityCommand(principal.ID, req.Available)
	if err != nil {
		return respondBadRequest(ctx, err)
	}
	if err := s.setAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) handleRegisterFCMToken(ctx echo.Context) error {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, errorBody{Error: "missing bearer token", Code: "UNAUTHORIZED"})
	}

	var req fcmTokenRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewRegisterFCMTokenCommand(principal.ID, commands.PrincipalRole(principal.Role), req.Token)
	if err != nil {
		return respondBadRequest(ctx, err)
	}
	if err := s.registerFCMToken.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) handleCreateOrder(ctx echo.Context) error {
	principal, ok := requireRole(ctx, "enterprise")
	if !ok {
		return nil
	}

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, err)
	}

	pickup, err := kernel.NewGeoPoint(req.PickupLat, req.PickupLong)
	if err != nil {
		return respondBadRequest(ctx, err)
	}
	drop, err := kernel.NewGeoPoint(req.DropLat, req.DropLong)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	preAssigned := uuid.Nil
	if req.PreAssignedDriver != nil {
		preAssigned = *req.PreAssignedDriver
	}

	cmd, err := commands.NewCreateOrderCommand(
		principal.ID,
		req.ExternalRef,
		req.SectorType,
		req.ReceiverName,
		req.ReceiverPhone,
		pickup,
		drop,
		commands.RequirementOverrides{
			OTP:       req.RequireOTP,
			Signature: req.RequireSignature,
			Photo:     req.RequirePhoto,
			Biometric: req.RequireBiometric,
		},
		req.BatchSize,
		preAssigned,
	)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	result, err := s.createOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, createOrderResponse{
		OrderID:   result.OrderID,
		Reference: result.Reference,
		Status:    result.Status.String(),
		OTP:       result.OTP,
	})
}

func (s *Server) handleDispatch(ctx echo.Context) error {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	var req dispatchRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewRequestDispatchCommand(orderID, req.Force)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	result, err := s.requestDispatch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, dispatchResponse{
		Confirmed: result.Confirmed,
		BatchSent: result.BatchSent,
	})
}

func (s *Server) handleAccept(ctx echo.Context) error {
	principal, ok := requireRole(ctx, "driver")
	if !ok {
		return nil
	}

	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, principal.ID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}
	if err := s.acceptOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) handleStartDelivery(ctx echo.Context) error {
	principal, ok := requireRole(ctx, "driver")
	if !ok {
		return nil
	}

	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewStartDeliveryCommand(orderID, principal.ID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}
	if err := s.startDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) handleDeliver(ctx echo.Context) error {
	principal, ok := requireRole(ctx, "driver")
	if !ok {
		return nil
	}

	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	var req deliverRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID, principal.ID, condition.Evidence{
		OTPValue:          req.OTP,
		Signature:         req.Signature,
		SignatureFilename: req.SignatureFilename,
		Photo:             req.Photo,
		PhotoFilename:     req.PhotoFilename,
		BiometricScore:    req.BiometricScore,
	})
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	result, err := s.deliverOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, deliverResponse{
		TotalAmount: result.TotalAmount,
		InvoiceRef:  result.InvoiceRef,
	})
}

func (s *Server) handleFail(ctx echo.Context) error {
	principal, ok := requireRole(ctx, "driver")
	if !ok {
		return nil
	}

	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	var req failRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewFailDeliveryCommand(orderID, principal.ID, req.Reason)
	if err != nil {
		return respondBadRequest(ctx, err)
	}
	if err := s.failDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) handleCancel(ctx echo.Context) error {
	principal, ok := requireRole(ctx, "enterprise")
	if !ok {
		return nil
	}

	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	var req cancelRequest
	if err := ctx.Bind(&req); err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, principal.ID, req.Reason)
	if err != nil {
		return respondBadRequest(ctx, err)
	}
	if err := s.cancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) handleCashPayment(ctx echo.Context) error {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	cmd, err := commands.NewRegisterCashPaymentCommand(orderID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	state, err := s.registerPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, cashPaymentResponse{PaymentState: string(state)})
}

func (s *Server) handleGetOrder(ctx echo.Context) error {
	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	resp, err := s.getOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderDetails(resp))
}

func (s *Server) handleAvailableOrders(ctx echo.Context) error {
	principal, ok := requireRole(ctx, "driver")
	if !ok {
		return nil
	}

	query, err := queries.NewGetAvailableOrdersQuery(principal.ID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	items, err := s.availableOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderList(items))
}

func (s *Server) handleDriverOrders(ctx echo.Context) error {
	principal, ok := requireRole(ctx, "driver")
	if !ok {
		return nil
	}

	query, err := queries.NewGetDriverOrdersQuery(principal.ID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	items, err := s.driverOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderList(items))
}

func (s *Server) handleEnterpriseOrders(ctx echo.Context) error {
	principal, ok := requireRole(ctx, "enterprise")
	if !ok {
		return nil
	}

	query, err := queries.NewGetEnterpriseOrdersQuery(principal.ID)
	if err != nil {
		return respondBadRequest(ctx, err)
	}

	items, err := s.enterpriseOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrderList(items))
}

func hashPassword(password string) (string, error) {
	if password == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
