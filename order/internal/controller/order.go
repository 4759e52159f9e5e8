package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal"
	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/localize"
	"github.com/Alturino/storefront/internal/middleware"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/order/internal/otel"
	"github.com/Alturino/storefront/order/pkg/request"
	"github.com/Alturino/storefront/order/pkg/response"
)

type orderService interface {
	CreateOrder(c context.Context, param request.CreateOrder) (response.Checkout, error)
	FindOrderById(c context.Context, param request.FindOrderById, lang localize.Language) (response.Order, error)
	FindOrders(c context.Context, param request.FindOrders) ([]response.Order, error)
	TransitionOrder(c context.Context, orderID uuid.UUID, requested string) (response.Order, error)
}

type OrderController struct {
	service orderService
}

func AttachOrderController(router *mux.Router, service orderService, secretKey string) {
	controller := OrderController{service: service}

	auth := middleware.Auth(secretKey)
	optionalAuth := middleware.OptionalAuth(secretKey)

	orders := router.PathPrefix("/orders").Subrouter()
	orders.Handle("", auth(http.HandlerFunc(controller.FindOrders))).Methods(http.MethodGet)
	orders.Handle("/checkout", optionalAuth(http.HandlerFunc(controller.Checkout))).Methods(http.MethodPost)
	orders.Handle("/{orderId}", optionalAuth(http.HandlerFunc(controller.FindOrderById))).Methods(http.MethodGet)
	orders.Handle(
		"/{orderId}/status",
		auth(middleware.AdminOnly(http.HandlerFunc(controller.TransitionStatus))),
	).Methods(http.MethodPatch)
}

func orderIdFromPath(r *http.Request) (uuid.UUID, error) {
	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		return uuid.Nil, inErrors.NewValidationError(inErrors.FieldError{
			Field:   "orderId",
			Message: "must be a valid uuid",
		})
	}
	return orderID, nil
}

func (ctrl OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderController Checkout").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	body := request.Checkout{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", inErrors.NewValidationError(
			inErrors.FieldError{Field: "body", Message: "request body is invalid"},
		))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("decoded request body")

	param := request.CreateOrder{CustomerForm: body.CustomerForm, Items: body.CartLineItems}
	if userID, err := internal.UserIdFromContext(c); err == nil {
		param.OwnerID = &userID
		logger = logger.With().Str(constants.KEY_USER_ID, userID.String()).Logger()
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "creating order").Logger()
	logger.Info().Msg("creating order")
	c = logger.WithContext(c)
	checkout, err := ctrl.service.CreateOrder(c, param)
	if err != nil {
		err = fmt.Errorf("failed creating order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Str(constants.KEY_ORDER_ID, checkout.OrderID.String()).Msg("created order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "order created",
		"data":       checkout,
	})
}

func (ctrl OrderController) FindOrderById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrderById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderController FindOrderById").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating orderId").Logger()
	logger.Info().Msg("validating orderId")
	orderID, err := orderIdFromPath(r)
	if err != nil {
		err = fmt.Errorf("failed validating orderId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	lang := inHttp.Language(r)
	logger = logger.With().
		Str(constants.KEY_ORDER_ID, orderID.String()).
		Str(constants.KEY_LANGUAGE, string(lang)).
		Logger()
	logger.Info().Msg("validated orderId")

	param := request.FindOrderById{OrderID: orderID}
	if claims, ok := internal.ClaimsFromContext(c); ok {
		param.IsAdmin = claims.IsAdmin()
		if userID, err := uuid.Parse(claims.Subject); err == nil {
			param.UserID = &userID
		}
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "finding order").Logger()
	logger.Info().Msg("finding order")
	c = logger.WithContext(c)
	order, err := ctrl.service.FindOrderById(c, param, lang)
	if err != nil {
		err = fmt.Errorf("failed finding order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found order",
		"data": map[string]interface{}{
			"order": order,
		},
	})
}

func (ctrl OrderController) FindOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController FindOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderController FindOrders").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "getting userId from claims").Logger()
	userID, err := internal.UserIdFromContext(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from claims with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(constants.KEY_USER_ID, userID.String()).Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding orders").Logger()
	logger.Info().Msg("finding orders")
	c = logger.WithContext(c)
	orders, err := ctrl.service.FindOrders(c, request.FindOrders{UserID: userID})
	if err != nil {
		err = fmt.Errorf("failed finding orders with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Int(constants.KEY_ORDERS, len(orders)).Msg("found orders")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found orders",
		"data": map[string]interface{}{
			"orders": orders,
		},
	})
}

func (ctrl OrderController) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "OrderController TransitionStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderController TransitionStatus").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating request").Logger()
	logger.Info().Msg("validating request")
	orderID, err := orderIdFromPath(r)
	if err != nil {
		err = fmt.Errorf("failed validating orderId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	body := request.TransitionStatus{}
	if err = json.NewDecoder(r.Body).Decode(&body); err != nil {
		err = inErrors.NewValidationError(inErrors.FieldError{Field: "body", Message: "request body is invalid"})
	} else {
		err = validate.Struct(body)
	}
	if err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().
		Str(constants.KEY_ORDER_ID, orderID.String()).
		Str(constants.KEY_REQUESTED_STATUS, body.Status).
		Logger()
	logger.Info().Msg("validated request")

	logger = logger.With().Str(constants.KEY_PROCESS, "transitioning order").Logger()
	logger.Info().Msg("transitioning order")
	c = logger.WithContext(c)
	order, err := ctrl.service.TransitionOrder(c, orderID, body.Status)
	if err != nil {
		err = fmt.Errorf("failed transitioning order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Str(constants.KEY_ORDER_STATUS, order.Status).Msg("transitioned order")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "order status updated",
		"data": map[string]interface{}{
			"order": order,
		},
	})
}
