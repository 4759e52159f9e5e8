package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal"
	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/middleware"
	inOtel "github.com/Alturino/storefront/internal/otel"
	orderResponse "github.com/Alturino/storefront/order/pkg/response"
)

type cartService interface {
	FindCart(c context.Context, sessionID string) (response.Cart, error)
	AddItem(c context.Context, sessionID string, param request.AddItem) (response.Cart, error)
	UpdateQuantity(c context.Context, sessionID string, productID uuid.UUID, quantity int) (response.Cart, error)
	RemoveItem(c context.Context, sessionID string, productID uuid.UUID) (response.Cart, error)
	Clear(c context.Context, sessionID string) (response.Cart, error)
	SetDisplay(c context.Context, sessionID string, open *bool) (response.Cart, error)
	Checkout(c context.Context, sessionID string, ownerID *uuid.UUID, param request.Checkout) (orderResponse.Checkout, error)
}

type CartController struct {
	service cartService
}

func AttachCartController(router *mux.Router, service cartService, secretKey string) {
	controller := CartController{service: service}

	carts := router.PathPrefix("/carts").Subrouter()
	carts.HandleFunc("/{sessionId}", controller.FindCart).Methods(http.MethodGet)
	carts.HandleFunc("/{sessionId}", controller.Clear).Methods(http.MethodDelete)
	carts.HandleFunc("/{sessionId}/items", controller.AddItem).Methods(http.MethodPost)
	carts.HandleFunc("/{sessionId}/items/{productId}", controller.UpdateQuantity).Methods(http.MethodPut)
	carts.HandleFunc("/{sessionId}/items/{productId}", controller.RemoveItem).Methods(http.MethodDelete)
	carts.HandleFunc("/{sessionId}/display", controller.SetDisplay).Methods(http.MethodPut)
	carts.Handle(
		"/{sessionId}/checkout",
		middleware.OptionalAuth(secretKey)(http.HandlerFunc(controller.Checkout)),
	).Methods(http.MethodPost)
}

func productIdFromPath(r *http.Request) (uuid.UUID, error) {
	productID, err := uuid.Parse(mux.Vars(r)["productId"])
	if err != nil {
		return uuid.Nil, inErrors.NewValidationError(inErrors.FieldError{
			Field:   "productId",
			Message: "must be a valid uuid",
		})
	}
	return productID, nil
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return inErrors.NewValidationError(inErrors.FieldError{
			Field:   "body",
			Message: "request body is invalid",
		})
	}
	return nil
}

// respond writes the cart envelope or the mapped failure.
func respond(c context.Context, w http.ResponseWriter, message string, cart response.Cart, err error) {
	if err != nil {
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    message,
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (ctrl CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	sessionID := mux.Vars(r)["sessionId"]
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController FindCart").
		Str(constants.KEY_CART_SESSION_ID, sessionID).
		Str(constants.KEY_PROCESS, "finding cart").
		Logger()

	logger.Info().Msg("finding cart")
	c = logger.WithContext(c)
	cart, err := ctrl.service.FindCart(c, sessionID)
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	} else {
		logger.Info().Msg("found cart")
	}
	respond(c, w, "found cart", cart, err)
}

func (ctrl CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	sessionID := mux.Vars(r)["sessionId"]
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController AddItem").
		Str(constants.KEY_CART_SESSION_ID, sessionID).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	body := request.AddItem{}
	if err := decodeBody(r, &body); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "adding item").Logger()
	logger.Info().Msg("adding item")
	c = logger.WithContext(c)
	cart, err := ctrl.service.AddItem(c, sessionID, body)
	if err != nil {
		err = fmt.Errorf("failed adding item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	} else {
		logger.Info().Msg("added item")
	}
	respond(c, w, "item added", cart, err)
}

func (ctrl CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateQuantity")
	defer span.End()

	sessionID := mux.Vars(r)["sessionId"]
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController UpdateQuantity").
		Str(constants.KEY_CART_SESSION_ID, sessionID).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating request").Logger()
	logger.Info().Msg("validating request")
	productID, err := productIdFromPath(r)
	body := request.UpdateQuantity{}
	if err == nil {
		err = decodeBody(r, &body)
	}
	if err != nil {
		err = fmt.Errorf("failed validating request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("validated request")

	logger = logger.With().
		Str(constants.KEY_PROCESS, "updating quantity").
		Str(constants.KEY_PRODUCT_ID, productID.String()).
		Logger()
	logger.Info().Msg("updating quantity")
	c = logger.WithContext(c)
	cart, err := ctrl.service.UpdateQuantity(c, sessionID, productID, body.Quantity)
	if err != nil {
		err = fmt.Errorf("failed updating quantity with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	} else {
		logger.Info().Msg("updated quantity")
	}
	respond(c, w, "quantity updated", cart, err)
}

func (ctrl CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	sessionID := mux.Vars(r)["sessionId"]
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController RemoveItem").
		Str(constants.KEY_CART_SESSION_ID, sessionID).
		Logger()

	productID, err := productIdFromPath(r)
	if err != nil {
		err = fmt.Errorf("failed validating productId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	logger = logger.With().
		Str(constants.KEY_PROCESS, "removing item").
		Str(constants.KEY_PRODUCT_ID, productID.String()).
		Logger()
	logger.Info().Msg("removing item")
	c = logger.WithContext(c)
	cart, err := ctrl.service.RemoveItem(c, sessionID, productID)
	if err != nil {
		err = fmt.Errorf("failed removing item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	} else {
		logger.Info().Msg("removed item")
	}
	respond(c, w, "item removed", cart, err)
}

func (ctrl CartController) Clear(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Clear")
	defer span.End()

	sessionID := mux.Vars(r)["sessionId"]
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController Clear").
		Str(constants.KEY_CART_SESSION_ID, sessionID).
		Str(constants.KEY_PROCESS, "clearing cart").
		Logger()

	logger.Info().Msg("clearing cart")
	c = logger.WithContext(c)
	cart, err := ctrl.service.Clear(c, sessionID)
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	} else {
		logger.Info().Msg("cleared cart")
	}
	respond(c, w, "cart cleared", cart, err)
}

func (ctrl CartController) SetDisplay(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController SetDisplay")
	defer span.End()

	sessionID := mux.Vars(r)["sessionId"]
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController SetDisplay").
		Str(constants.KEY_CART_SESSION_ID, sessionID).
		Logger()

	body := request.SetDisplay{}
	if err := decodeBody(r, &body); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	c = logger.WithContext(c)
	cart, err := ctrl.service.SetDisplay(c, sessionID, body.Open)
	if err != nil {
		err = fmt.Errorf("failed setting display with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
	}
	respond(c, w, "display updated", cart, err)
}

func (ctrl CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Checkout")
	defer span.End()

	sessionID := mux.Vars(r)["sessionId"]
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController Checkout").
		Str(constants.KEY_CART_SESSION_ID, sessionID).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	body := request.Checkout{}
	if err := decodeBody(r, &body); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("decoded request body")

	var ownerID *uuid.UUID
	if userID, err := internal.UserIdFromContext(c); err == nil {
		ownerID = &userID
		logger = logger.With().Str(constants.KEY_USER_ID, userID.String()).Logger()
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "checking out cart").Logger()
	logger.Info().Msg("checking out cart")
	c = logger.WithContext(c)
	checkout, err := ctrl.service.Checkout(c, sessionID, ownerID, body)
	if err != nil {
		err = fmt.Errorf("failed checking out cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Str(constants.KEY_ORDER_ID, checkout.OrderID.String()).Msg("checked out cart")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    "order created",
		"data":       checkout,
	})
}
