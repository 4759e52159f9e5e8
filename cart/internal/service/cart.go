package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Alturino/storefront/cart/internal/otel"
	"github.com/Alturino/storefront/cart/pkg/cart"
	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/constants"
	inErrors "github.com/Alturino/storefront/internal/errors"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/pricing"
	"github.com/Alturino/storefront/internal/validate"
	orderRequest "github.com/Alturino/storefront/order/pkg/request"
	orderResponse "github.com/Alturino/storefront/order/pkg/response"
)

type SnapshotStore interface {
	Load(c context.Context, sessionID string) (cart.Snapshot, error)
	Save(c context.Context, sessionID string, snapshot cart.Snapshot) error
}

type Flusher interface {
	Enqueue(sessionID string, snapshot cart.Snapshot)
}

type OrderCreator interface {
	CreateOrder(c context.Context, param orderRequest.CreateOrder) (orderResponse.Checkout, error)
}

type session struct {
	mu   sync.Mutex
	cart *cart.Cart
}

// CartService keeps one cart aggregate per session in memory. Every request
// on a session runs under that session's lock.
type CartService struct {
	store    SnapshotStore
	flusher  Flusher
	orders   OrderCreator
	settings pricing.Settings

	mu       sync.Mutex
	sessions map[string]*session
}

func NewCartService(
	store SnapshotStore,
	flusher Flusher,
	orders OrderCreator,
	settings pricing.Settings,
) *CartService {
	return &CartService{
		store:    store,
		flusher:  flusher,
		orders:   orders,
		settings: settings,
		sessions: map[string]*session{},
	}
}

func parseSessionID(sessionID string) (string, error) {
	id, err := uuid.Parse(sessionID)
	if err != nil {
		return "", inErrors.NewValidationError(inErrors.FieldError{
			Field:   "sessionId",
			Message: "must be a valid uuid",
		})
	}
	return id.String(), nil
}

// withSession runs fn with the hydrated cart of sessionID under the session
// lock.
func (svc *CartService) withSession(
	c context.Context,
	sessionID string,
	fn func(c context.Context, cart *cart.Cart) error,
) error {
	c, span := otel.Tracer.Start(c, "CartService withSession")
	defer span.End()

	sessionID, err := parseSessionID(sessionID)
	if err != nil {
		inOtel.RecordError(err, span)
		return err
	}

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService withSession").
		Str(constants.KEY_CART_SESSION_ID, sessionID).
		Logger()

	svc.mu.Lock()
	sess, ok := svc.sessions[sessionID]
	if !ok {
		sess = &session{}
		svc.sessions[sessionID] = sess
		otel.ActiveSessions.Inc()
	}
	svc.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.cart == nil {
		logger = logger.With().Str(constants.KEY_PROCESS, "hydrating cart").Logger()
		logger.Trace().Msg("hydrating cart")
		snapshot, err := svc.store.Load(c, sessionID)
		if err != nil && !errors.Is(err, inErrors.ErrCacheMiss) {
			err = fmt.Errorf("%w: failed hydrating cart with error=%w", inErrors.ErrPersistence, err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
		hydrated := cart.New()
		hydrated.Restore(snapshot)
		background := context.WithoutCancel(c)
		hydrated.Subscribe(func(snapshot cart.Snapshot) {
			svc.persist(background, sessionID, snapshot)
		})
		sess.cart = hydrated
		logger.Trace().Int(constants.KEY_CART_ITEMS_COUNT, hydrated.TotalItemCount()).Msg("hydrated cart")
	}

	return fn(logger.WithContext(c), sess.cart)
}

// persist hands the snapshot to the flush worker and saves inline only when
// there is no worker.
func (svc *CartService) persist(c context.Context, sessionID string, snapshot cart.Snapshot) {
	if svc.flusher != nil {
		svc.flusher.Enqueue(sessionID, snapshot)
		return
	}

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService persist").
		Str(constants.KEY_CART_SESSION_ID, sessionID).
		Str(constants.KEY_PROCESS, "saving cart snapshot inline").
		Logger()

	c, cancel := context.WithTimeout(c, 3*time.Second)
	defer cancel()
	if err := svc.store.Save(c, sessionID, snapshot); err != nil {
		err = fmt.Errorf("failed saving cart snapshot inline with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
	}
}

func (svc *CartService) mutated(c context.Context, operation string) {
	otel.CartMutations.Add(c, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

func (svc *CartService) FindCart(c context.Context, sessionID string) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService FindCart")
	defer span.End()

	var result response.Cart
	err := svc.withSession(c, sessionID, func(c context.Context, crt *cart.Cart) error {
		result = response.FromCart(sessionID, crt, svc.settings)
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", err)
		inOtel.RecordError(err, span)
		return response.Cart{}, err
	}
	return result, nil
}

func (svc *CartService) AddItem(
	c context.Context,
	sessionID string,
	param request.AddItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService AddItem").
		Str(constants.KEY_PRODUCT_ID, param.ProductID.String()).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating item").Logger()
	logger.Trace().Msg("validating item")
	if err := validate.Struct(param); err != nil {
		err = fmt.Errorf("failed validating item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	price, err := cart.NewPrice(param.UnitPrice)
	if err != nil {
		err = inErrors.NewValidationError(inErrors.FieldError{Field: "unitPrice", Message: err.Error()})
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	quantity := cart.One
	if param.Quantity != nil {
		quantity, err = cart.NewQuantity(*param.Quantity)
		if err != nil {
			err = inErrors.NewValidationError(inErrors.FieldError{Field: "quantity", Message: err.Error()})
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
	}
	logger.Trace().Msg("validated item")

	logger = logger.With().
		Str(constants.KEY_PROCESS, "adding item").
		Int(constants.KEY_PRODUCT_QUANTITY, quantity.Int()).
		Logger()
	var result response.Cart
	err = svc.withSession(c, sessionID, func(c context.Context, crt *cart.Cart) error {
		err := crt.AddItem(param.ProductID, price, quantity, param.DisplayName, param.DisplayImage)
		if err != nil {
			return inErrors.NewValidationError(inErrors.FieldError{Field: "quantity", Message: err.Error()})
		}
		svc.mutated(c, "add_item")
		result = response.FromCart(sessionID, crt, svc.settings)
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed adding item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Int(constants.KEY_CART_ITEMS_COUNT, result.ItemCount).Msg("added item")

	return result, nil
}

func (svc *CartService) UpdateQuantity(
	c context.Context,
	sessionID string,
	productID uuid.UUID,
	quantity int,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService UpdateQuantity").
		Str(constants.KEY_PRODUCT_ID, productID.String()).
		Int(constants.KEY_PRODUCT_QUANTITY, quantity).
		Str(constants.KEY_PROCESS, "updating quantity").
		Logger()

	var result response.Cart
	err := svc.withSession(c, sessionID, func(c context.Context, crt *cart.Cart) error {
		if err := crt.UpdateQuantity(productID, quantity); err != nil {
			return inErrors.NewValidationError(inErrors.FieldError{Field: "quantity", Message: err.Error()})
		}
		svc.mutated(c, "update_quantity")
		result = response.FromCart(sessionID, crt, svc.settings)
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed updating quantity with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Int(constants.KEY_CART_ITEMS_COUNT, result.ItemCount).Msg("updated quantity")

	return result, nil
}

func (svc *CartService) RemoveItem(
	c context.Context,
	sessionID string,
	productID uuid.UUID,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService RemoveItem").
		Str(constants.KEY_PRODUCT_ID, productID.String()).
		Str(constants.KEY_PROCESS, "removing item").
		Logger()

	var result response.Cart
	err := svc.withSession(c, sessionID, func(c context.Context, crt *cart.Cart) error {
		crt.RemoveItem(productID)
		svc.mutated(c, "remove_item")
		result = response.FromCart(sessionID, crt, svc.settings)
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed removing item with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("removed item")

	return result, nil
}

func (svc *CartService) Clear(c context.Context, sessionID string) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService Clear").
		Str(constants.KEY_PROCESS, "clearing cart").
		Logger()

	var result response.Cart
	err := svc.withSession(c, sessionID, func(c context.Context, crt *cart.Cart) error {
		crt.Clear()
		svc.mutated(c, "clear")
		result = response.FromCart(sessionID, crt, svc.settings)
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed clearing cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("cleared cart")

	return result, nil
}

// SetDisplay sets the display flag, toggling it when open is nil. The flag
// lives only in memory.
func (svc *CartService) SetDisplay(
	c context.Context,
	sessionID string,
	open *bool,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService SetDisplay")
	defer span.End()

	var result response.Cart
	err := svc.withSession(c, sessionID, func(c context.Context, crt *cart.Cart) error {
		if open == nil {
			crt.Toggle()
		} else {
			crt.SetOpen(*open)
		}
		result = response.FromCart(sessionID, crt, svc.settings)
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed setting display with error=%w", err)
		inOtel.RecordError(err, span)
		return response.Cart{}, err
	}
	return result, nil
}

// Checkout materializes the session cart into an order. The cart is cleared
// only once the order is persisted; any failure leaves it untouched.
func (svc *CartService) Checkout(
	c context.Context,
	sessionID string,
	ownerID *uuid.UUID,
	param request.Checkout,
) (orderResponse.Checkout, error) {
	c, span := otel.Tracer.Start(c, "CartService Checkout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService Checkout").
		Logger()

	var checkout orderResponse.Checkout
	err := svc.withSession(c, sessionID, func(c context.Context, crt *cart.Cart) error {
		items := crt.Items()
		lines := make([]orderRequest.CartLineItem, len(items))
		for i, item := range items {
			lines[i] = orderRequest.CartLineItem{
				ProductID:   item.ProductID,
				UnitPrice:   item.UnitPrice.Decimal(),
				Quantity:    item.Quantity.Int(),
				DisplayName: item.DisplayName,
			}
		}

		logger = logger.With().
			Str(constants.KEY_PROCESS, "creating order").
			Int(constants.KEY_CART_ITEMS_COUNT, len(lines)).
			Logger()
		logger.Info().Msg("creating order")
		created, err := svc.orders.CreateOrder(logger.WithContext(c), orderRequest.CreateOrder{
			OwnerID:      ownerID,
			CustomerForm: param.CustomerForm,
			Items:        lines,
		})
		if err != nil {
			return err
		}
		logger = logger.With().Str(constants.KEY_ORDER_ID, created.OrderID.String()).Logger()
		logger.Info().Msg("created order")

		crt.Clear()
		svc.mutated(c, "checkout")
		checkout = created
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed checking out cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return orderResponse.Checkout{}, err
	}
	logger.Info().Msg("cleared cart after checkout")

	return checkout, nil
}
