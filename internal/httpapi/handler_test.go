package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"grocery-be/internal/address"
	"grocery-be/internal/auth"
	"grocery-be/internal/cart"
	"grocery-be/internal/category"
	"grocery-be/internal/config"
	"grocery-be/internal/metrics"
	"grocery-be/internal/order"
	"grocery-be/internal/product"
	"grocery-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret"

type MockProductService struct{ mock.Mock }

func (m *MockProductService) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) GetProductBySlug(ctx context.Context, slug string) (*product.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context, opts product.ListOptions) ([]*product.Product, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*product.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductService) CreateProduct(ctx context.Context, params product.CreateProductParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, params product.UpdateProductParams) (*product.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) SetAvailability(ctx context.Context, id uuid.UUID, active bool) (*product.Product, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockCategoryService struct{ mock.Mock }

func (m *MockCategoryService) GetCategories(ctx context.Context) ([]*category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *MockCategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryService) AddCategory(ctx context.Context, name string, sortOrder int) (*category.Category, error) {
	args := m.Called(ctx, name, sortOrder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) AddToCart(ctx context.Context, params cart.AddItemParams) (*cart.CartItem, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, params cart.UpdateItemParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockCartService) RemoveFromCart(ctx context.Context, params cart.UpdateItemParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockCartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCartService) GetCart(ctx context.Context, userID uuid.UUID) (*cart.View, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.View), args.Error(1)
}

func (m *MockCartService) Sync(ctx context.Context, userID uuid.UUID, guestItems []cart.GuestItem) (*cart.View, error) {
	args := m.Called(ctx, userID, guestItems)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.View), args.Error(1)
}

type MockAddressService struct{ mock.Mock }

func (m *MockAddressService) List(ctx context.Context) ([]*address.Address, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*address.Address), args.Error(1)
}

func (m *MockAddressService) Get(ctx context.Context, addressID uuid.UUID) (*address.Address, error) {
	args := m.Called(ctx, addressID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressService) Create(ctx context.Context, input address.CreateAddressInput) (*address.Address, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressService) Update(ctx context.Context, input address.UpdateAddressInput) (*address.Address, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddressService) Delete(ctx context.Context, addressID uuid.UUID) error {
	args := m.Called(ctx, addressID)
	return args.Error(0)
}

func (m *MockAddressService) VerifyPostcode(ctx context.Context, postcode string) (bool, string, error) {
	args := m.Called(ctx, postcode)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockAddressService) ListServicePostcodes(ctx context.Context) ([]*address.ServicePostcode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*address.ServicePostcode), args.Error(1)
}

func (m *MockAddressService) AddServicePostcode(ctx context.Context, postcode, cityName string) (*address.ServicePostcode, error) {
	args := m.Called(ctx, postcode, cityName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.ServicePostcode), args.Error(1)
}

func (m *MockAddressService) RemoveServicePostcode(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) Checkout(ctx context.Context, params order.CheckoutParams) (*order.Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, orderID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*order.Order, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderService) Transition(ctx context.Context, params order.TransitionParams) (*order.Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) AdminGetOrder(ctx context.Context, orderID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) AdminListOrders(ctx context.Context, status *order.Status, limit, offset int32) ([]*order.Order, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) GetOrCreate(ctx context.Context, identity *auth.Identity) (*user.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type testEnv struct {
	handler    *Handler
	router     *gin.Engine
	products   *MockProductService
	categories *MockCategoryService
	carts      *MockCartService
	addresses  *MockAddressService
	orders     *MockOrderService
	users      *MockUserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin-key"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:    testJWTSecret,
		AdminKeyHash: string(adminHash),
		Checkout: config.CheckoutOptions{
			DeliveryFee:    decimal.RequireFromString("29.00"),
			MinOrderAmount: decimal.RequireFromString("100.00"),
			Currency:       "DKK",
		},
	}

	env := &testEnv{
		products:   new(MockProductService),
		categories: new(MockCategoryService),
		carts:      new(MockCartService),
		addresses:  new(MockAddressService),
		orders:     new(MockOrderService),
		users:      new(MockUserService),
	}

	verifier, err := auth.NewVerifier("mock", testJWTSecret)
	require.NoError(t, err)

	env.handler = NewHandler(
		cfg,
		env.products, env.categories, env.carts,
		env.addresses, env.orders, env.users,
		verifier,
		metrics.New(prometheus.NewRegistry()),
	)
	env.router = env.handler.NewRouter()
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func asUser(t *testing.T, userID uuid.UUID) func(*http.Request) {
	t.Helper()
	token, err := auth.GenerateSessionToken(testJWTSecret, userID, time.Hour)
	require.NoError(t, err)
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

func asAdmin(r *http.Request) {
	r.Header.Set("X-Admin-Key", "admin-key")
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)

	env.products.On("ListProducts", mock.Anything, mock.MatchedBy(func(o product.ListOptions) bool {
		return o.OnlyActive && o.Limit == 20 && o.Page == 1
	})).Return([]*product.Product{
		{ID: uuid.New(), Name: "Milk", IsActive: true},
	}, int64(1), nil).Once()

	w := env.do(t, http.MethodGet, "/api/v1/products", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Milk")
	env.products.AssertExpectations(t)
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)

	t.Run("ByID", func(t *testing.T) {
		id := uuid.New()
		env.products.On("GetProduct", mock.Anything, id).
			Return(&product.Product{ID: id, Name: "Milk"}, nil).Once()

		w := env.do(t, http.MethodGet, "/api/v1/products/"+id.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("BySlug", func(t *testing.T) {
		env.products.On("GetProductBySlug", mock.Anything, "whole-milk").
			Return(&product.Product{ID: uuid.New(), Slug: "whole-milk"}, nil).Once()

		w := env.do(t, http.MethodGet, "/api/v1/products/whole-milk", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		id := uuid.New()
		env.products.On("GetProduct", mock.Anything, id).
			Return(nil, product.ErrProductNotFound).Once()

		w := env.do(t, http.MethodGet, "/api/v1/products/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestVerifyPostcode(t *testing.T) {
	env := newTestEnv(t)

	env.addresses.On("VerifyPostcode", mock.Anything, "2200").
		Return(true, "København N", nil).Once()

	w := env.do(t, http.MethodGet, "/api/v1/postcodes/2200/verify", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "København N")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Success", func(t *testing.T) {
		email := "jens@example.com"
		env.users.On("GetOrCreate", mock.Anything, mock.MatchedBy(func(i *auth.Identity) bool {
			return i.Email == email
		})).Return(&user.User{ID: uuid.New(), Email: &email}, nil).Once()

		w := env.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"token": "dev_email:" + email})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
	})

	t.Run("BadProviderToken", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"token": "nonsense"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MissingToken", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCartEndpoints(t *testing.T) {
	userID := uuid.New()

	t.Run("RequiresAuth", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodGet, "/api/v1/cart", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("AddToCart", func(t *testing.T) {
		env := newTestEnv(t)
		productID := uuid.New()
		env.carts.On("AddToCart", mock.Anything, cart.AddItemParams{
			UserID: userID, ProductID: productID, Quantity: 2,
		}).Return(&cart.CartItem{ID: uuid.New(), Quantity: 2}, nil).Once()

		w := env.do(t, http.MethodPost, "/api/v1/cart/items",
			gin.H{"product_id": productID, "quantity": 2}, asUser(t, userID))

		assert.Equal(t, http.StatusCreated, w.Code)
		env.carts.AssertExpectations(t)
	})

	t.Run("AddToCartZeroQuantity", func(t *testing.T) {
		env := newTestEnv(t)

		w := env.do(t, http.MethodPost, "/api/v1/cart/items",
			gin.H{"product_id": uuid.New(), "quantity": 0}, asUser(t, userID))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Sync", func(t *testing.T) {
		env := newTestEnv(t)
		productID := uuid.New()
		env.carts.On("Sync", mock.Anything, userID, []cart.GuestItem{
			{ProductID: productID, Quantity: 3},
		}).Return(&cart.View{ItemCount: 3, Subtotal: decimal.RequireFromString("30.00")}, nil).Once()

		w := env.do(t, http.MethodPost, "/api/v1/cart/sync",
			gin.H{"items": []gin.H{{"product_id": productID, "quantity": 3}}}, asUser(t, userID))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCheckout(t *testing.T) {
	userID := uuid.New()
	addressID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t)
		env.orders.On("Checkout", mock.Anything, mock.MatchedBy(func(p order.CheckoutParams) bool {
			return p.UserID == userID && p.AddressID == addressID && p.IdempotencyKey == nil
		})).Return(&order.Order{
			ID: uuid.New(), Status: order.StatusPlaced,
			Total: decimal.RequireFromString("100.00"), InvoiceNumber: "INV-2026-000001",
		}, nil).Once()

		w := env.do(t, http.MethodPost, "/api/v1/checkout",
			gin.H{"address_id": addressID}, asUser(t, userID))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "INV-2026-000001")
	})

	t.Run("ForwardsIdempotencyKey", func(t *testing.T) {
		env := newTestEnv(t)
		env.orders.On("Checkout", mock.Anything, mock.MatchedBy(func(p order.CheckoutParams) bool {
			return p.IdempotencyKey != nil && *p.IdempotencyKey == "key-1"
		})).Return(&order.Order{ID: uuid.New(), Status: order.StatusPlaced}, nil).Once()

		w := env.do(t, http.MethodPost, "/api/v1/checkout",
			gin.H{"address_id": addressID}, asUser(t, userID),
			func(r *http.Request) { r.Header.Set("Idempotency-Key", "key-1") })

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("BelowMinimumIsConflict", func(t *testing.T) {
		env := newTestEnv(t)
		env.orders.On("Checkout", mock.Anything, mock.Anything).
			Return(nil, order.ErrBelowMinimum).Once()

		w := env.do(t, http.MethodPost, "/api/v1/checkout",
			gin.H{"address_id": addressID}, asUser(t, userID))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("UnservedPostcodeIsUnprocessable", func(t *testing.T) {
		env := newTestEnv(t)
		env.orders.On("Checkout", mock.Anything, mock.Anything).
			Return(nil, order.ErrPostcodeNotServed).Once()

		w := env.do(t, http.MethodPost, "/api/v1/checkout",
			gin.H{"address_id": addressID}, asUser(t, userID))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("EmptyCartIsConflict", func(t *testing.T) {
		env := newTestEnv(t)
		env.orders.On("Checkout", mock.Anything, mock.Anything).
			Return(nil, order.ErrCartEmpty).Once()

		w := env.do(t, http.MethodPost, "/api/v1/checkout",
			gin.H{"address_id": addressID}, asUser(t, userID))

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestGetInvoice(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	placed := &order.Order{
		ID:     orderID,
		UserID: userID,
		Status: order.StatusPlaced,
		AddressSnapshot: address.Snapshot{
			Street: "Nørrebrogade 12", Postcode: "2200", City: "København N",
		},
		Subtotal:      decimal.RequireFromString("90.00"),
		DeliveryFee:   decimal.RequireFromString("10.00"),
		Total:         decimal.RequireFromString("100.00"),
		InvoiceNumber: "INV-2026-000001",
	}

	t.Run("DocumentJSON", func(t *testing.T) {
		env := newTestEnv(t)
		env.orders.On("GetOrder", mock.Anything, orderID, userID).Return(placed, nil).Once()

		w := env.do(t, http.MethodGet, "/api/v1/orders/"+orderID.String()+"/invoice", nil, asUser(t, userID))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		assert.Contains(t, w.Body.String(), "INV-2026-000001")
	})

	t.Run("RenderedText", func(t *testing.T) {
		env := newTestEnv(t)
		env.orders.On("GetOrder", mock.Anything, orderID, userID).Return(placed, nil).Once()

		w := env.do(t, http.MethodGet, "/api/v1/orders/"+orderID.String()+"/invoice", nil,
			asUser(t, userID),
			func(r *http.Request) { r.Header.Set("Accept", "text/plain") })

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		assert.Contains(t, w.Body.String(), "INVOICE")
	})

	t.Run("OtherUsersOrderIs404", func(t *testing.T) {
		env := newTestEnv(t)
		env.orders.On("GetOrder", mock.Anything, orderID, userID).
			Return(nil, order.ErrOrderNotFound).Once()

		w := env.do(t, http.MethodGet, "/api/v1/orders/"+orderID.String()+"/invoice", nil, asUser(t, userID))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdminEndpoints(t *testing.T) {
	t.Run("RequiresAdminKey", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodGet, "/api/v1/admin/orders", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("UpdateOrderStatus", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := uuid.New()
		env.orders.On("Transition", mock.Anything, order.TransitionParams{
			OrderID: orderID, Next: order.StatusConfirmed, ChangedBy: "admin",
		}).Return(&order.Order{ID: orderID, Status: order.StatusConfirmed}, nil).Once()

		w := env.do(t, http.MethodPut, "/api/v1/admin/orders/"+orderID.String()+"/status",
			gin.H{"status": "CONFIRMED"}, asAdmin)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "CONFIRMED")
	})

	t.Run("InvalidTransitionIsConflict", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := uuid.New()
		env.orders.On("Transition", mock.Anything, mock.Anything).
			Return(nil, order.ErrInvalidTransition).Once()

		w := env.do(t, http.MethodPut, "/api/v1/admin/orders/"+orderID.String()+"/status",
			gin.H{"status": "DELIVERED"}, asAdmin)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("ConcurrentTransitionIsConflict", func(t *testing.T) {
		env := newTestEnv(t)
		orderID := uuid.New()
		env.orders.On("Transition", mock.Anything, mock.Anything).
			Return(nil, order.ErrStatusChanged).Once()

		w := env.do(t, http.MethodPut, "/api/v1/admin/orders/"+orderID.String()+"/status",
			gin.H{"status": "CONFIRMED"}, asAdmin)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("AddPostcode", func(t *testing.T) {
		env := newTestEnv(t)
		env.addresses.On("AddServicePostcode", mock.Anything, "2100", "København Ø").
			Return(&address.ServicePostcode{ID: 2, Postcode: "2100", CityName: "København Ø", IsActive: true}, nil).Once()

		w := env.do(t, http.MethodPost, "/api/v1/admin/postcodes",
			gin.H{"postcode": "2100", "city_name": "København Ø"}, asAdmin)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("DuplicatePostcodeIsConflict", func(t *testing.T) {
		env := newTestEnv(t)
		env.addresses.On("AddServicePostcode", mock.Anything, "2200", "København N").
			Return(nil, address.ErrDuplicatePostcode).Once()

		w := env.do(t, http.MethodPost, "/api/v1/admin/postcodes",
			gin.H{"postcode": "2200", "city_name": "København N"}, asAdmin)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
