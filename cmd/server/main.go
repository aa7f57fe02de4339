package main

import (
	"log"

	"grocery-be/internal/address"
	"grocery-be/internal/auth"
	"grocery-be/internal/cart"
	"grocery-be/internal/category"
	"grocery-be/internal/config"
	"grocery-be/internal/db"
	"grocery-be/internal/httpapi"
	"grocery-be/internal/logger"
	"grocery-be/internal/metrics"
	"grocery-be/internal/order"
	"grocery-be/internal/product"
	"grocery-be/internal/user"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	metricsStore := metrics.New(prometheus.DefaultRegisterer)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, cartRepo, addressRepo, cfg.Checkout, metricsStore)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	verifier, err := auth.NewVerifier(cfg.AuthProvider, cfg.JWTSecret)
	if err != nil {
		log.Fatalf("failed to build token verifier: %v", err)
	}

	handler := httpapi.NewHandler(
		cfg,
		productSvc, categorySvc, cartSvc,
		addressSvc, orderSvc, userSvc,
		verifier, metricsStore,
	)

	router := handler.NewRouter()

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(router.Run(":" + cfg.AppPort))
}
