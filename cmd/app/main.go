package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sbilus/storefront-backend/internal/cart"
	"github.com/sbilus/storefront-backend/internal/category"
	"github.com/sbilus/storefront-backend/internal/checkout"
	"github.com/sbilus/storefront-backend/internal/client"
	"github.com/sbilus/storefront-backend/internal/config"
	"github.com/sbilus/storefront-backend/internal/home"
	"github.com/sbilus/storefront-backend/internal/order"
	"github.com/sbilus/storefront-backend/internal/product"
	"github.com/sbilus/storefront-backend/internal/stock"
)

// repositories groups the storage backends for one run: Postgres when
// DATABASE_URL is set, the in-memory sample catalog otherwise.
type repositories struct {
	products   product.Repository
	categories category.Repository
	stock      stock.Repository
	clients    client.Repository
	orders     order.Repository
}

func main() {
	cfg := config.Load()

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	setupCORS(app)

	var repos repositories
	if cfg.DatabaseURL != "" {
		db := mustOpenDB(cfg.DatabaseURL)
		defer db.Close()
		if cfg.BootstrapSchema {
			bootstrapSchema(context.Background(), db)
		}
		repos = postgresRepositories(db)
	} else {
		log.Printf("[WARN] DATABASE_URL is not set, serving the in-memory sample catalog")
		repos = inMemoryRepositories(cfg)
	}

	productOpts := product.TransformOptions{
		DefaultSizeQuantity: cfg.DefaultSizeQuantity,
		FallbackImage:       cfg.DefaultProductImage,
	}
	productService := product.NewService(repos.products, productOpts)
	categoryService := category.NewService(repos.categories)

	cartService := cart.NewService(cartRepository(cfg), productService)
	checkoutService := checkout.NewService(cartService, checkout.FlatRateQuoter{Fee: cfg.DeliveryFee}, checkout.Options{
		StoreName: cfg.StoreName,
		BaseURL:   cfg.WhatsAppBaseURL,
		Phone:     cfg.WhatsAppNumber,
	})
	contactURL := checkout.HandoffURL(cfg.WhatsAppBaseURL, cfg.WhatsAppNumber, "Olá! Vim pela loja "+cfg.StoreName)

	// public routes; category before product so /product/category is not taken as an id
	home.NewHandler(home.NewService(categoryService, productService, contactURL)).RegisterPublicRoutes(app)
	category.NewHandler(categoryService).RegisterPublicRoutes(app)
	product.NewHandler(productService, cfg.AllowReset).RegisterPublicRoutes(app)

	// session-scoped cart and checkout
	app.Use("/api/v1/cart", cart.SessionMiddleware(cfg.CartTTL))
	app.Use("/api/v1/checkout", cart.SessionMiddleware(cfg.CartTTL))
	cart.NewHandler(cartService).RegisterPublicRoutes(app)
	checkout.NewHandler(checkoutService).RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	stock.NewHandler(stock.NewService(repos.stock)).RegisterProtectedRoutes(app)
	order.NewHandler(order.NewService(repos.orders)).RegisterProtectedRoutes(app)
	client.NewHandler(client.NewService(repos.clients)).RegisterProtectedRoutes(app)

	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + cart.SessionHeader,
		ExposeHeaders: cart.SessionHeader,
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		panic(err)
	}

	return db
}

func postgresRepositories(db *sql.DB) repositories {
	return repositories{
		products:   product.NewPostgresRepository(db),
		categories: category.NewPostgresRepository(db),
		stock:      stock.NewPostgresRepository(db),
		clients:    client.NewPostgresRepository(db),
		orders:     order.NewPostgresRepository(db),
	}
}

func inMemoryRepositories(cfg config.Config) repositories {
	rows := product.SampleRows(time.Now().UTC())
	products := product.NewInMemoryRepository(rows)

	seen := map[string]bool{}
	categories := make([]category.Category, 0)
	for _, r := range rows {
		if r.CategoryName != nil && !seen[*r.CategoryName] {
			seen[*r.CategoryName] = true
			categories = append(categories, category.Category{Name: *r.CategoryName})
		}
	}

	products.SetDefaultSizeQuantity(cfg.DefaultSizeQuantity)

	return repositories{
		products:   products,
		categories: category.NewInMemoryRepository(categories),
		stock:      products,
		clients:    client.NewInMemoryRepository(nil),
		orders:     order.NewInMemoryRepository(nil),
	}
}

func cartRepository(cfg config.Config) cart.Repository {
	if cfg.RedisURL == "" {
		return cart.NewInMemoryRepository(cfg.CartTTL)
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		panic(err)
	}
	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		panic(err)
	}
	return cart.NewRedisRepository(rdb, cfg.CartTTL)
}
