package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/auth"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/booking"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ListingUC *usecase.ListingUseCase
	BookingUC *booking.BookingUseCase
	Tokens    TokenVerifier
}

// AppOptions ajustes de la aplicación Fiber.
type AppOptions struct {
	Name        string
	CORSOrigins string
	DocsPath    string // swagger.json; se omite /docs si el archivo no existe
	Logger      zerolog.Logger
}

// NewApp construye la aplicación Fiber con middlewares, /health y las rutas de la API.
func NewApp(opts AppOptions, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(opts.Logger))
	if opts.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: opts.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if opts.DocsPath != "" {
		if _, err := os.Stat(opts.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: opts.DocsPath,
				Path:     "docs",
				Title:    opts.Name,
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.Tokens)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	api.Get("/protected", requireAuth, authHandler.Protected)

	// Catálogo (público)
	listingHandler := NewListingHandler(deps.ListingUC)
	api.Get("/listings", listingHandler.List)
	api.Get("/listings/:id", listingHandler.GetByID)

	// Reservas (Bearer Token)
	bookingHandler := NewBookingHandler(deps.BookingUC)
	bookings := api.Group("/bookings", requireAuth)
	bookings.Post("/", bookingHandler.Create)
	bookings.Get("/", bookingHandler.ListMine)
	bookings.Get("/:id", bookingHandler.Get)
	bookings.Get("/:id/receipt", bookingHandler.Receipt)

	// Admin (Bearer Token + rol admin)
	admin := api.Group("/admin", requireAuth, RequireAdmin())
	admin.Get("/listings", listingHandler.AdminList)
	admin.Post("/listings", listingHandler.Create)
	admin.Get("/listings/:id", listingHandler.AdminGet)
	admin.Put("/listings/:id", listingHandler.Update)
	admin.Delete("/listings/:id", listingHandler.Delete)
	admin.Get("/bookings", bookingHandler.AdminList)
	admin.Get("/bookings/:id", bookingHandler.AdminGet)
	admin.Put("/bookings/:id", bookingHandler.UpdateStatus)
}
