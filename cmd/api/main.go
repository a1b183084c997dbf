package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/auth"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/booking"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/usecase"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/application/validation"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/domain/repository"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/infrastructure/memory"
	infrapdf "github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/infrastructure/pdf"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/infrastructure/postgres"
	httpRouter "github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/internal/interfaces/http"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/pkg/config"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/pkg/jwt"
	"github.com/Abdullah1Mansoor/bscs21043-ProjectPhase02/pkg/logger"
)

type repositories struct {
	users    repository.UserRepository
	listings repository.ListingRepository
	bookings repository.BookingRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage).
		Msg("iniciando aplicación")
	log.Debug().
		Str("http_addr", cfg.HTTP.Addr()).
		Int("jwt_expiration_minutes", cfg.JWT.Expiration).
		Str("docs_path", cfg.HTTP.DocsPath).
		Msg("configuración cargada")

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer repos.close()

	tokens, err := jwt.NewService(jwt.Config{
		Secret: cfg.JWT.Secret,
		TTL:    time.Duration(cfg.JWT.Expiration) * time.Minute,
		Issuer: cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de tokens")
	}

	v := validation.New()
	authUC := auth.NewAuthUseCase(repos.users, tokens, v)
	listingUC := usecase.NewListingUseCase(repos.listings, v)
	bookingUC := booking.NewBookingUseCase(
		repos.bookings, repos.listings, repos.users,
		infrapdf.NewReceiptGenerator(cfg.App.Name), v,
	)

	// Escalado de rol fuera de banda: cuenta admin desde ADMIN_EMAIL / ADMIN_PASSWORD.
	if cfg.Admin.Enabled() {
		admin, changed, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("asegurar cuenta admin")
		}
		log.Info().Str("email", admin.Email).Bool("changed", changed).Msg("cuenta admin disponible")
	}

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		DocsPath:    cfg.HTTP.DocsPath,
		Logger:      log.With().Str("component", "http").Logger(),
	}, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ListingUC: listingUC,
		BookingUC: bookingUC,
		Tokens:    tokens,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.Storage == config.StorageMemory {
		store := memory.NewStore()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &repositories{
			users:    memory.NewUserRepository(store),
			listings: memory.NewListingRepository(store),
			bookings: memory.NewBookingRepository(store),
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Strs("migrations", applied).Msg("esquema aplicado")
	}
	return &repositories{
		users:    postgres.NewUserRepository(pool),
		listings: postgres.NewListingRepository(pool),
		bookings: postgres.NewBookingRepository(pool),
		close:    pool.Close,
	}, nil
}
