package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"inventario-api/internal/config"
	"inventario-api/internal/database"
	"inventario-api/internal/handler"
	"inventario-api/internal/metrics"
	"inventario-api/internal/middleware"
	"inventario-api/internal/model"
	"inventario-api/internal/repository"
	"inventario-api/internal/router"
	"inventario-api/internal/service"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL(), cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure database schema: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	if err := ensureDefaultUser(context.Background(), userRepo); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed default user: %w", err)
	}
	slog.Info("database ready")

	authService, err := service.NewAuthService(cfg.JWTSecret, cfg.JWTAccessTTL, userRepo)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authMiddleware := middleware.NewAuthMiddleware(authService)
	authHandler := handler.NewAuthHandler(authService)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	bodegas := handler.NewResource(repository.New(pool, repository.Bodegas()), "bodega_inventario", "bodegas_inventario", handler.SmallID)
	grupos := handler.NewResource(repository.New(pool, repository.Grupos()), "grupo_inventario", "grupos_inventario", handler.SmallID)
	unidades := handler.NewResource(repository.New(pool, repository.UnidadesMedida()), "unidad_medida", "unidades_medida", handler.StringID)
	estados := handler.NewResource(repository.New(pool, repository.Estados()), "estado_elemento_inventario", "estados_elemento_inventario", handler.SmallID)
	elementos := handler.NewResource(repository.New(pool, repository.Elementos()), "elemento_inventario", "elementos_inventario", handler.IntID)
	compuestos := handler.NewResource(repository.New(pool, repository.ElementosCompuestos()), "elemento_compuesto_inventario", "elementos_compuestos_inventario", handler.IntID)
	porCompuesto := handler.NewResource(repository.New(pool, repository.ElementosPorCompuesto()), "elemento_por_elemento_compuesto", "elementos_por_elemento_compuesto", handler.IntID)
	tiposPrecio := handler.NewResource(repository.New(pool, repository.TiposPrecio()), "tipo_precio_elemento_inventario", "tipos_precio_elemento_inventario", handler.SmallID)
	precios := handler.NewResource(repository.New(pool, repository.Precios()), "precio_elemento_inventario", "precios_elemento_inventario", handler.IntID)
	tiposMovimiento := handler.NewResource(repository.New(pool, repository.TiposMovimiento()), "tipo_movimiento_inventario", "tipos_movimiento_inventario", handler.SmallID)
	movimientos := handler.NewResource(repository.New(pool, repository.Movimientos()), "movimiento_inventario", "movimientos_inventario", handler.IntID)
	usuarios := handler.NewResource(userRepo.Repository, "usuario", "usuarios", handler.IntID)
	usuarioHandler := handler.NewUsuarioHandler(userRepo.Repository)

	mountResources := func(inv chi.Router) {
		bodegas.Mount(inv)
		grupos.Mount(inv)
		unidades.Mount(inv)
		estados.Mount(inv)
		elementos.Mount(inv)
		compuestos.Mount(inv)
		porCompuesto.Mount(inv)
		tiposPrecio.Mount(inv)
		precios.Mount(inv)
		tiposMovimiento.Mount(inv)
		movimientos.Mount(inv)
		usuarios.MountWithCreate(inv, usuarioHandler.Create)
	}

	appRouter := router.New(cfg, authMiddleware, authHandler, collector, registry, mountResources)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			db.Close,
		},
	}, nil
}

// ensureDefaultUser seeds an admin account on an empty users table so a fresh
// deployment can log in.
func ensureDefaultUser(ctx context.Context, users *repository.UserRepository) error {
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := service.HashPassword("admin123")
	if err != nil {
		return err
	}

	if _, err := users.Create(ctx, model.Usuario{Username: "admin", Password: hash}); err != nil {
		return err
	}

	slog.Warn("seeded default admin user; change its password", "username", "admin")
	return nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
