package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"taskAdmin/internal/config"
	"taskAdmin/internal/handlers"
	"taskAdmin/internal/logger"
	"taskAdmin/internal/middleware"
	"taskAdmin/internal/migrations"
	identityInmemory "taskAdmin/internal/repository/identity/inmemory"
	identityPostgres "taskAdmin/internal/repository/identity/postgres"
	taskInmemory "taskAdmin/internal/repository/task/inmemory"
	taskPostgres "taskAdmin/internal/repository/task/postgres"
	"taskAdmin/internal/service"
	"taskAdmin/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	config    *config.Config
	server    *http.Server
	worker    *worker.DeadlineWorker
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	var taskRepo service.TaskRepository
	var identityRepo service.IdentityRepository

	switch a.config.Repository.Type {
	case "postgres":
		pool, err := a.newPool(ctx)
		if err != nil {
			return err
		}
		a.shutdowns = append(a.shutdowns, func() {
			logger.Info("Закрытие всех соединений PostgreSQL")
			pool.Close()
		})

		if err := migrations.Up(a.config.Database.URL); err != nil {
			return err
		}

		taskRepo = taskPostgres.New(pool)
		identityRepo = identityPostgres.New(pool)
	case "inmemory":
		taskRepo = taskInmemory.NewTaskStorage()
		identityRepo = identityInmemory.NewIdentityStorage()
	default:
		return fmt.Errorf("неизвестный тип репозитория: %s", a.config.Repository.Type)
	}

	taskService := service.NewTaskService(taskRepo, identityRepo)
	taskHandler := handlers.NewTaskHandler(&taskService)

	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: a.newRouter(&taskHandler),
	}

	if a.config.Worker.Enabled {
		a.worker = worker.NewDeadlineWorker(taskRepo, a.config.Worker.Interval, a.config.Worker.BatchSize)
	}

	return nil
}

func (a *App) newPool(ctx context.Context) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.URL)
	if err != nil {
		logger.Error("Ошибка разбора database.url", err)
		return nil, fmt.Errorf("разбор database.url: %w", err)
	}

	poolConfig.MaxConns = int32(a.config.Database.MaxConnections)
	poolConfig.MinConns = int32(a.config.Database.MinConnections)
	poolConfig.MaxConnIdleTime = a.config.Database.IdleTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Успешное создание подключения к PostgreSQL")
	return pool, nil
}

func (a *App) newRouter(taskHandler *handlers.TaskHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.RateLimit(100))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", handlers.AccountIDHeader},
		MaxAge:         300,
	}))

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks) // GET /tasks?company_id=&page=&limit=&status=
		r.Post("/", taskHandler.PostTask) // POST /tasks

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", taskHandler.GetTaskByID)       // GET /tasks/{id}
			r.Put("/", taskHandler.UpdateTaskContent) // PUT /tasks/{id}

			r.Post("/status", taskHandler.ChangeTaskStatus)        // POST /tasks/{id}/status
			r.Get("/permissions", taskHandler.GetTaskPermissions)  // GET /tasks/{id}/permissions

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", taskHandler.GetComments)  // GET /tasks/{id}/comments
				r.Post("/", taskHandler.PostComment) // POST /tasks/{id}/comments
			})
		})
	})

	r.Get("/identity/{id}", taskHandler.ResolveIdentity) // GET /identity/{id}
	r.Get("/health", taskHandler.HealthCheck)

	return r
}

// Run блокируется до остановки сервера
func (a *App) Run(ctx context.Context) error {
	if a.worker != nil {
		go a.worker.Start(ctx)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Ошибка остановки сервера", err)
		}
	}()

	logger.Info("Server started")
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("запуск сервера: %w", err)
	}

	a.Shutdown()
	return nil
}

func (a *App) Shutdown() {
	// в обратном порядке, как defer
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
