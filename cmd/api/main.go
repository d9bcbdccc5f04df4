package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/crm-service/internal/api/http"
	"github.com/spec-kit/crm-service/internal/api/http/handlers"
	"github.com/spec-kit/crm-service/internal/authz"
	"github.com/spec-kit/crm-service/internal/config"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/filestore"
	"github.com/spec-kit/crm-service/internal/observability"
	"github.com/spec-kit/crm-service/internal/persistence"
	"github.com/spec-kit/crm-service/internal/repository"
	"github.com/spec-kit/crm-service/internal/service"
	"github.com/spec-kit/crm-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	caseRepo := repository.NewCaseRepository(pool)
	slaRepo := repository.NewSLARepository(pool)
	proposalRepo := repository.NewProposalRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	fileRepo := repository.NewFileRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	metrics := observability.NewMetrics()
	permCache := authz.NewRedisPermissionCache(redis.Client, cfg.Authz, logger)
	engine := authz.NewEngine(userRepo, permCache, metrics, logger)
	verifier := authz.NewTokenVerifier(cfg.Identity.JWTSecret)

	dispatcher := events.NewInMemoryDispatcher(logger)

	store, err := filestore.New(cfg.Files, logger)
	if err != nil {
		logger.Fatal("failed to init file store", zap.Error(err))
	}

	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		Engine:     engine,
		Dispatcher: dispatcher,
	})
	roleService := service.NewRoleService(service.RoleDependencies{
		RoleRepo:     roleRepo,
		UserRepo:     userRepo,
		CustomerRepo: customerRepo,
		Engine:       engine,
		Dispatcher:   dispatcher,
	})
	customerService := service.NewCustomerService(service.CustomerDependencies{
		CustomerRepo: customerRepo,
		OrderRepo:    orderRepo,
		Dispatcher:   dispatcher,
	})
	caseService := service.NewCaseService(service.CaseDependencies{
		CaseRepo:     caseRepo,
		CustomerRepo: customerRepo,
		UserRepo:     userRepo,
		SLARepo:      slaRepo,
		Dispatcher:   dispatcher,
	})
	slaService := service.NewSLAService(service.SLADependencies{
		SLARepo:    slaRepo,
		CaseRepo:   caseRepo,
		Dispatcher: dispatcher,
	})
	proposalService := service.NewProposalService(service.ProposalDependencies{
		ProposalRepo: proposalRepo,
		CustomerRepo: customerRepo,
		Dispatcher:   dispatcher,
	})
	projectService := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo:  projectRepo,
		CustomerRepo: customerRepo,
		Dispatcher:   dispatcher,
	})
	auditService := service.NewAuditService(service.AuditDependencies{
		AuditRepo: auditRepo,
		Retention: cfg.Audit.Retention(),
		Logger:    logger,
	})
	auditService.RegisterHandlers(dispatcher)
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		DashboardRepo: dashboardRepo,
		RoleRepo:      roleRepo,
		Logger:        logger,
	})
	fileService := service.NewFileService(service.FileDependencies{
		FileRepo:       fileRepo,
		Store:          store,
		AllowedTypes:   cfg.Files.AllowedMimeTypes,
		MaxUploadBytes: cfg.Files.MaxUploadBytes,
		Dispatcher:     dispatcher,
	})

	retention, err := worker.NewRetentionWorker(cfg.Audit.SweepSchedule, auditService, logger)
	if err != nil {
		logger.Fatal("failed to schedule retention sweep", zap.Error(err))
	}
	retention.Start()
	defer retention.Stop()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Files.MaxUploadBytes) + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:       handlers.NewUsersHandler(userService),
		Roles:       handlers.NewRolesHandler(roleService),
		Customers:   handlers.NewCustomersHandler(customerService),
		Cases:       handlers.NewCasesHandler(caseService),
		Proposals:   handlers.NewProposalsHandler(proposalService),
		Projects:    handlers.NewProjectsHandler(projectService),
		SLA:         handlers.NewSLAHandler(slaService),
		Audits:      handlers.NewAuditsHandler(auditService),
		Files:       handlers.NewFilesHandler(fileService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
		Permissions: handlers.NewPermissionsHandler(engine),
		Identity:    authz.Identity(cfg.Identity, verifier),
		Engine:      engine,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
