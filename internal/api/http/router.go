package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/http/handlers"
	"github.com/spec-kit/crm-service/internal/authz"
	"github.com/spec-kit/crm-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Users       *handlers.UsersHandler
	Roles       *handlers.RolesHandler
	Customers   *handlers.CustomersHandler
	Cases       *handlers.CasesHandler
	Proposals   *handlers.ProposalsHandler
	Projects    *handlers.ProjectsHandler
	SLA         *handlers.SLAHandler
	Audits      *handlers.AuditsHandler
	Files       *handlers.FilesHandler
	Dashboard   *handlers.DashboardHandler
	Permissions *handlers.PermissionsHandler
	Identity    fiber.Handler
	Engine      *authz.Engine
}

// RegisterRoutes wires HTTP routes. Reads require at least read-only
// access to the owning page; mutations require full control. Holders of
// the admin page pass every guard.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	read := func(page string) fiber.Handler {
		return authz.RequirePage(cfg.Engine, page, domain.LevelReadOnly, domain.LevelFullControl)
	}
	write := func(page string) fiber.Handler {
		return authz.RequirePage(cfg.Engine, page, domain.LevelFullControl)
	}

	api := app.Group("/api", cfg.Identity)

	users := api.Group("/users")
	users.Get("", read(domain.PageUsers), cfg.Users.List)
	users.Get("/:id", read(domain.PageUsers), cfg.Users.Get)
	users.Post("", write(domain.PageUsers), cfg.Users.Create)
	users.Patch("/:id", write(domain.PageUsers), cfg.Users.Update)
	users.Post("/:id/deactivate", write(domain.PageUsers), cfg.Users.Deactivate)

	roles := api.Group("/roles")
	roles.Get("", read(domain.PageRoles), cfg.Roles.List)
	roles.Get("/:id", read(domain.PageRoles), cfg.Roles.Get)
	roles.Get("/:id/members", read(domain.PageRoles), cfg.Roles.Members)
	roles.Get("/:id/coverage", read(domain.PageRoles), cfg.Roles.Coverage)
	roles.Post("", write(domain.PageRoles), cfg.Roles.Create)
	roles.Put("/:id", write(domain.PageRoles), cfg.Roles.Update)
	roles.Delete("/:id", write(domain.PageRoles), cfg.Roles.Delete)
	roles.Post("/:id/members", write(domain.PageRoles), cfg.Roles.AssignUser)
	roles.Delete("/:id/members/:userId", write(domain.PageRoles), cfg.Roles.UnassignUser)
	roles.Put("/:id/coverage", write(domain.PageRoles), cfg.Roles.SetCoverage)

	customers := api.Group("/customers")
	customers.Get("", read(domain.PageCustomers), cfg.Customers.List)
	customers.Get("/:id", read(domain.PageCustomers), cfg.Customers.Get)
	customers.Get("/:id/orders", read(domain.PageCustomers), cfg.Customers.ListOrders)
	customers.Post("", write(domain.PageCustomers), cfg.Customers.Create)
	customers.Patch("/:id", write(domain.PageCustomers), cfg.Customers.Update)
	customers.Post("/:id/orders", write(domain.PageCustomers), cfg.Customers.CreateOrder)

	orders := api.Group("/orders")
	orders.Get("/:id", read(domain.PageOrders), cfg.Customers.GetOrder)
	orders.Patch("/:id", write(domain.PageOrders), cfg.Customers.UpdateOrder)

	cases := api.Group("/cases")
	cases.Get("", read(domain.PageCases), cfg.Cases.List)
	cases.Get("/:id", read(domain.PageCases), cfg.Cases.Get)
	cases.Post("", write(domain.PageCases), cfg.Cases.Create)
	cases.Patch("/:id", write(domain.PageCases), cfg.Cases.Update)
	cases.Post("/:id/status", write(domain.PageCases), cfg.Cases.UpdateStatus)
	cases.Post("/:id/priority", write(domain.PageCases), cfg.Cases.UpdatePriority)
	cases.Post("/:id/first-response", write(domain.PageCases), cfg.Cases.MarkFirstResponse)

	proposals := api.Group("/proposals")
	proposals.Get("", read(domain.PageProposals), cfg.Proposals.List)
	proposals.Get("/:id", read(domain.PageProposals), cfg.Proposals.Get)
	proposals.Post("", write(domain.PageProposals), cfg.Proposals.Create)
	proposals.Patch("/:id", write(domain.PageProposals), cfg.Proposals.Update)
	proposals.Post("/:id/status", write(domain.PageProposals), cfg.Proposals.UpdateStatus)
	proposals.Post("/:id/stage", write(domain.PageProposals), cfg.Proposals.UpdateStage)

	projects := api.Group("/projects")
	projects.Get("", read(domain.PageProjects), cfg.Projects.List)
	projects.Get("/:id", read(domain.PageProjects), cfg.Projects.Get)
	projects.Post("", write(domain.PageProjects), cfg.Projects.Create)
	projects.Patch("/:id", write(domain.PageProjects), cfg.Projects.Update)
	projects.Post("/:id/status", write(domain.PageProjects), cfg.Projects.UpdateStatus)

	sla := api.Group("/sla-thresholds")
	sla.Get("", read(domain.PageSLA), cfg.SLA.List)
	sla.Get("/:id", read(domain.PageSLA), cfg.SLA.Get)
	sla.Post("", write(domain.PageSLA), cfg.SLA.Create)
	sla.Put("/:id", write(domain.PageSLA), cfg.SLA.Update)

	api.Get("/audits", read(domain.PageAudit), cfg.Audits.List)

	files := api.Group("/files")
	files.Get("", read(domain.PageFiles), cfg.Files.Get)
	files.Get("/:id/content", read(domain.PageFiles), cfg.Files.Download)
	files.Get("/:id/thumbnail", read(domain.PageFiles), cfg.Files.Thumbnail)
	files.Post("", write(domain.PageFiles), cfg.Files.Upload)
	files.Delete("/:id", write(domain.PageFiles), cfg.Files.Delete)

	api.Get("/dashboard", read(domain.PageDashboard), cfg.Dashboard.Get)

	api.Post("/permissions/refresh", write(domain.PageAdmin), cfg.Permissions.Refresh)
}
