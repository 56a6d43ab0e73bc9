// Copyright (C) 2024 Open Government Forms
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package api

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"

	"github.com/open-gov-forms/license-apply/internal/accesscontrol"
	"github.com/open-gov-forms/license-apply/internal/auth"
	"github.com/open-gov-forms/license-apply/internal/core"
	"github.com/open-gov-forms/license-apply/internal/core/application"
	"github.com/open-gov-forms/license-apply/internal/core/identity"
	"github.com/open-gov-forms/license-apply/internal/core/review"
	"github.com/open-gov-forms/license-apply/internal/core/wizard"
	"github.com/open-gov-forms/license-apply/internal/database/repositories"
	"github.com/open-gov-forms/license-apply/internal/echohttp"
)

func health(c core.Context) error {
	return core.JSONMessage(c, http.StatusOK, "License application service is running")
}

func Start(db core.DB) {
	rbac, err := accesscontrol.NewCasbinRBAC(db, viper.GetString("RBAC_MODEL_PATH"))
	if err != nil {
		panic(err)
	}
	if err := accesscontrol.Bootstrap(rbac); err != nil {
		panic(err)
	}

	// init all repositories using the provided database
	applicationRepository := repositories.NewApplicationRepository(db)
	userRepository := repositories.NewUserRepository(db)

	applicationService := application.NewService(applicationRepository)
	identityService := identity.NewService(userRepository, rbac)

	if err := identityService.SeedDefaultUsers(); err != nil {
		panic(err)
	}

	// init all http controllers using the services
	applicationController := application.NewHTTPController(applicationService)
	wizardController := wizard.NewHTTPController(applicationService)
	identityController := identity.NewHTTPController(identityService)
	reviewController := review.NewHTTPController(applicationService)

	sessionStore := auth.NewStore(viper.GetDuration("SESSION_TTL"))

	server := echohttp.Server()

	server.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	apiRouter := server.Group("/api")
	apiRouter.GET("/health", health)

	applicationsRouter := apiRouter.Group("/applications")
	applicationsRouter.POST("", applicationController.Create)
	applicationsRouter.GET("", applicationController.List)
	applicationsRouter.GET("/:id", applicationController.Read)
	applicationsRouter.PATCH("/:id/status", applicationController.UpdateStatus)
	applicationsRouter.DELETE("/:id", applicationController.Delete)

	// everything below this line carries a session cookie and csrf protection
	formRouter := server.Group("", auth.SessionMiddleware(sessionStore), auth.CSRFMiddleware())

	formRouter.GET("/login", identityController.LoginPage)
	formRouter.POST("/login", identityController.Login)
	formRouter.GET("/logout", identityController.Logout)

	formRouter.GET("/admin/login", identityController.AdminLoginPage)
	formRouter.POST("/admin/login", identityController.AdminLogin)
	formRouter.GET("/admin/logout", identityController.AdminLogout)

	// the confirmation page stays readable after logout
	formRouter.GET("/confirmation", wizardController.Confirmation)

	wizardGuard := core.AccessControlMiddleware(rbac, core.RoleUser, accesscontrol.ObjectWizard, accesscontrol.ActionRead, "/login")
	wizardRouter := formRouter.Group("", wizardGuard)
	wizardRouter.GET("/personal-details", wizardController.PersonalDetails)
	wizardRouter.POST("/personal-details", wizardController.SubmitPersonalDetails)
	wizardRouter.GET("/business-details", wizardController.BusinessDetails)
	wizardRouter.POST("/business-details", wizardController.SubmitBusinessDetails)
	wizardRouter.GET("/license-details", wizardController.LicenseDetails)
	wizardRouter.POST("/license-details", wizardController.SubmitLicenseDetails)
	wizardRouter.GET("/summary", wizardController.Summary)
	wizardRouter.POST("/summary", wizardController.SubmitSummary,
		core.AccessControlMiddleware(rbac, core.RoleUser, accesscontrol.ObjectWizard, accesscontrol.ActionSubmit, "/login"))

	adminGuard := core.AccessControlMiddleware(rbac, core.RoleAdmin, accesscontrol.ObjectApplications, accesscontrol.ActionReview, "/admin/login")
	adminRouter := formRouter.Group("/admin", adminGuard)
	adminRouter.GET("/applications", reviewController.Panel)
	adminRouter.POST("/applications/:id/status", reviewController.Decide)

	routes := server.Routes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	// print all registered routes
	for _, route := range routes {
		if route.Method != "echo_route_not_found" {
			slog.Info(route.Path, "method", route.Method)
		}
	}
	slog.Error("failed to start server", "err", server.Start(":"+viper.GetString("PORT")).Error())
}
