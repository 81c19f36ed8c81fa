package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	controller "dialnexy/controllers"
	"dialnexy/middleware"
	"dialnexy/scheduler"
)

// SetupSchedulerRoutes wires the scheduler trigger endpoint. The endpoint is
// driven by an external cron; the rate limiter keeps a misconfigured cron
// from stampeding the providers.
func SetupSchedulerRoutes(app *fiber.App, sched *scheduler.Scheduler, log *logrus.Logger) {
	schedulerController := &controller.SchedulerController{
		Scheduler: sched,
		Logger:    log,
	}

	group := app.Group("/scheduler", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	group.Post("/run", middleware.TriggerRateLimiter(), schedulerController.RunScheduler)
}
