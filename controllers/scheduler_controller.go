package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"dialnexy/scheduler"
)

type SchedulerController struct {
	Scheduler *scheduler.Scheduler
	Logger    *logrus.Logger
}

// RunScheduler executes one scheduler pass synchronously. Individual
// campaign failures are already logged and counted inside the run, so the
// response is 200 with a coarse summary; only a run that could not start
// (campaign listing failed) comes back as 500.
func (sc *SchedulerController) RunScheduler(c *fiber.Ctx) error {
	summary, err := sc.Scheduler.Run(c.UserContext())
	if err != nil {
		sc.Logger.WithError(err).Error("scheduler run could not start")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":        summary.Message(),
		"campaigns_seen": summary.CampaignsSeen,
		"eligible":       summary.Eligible,
		"dispatched":     summary.Dispatched,
		"skipped":        summary.Skipped,
		"failed":         summary.Failed,
	})
}
