package scheduler

import (
	"fmt"
	"time"

	"dialnexy/models"
	"dialnexy/utils"
)

// IsActiveNow reports whether the schedule's dialing window covers the given
// instant. The window is the closed interval [StartTime, EndTime] on the
// listed weekday names, evaluated in the schedule's own timezone. Zero-padded
// "HH:MM" strings compare lexically the same as numerically, so the string
// comparison is kept.
//
// Any malformed schedule or unresolvable timezone returns an error; callers
// treat that as "not active" (fail closed).
func IsActiveNow(schedule models.Schedule, now time.Time) (bool, error) {
	if err := utils.ValidateStruct(schedule); err != nil {
		return false, fmt.Errorf("malformed schedule: %w", err)
	}

	loc, err := time.LoadLocation(schedule.Timezone)
	if err != nil {
		return false, fmt.Errorf("unknown timezone %q: %w", schedule.Timezone, err)
	}

	local := now.In(loc)
	weekday := local.Weekday().String()

	listed := false
	for _, d := range schedule.Weekdays {
		if d == weekday {
			listed = true
			break
		}
	}
	if !listed {
		return false, nil
	}

	current := local.Format("15:04")
	if current < schedule.StartTime || current > schedule.EndTime {
		return false, nil
	}

	return true, nil
}
