// Package notifier provides harvest completion notifications
package notifier

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/gamekeeper/gamekeeper/pkg/logger"
)

// HarvestNotifier handles desktop notifications for harvest runs
type HarvestNotifier struct {
	enabled      bool
	successSound bool
	failureSound bool
	logger       logger.Logger
}

// Config represents notification configuration
type Config struct {
	Enabled      bool
	SuccessSound bool
	FailureSound bool
}

// New creates a new harvest notifier
func New(config Config, log logger.Logger) *HarvestNotifier {
	return &HarvestNotifier{
		enabled:      config.Enabled,
		successSound: config.SuccessSound,
		failureSound: config.FailureSound,
		logger:       log,
	}
}

// NotifyHarvestSuccess notifies that a harvest run completed
func (n *HarvestNotifier) NotifyHarvestSuccess(games int, failures int, duration time.Duration) {
	if !n.enabled {
		return
	}

	title := "✅ Harvest Complete"
	message := fmt.Sprintf("%d games harvested in %s", games, duration.Round(time.Millisecond))
	if failures > 0 {
		message += fmt.Sprintf(" (%d build failures)", failures)
	}

	n.send(title, message, n.successSound)
}

// NotifyHarvestFailure notifies that a harvest run aborted
func (n *HarvestNotifier) NotifyHarvestFailure(err error) {
	if !n.enabled {
		return
	}

	title := "❌ Harvest Failed"
	message := fmt.Sprintf("%v", err)

	n.send(title, message, n.failureSound)
}

func (n *HarvestNotifier) send(title, message string, sound bool) {
	if err := beeep.Notify(title, message, ""); err != nil {
		if n.logger != nil {
			n.logger.Debug("Failed to send notification", logger.WithField("error", err))
		}
	}

	if sound {
		if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			if n.logger != nil {
				n.logger.Debug("Failed to play sound", logger.WithField("error", err))
			}
		}
	}
}
