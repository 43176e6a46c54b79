package notifier_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/gamekeeper/gamekeeper/pkg/logger"
	"github.com/gamekeeper/gamekeeper/pkg/notifier"
)

func testLogger() logger.Logger {
	var buf bytes.Buffer
	return logger.CreateLoggerWithOutput("", "debug", &buf)
}

func TestNotifier_Disabled(t *testing.T) {
	n := notifier.New(notifier.Config{Enabled: false}, testLogger())

	// Disabled notifier must be a silent no-op
	n.NotifyHarvestSuccess(3, 0, 2*time.Second)
	n.NotifyHarvestFailure(errors.New("copy failed"))
}

func TestNotifier_HarvestSuccess(t *testing.T) {
	n := notifier.New(notifier.Config{Enabled: true}, testLogger())

	// This would normally show a system notification.
	// In tests, we just verify it doesn't crash.
	n.NotifyHarvestSuccess(3, 1, 5*time.Second)
}

func TestNotifier_HarvestFailure(t *testing.T) {
	n := notifier.New(notifier.Config{Enabled: true}, testLogger())

	n.NotifyHarvestFailure(errors.New("source directory does not exist"))
}
