package cli

// Hooks for external tests.
var (
	NewHarvestCmd = newHarvestCmd
	NewScanCmd    = newScanCmd
	NewWatchCmd   = newWatchCmd
	GetConfigPath = getConfigPath
	RunStatus     = runStatus
	RunWatch      = runWatch
)

// SetConfigFile overrides the --config flag value for a test.
func SetConfigFile(path string) {
	cfgFile = path
}
