package cli

// ConfigDirs exposes configDirs for tests.
var ConfigDirs = configDirs
