package main

import "errors"
import "fmt"
import "strings"

import "github.com/olorin/nagiosplugin"

// Paths holds the locations of the local Pakfire files
type Paths struct {
	SystemRelease string
	InstalledDir  string
	ServerList    string
	RebootMarker  string
}

// Thresholds are fixed for the whole run
type Thresholds struct {
	CoreWarning      int
	CoreCritical     int
	PackagesWarning  int
	PackagesCritical int
	ExcludePackages  bool
	RebootSeverity   nagiosplugin.Status
}

type Config struct {
	Debug        bool
	ShowPerfdata bool
	ShowVersion  bool
	ShowHelp     bool
	Mirrors      []string
	Thresholds   Thresholds
	Paths        Paths
}

func DefaultPaths() Paths {
	return Paths{
		SystemRelease: "/etc/system-release",
		InstalledDir:  "/opt/pakfire/db/installed",
		ServerList:    "/opt/pakfire/db/lists/server-list.db",
		RebootMarker:  "/var/run/need_reboot",
	}
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		CoreWarning:      1,
		CoreCritical:     3,
		PackagesWarning:  1,
		PackagesCritical: 5,
		RebootSeverity:   nagiosplugin.WARNING,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Thresholds: DefaultThresholds(),
		Paths:      DefaultPaths(),
	}
}

// Validate rejects configuration the checks cannot work with
func (c *Config) Validate() error {
	for _, mirror := range c.Mirrors {
		if strings.TrimSpace(mirror) == "" {
			return errors.New("empty mirror given")
		}
	}
	return nil
}

func parseRebootSeverity(s string) (nagiosplugin.Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w":
		return nagiosplugin.WARNING, nil
	case "c":
		return nagiosplugin.CRITICAL, nil
	}
	return nagiosplugin.UNKNOWN, fmt.Errorf("invalid need-reboot level %q (expected w or c)", s)
}
