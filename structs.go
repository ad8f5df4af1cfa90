package main

import "github.com/olorin/nagiosplugin"

// Name of the pseudo package tracking core updates
const corePackage string = "core-upgrade"

// InstalledState is what the local Pakfire database reports
type InstalledState struct {
	Release  string
	Core     int
	Packages map[string]string
}

// RemoteState is what the first complete mirror reports
type RemoteState struct {
	Mirror   string
	Core     int
	Packages map[string]string
}

type Reconciliation struct {
	CoreGap  int
	Outdated []string
	// false if package checks were excluded
	PackagesChecked bool
}

// Metric is a single perfdata entry, min and max are left empty
type Metric struct {
	Label string
	Value float64
	Warn  float64
	Crit  float64
}

type Verdict struct {
	Status   nagiosplugin.Status
	Message  string
	Perfdata []Metric
}
