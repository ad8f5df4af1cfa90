package main

import "golang.org/x/exp/slices"

import log "github.com/sirupsen/logrus"

// Reconcile compares local and remote state. A package unknown to the
// mirror counts as outdated.
func Reconcile(installed *InstalledState, remote *RemoteState, excludePackages bool) Reconciliation {
	rec := Reconciliation{CoreGap: remote.Core - installed.Core}

	if excludePackages {
		return rec
	}

	rec.PackagesChecked = true
	rec.Outdated = []string{}
	for name, version := range installed.Packages {
		recent, ok := remote.Packages[name]
		if !ok || recent != version {
			rec.Outdated = append(rec.Outdated, name)
		}
	}
	slices.Sort(rec.Outdated)

	log.Debugf("Outdated packages: (%v)", rec.Outdated)
	return rec
}
