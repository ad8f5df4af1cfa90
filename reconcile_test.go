package main

import "testing"

import "github.com/stretchr/testify/assert"

func TestReconcile(t *testing.T) {
	installed := &InstalledState{Core: 140, Packages: map[string]string{
		"bash":  "5.1.0",
		"nano":  "7.2.12",
		"local": "1.0.1",
	}}
	remote := &RemoteState{Core: 145, Packages: map[string]string{
		"bash": "5.1.8.7",
		"nano": "7.2.12",
		"tor":  "0.4.7.13.84",
	}}

	rec := Reconcile(installed, remote, false)
	assert.Equal(t, 5, rec.CoreGap)
	assert.True(t, rec.PackagesChecked)
	// missing on the mirror counts as outdated
	assert.Equal(t, []string{"bash", "local"}, rec.Outdated)
}

func TestReconcileUpToDate(t *testing.T) {
	installed := &InstalledState{Core: 150, Packages: map[string]string{"bash": "5.1.0"}}
	remote := &RemoteState{Core: 149, Packages: map[string]string{"bash": "5.1.0"}}

	rec := Reconcile(installed, remote, false)
	assert.Equal(t, -1, rec.CoreGap)
	assert.Empty(t, rec.Outdated)
}

func TestReconcileExcludePackages(t *testing.T) {
	installed := &InstalledState{Core: 140, Packages: map[string]string{"bash": "5.1.0"}}
	remote := &RemoteState{Core: 140, Packages: map[string]string{"bash": "5.2.0"}}

	rec := Reconcile(installed, remote, true)
	assert.Equal(t, 0, rec.CoreGap)
	assert.False(t, rec.PackagesChecked)
	assert.Nil(t, rec.Outdated)
}
