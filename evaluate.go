package main

import "fmt"
import "math"
import "strings"

import "github.com/olorin/nagiosplugin"
import log "github.com/sirupsen/logrus"

type checkResult struct {
	status nagiosplugin.Status
	clause string
}

// Evaluate maps the reconciliation through the thresholds. The final
// status is the worst status of the core, package and reboot checks.
func Evaluate(installed *InstalledState, remote *RemoteState, rec Reconciliation, th Thresholds, needReboot bool, perfdata bool) Verdict {
	results := []checkResult{coreCheck(installed.Core, remote.Core, rec.CoreGap, th)}
	if rec.PackagesChecked {
		results = append(results, packagesCheck(rec.Outdated, th))
	}
	if needReboot {
		results = append(results, checkResult{th.RebootSeverity, "system reboot required"})
	}

	verdict := Verdict{Status: worst(results), Message: joinClauses(results)}
	if perfdata {
		verdict.Perfdata = metrics(rec, th)
	}

	return verdict
}

func coreCheck(local, recent, gap int, th Thresholds) checkResult {
	outdated := fmt.Sprintf("Core update (%d) outdated (%d)", local, recent)
	if gap >= th.CoreCritical {
		return checkResult{nagiosplugin.CRITICAL, outdated}
	}
	if gap >= th.CoreWarning {
		return checkResult{nagiosplugin.WARNING, outdated}
	}
	return checkResult{nagiosplugin.OK, fmt.Sprintf("Core update (%d) up to date", local)}
}

func packagesCheck(outdated []string, th Thresholds) checkResult {
	result := checkResult{nagiosplugin.OK, "packages up to date"}
	if len(outdated) > 0 {
		result.clause = fmt.Sprintf("packages outdated (%s)", strings.Join(outdated, ", "))
	}

	if len(outdated) >= th.PackagesCritical {
		result.status = nagiosplugin.CRITICAL
	} else if len(outdated) >= th.PackagesWarning {
		result.status = nagiosplugin.WARNING
	}
	return result
}

func worst(results []checkResult) nagiosplugin.Status {
	status := nagiosplugin.OK
	for _, r := range results {
		if r.status > status {
			status = r.status
		}
	}
	return status
}

func joinClauses(results []checkResult) string {
	clauses := make([]string, 0, len(results))
	for _, r := range results {
		clauses = append(clauses, r.clause)
	}
	return strings.Join(clauses, ", ")
}

func metrics(rec Reconciliation, th Thresholds) []Metric {
	perf := []Metric{{
		Label: "system_updates",
		Value: float64(rec.CoreGap),
		Warn:  float64(th.CoreWarning),
		Crit:  float64(th.CoreCritical),
	}}
	if rec.PackagesChecked {
		perf = append(perf, Metric{
			Label: "outdated_packages",
			Value: float64(len(rec.Outdated)),
			Warn:  float64(th.PackagesWarning),
			Crit:  float64(th.PackagesCritical),
		})
	}
	return perf
}

// Report hands the verdict to the plugin, Finish prints and exits
func (v Verdict) Report(check *nagiosplugin.Check) {
	for _, m := range v.Perfdata {
		// min and max stay empty
		err := check.AddPerfDatum(m.Label, "", m.Value, math.Inf(-1), math.Inf(1), m.Warn, m.Crit)
		if err != nil {
			log.Errorf("Could not add perfdata %s: %s", m.Label, err)
		}
	}
	check.AddResult(v.Status, v.Message)
}
