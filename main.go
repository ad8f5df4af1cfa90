package main

// check_pakfire checks an IPFire host for outstanding core updates
// and outdated Pakfire packages.

import "errors"
import "fmt"
import "net/http"
import "os"

import "github.com/DavidGamba/go-getoptions"
import "github.com/hashicorp/go-cleanhttp"
import "github.com/olorin/nagiosplugin"
import log "github.com/sirupsen/logrus"

const Version string = "1.4.0"

func main() {
	// Parse options
	cfg, opt, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Printf("UNKNOWN: Failed to parse options: %v\n", err)
		os.Exit(3)
	}

	if cfg.ShowHelp {
		fmt.Print(opt.Help())
		os.Exit(0)
	}

	if cfg.ShowVersion {
		fmt.Println(Version)
		os.Exit(0)
	}

	setupLogging(cfg.Debug)
	log.Debugf("Options: %+v", cfg)

	// Initialize Nagios module
	check := nagiosplugin.NewCheck()
	defer check.Finish()

	run(cfg, cleanhttp.DefaultPooledClient()).Report(check)
}

// run performs the whole check. Failures that stop the check end up
// as an UNKNOWN verdict.
func run(cfg *Config, client *http.Client) Verdict {
	// Local state
	installed, err := ReadInstalledState(cfg.Paths)
	if err != nil {
		return Verdict{Status: nagiosplugin.UNKNOWN, Message: err.Error()}
	}

	// Mirrors from options or system
	mirrors := ResolveMirrors(cfg.Mirrors, cfg.Paths.ServerList)

	// Remote state
	remote, err := NewFetcher(client).Fetch(mirrors)
	if errors.Is(err, ErrNoMirror) {
		log.Debugf("%s", err)
		return Verdict{Status: nagiosplugin.UNKNOWN, Message: ErrNoMirror.Error()}
	}
	if err != nil {
		return Verdict{Status: nagiosplugin.UNKNOWN, Message: err.Error()}
	}

	rec := Reconcile(installed, remote, cfg.Thresholds.ExcludePackages)
	return Evaluate(installed, remote, rec, cfg.Thresholds, rebootRequired(cfg.Paths.RebootMarker), cfg.ShowPerfdata)
}

func parseOptions(args []string) (*Config, *getoptions.GetOpt, error) {
	cfg := DefaultConfig()
	var needReboot string

	opt := getoptions.New()
	opt.BoolVar(&cfg.ShowHelp, "help", false, opt.Alias("h", "?"))
	opt.BoolVar(&cfg.ShowVersion, "version", false,
		opt.Description("Print version and exit"))
	opt.BoolVar(&cfg.Debug, "debug", false, opt.Alias("d"),
		opt.Description("enable debugging outputs"))
	opt.BoolVar(&cfg.ShowPerfdata, "show-perfdata", false, opt.Alias("P"),
		opt.Description("enables performance data"))
	opt.BoolVar(&cfg.Thresholds.ExcludePackages, "exclude-packages", false, opt.Alias("e"),
		opt.Description("disables checking for package updates"))
	opt.IntVar(&cfg.Thresholds.PackagesWarning, "packages-warning", cfg.Thresholds.PackagesWarning, opt.Alias("w"),
		opt.Description("warning threshold for outdated packages"), opt.ArgName("INTEGER"))
	opt.IntVar(&cfg.Thresholds.PackagesCritical, "packages-critical", cfg.Thresholds.PackagesCritical, opt.Alias("c"),
		opt.Description("critical threshold for outdated packages"), opt.ArgName("INTEGER"))
	opt.IntVar(&cfg.Thresholds.CoreWarning, "core-warning", cfg.Thresholds.CoreWarning, opt.Alias("W"),
		opt.Description("warning threshold for outdated core"), opt.ArgName("INTEGER"))
	opt.IntVar(&cfg.Thresholds.CoreCritical, "core-critical", cfg.Thresholds.CoreCritical, opt.Alias("C"),
		opt.Description("critical threshold for outdated core"), opt.ArgName("INTEGER"))
	opt.StringSliceVar(&cfg.Mirrors, "mirror", 1, 1, opt.Alias("m"),
		opt.Description("mirror to use, repeatable (default: system mirror list)"), opt.ArgName("SERVER"))
	opt.StringVar(&needReboot, "need-reboot", "w", opt.Alias("n"),
		opt.Description("exit level if reboot is required"), opt.ArgName("w|c"))

	remaining, err := opt.Parse(args)
	if err != nil {
		return nil, opt, err
	}
	if len(remaining) > 0 {
		return nil, opt, fmt.Errorf("unexpected arguments: %v", remaining)
	}

	cfg.Thresholds.RebootSeverity, err = parseRebootSeverity(needReboot)
	if err != nil {
		return nil, opt, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, opt, err
	}

	return cfg, opt, nil
}

func setupLogging(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.ErrorLevel)
	}
}

func rebootRequired(marker string) bool {
	info, err := os.Stat(marker)
	return err == nil && info.Mode().IsRegular()
}
