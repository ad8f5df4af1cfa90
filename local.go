package main

import "bufio"
import "errors"
import "fmt"
import "io/fs"
import "os"
import "path/filepath"
import "regexp"
import "strconv"
import "strings"

import log "github.com/sirupsen/logrus"

var releaseToken = regexp.MustCompile(`2\.[1-9]{1,2}`)
var coreToken = regexp.MustCompile(`core[0-9]{1,3}`)

var ErrIncompleteDescriptor = errors.New("incomplete package descriptor")

// ReadInstalledState collects release, core update and installed packages
func ReadInstalledState(paths Paths) (*InstalledState, error) {
	release, core, err := ReadSystemRelease(paths.SystemRelease)
	if err != nil {
		return nil, err
	}

	packages := ReadInstalledPackages(paths.InstalledDir)
	return &InstalledState{Release: release, Core: core, Packages: packages}, nil
}

// ReadSystemRelease parses a line like `IPFire 2.27 (x86_64) - core160`
func ReadSystemRelease(path string) (string, int, error) {
	file, err := os.Open(path)
	if err != nil {
		log.Debugf("Opening %s failed: %s", path, err)
		return "", 0, errors.New("System release file not found (is this really a IPFire system?!)")
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Scan()
	if err := scanner.Err(); err != nil {
		return "", 0, fmt.Errorf("Could not read system release file %s: %w", path, err)
	}
	line := strings.TrimSpace(scanner.Text())

	release, core, err := parseSystemRelease(line)
	if err != nil {
		return "", 0, err
	}

	log.Debugf("System release: %s, System update: %d", release, core)
	return release, core, nil
}

func parseSystemRelease(line string) (string, int, error) {
	release := releaseToken.FindString(line)
	coretok := coreToken.FindString(line)
	if release == "" || coretok == "" {
		return "", 0, fmt.Errorf("Could not parse system release `%s`", line)
	}

	// the regex guarantees 1-3 digits
	core, _ := strconv.Atoi(strings.TrimPrefix(coretok, "core"))
	return release, core, nil
}

// ReadInstalledPackages walks the Pakfire meta files of installed packages.
// Unreadable parts of the tree are logged and skipped, a missing tree
// means nothing is installed.
func ReadInstalledPackages(dir string) map[string]string {
	packages := make(map[string]string)

	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debugf("Skipping %s: %s", path, err)
			} else {
				log.Errorf("Could not read installed packages below %s: %s", path, err)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		name, version, perr := readPackageMeta(path)
		if perr != nil {
			log.Debugf("Skipping %s: %s", path, perr)
			return nil
		}

		// core updates are checked in a different way
		if name == corePackage {
			return nil
		}

		log.Debugf("Local package: %s, version: %s", name, version)
		packages[name] = version
		return nil
	})

	return packages
}

func readPackageMeta(path string) (string, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	return parsePackageMeta(bufio.NewScanner(file))
}

// parsePackageMeta reads `Key: value` lines and returns name and
// `ProgVersion.Release`. All three fields have to be present.
func parsePackageMeta(scanner *bufio.Scanner) (string, string, error) {
	fields := make(map[string]string)
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), ":")
		if !found {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return "", "", err
	}

	for _, key := range []string{"Name", "ProgVersion", "Release"} {
		if fields[key] == "" {
			return "", "", fmt.Errorf("%w: %s missing", ErrIncompleteDescriptor, key)
		}
	}

	return fields["Name"], fields["ProgVersion"] + "." + fields["Release"], nil
}
