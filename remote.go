package main

import "errors"
import "fmt"
import "io"
import "net/http"
import "regexp"
import "strconv"
import "strings"
import "time"

import "github.com/hako/durafmt"
import "github.com/hashicorp/go-multierror"
import log "github.com/sirupsen/logrus"

const coreListPath string = "/lists/core-list.db"
const packageListPath string = "/lists/packages_list.db"

// Marker of the token holding the current core update
const coreReleaseKey string = "core_release"

var coreNumber = regexp.MustCompile(`[0-9]{1,3}`)

var ErrNoCoreRelease = errors.New("no core release found")
var ErrNoPackages = errors.New("no packages found")
var ErrNoMirror = errors.New("No mirror could be reached for validating updates (hint: proxy or mirror list invalid?)")

const mirrorTimeout = 10 * time.Second

type Fetcher struct {
	client *http.Client
}

func NewFetcher(client *http.Client) *Fetcher {
	client.Timeout = mirrorTimeout
	return &Fetcher{client: client}
}

// Fetch returns the state of the first mirror delivering both
// a core release and a non-empty package list. If none does, the
// error wraps ErrNoMirror and carries the failure of every mirror.
func (f *Fetcher) Fetch(mirrors []string) (*RemoteState, error) {
	var errs *multierror.Error

	for _, mirror := range mirrors {
		log.Debugf("Trying mirror '%s'", mirror)
		start := time.Now()

		state, err := f.fetchMirror(strings.TrimRight(mirror, "/"))
		if err != nil {
			log.Errorf("Unable to validate mirror '%s': '%s'", mirror, err)
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", mirror, err))
			continue
		}

		log.Debugf("Mirror '%s' answered in %s", mirror, durafmt.Parse(time.Since(start)).LimitFirstN(2))
		state.Mirror = mirror
		return state, nil
	}

	if errs == nil {
		return nil, ErrNoMirror
	}
	return nil, fmt.Errorf("%w: %s", ErrNoMirror, errs)
}

func (f *Fetcher) fetchMirror(base string) (*RemoteState, error) {
	coreList, err := f.get(base + coreListPath)
	if err != nil {
		return nil, err
	}
	core, err := parseCoreList(coreList)
	if err != nil {
		return nil, err
	}
	log.Debugf("Recent core update is '%d'", core)

	packageList, err := f.get(base + packageListPath)
	if err != nil {
		return nil, err
	}
	packages, err := parsePackageList(packageList)
	if err != nil {
		return nil, err
	}

	return &RemoteState{Core: core, Packages: packages}, nil
}

func (f *Fetcher) get(url string) (string, error) {
	log.Debugf("Accessing URL '%s'", url)

	request, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", err
	}
	request.Header.Set("User-Agent", "check_pakfire/"+Version)

	resp, err := f.client.Do(request)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// Check the status code of the response
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// parseCoreList finds the core number in `core_release="160";`
func parseCoreList(content string) (int, error) {
	for _, token := range strings.Fields(content) {
		if !strings.Contains(token, coreReleaseKey) {
			continue
		}
		if match := coreNumber.FindString(token); match != "" {
			core, _ := strconv.Atoi(match)
			return core, nil
		}
	}

	return 0, ErrNoCoreRelease
}

// parsePackageList turns tokens like `bash;5.1.8;7;` into bash => 5.1.8.7
func parsePackageList(content string) (map[string]string, error) {
	packages := make(map[string]string)

	for _, token := range strings.Fields(content) {
		name, rest, found := strings.Cut(token, ";")
		if !found || name == "" {
			continue
		}
		version := strings.ReplaceAll(strings.TrimSuffix(rest, ";"), ";", ".")
		log.Debugf("Recent package: %s, version: %s", name, version)
		packages[name] = version
	}

	if len(packages) == 0 {
		return nil, ErrNoPackages
	}

	return packages, nil
}
