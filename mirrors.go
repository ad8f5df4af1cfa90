package main

import "bufio"
import "os"
import "strings"

import log "github.com/sirupsen/logrus"

// ResolveMirrors returns the explicit mirrors if any were given,
// the HTTPS mirrors of the system mirror list otherwise
func ResolveMirrors(explicit []string, serverList string) []string {
	if len(explicit) > 0 {
		log.Debugf("Mirror list (options): %v", explicit)
		return explicit
	}

	file, err := os.Open(serverList)
	if err != nil {
		log.Errorf("Unable to read mirror list '%s': %s", serverList, err)
		return []string{}
	}
	defer file.Close()

	mirrors := []string{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if mirror, ok := mirrorURL(scanner.Text()); ok {
			mirrors = append(mirrors, mirror)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Errorf("Unable to read mirror list '%s': %s", serverList, err)
	}

	log.Debugf("Mirror list: %v", mirrors)
	return mirrors
}

// mirrorURL turns `HTTPS;host;path;` into `https://host/path`
func mirrorURL(line string) (string, bool) {
	line = strings.TrimRight(line, " \t\r\n")
	if !strings.Contains(line, "HTTPS;") {
		return "", false
	}

	first := strings.Index(line, ";")
	last := strings.LastIndex(line, ";")
	if first == last {
		return "", false
	}

	return "https://" + strings.ReplaceAll(line[first+1:last], ";", "/"), true
}
