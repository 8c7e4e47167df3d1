// scraper/downloader.go
package scraper

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/tbnguyen/covidtracker/models"
	"github.com/tbnguyen/covidtracker/store"
)

// FetchReport returns the raw daily report at url as ordered lines,
// preferring the local cache. With force set, the remote copy is
// re-downloaded and overwrites any cached entry.
//
// A 404 from the source means the report for that day has not been
// published and is reported as models.ErrRemoteNotFound; every other
// network or status failure is a *models.TransportError.
func FetchReport(client *http.Client, st store.Store, url string, force bool) ([]string, error) {
	key := path.Base(url)

	if !force {
		ok, err := st.Has(store.NamespaceReports, key)
		if err != nil {
			return nil, err
		}
		if ok {
			blob, err := st.Get(store.NamespaceReports, key)
			if err != nil {
				return nil, err
			}
			return splitLines(blob), nil
		}
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, &models.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("no report published at %s: %w", url, models.ErrRemoteNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, &models.TransportError{
			URL: url,
			Err: fmt.Errorf("unexpected status code %d", resp.StatusCode),
		}
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.TransportError{URL: url, Err: err}
	}

	if err := st.Put(store.NamespaceReports, key, blob); err != nil {
		return nil, err
	}
	log.Printf("Scraper: downloaded %s (%d bytes)\n", url, len(blob))
	return splitLines(blob), nil
}

// splitLines breaks a report blob into lines without trailing newline
// characters. A trailing empty line from the final newline is dropped.
func splitLines(blob []byte) []string {
	text := strings.ReplaceAll(string(blob), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
