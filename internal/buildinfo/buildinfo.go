// Package buildinfo reports the version data linked into the binary.
//
// Values are set at build time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/billio/internal/buildinfo.buildVersion=v1.2.0 \
//	  -X github.com/dmitrijs2005/billio/internal/buildinfo.buildDate=2026-10-16 \
//	  -X github.com/dmitrijs2005/billio/internal/buildinfo.buildCommit=abc123" ./cmd/cli
package buildinfo

import (
	"fmt"
	"io"
)

const notAvailable = "N/A"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func valueOrNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// PrintBuildData writes version, date and commit to w, one per line.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", valueOrNA(buildVersion))
	fmt.Fprintf(w, "Build date: %s\n", valueOrNA(buildDate))
	fmt.Fprintf(w, "Build commit: %s\n", valueOrNA(buildCommit))
}
