package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/nao1215/mailsleuth/internal/report"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = ""
	commit  = ""
	date    = ""
)

// build describes the running binary. The same version string is printed
// by the version command and stamped into every report.
type build struct {
	Version string
	Commit  string
	Date    string
}

// currentBuild resolves the build description once per process.
var currentBuild = sync.OnceValue(func() build {
	info, _ := debug.ReadBuildInfo()
	return resolveBuild(version, commit, date, info)
})

// resolveBuild prefers ldflags values, then module and VCS data from info.
// info may be nil.
func resolveBuild(ldVersion, ldCommit, ldDate string, info *debug.BuildInfo) build {
	b := build{Version: ldVersion, Commit: ldCommit, Date: ldDate}

	if info != nil {
		if b.Version == "" && info.Main.Version != "" {
			b.Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && b.Commit == "":
				b.Commit = shortRevision(s.Value)
			case s.Key == "vcs.time" && b.Date == "":
				b.Date = s.Value
			}
		}
	}

	if b.Version == "" {
		b.Version = report.DevelVersion
	}
	if b.Commit == "" {
		b.Commit = "unknown"
	}
	if b.Date == "" {
		b.Date = "unknown"
	}
	return b
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// getVersion returns the version of the running binary.
func getVersion() string {
	return currentBuild().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash and build date of mailsleuth.
The version shown here is also recorded in the metadata of every report.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return err
			}
			printBuild(cmd, currentBuild(), short)
			return nil
		},
	}
	cmd.Flags().BoolP("short", "s", false, "Print only the version number")
	return cmd
}

func printBuild(cmd *cobra.Command, b build, short bool) {
	w := cmd.OutOrStdout()
	if short {
		fmt.Fprintln(w, b.Version)
		return
	}
	fmt.Fprintf(w, "mailsleuth %s\n", b.Version)
	fmt.Fprintf(w, "  commit:   %s\n", b.Commit)
	fmt.Fprintf(w, "  built:    %s\n", b.Date)
	fmt.Fprintf(w, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
