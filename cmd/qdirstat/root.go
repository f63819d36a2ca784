package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/Hubcapp/qdirstat/internal/excluderules"
	"github.com/Hubcapp/qdirstat/internal/resultscache"
	"github.com/Hubcapp/qdirstat/internal/tree"
	"github.com/Hubcapp/qdirstat/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "qdirstat [PATH]",
	Short: "Interactive terminal directory-space browser",
	Long: `qdirstat scans a directory tree and lets you browse and reclaim disk
space interactively. Press 's' once it opens to start scanning PATH
(current directory by default).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDir := "."
		if len(args) > 0 {
			rootDir = args[0]
		}

		absPath, err := filepath.Abs(rootDir)
		if err != nil {
			return fmt.Errorf("resolving path %s: %w", rootDir, err)
		}
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", absPath)
		}

		logFile, err := os.CreateTemp(tempDir(), "qdirstat-*.log")
		if err != nil {
			return fmt.Errorf("creating log file: %w", err)
		}
		log.SetOutput(logFile)
		fmt.Println("Logfile is being written in:", logFile.Name())

		excludePatterns, _ := cmd.Flags().GetStringSlice("exclude")
		rules := rulesFromPatterns(excludePatterns)

		app := tui.NewApp(absPath, rules)
		if err := app.Run(); err != nil {
			return fmt.Errorf("running application: %w", err)
		}

		recordScanSummary(absPath, app.Tree())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("exclude", nil, "glob pattern to exclude (repeatable)")
}

func tempDir() string {
	if runtime.GOOS == "darwin" {
		return "/tmp"
	}
	return os.TempDir()
}

// recordScanSummary persists whatever the browser actually scanned before
// quitting, so "qdirstat scan --recent" has something to show even when
// the user only ever drove the interactive browser.
func recordScanSummary(rootPath string, t *tree.Tree) {
	if t == nil || t.Root == nil || len(t.Root.Children) == 0 {
		return
	}
	root := t.Root.Children[0]

	cache, err := resultscache.Open()
	if err != nil {
		log.Printf("recording scan summary: %v", err)
		return
	}
	defer cache.Close()

	summary := resultscache.Summary{
		RootPath:  rootPath,
		TotalSize: root.Size,
		FileCount: countFiles(root),
		ScannedAt: time.Now(),
	}
	if err := cache.Put(summary); err != nil {
		log.Printf("recording scan summary: %v", err)
	}
}

// rulesFromPatterns builds an excluderules.Rules set from plain glob
// patterns passed on the command line, matched against entry base names.
func rulesFromPatterns(patterns []string) *excluderules.Rules {
	if len(patterns) == 0 {
		return nil
	}
	rules := make([]excluderules.Rule, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, excluderules.Rule{Pattern: p, AppliesToFileChildren: true})
	}
	return excluderules.New(rules...)
}
