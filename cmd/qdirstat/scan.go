package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Hubcapp/qdirstat/internal/jobqueue"
	"github.com/Hubcapp/qdirstat/internal/resultscache"
	"github.com/Hubcapp/qdirstat/internal/tree"
)

var scanCmd = &cobra.Command{
	Use:   "scan PATH",
	Short: "Run a scan to completion and print a text report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().Int("top", 20, "number of largest entries to list")
	scanCmd.Flags().StringSlice("exclude", nil, "glob pattern to exclude (repeatable)")
	scanCmd.Flags().Bool("recent", false, "list recently scanned roots instead of scanning")
	rootCmd.AddCommand(scanCmd)
}

// scanLogger is a headless tree.Observer: when verbose is set it logs each
// added node instead of drawing. runScan subscribes it with verbose off, so
// a plain scan logs no per-node progress.
type scanLogger struct {
	verbose bool
}

func (l scanLogger) ChildAdded(n *tree.Node) {
	if l.verbose {
		log.Printf("scan: + %s", n.Path())
	}
}
func (l scanLogger) DeletingChild(n *tree.Node)  {}
func (l scanLogger) ReadJobFinished(n *tree.Node) {}
func (l scanLogger) FinalizeLocal(n *tree.Node)  {}

func runScan(cmd *cobra.Command, args []string) error {
	recent, _ := cmd.Flags().GetBool("recent")
	if recent {
		return printRecent()
	}

	rootDir := "."
	if len(args) > 0 {
		rootDir = args[0]
	}
	absPath, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("resolving path %s: %w", rootDir, err)
	}

	excludePatterns, _ := cmd.Flags().GetStringSlice("exclude")
	rules := rulesFromPatterns(excludePatterns)

	t := tree.New(absPath)
	t.Subscribe(scanLogger{})
	q := jobqueue.New(t)

	job, err := jobqueue.NewSeedLocalDirJob(t, absPath, jobqueue.Config{Rules: rules})
	if err != nil {
		return fmt.Errorf("seeding scan: %w", err)
	}

	start := time.Now()
	q.Enqueue(job)
	q.RunLoop(context.Background())
	elapsed := time.Since(start)

	root := job.Dir()
	fmt.Printf("%s\n", absPath)
	fmt.Printf("Total size: %s\n", humanize.Bytes(uint64(root.Size)))
	fmt.Printf("Scan time:  %s\n", elapsed.Round(time.Millisecond))

	top, _ := cmd.Flags().GetInt("top")
	printLargest(root, top)

	cache, err := resultscache.Open()
	if err != nil {
		log.Printf("scan: results cache unavailable: %v", err)
		return nil
	}
	defer cache.Close()

	summary := resultscache.Summary{
		RootPath:   absPath,
		TotalSize:  root.Size,
		FileCount:  countFiles(root),
		ScannedAt:  start,
		DurationMS: elapsed.Milliseconds(),
	}
	if err := cache.Put(summary); err != nil {
		log.Printf("scan: recording summary: %v", err)
	}
	return nil
}

// printLargest flattens the tree and prints the n largest entries,
// matching the way the TUI's table sorts by size descending.
func printLargest(root *tree.Node, n int) {
	var all []*tree.Node
	var walk func(*tree.Node)
	walk = func(node *tree.Node) {
		for _, c := range node.Children {
			all = append(all, c)
			if c.IsDir() {
				walk(c)
			}
		}
	}
	walk(root)

	sort.Slice(all, func(i, j int) bool { return all[i].Size > all[j].Size })
	if len(all) > n {
		all = all[:n]
	}

	fmt.Printf("\nLargest %d entries:\n", len(all))
	for _, n := range all {
		fmt.Printf("  %10s  %s\n", humanize.Bytes(uint64(n.Size)), n.Path())
	}
}

func countFiles(root *tree.Node) int64 {
	var count int64
	var walk func(*tree.Node)
	walk = func(node *tree.Node) {
		for _, c := range node.Children {
			if c.IsDir() {
				walk(c)
			} else {
				count++
			}
		}
	}
	walk(root)
	return count
}

func printRecent() error {
	cache, err := resultscache.Open()
	if err != nil {
		return fmt.Errorf("opening results cache: %w", err)
	}
	defer cache.Close()

	summaries, err := cache.Recent(20)
	if err != nil {
		return fmt.Errorf("reading recent scans: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Println("No recorded scans yet.")
		return nil
	}
	for _, s := range summaries {
		fmt.Printf("%-10s %-8s %s (%s)\n",
			humanize.Bytes(uint64(s.TotalSize)),
			humanize.Comma(s.FileCount),
			s.RootPath,
			humanize.Time(s.ScannedAt),
		)
	}
	return nil
}
