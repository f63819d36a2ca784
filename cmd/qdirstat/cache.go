package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Hubcapp/qdirstat/internal/cachefile"
	"github.com/Hubcapp/qdirstat/internal/jobqueue"
	"github.com/Hubcapp/qdirstat/internal/tree"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Write or read a .qdirstat.cache.gz snapshot directly",
}

var cacheWriteCmd = &cobra.Command{
	Use:   "write PATH OUTFILE",
	Short: "Scan PATH and write the result as a cache snapshot",
	Args:  cobra.ExactArgs(2),
	RunE:  runCacheWrite,
}

var cacheReadCmd = &cobra.Command{
	Use:   "read CACHEFILE",
	Short: "Read a cache snapshot and print its contents",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheRead,
}

func init() {
	cacheCmd.AddCommand(cacheWriteCmd, cacheReadCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheWrite(cmd *cobra.Command, args []string) error {
	path, outFile := args[0], args[1]

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path %s: %w", path, err)
	}

	t := tree.New(absPath)
	q := jobqueue.New(t)
	job, err := jobqueue.NewSeedLocalDirJob(t, absPath, jobqueue.Config{})
	if err != nil {
		return fmt.Errorf("seeding scan: %w", err)
	}
	q.Enqueue(job)
	q.RunLoop(context.Background())

	w, err := cachefile.NewWriter(outFile)
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	if err := w.WriteTree(job.Dir(), absPath); err != nil {
		w.Close()
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing cache file: %w", err)
	}

	fmt.Printf("Wrote %s (%s) to %s\n", absPath, humanize.Bytes(uint64(job.Dir().Size)), outFile)
	return nil
}

func runCacheRead(cmd *cobra.Command, args []string) error {
	cacheFile := args[0]

	holder := tree.NewDir("cache-root")
	reader, err := cachefile.NewReader(cacheFile, holder, func(parent, child *tree.Node) {
		parent.InsertChild(child)
		fmt.Printf("%s%s\n", indent(holder, child), child.Name)
	})
	if err != nil {
		return fmt.Errorf("opening cache file: %w", err)
	}
	defer reader.Close()

	fmt.Println("First dir:", reader.FirstDir())

	for !reader.EOF() {
		if _, err := reader.Read(1000); err != nil {
			return fmt.Errorf("reading cache file: %w", err)
		}
	}

	return nil
}

func indent(holder, n *tree.Node) string {
	depth := 0
	for p := n.Parent; p != nil && p != holder; p = p.Parent {
		depth++
	}
	out := ""
	for i := 0; i < depth; i++ {
		out += "  "
	}
	return out
}
