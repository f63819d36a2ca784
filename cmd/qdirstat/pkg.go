package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Hubcapp/qdirstat/internal/jobqueue"
	"github.com/Hubcapp/qdirstat/internal/pkgmgr"
	"github.com/Hubcapp/qdirstat/internal/settings"
	"github.com/Hubcapp/qdirstat/internal/tree"
)

var pkgCmd = &cobra.Command{
	Use:   "pkg",
	Short: "Inspect installed packages' on-disk footprint",
}

var pkgListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed packages with their total file-list size",
	RunE:  runPkgList,
}

func init() {
	pkgCmd.AddCommand(pkgListCmd)
	rootCmd.AddCommand(pkgCmd)
}

func runPkgList(cmd *cobra.Command, args []string) error {
	manager := pkgmgr.Detect(pkgmgr.DefaultManagers()...)
	if manager == nil {
		return fmt.Errorf("no supported package manager found on this system")
	}

	s, _ := settings.Load(settingsPath())
	maxParallel := s.MaxParallelProcesses()

	t := tree.New("Pkg:")
	q := jobqueue.New(t)

	reader := jobqueue.NewPkgReader(t, q, manager, maxParallel)
	pkgRoot, err := reader.Start(jobqueue.SelectAll)
	if err != nil {
		return fmt.Errorf("enumerating packages: %w", err)
	}

	q.RunLoop(context.Background())

	pkgs := append([]*tree.Node(nil), pkgRoot.Children...)
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Size > pkgs[j].Size })

	for _, p := range pkgs {
		fmt.Printf("%-12s %10s  %s\n", p.State, humanize.Bytes(uint64(p.Size)), p.Name)
	}
	return nil
}
