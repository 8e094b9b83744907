package main

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesim/internal/storage"
)

var (
	flagHistoryMap string
	flagLimit      int
	flagClear      bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `Display per-map statistics and the most recent recorded runs.

Examples:
  tilesim history
  tilesim history --map demo --limit 20
  tilesim history --map demo --clear`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryMap, "map", "", "Only show runs of this map")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent runs to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded runs instead of showing them")
}

func runHistory(_ *cobra.Command, _ []string) {
	logger := app.logger

	store, err := storage.Open(app.config.DBPath)
	if err != nil {
		logger.Fatal("cannot open run database", "path", app.config.DBPath, "error", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(flagHistoryMap); err != nil {
			logger.Error("cannot clear runs", "error", err)
			return
		}
		logger.Info("runs cleared", "map", flagHistoryMap)
		return
	}

	stats, err := store.AllMapStats()
	if err != nil {
		logger.Error("cannot load map statistics", "error", err)
		return
	}

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tilesim play' or 'tilesim run <map> --save' to record one!")
		return
	}

	// Per-map statistics
	fmt.Println("Maps")
	fmt.Println()
	fmt.Printf("  %-12s  %6s  %10s  %6s  %7s  %s\n", "Map", "Runs", "Ticks", "Best", "Deaths", "Last run")
	fmt.Printf("  %-12s  %6s  %10s  %6s  %7s  %s\n", "---", "----", "-----", "----", "------", "--------")
	for _, id := range slices.Sorted(maps.Keys(stats)) {
		if flagHistoryMap != "" && id != flagHistoryMap {
			continue
		}
		st := stats[id]
		fmt.Printf("  %-12s  %6d  %10d  %6d  %7d  %s\n",
			id, st.Runs, st.TotalTicks, st.BestCoins, st.Deaths, st.LastRun.Format("2006-01-02 15:04"))
	}

	runs, err := store.RecentRuns(flagHistoryMap, flagLimit)
	if err != nil {
		logger.Error("cannot load runs", "error", err)
		return
	}

	fmt.Println()
	fmt.Println("Recent runs")
	fmt.Println()
	fmt.Printf("  %-16s  %-12s  %-8s  %7s  %5s  %6s  %8s  %s\n", "Date", "Map", "Mode", "Ticks", "Coins", "Deaths", "Time", "ID")
	fmt.Printf("  %-16s  %-12s  %-8s  %7s  %5s  %6s  %8s  %s\n", "----", "---", "----", "-----", "-----", "------", "----", "--")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-12s  %-8s  %7d  %5d  %6d  %8s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.MapID, r.Mode, r.Ticks, r.Coins, r.Deaths,
			r.Duration.Round(100*time.Millisecond), r.ID)
	}
}
