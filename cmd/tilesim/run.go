package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesim/internal/platform/tui"
	"github.com/vovakirdan/tilesim/internal/sim"
	"github.com/vovakirdan/tilesim/internal/storage"
)

var (
	flagTicks  int
	flagScript string
	flagSave   bool
	flagPrint  bool
)

var runCmd = &cobra.Command{
	Use:   "run <map>",
	Short: "Simulate a map headless",
	Long: `Run a map for a fixed number of ticks without a terminal UI and
print a summary. The run stops early once the player has died.

Input comes from an optional YAML script of timed button events:

  - {tick: 0, down: right}
  - {tick: 40, down: jump}
  - {tick: 48, up: jump}

Examples:
  tilesim run demo
  tilesim run demo --ticks 1200 --script ./walk.yaml
  tilesim run arena --seed 42 --save
  tilesim run demo --ticks 90 --print`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Number of ticks to simulate")
	runCmd.Flags().StringVar(&flagScript, "script", "", "Path to input script YAML")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the database")
	runCmd.Flags().BoolVar(&flagPrint, "print", false, "Print the final frame as text")
}

func runRun(_ *cobra.Command, args []string) {
	logger := app.logger
	pack := loadPack()

	var script sim.Script
	if flagScript != "" {
		var err error
		if script, err = sim.LoadScript(flagScript); err != nil {
			logger.Fatal("cannot load script", "path", flagScript, "error", err)
		}
	}

	session, err := sim.New(pack, args[0], storage.ModeHeadless, app.runtime, logger)
	if err != nil {
		logger.Fatal("cannot start map", "error", err)
	}

	ran := session.Run(flagTicks, script)
	st := session.World.Stats()

	logger.Info("run finished",
		"map", session.MapID,
		"seed", session.Seed,
		"ticks", ran,
		"over", session.Over(),
		"coins", session.Coins(),
		"deaths", st.Deaths,
		"spawned", st.Spawned,
		"removed", st.Removed,
		"world_hits", st.WorldHits,
		"actor_hits", st.ActorHits,
		"overlaps", st.Overlaps,
		"elapsed", session.Elapsed(),
	)

	if flagPrint {
		fmt.Print(tui.Snapshot(session.World).String())
	}

	if !flagSave {
		return
	}
	store := openStore()
	if store == nil {
		return
	}
	defer store.Close()

	id, err := session.Save(store)
	if err != nil {
		logger.Error("could not save run", "error", err)
		return
	}
	logger.Info("run saved", "id", id)
}
