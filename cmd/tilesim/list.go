package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilesim/internal/registry"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List all loaded maps",
	Long:  `Shows the maps of the demo pack and of the --assets directory.`,
	Run:   runMaps,
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List all actor kinds",
	Long:  `Shows the actor kinds that map files can spawn.`,
	Run:   runKinds,
}

func runMaps(_ *cobra.Command, _ []string) {
	pack := loadPack()
	ids := pack.MapIDs()

	if len(ids) == 0 {
		fmt.Println("No maps loaded.")
		return
	}

	fmt.Println("Available maps:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, id := range ids {
		maxIDLen = max(maxIDLen, len(id))
	}

	fmt.Printf("  %-*s  %-24s  %s\n", maxIDLen, "ID", "Name", "Size")
	fmt.Printf("  %-*s  %-24s  %s\n", maxIDLen, "--", "----", "----")

	for _, id := range ids {
		m, _ := pack.Map(id)
		size := "-"
		if layer := m.Main(); layer != nil {
			size = fmt.Sprintf("%dx%d", layer.Width, layer.Height)
		}
		fmt.Printf("  %-*s  %-24s  %s\n", maxIDLen, id, m.Name, size)
	}

	fmt.Println()
	fmt.Println("Run 'tilesim play <id>' to play a map.")
}

func runKinds(_ *cobra.Command, _ []string) {
	kinds := registry.List()

	if len(kinds) == 0 {
		fmt.Println("No actor kinds registered.")
		return
	}

	fmt.Println("Actor kinds:")
	fmt.Println()

	maxIDLen := 2
	for _, k := range kinds {
		maxIDLen = max(maxIDLen, len(k.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, k := range kinds {
		fmt.Printf("  %-*s  %s\n", maxIDLen, k.ID, k.Title)
	}
}
