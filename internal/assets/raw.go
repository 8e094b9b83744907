package assets

// Raw YAML shapes. They mirror the file format one to one and are turned
// into engine types by Pack.Add.

type rawFile struct {
	TileSets []rawTileSet `yaml:"tile_sets"`
	Sprites  []rawSprite  `yaml:"sprites"`
	Maps     []rawMap     `yaml:"maps"`
}

type rawTileSet struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	TileWidth    int       `yaml:"tile_width"`
	TileHeight   int       `yaml:"tile_height"`
	FrameLengths []int     `yaml:"frame_lengths"`
	Tiles        []rawTile `yaml:"tiles"`
}

type rawTile struct {
	Glyph     string          `yaml:"glyph"`
	Frames    string          `yaml:"frames"`
	Color     string          `yaml:"color"`
	Collision [][]int         `yaml:"collision"`
	Channels  map[int][][]int `yaml:"channels"`
}

type rawSprite struct {
	ID         string         `yaml:"id"`
	Name       string         `yaml:"name"`
	Width      int            `yaml:"width"`
	Height     int            `yaml:"height"`
	Animations []rawAnimation `yaml:"animations"`
}

type rawAnimation struct {
	Name    string     `yaml:"name"`
	Looping bool       `yaml:"looping"`
	Frames  []rawFrame `yaml:"frames"`
}

type rawFrame struct {
	Glyph  string `yaml:"glyph"`
	Color  string `yaml:"color"`
	Length int    `yaml:"length"`
}

type rawMap struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	Background string     `yaml:"background"`
	MainLayer  *int       `yaml:"main_layer"`
	Layers     []rawLayer `yaml:"layers"`
	Actors     []rawActor `yaml:"actors"`
}

type rawLayer struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
	TileWidth   int      `yaml:"tile_width"`
	TileHeight  int      `yaml:"tile_height"`
	Effect      bool     `yaml:"effect"`
	Blend       string   `yaml:"blend"`
	Alpha       int      `yaml:"alpha"`
	ParallaxX   *int     `yaml:"parallax_x"`
	ParallaxY   *int     `yaml:"parallax_y"`
	AutoScrollX int      `yaml:"auto_scroll_x"`
	AutoScrollY int      `yaml:"auto_scroll_y"`
	TileSets    []string `yaml:"tile_sets"`

	// Either Tiles (one [set, tile] pair or [] per cell, row-major) or
	// Rows plus Legend (one character per cell, '.' and ' ' are empty).
	Tiles  [][]int          `yaml:"tiles"`
	Rows   []string         `yaml:"rows"`
	Legend map[string][]int `yaml:"legend"`
}

type rawActor struct {
	Type   string         `yaml:"type"`
	X      int            `yaml:"x"`
	Y      int            `yaml:"y"`
	Width  int            `yaml:"width"`
	Height int            `yaml:"height"`
	Data   map[string]any `yaml:"data"`
}
