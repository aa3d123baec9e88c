package maze

// DefaultLayout is the 28x31 arcade playfield. '#' wall, '.' pellet,
// 'o' power pellet, '-' pen gate, ' ' open floor.
var DefaultLayout = []string{
	"############################",
	"#............##............#",
	"#.####.#####.##.#####.####.#",
	"#o####.#####.##.#####.####o#",
	"#.####.#####.##.#####.####.#",
	"#..........................#",
	"#.####.##.########.##.####.#",
	"#.####.##.########.##.####.#",
	"#......##....##....##......#",
	"######.##### ## #####.######",
	"     #.##### ## #####.#     ",
	"     #.##          ##.#     ",
	"     #.## ###--### ##.#     ",
	"######.## #      # ##.######",
	"      .   #      #   .      ",
	"######.## #      # ##.######",
	"     #.## ######## ##.#     ",
	"     #.##          ##.#     ",
	"     #.## ######## ##.#     ",
	"######.## ######## ##.######",
	"#............##............#",
	"#.####.#####.##.#####.####.#",
	"#.####.#####.##.#####.####.#",
	"#o..##.......  .......##..o#",
	"###.##.##.########.##.##.###",
	"###.##.##.########.##.##.###",
	"#......##....##....##......#",
	"#.##########.##.##########.#",
	"#.##########.##.##########.#",
	"#..........................#",
	"############################",
}

// Ghosts may not head upward out of these tiles (two above the pen gate,
// two above the player start row). Layout constants, not derived.
var noUpTiles = []Tile{
	{Col: 12, Row: 11},
	{Col: 15, Row: 11},
	{Col: 12, Row: 23},
	{Col: 15, Row: 23},
}

// Slow tunnel band on the wraparound row. Cols 6..21 stay full speed;
// ghosts slow down only in the approaches on either side.
const (
	tunnelRow    = 14
	tunnelMinCol = 6
	tunnelMaxCol = 21
)

// killScreenCol is the first corrupted column of the level-256 glitch.
const killScreenCol = 14
