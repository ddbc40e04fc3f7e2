package types

// LevelTheme holds the accent colors tied to an intensity level.
type LevelTheme struct {
	Primary string
	Strong  string
	Accent  string
	Ring    string
}

// LevelThemes maps intensity levels 1-4 to their accent palettes.
var LevelThemes = map[int]LevelTheme{
	1: {Primary: "#93c5fd", Strong: "#60a5fa", Accent: "#a7f3d0", Ring: "#60a5fa"},
	2: {Primary: "#7dd3fc", Strong: "#38bdf8", Accent: "#86efac", Ring: "#38bdf8"},
	3: {Primary: "#5eead4", Strong: "#2dd4bf", Accent: "#a7f3d0", Ring: "#2dd4bf"},
	4: {Primary: "#a5b4fc", Strong: "#818cf8", Accent: "#93c5fd", Ring: "#818cf8"},
}

// ThemeFor returns the theme for a level, clamping to the known range.
func ThemeFor(level int) LevelTheme {
	if level < 1 {
		level = 1
	}
	if level > 4 {
		level = 4
	}
	return LevelThemes[level]
}
