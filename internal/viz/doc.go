// Package viz renders a particle field in the terminal.
//
// The package implements a TUI using the Bubble Tea framework:
//
//   - [Model]: the interactive program with a stats panel
//   - [Canvas]: Braille-based pixel canvas with per-cell color
//   - [BrailleSurface]: a drawing surface over a Canvas, measured in world pixels
//   - [TermHost]: a field host whose viewport follows the terminal size
//
// One terminal cell covers a configurable block of world pixels (8×16 by
// default), so particle speeds and link distances keep their meaning.
//
// # Key Bindings
//
//	Space - Pause/Resume (unmounts and remounts the field)
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//	Q     - Quit
//
// Mouse motion moves the spotlight and the wheel scrolls the title away.
// Motion events need tea.WithMouseAllMotion.
package viz
