package render

import (
	"github.com/Gaurav-Gosain/waveland/internal/geometry"
	"github.com/Gaurav-Gosain/waveland/internal/window"
)

// Snapshot is a captured render of a tile, kept around for the close
// animation after the window itself is gone. Blocked-out contents are
// captured alongside so screencast frames never leak hidden windows.
type Snapshot struct {
	Contents        []Element
	BlockedContents []Element

	// Size of the captured tile.
	Size geometry.Size

	// BlockOutFrom records which targets must use BlockedContents.
	BlockOutFrom window.BlockOutFrom
}

// ContentsFor picks the right contents for a render target.
func (s *Snapshot) ContentsFor(target Target) []Element {
	blocked := false
	switch s.BlockOutFrom {
	case window.BlockOutScreencast:
		blocked = target == TargetScreencast
	case window.BlockOutScreenCapture:
		blocked = target == TargetScreencast || target == TargetScreenCapture
	}
	if blocked {
		return s.BlockedContents
	}
	return s.Contents
}
