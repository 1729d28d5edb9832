package render

import (
	"io"
	"strconv"
	"strings"
	"sync"
)

// Region identifies one independently replaceable area of the surface.
type Region string

const (
	RegionResponse Region = "response"
	RegionStats    Region = "stats"
	RegionQueue    Region = "queue"
	RegionReleases Region = "releases"
)

var regionOrder = []Region{RegionResponse, RegionStats, RegionQueue, RegionReleases}

// View is a region-keyed terminal surface. Every update replaces a whole
// region and repaints the surface from current state, so late or repeated
// updates are idempotent. All writes are serialized through the view's
// mutex; the underlying writer is never touched concurrently.
type View struct {
	mu      sync.Mutex
	out     io.Writer
	live    bool
	content map[Region]string
	painted int
}

// NewView builds a view over out. When live is true every region update
// repaints in place using ANSI cursor movement; callers should only enable
// it for terminals.
func NewView(out io.Writer, live bool) *View {
	return &View{
		out:     out,
		live:    live,
		content: make(map[Region]string, len(regionOrder)),
	}
}

// SetRegion replaces a region's content. Empty content hides the region.
func (v *View) SetRegion(region Region, content string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.content[region] == content {
		return
	}
	v.content[region] = content
	if v.live {
		v.repaintLocked()
	}
}

// ClearRegion hides a region.
func (v *View) ClearRegion(region Region) {
	v.SetRegion(region, "")
}

// Snapshot returns the current surface as a single string.
func (v *View) Snapshot() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renderLocked()
}

func (v *View) renderLocked() string {
	var b strings.Builder
	for _, region := range regionOrder {
		content := strings.TrimRight(v.content[region], "\n")
		if content == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(content)
		b.WriteByte('\n')
	}
	return b.String()
}

func (v *View) repaintLocked() {
	surface := v.renderLocked()
	if v.painted > 0 {
		// Rewind over the previous paint and clear to the end of screen.
		io.WriteString(v.out, "\x1b["+strconv.Itoa(v.painted)+"A\x1b[J")
	}
	io.WriteString(v.out, surface)
	v.painted = strings.Count(surface, "\n")
}
