package session

// LogBuffer holds the session log and its scroll offset.
//
// Invariant: 0 <= Offset() <= max(0, Len()-viewportHeight) for the viewport
// height passed to the last mutating call.
type LogBuffer struct {
	lines    []string
	offset   int
	maxLines int
}

// NewLogBuffer creates a buffer that keeps at most maxLines lines, dropping
// the oldest. maxLines <= 0 means unbounded.
func NewLogBuffer(maxLines int) *LogBuffer {
	return &LogBuffer{maxLines: maxLines}
}

// AppendAutoScroll appends a line and snaps the view to the bottom. Every
// append snaps, including right after a manual scroll up.
func (b *LogBuffer) AppendAutoScroll(line string, viewportHeight int) {
	b.lines = append(b.lines, line)
	if b.maxLines > 0 && len(b.lines) > b.maxLines {
		drop := len(b.lines) - b.maxLines
		b.lines = append(b.lines[:0:0], b.lines[drop:]...)
	}
	b.offset = b.maxOffset(viewportHeight)
}

// ScrollUp moves the view one line towards the oldest entry.
func (b *LogBuffer) ScrollUp() {
	if b.offset > 0 {
		b.offset--
	}
}

// ScrollDown moves the view one line towards the newest entry.
func (b *LogBuffer) ScrollDown(viewportHeight int) {
	b.offset = min(b.offset+1, b.maxOffset(viewportHeight))
}

// Lines returns the buffered lines. Callers must not modify the slice.
func (b *LogBuffer) Lines() []string {
	return b.lines
}

// Len returns the number of buffered lines.
func (b *LogBuffer) Len() int {
	return len(b.lines)
}

// Offset returns the index of the first visible line.
func (b *LogBuffer) Offset() int {
	return b.offset
}

// Visible returns the lines shown in a viewport of the given height.
func (b *LogBuffer) Visible(viewportHeight int) []string {
	start := min(b.offset, len(b.lines))
	end := min(start+max(viewportHeight, 0), len(b.lines))
	return b.lines[start:end]
}

func (b *LogBuffer) maxOffset(viewportHeight int) int {
	return max(0, len(b.lines)-max(viewportHeight, 0))
}
