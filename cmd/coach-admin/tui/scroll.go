package tui

// scrollWindow keeps cursor inside a window of height lines over total rows.
// When the rows do not fit, two lines are reserved for the "more" markers.
// It returns the adjusted offset and the end of the visible range.
func scrollWindow(offset, cursor, total, height int) (int, int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	rows := max(height-2, 1)
	// Cursor above viewport: scroll up.
	if cursor < offset {
		offset = cursor
	}
	// Cursor below viewport: scroll down.
	if cursor >= offset+rows {
		offset = cursor - rows + 1
	}
	offset = max(min(offset, total-rows), 0)
	return offset, offset + rows
}
