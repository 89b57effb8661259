package frontend

// DebugState holds overlay flags that persist across scene changes
type DebugState struct {
	ShowBounds bool // floor boundaries, vanishing lines and hit circles
	ShowStats  bool // tick rate and entity counts
}

// Toggle cycles off -> stats -> stats and bounds -> off
func (d *DebugState) Toggle() {
	switch {
	case !d.ShowStats:
		d.ShowStats = true
	case !d.ShowBounds:
		d.ShowBounds = true
	default:
		*d = DebugState{}
	}
}
