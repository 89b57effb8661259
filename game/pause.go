package game

// Scene names a top-level screen of the application
type Scene int

const (
	SceneNone Scene = iota
	SceneTitle
	SceneGamePlay
	SceneEnding
	SceneExit
)

func (s Scene) String() string {
	switch s {
	case SceneTitle:
		return "title"
	case SceneGamePlay:
		return "gameplay"
	case SceneEnding:
		return "ending"
	case SceneExit:
		return "exit"
	default:
		return "none"
	}
}

// PauseItem is an entry of the pause menu
type PauseItem int

const (
	PauseResume PauseItem = iota
	PauseTitle
	PauseExit

	pauseItemCount
)

func (i PauseItem) String() string {
	switch i {
	case PauseResume:
		return "Back to game"
	case PauseTitle:
		return "Title"
	case PauseExit:
		return "Exit"
	default:
		return ""
	}
}

// PauseItems lists the menu entries top to bottom
var PauseItems = []PauseItem{PauseResume, PauseTitle, PauseExit}

// PauseMenu freezes the round and offers resume, title and exit
type PauseMenu struct {
	open    bool
	cursor  PauseItem
	request Scene
}

// Open reports whether the menu is shown
func (p *PauseMenu) Open() bool { return p.open }

// Cursor returns the highlighted entry
func (p *PauseMenu) Cursor() PauseItem { return p.cursor }

// Request returns the scene chosen from the menu, or SceneNone
func (p *PauseMenu) Request() Scene { return p.request }

// Reset closes the menu and forgets any request
func (p *PauseMenu) Reset() {
	*p = PauseMenu{}
}

// Update reads one tick of input. The key that opens the menu is not also
// taken as a selection on the same tick.
func (p *PauseMenu) Update(in InputProvider) {
	if !p.open {
		if in.JustPressed(ActionPause) {
			p.open = true
			p.cursor = PauseResume
		}
		return
	}

	if in.JustPressed(ActionDown) {
		p.cursor++
	}
	if in.JustPressed(ActionUp) {
		p.cursor--
	}
	p.cursor = max(PauseResume, min(p.cursor, pauseItemCount-1))

	if !in.JustPressed(ActionConfirm) && !in.JustPressed(ActionPause) {
		return
	}
	switch p.cursor {
	case PauseResume:
		p.open = false
	case PauseTitle:
		p.request = SceneTitle
	case PauseExit:
		p.request = SceneExit
	}
}
