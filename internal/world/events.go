package world

import "github.com/mraof/gbjam5/internal/core"

// Event is something a frontend may react to, such as a sound cue or a run
// record. Events are returned with the frame of the tick that raised them.
type Event interface {
	isEvent()
}

// Jumped is raised when the player leaves the ground.
type Jumped struct{}

// Died is raised when the player enters the dying state.
type Died struct {
	Version core.Version
}

// CheckpointSet is raised when the player records a checkpoint.
type CheckpointSet struct {
	X, Y int
}

// DoorOpened is raised when the player starts turning into a door.
type DoorOpened struct {
	Target string
}

// KeyCollected is raised when a key is picked up.
type KeyCollected struct {
	Count, Required int
}

// WorldSwitched is raised when the sequencer arms.
type WorldSwitched struct {
	To core.Version
}

// LevelComplete is raised when a door transition is applied.
type LevelComplete struct {
	Level  string
	Next   string
	Ticks  int
	Deaths int
}

// LevelFailed is raised when a level cannot be loaded.
type LevelFailed struct {
	Level string
	Err   error
}

func (Jumped) isEvent()        {}
func (Died) isEvent()          {}
func (CheckpointSet) isEvent() {}
func (DoorOpened) isEvent()    {}
func (KeyCollected) isEvent()  {}
func (WorldSwitched) isEvent() {}
func (LevelComplete) isEvent() {}
func (LevelFailed) isEvent()   {}

func (l *Level) emit(ev Event) {
	l.events = append(l.events, ev)
}
