package core

// EventKind names a trigger point the host may react to: sounds, log
// lines, HUD flashes, persistence.
type EventKind int

const (
	EventJump EventKind = iota
	EventStomp
	EventShellKick
	EventCoin
	EventPowerUpSpawn
	EventPowerUp
	EventPowerDown
	EventDeath
	EventBreak
	EventBump
	EventLevelFinish
	EventLevelCleared
	EventRespawn
	EventGameOver
	EventGameComplete
)

var eventNames = [...]string{
	EventJump:         "jump",
	EventStomp:        "stomp",
	EventShellKick:    "shell-kick",
	EventCoin:         "coin",
	EventPowerUpSpawn: "powerup-spawn",
	EventPowerUp:      "powerup",
	EventPowerDown:    "powerdown",
	EventDeath:        "death",
	EventBreak:        "break",
	EventBump:         "bump",
	EventLevelFinish:  "level-finish",
	EventLevelCleared: "level-cleared",
	EventRespawn:      "respawn",
	EventGameOver:     "game-over",
	EventGameComplete: "game-complete",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is one trigger point raised during a tick.
type Event struct {
	Kind  EventKind
	Tick  uint64
	X, Y  float64 // where it happened
	Level string  // level loaded when it was raised
	Score int     // ledger points when it was raised
}
