package component

// Player holds the movement tuning of the player entity.
type Player struct {
	MoveSpeed float64
	Size      float64
}

var PlayerComponent = NewComponent[Player]()
