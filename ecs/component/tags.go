package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// ResonanceStoneTag marks the stones that gameplay uses to restore areas.
type ResonanceStoneTag struct{}

var ResonanceStoneTagComponent = NewComponent[ResonanceStoneTag]()
