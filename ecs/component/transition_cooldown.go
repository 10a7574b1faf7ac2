package component

// TransitionCooldown prevents immediately re-triggering a transition when the
// player arrives standing inside one. The zone only activates again once the
// player has fully left it.
type TransitionCooldown struct {
	Active bool
	Zone   string
}

var TransitionCooldownComponent = NewComponent[TransitionCooldown]()
