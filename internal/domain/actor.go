package domain

// Actor identifies who is performing a lifecycle operation.
type Actor struct {
	ID      string
	Tag     string
	IsStaff bool
}

// SystemActor stands in for bot-initiated transitions such as the auto-close
// timer; permission checks are waived for it.
var SystemActor = Actor{ID: "system", Tag: "Creatok Bot", IsStaff: true}
