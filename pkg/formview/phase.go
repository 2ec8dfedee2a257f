package formview

// Phase is a step of the submission lifecycle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
	PhaseFailure    Phase = "failure"
)

// PhaseObserver is notified on every phase transition. It runs while the view
// lock is held and must not call back into the view.
type PhaseObserver func(from, to Phase)

// Region names an interactive area of the form that keeps dropdowns open.
type Region string

const (
	RegionCity       Region = "city-autocomplete"
	RegionOccupation Region = "occupation-autocomplete"
)

// Target is the chain of regions enclosing an interaction, innermost first.
// An empty target is outside every region.
type Target []Region

// Within reports whether the target lies inside region.
func (t Target) Within(region Region) bool {
	for _, r := range t {
		if r == region {
			return true
		}
	}
	return false
}

// Outside reports whether the target lies outside both autocomplete regions.
func (t Target) Outside() bool {
	return !t.Within(RegionCity) && !t.Within(RegionOccupation)
}
