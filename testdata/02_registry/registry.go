package registry

// Runner runs registered work.
type Runner interface {
	Run()
}

// Register adds a runner under name.
//
// Args:
//
//	name (str): Unique runner name.
//	r (Runner, optional): The runner. A nil runner
//	    removes the entry.
func Register(name string, r Runner) {
	if r == nil {
		delete(runners, name)
		return
	}
	runners[name] = r
}

var runners = map[string]Runner{}

// lookup finds a runner by name.
//
// Args:
//
//	name: Runner name.
func lookup(name string) Runner { return runners[name] }

type walker struct{}

// walk is documented but unexported.
func (w walker) walk() {}
