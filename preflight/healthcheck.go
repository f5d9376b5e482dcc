// Package preflight runs the one-shot startup validation that must pass
// before a simulation run begins (§7 "Input errors ... are fatal at
// startup; the driver exits before any simulation begins"). It is adapted
// from the teacher's healthcheck package, which runs the same kind of named
// liveliness checks but on a repeating ticker against a live node; a
// simulation run has no runtime to monitor, so the retry/backoff/ticker
// machinery is dropped in favor of a single synchronous pass whose result
// maps directly onto the process's exit code (§6).
package preflight

// Kind distinguishes why a check failed, which in turn decides the process
// exit code (§6 "0 on complete run; 2 on invalid configuration; 3 on
// unreadable inputs").
type Kind int

const (
	// KindConfig marks a check that failed because of the run's own
	// configuration (bad flag combination, non-positive amount, ...).
	KindConfig Kind = iota

	// KindInput marks a check that failed because an external input
	// (topology file, centrality file) could not be read or parsed.
	KindInput
)

// Check is one named startup assertion.
type Check struct {
	Name string
	Kind Kind
	Run  func() error
}

// Failure records one failed Check and why.
type Failure struct {
	Name string
	Kind Kind
	Err  error
}

// RunAll executes every check in order and returns every failure observed;
// it does not stop at the first failure, since listing every problem in one
// pass is more useful to an operator than being told about them one fix at
// a time.
func RunAll(checks []Check) []Failure {
	var failures []Failure

	for _, c := range checks {
		if err := c.Run(); err != nil {
			log.Warnf("preflight check %q failed: %v", c.Name, err)
			failures = append(failures, Failure{Name: c.Name, Kind: c.Kind, Err: err})
			continue
		}

		log.Debugf("preflight check %q passed", c.Name)
	}

	return failures
}

// ExitCode maps a set of failures onto the §6 process exit code: 0 if there
// are none, 3 if any failure is an unreadable/malformed input, otherwise 2.
func ExitCode(failures []Failure) int {
	if len(failures) == 0 {
		return 0
	}

	for _, f := range failures {
		if f.Kind == KindInput {
			return 3
		}
	}

	return 2
}
