package health

// Checker reports whether a dependency is reachable
type Checker interface {
	Ping() error
}
