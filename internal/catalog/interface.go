package catalog

// Registry defines a read-only lookup of provider definitions by legacy
// category. Injected so new categories can be added without touching the
// migration orchestrator.
type Registry interface {
	Lookup(category string) (*Definition, bool)
	Categories() []string
}
