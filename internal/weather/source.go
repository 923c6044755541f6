package weather

import (
	"context"
	"time"
)

// Source abstracts one upstream endpoint: fetch, parse and normalize into
// the Delta it owns. Implementations live in the sources package.
type Source interface {
	ID() SourceID
	Interval() time.Duration
	Collect(ctx context.Context) (Delta, error)
}

// Store is the contract the snapshot store must satisfy. Current never
// blocks on in-flight work and always returns the latest published value.
type Store interface {
	Current() Snapshot
	Publish(Snapshot)
}
