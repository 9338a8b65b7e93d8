package watcher

// Deduplicate collapses a batch of events to at most one event per distinct
// path, keeping the last event observed for each path within the batch. It
// holds no state between batches and the output order is unspecified.
func Deduplicate(events []Event) []Event {
	latest := make(map[string]Event, len(events))
	for _, e := range events {
		latest[e.Path] = e
	}

	out := make([]Event, 0, len(latest))
	for _, e := range latest {
		out = append(out, e)
	}
	return out
}
