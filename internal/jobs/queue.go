package jobs

// FlushQueue provides an abstraction for scheduling persistence flushes
// after mutations. Implementations decide whether a flush runs inline or on
// a background worker; the crash window between a mutation and its flush is
// the accepted data-loss window either way.
type FlushQueue interface {
	EnqueueCardFlush()
	EnqueueUserFlush()
}
