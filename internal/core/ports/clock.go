package ports

type Clock interface {
	// Now returns the current time in unix seconds.
	Now() int64
}
