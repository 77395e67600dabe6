package actors

import "sync"

var terminateChan = make(chan struct{})
var terminateOnce sync.Once

// GetTerminateChan is closed once the bench has been asked to shut down.
func GetTerminateChan() chan struct{} {
	return terminateChan
}

// Terminate closes the terminate channel. Calling it more than once is harmless.
func Terminate() {
	terminateOnce.Do(func() {
		close(terminateChan)
	})
}
