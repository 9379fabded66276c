package term

import (
	"os"
	"os/signal"
)

// Signals subscribes channels to process signals.
// Implementations can be swapped (os/signal, or a fake for tests).
type Signals interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

// OSSignals delivers real process signals through os/signal.
type OSSignals struct{}

func (OSSignals) Notify(c chan<- os.Signal, sig ...os.Signal) { signal.Notify(c, sig...) }
func (OSSignals) Stop(c chan<- os.Signal)                     { signal.Stop(c) }
