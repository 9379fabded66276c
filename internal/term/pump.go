package term

import (
	"errors"
	"io"
	"sync"

	"github.com/muesli/cancelreader"
)

const chunkSize = 256

// Pump reads raw input chunks on its own goroutine and delivers them on C.
// Each chunk is whatever a single read returned: one keystroke, an escape
// sequence, or a pasted run of bytes. C is closed when the input ends or
// the pump is stopped.
type Pump struct {
	C <-chan string

	cr   cancelreader.CancelReader
	stop chan struct{}
	once sync.Once
	err  error
	mu   sync.Mutex
}

// NewPump starts reading from r.
func NewPump(r io.Reader) (*Pump, error) {
	cr, err := cancelreader.NewReader(r)
	if err != nil {
		return nil, err
	}
	ch := make(chan string)
	p := &Pump{C: ch, cr: cr, stop: make(chan struct{})}
	go p.run(ch)
	return p, nil
}

func (p *Pump) run(ch chan<- string) {
	defer close(ch)
	buf := make([]byte, chunkSize)
	for {
		n, err := p.cr.Read(buf)
		if n > 0 {
			select {
			case ch <- string(buf[:n]):
			case <-p.stop:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, cancelreader.ErrCanceled) && !errors.Is(err, io.EOF) {
				p.mu.Lock()
				p.err = err
				p.mu.Unlock()
			}
			return
		}
	}
}

// Stop cancels the pending read and ends the pump. Safe to call repeatedly.
func (p *Pump) Stop() {
	p.once.Do(func() {
		close(p.stop)
		p.cr.Cancel()
	})
}

// Err returns the read error that ended the pump, if any.
func (p *Pump) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}
