package transport

import "sync"

// Write records one frame sent through a Pipe.
type Write struct {
	Char Characteristic
	Data []byte
}

// Pipe is a deterministic in-memory Channel with a scriptable device
// side. Tests register write hooks and push notifications; everything
// runs synchronously in the caller's goroutine, so no sleeps or real
// radios are needed.
//
// The host side is the Channel interface; the device side is OnWrite,
// Notify and SetReadValue.
type Pipe struct {
	mu           sync.Mutex
	subs         map[Characteristic]NotificationHandler
	reads        map[Characteristic][]byte
	onWrite      map[Characteristic]func(data []byte)
	writes       []Write
	sendErr      error
	subscribes   map[Characteristic]int
	unsubscribes map[Characteristic]int
	closed       bool
}

// NewPipe creates an empty pipe.
func NewPipe() *Pipe {
	return &Pipe{
		subs:         make(map[Characteristic]NotificationHandler),
		reads:        make(map[Characteristic][]byte),
		onWrite:      make(map[Characteristic]func(data []byte)),
		subscribes:   make(map[Characteristic]int),
		unsubscribes: make(map[Characteristic]int),
	}
}

// Send records the frame and invokes the device-side write hook, if any.
func (p *Pipe) Send(char Characteristic, data []byte) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.sendErr != nil {
		err := p.sendErr
		p.mu.Unlock()
		return err
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	p.writes = append(p.writes, Write{Char: char, Data: buf})
	hook := p.onWrite[char]
	p.mu.Unlock()

	if hook != nil {
		hook(buf)
	}
	return nil
}

// Subscribe registers the notification handler for the characteristic.
func (p *Pipe) Subscribe(char Characteristic, handler NotificationHandler) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if _, ok := p.subs[char]; ok {
		return ErrAlreadySubscribed
	}
	p.subs[char] = handler
	p.subscribes[char]++
	return nil
}

// Unsubscribe removes the notification handler for the characteristic.
func (p *Pipe) Unsubscribe(char Characteristic) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.subs[char]; !ok {
		return ErrNotSubscribed
	}
	delete(p.subs, char)
	p.unsubscribes[char]++
	return nil
}

// ReadOnce returns the scripted value of the characteristic.
func (p *Pipe) ReadOnce(char Characteristic) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	value, ok := p.reads[char]
	if !ok {
		return nil, ErrNoValue
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	return buf, nil
}

// Close makes every subsequent operation fail with ErrClosed.
func (p *Pipe) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Device side.

// OnWrite registers a hook invoked synchronously for every frame the
// host sends to the characteristic. Hooks may call Notify.
func (p *Pipe) OnWrite(char Characteristic, hook func(data []byte)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onWrite[char] = hook
}

// Notify delivers a notification to the host-side subscriber.
func (p *Pipe) Notify(char Characteristic, data []byte) error {
	p.mu.Lock()
	handler, ok := p.subs[char]
	p.mu.Unlock()

	if !ok {
		return ErrNotSubscribed
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	handler(buf)
	return nil
}

// SetReadValue scripts the value returned by ReadOnce.
func (p *Pipe) SetReadValue(char Characteristic, data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	p.reads[char] = buf
}

// FailSends makes every subsequent Send return err. Pass nil to restore
// normal delivery.
func (p *Pipe) FailSends(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sendErr = err
}

// Writes returns a copy of every frame sent so far.
func (p *Pipe) Writes() []Write {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Write, len(p.writes))
	copy(out, p.writes)
	return out
}

// SubscribeCount reports how many times the characteristic was
// subscribed.
func (p *Pipe) SubscribeCount(char Characteristic) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subscribes[char]
}

// UnsubscribeCount reports how many times the characteristic was
// unsubscribed.
func (p *Pipe) UnsubscribeCount(char Characteristic) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unsubscribes[char]
}
