package router

import "sync/atomic"

// AsyncSender is implemented by injected providers that expose sendAsync.
type AsyncSender interface {
	SendAsync(payload *Payload, callback Callback)
}

// Sender is implemented by injected providers that only expose the legacy send.
type Sender interface {
	Send(payload *Payload, callback Callback)
}

// SendFunc is the unified shape of an injected provider operation.
type SendFunc func(payload *Payload, callback Callback)

// SendAsync implements the AsyncSender interface.
func (f SendFunc) SendAsync(payload *Payload, callback Callback) {
	f(payload, callback)
}

// ProviderLocator returns the injected provider at call time, or nil if absent.
type ProviderLocator func() interface{}

// Slot holds a host provided wallet object. It is safe for concurrent use.
type Slot struct {
	provider atomic.Pointer[injection]
}

type injection struct {
	value interface{}
}

// Injected is the process wide slot consulted by routers without a custom locator.
var Injected = &Slot{}

// Set installs the provider, replacing any previous one. Nil clears the slot.
func (s *Slot) Set(provider interface{}) {
	if provider == nil {
		s.Clear()
		return
	}

	s.provider.Store(&injection{provider})
}

// Get returns the installed provider, or nil if none.
func (s *Slot) Get() interface{} {
	if v := s.provider.Load(); v != nil {
		return v.value
	}

	return nil
}

// Clear removes the installed provider.
func (s *Slot) Clear() {
	s.provider.Store(nil)
}

// Locator returns a ProviderLocator that reads from the slot.
func (s *Slot) Locator() ProviderLocator {
	return s.Get
}

// resolveSendFunc adapts a host object to SendFunc, preferring SendAsync over Send.
// The returned method value keeps the provider as receiver.
func resolveSendFunc(provider interface{}) (SendFunc, bool) {
	if p, ok := provider.(AsyncSender); ok {
		return p.SendAsync, true
	}

	if p, ok := provider.(Sender); ok {
		return p.Send, true
	}

	return nil, false
}
