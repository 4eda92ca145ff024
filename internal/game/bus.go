package game

import (
	"github.com/rs/zerolog"

	"github.com/sketchwars/sketchwars-backend/internal"
)

// Bus fans outbound messages over the registry. Payloads are marshaled once
// per call and shared across recipients; a connection with a saturated
// queue drops the frame rather than stalling the session.
type Bus struct {
	reg *Registry
	log zerolog.Logger
}

func NewBus(reg *Registry, log zerolog.Logger) *Bus {
	return &Bus{reg: reg, log: log}
}

// Send delivers one message to a single player. Unknown names are ignored.
func (b *Bus) Send(name string, typ internal.MessageType, data any) {
	conn, ok := b.reg.Get(name)
	if !ok {
		return
	}
	frame, ok := b.encode(typ, data)
	if !ok {
		return
	}
	b.enqueue(name, conn, frame)
}

// Broadcast delivers one message to every registered connection.
func (b *Bus) Broadcast(typ internal.MessageType, data any) {
	if frame, ok := b.encode(typ, data); ok {
		b.BroadcastFrame(frame)
	}
}

// BroadcastExcept delivers one message to everyone but the named player.
func (b *Bus) BroadcastExcept(except string, typ internal.MessageType, data any) {
	if frame, ok := b.encode(typ, data); ok {
		b.BroadcastFrameExcept(except, frame)
	}
}

// SendFrame enqueues an already marshaled frame for one player.
func (b *Bus) SendFrame(name string, frame []byte) {
	if conn, ok := b.reg.Get(name); ok {
		b.enqueue(name, conn, frame)
	}
}

// BroadcastFrame enqueues an already marshaled frame for everyone.
func (b *Bus) BroadcastFrame(frame []byte) {
	b.reg.Each(func(name string, conn Conn) {
		b.enqueue(name, conn, frame)
	})
}

// BroadcastFrameExcept enqueues an already marshaled frame for everyone but
// the named player.
func (b *Bus) BroadcastFrameExcept(except string, frame []byte) {
	b.reg.Each(func(name string, conn Conn) {
		if name != except {
			b.enqueue(name, conn, frame)
		}
	})
}

func (b *Bus) encode(typ internal.MessageType, data any) ([]byte, bool) {
	frame, err := internal.Encode(typ, data)
	if err != nil {
		b.log.Error().Err(err).Str("type", string(typ)).Msg("encode outbound message")
		return nil, false
	}
	return frame, true
}

func (b *Bus) enqueue(name string, conn Conn, frame []byte) {
	if !conn.Enqueue(frame) {
		b.log.Warn().Str("player", name).Msg("outbound queue full, dropping frame")
	}
}
