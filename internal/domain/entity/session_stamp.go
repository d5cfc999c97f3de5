package entity

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// SessionStamp identifies one process incarnation. Host entries carrying a
// different stamp were written by a previous life of the process (reload).
type SessionStamp int64

// NewSessionStamp returns a random, non-zero, positive stamp.
func NewSessionStamp() SessionStamp {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return SessionStamp(time.Now().UnixNano() & 0x7fffffffffffffff)
	}
	v := int64(binary.BigEndian.Uint64(buf[:]) & 0x7fffffffffffffff)
	if v == 0 {
		v = 1
	}
	return SessionStamp(v)
}

// Matches reports whether the payload was written by this incarnation.
func (s SessionStamp) Matches(p *Payload) bool {
	return p != nil && p.Stamp == s
}
