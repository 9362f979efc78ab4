package token

import "time"

// Maker creates and verifies session tokens. The payload ID doubles as the
// connection identity the game coordinator sees.
type Maker interface {
	CreateToken(username string, duration time.Duration) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}
