package game

import "time"

// TokenID is a physics body identity. Zero is never assigned to a token;
// walls and other static geometry report as zero.
type TokenID uint64

// Token is a snapshot of one dynamic body.
type Token struct {
	ID     TokenID
	Rank   Rank
	X, Y   float64
	Radius float64
	Angle  float64
}

// Top returns the uppermost extent of the token (smaller y is higher).
func (t Token) Top() float64 { return t.Y - t.Radius }

// Contact is one collision-start pair.
type Contact struct {
	A, B TokenID
}

// Physics is the rigid-body simulation the game runs on. The game only talks
// to bodies through identities; it never moves them directly.
type Physics interface {
	// Advance steps the simulation by dt.
	Advance(dt time.Duration)
	// AddToken creates a token body and returns its fresh identity.
	AddToken(rank Rank, x, y float64) TokenID
	// RemoveTokens deletes bodies. Unknown identities are ignored.
	RemoveTokens(ids ...TokenID)
	// Token looks up a live token.
	Token(id TokenID) (Token, bool)
	// Tokens returns every live token ordered by identity.
	Tokens() []Token
	// DrainContacts returns contact-start pairs reported since the previous
	// drain, in reported order, and forgets them.
	DrainContacts() []Contact
	// Clear removes every token and pending contact.
	Clear()
}
