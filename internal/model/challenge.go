package model

// Challenge is a physical checkpoint identified by a scannable public id.
// Regular challenges carry a zero-based Order within their hunt; bonus
// challenges have no order and can be scanned at any time.
type Challenge struct {
	ID                  int64
	HuntID              *int64
	PublicID            string
	Name                string
	Content             *string
	Order               *int
	IsBonus             bool
	PreviousChallengeID *int64
}

// OrderValue treats a missing order as 0, matching how unsequenced
// challenges are compared against the sequence head.
func (c *Challenge) OrderValue() int {
	if c.Order == nil {
		return 0
	}
	return *c.Order
}
