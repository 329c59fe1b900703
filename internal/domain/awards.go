package domain

import "fmt"

// AwardKind identifies a season award.
type AwardKind string

// Award kinds recognized in the source data.
const (
	AwardMVP           AwardKind = "MVP"
	AwardCyYoung       AwardKind = "CY"
	AwardGoldGlove     AwardKind = "GG"
	AwardSilverSlugger AwardKind = "SS"
	AwardRookie        AwardKind = "ROY"
)

// AwardRecord is one award result for a (player, year). VoteRank carries
// the voting finish when known: 1 means the player won, higher ranks mean
// they finished in the voting without winning. 0 means the rank is
// unknown and the record represents an outright win from the awards table.
type AwardRecord struct {
	PlayerID string
	Year     int
	Kind     AwardKind
	VoteRank int
}

// Code returns the abbreviated display code, with the vote-rank suffix
// for non-winning finishes: "MVP" for a win, "MVP-3" for third in the
// voting.
func (a AwardRecord) Code() string {
	if a.VoteRank > 1 {
		return fmt.Sprintf("%s-%d", a.Kind, a.VoteRank)
	}
	return string(a.Kind)
}

// AllStarCode is the marker attached to a row for an All-Star selection.
const AllStarCode = "AS"
