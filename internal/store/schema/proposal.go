package schema

import (
	"time"

	"github.com/feral-file/ff-ip-registry/internal/domain"
)

// Proposal represents the proposals table - governance proposals on an asset's licensing terms
type Proposal struct {
	// ID is the global proposal identifier, monotonically increasing from 1
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID references the asset the proposal targets
	TokenID domain.TokenID `gorm:"column:token_id;not null;type:text;index"`
	// Proposer was an owner of the asset at creation time
	Proposer domain.Address `gorm:"column:proposer;not null;type:text"`
	// Description summarizes the proposed change; it becomes the license terms on execution
	Description string `gorm:"column:description;not null;type:text"`
	// VoteCount is the sum of the shares of owners who voted yes
	VoteCount uint32 `gorm:"column:vote_count;not null;default:0"`
	// Executed flips from false to true exactly once
	Executed bool `gorm:"column:executed;not null;default:false"`
	// Deadline is the creation time plus the fixed voting period
	Deadline time.Time `gorm:"column:deadline;not null;type:timestamptz"`
	// ExecutedAt is set together with Executed
	ExecutedAt *time.Time `gorm:"column:executed_at;type:timestamptz"`
	// ExecutedBy is the caller that executed the proposal
	ExecutedBy *domain.Address `gorm:"column:executed_by;type:text"`
	// CreatedAt is the proposal creation time
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`

	// Associations
	Votes []ProposalVote `gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Proposal model
func (Proposal) TableName() string {
	return "proposals"
}

// HasVoted reports whether voter already cast a vote on the proposal
func (p *Proposal) HasVoted(voter domain.Address) bool {
	for _, v := range p.Votes {
		if v.Voter.Equal(voter) {
			return true
		}
	}
	return false
}

// Voters returns every owner that voted, in voting order
func (p *Proposal) Voters() []domain.Address {
	voters := make([]domain.Address, len(p.Votes))
	for i, v := range p.Votes {
		voters[i] = v.Voter
	}
	return voters
}

// ProposalVote represents the proposal_votes table - one row per owner per proposal
type ProposalVote struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ProposalID references the proposal
	ProposalID uint64 `gorm:"column:proposal_id;not null;uniqueIndex:idx_proposal_votes_proposal_voter,priority:1"`
	// Voter is the owner that voted
	Voter domain.Address `gorm:"column:voter;not null;type:text;uniqueIndex:idx_proposal_votes_proposal_voter,priority:2"`
	// Support is true for a yes vote
	Support bool `gorm:"column:support;not null"`
	// Weight is the voter's share at voting time; only yes votes add it to the tally
	Weight uint32 `gorm:"column:weight;not null"`
	// CreatedAt is the voting time
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the ProposalVote model
func (ProposalVote) TableName() string {
	return "proposal_votes"
}
