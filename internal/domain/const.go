package domain

import "time"

const (
	// Share accounting constants, in basis points out of 1000
	TOTAL_SHARES     = 1000
	MAX_ROYALTY_RATE = 1000

	// VOTING_PERIOD is the fixed window between proposal creation and its deadline
	VOTING_PERIOD = 604800 * time.Second

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
)
