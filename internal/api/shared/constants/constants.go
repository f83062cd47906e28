package constants

const (
	MAX_PAGE_SIZE              = 100
	DEFAULT_OFFSET             = uint64(0)
	DEFAULT_PAGE_LIMIT         = 20
	DEFAULT_CHANGES_LIMIT      = 50
	DEFAULT_RETRY_MAX_ATTEMPTS = 5
	MAX_RETRY_MAX_ATTEMPTS     = 10
	MAX_DESCRIPTION_LENGTH     = 4096
)
