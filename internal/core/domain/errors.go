package domain

import "go.trai.ch/zerr"

var (
	// ErrAssetNotFound is returned when the CDN reports that an asset does not exist.
	ErrAssetNotFound = zerr.New("asset not found")

	// ErrTransientFetch is returned when an asset could not be downloaded after all retries.
	ErrTransientFetch = zerr.New("asset download failed after retries")

	// ErrUnexpectedStatus is returned when the CDN answers with a non-retryable status.
	ErrUnexpectedStatus = zerr.New("unexpected CDN response status")

	// ErrBatchFetchFailed is returned when a concurrent batch download fails as a whole.
	ErrBatchFetchFailed = zerr.New("batch download failed")

	// ErrAmbiguousDuplicates is returned when more than one wiki file shares an asset's identity.
	ErrAmbiguousDuplicates = zerr.New("ambiguous duplicates")

	// ErrUploadRejected is returned when the wiki rejects an upload with a hard warning.
	ErrUploadRejected = zerr.New("upload rejected")

	// ErrWikiAPI is returned when the wiki API answers with an error.
	ErrWikiAPI = zerr.New("wiki API error")

	// ErrWikiRateLimited is returned when the wiki keeps rate limiting after all retries.
	ErrWikiRateLimited = zerr.New("wiki rate limit exceeded")

	// ErrWikiLoginFailed is returned when logging into the wiki fails.
	ErrWikiLoginFailed = zerr.New("wiki login failed")

	// ErrWikiRequestFailed is returned when an HTTP request to the wiki fails.
	ErrWikiRequestFailed = zerr.New("wiki request failed")

	// ErrNoTemplates is returned when a page has no template the deriver understands.
	ErrNoTemplates = zerr.New("no supported template found")

	// ErrNoAssetIDs is returned when a matching template declares no asset id.
	ErrNoAssetIDs = zerr.New("no asset ids found")

	// ErrUnknownObjectType is returned when an object type has no descriptor table.
	ErrUnknownObjectType = zerr.New("unknown object type")

	// ErrInvalidIdentifier is returned when a status icon, banner or item identifier is malformed.
	ErrInvalidIdentifier = zerr.New("invalid asset identifier")

	// ErrSyncInProgress is returned when a synchronization is already running.
	ErrSyncInProgress = zerr.New("a synchronization is already running")

	// ErrInvalidTransition is returned when the sync state machine is driven out of order.
	ErrInvalidTransition = zerr.New("invalid sync state transition")

	// ErrConfigLoadFailed is returned when the configuration cannot be read.
	ErrConfigLoadFailed = zerr.New("failed to load configuration")

	// ErrConfigInvalid is returned when the configuration has invalid values.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrLedgerOpenFailed is returned when the run ledger cannot be opened.
	ErrLedgerOpenFailed = zerr.New("failed to open run ledger")

	// ErrLedgerWriteFailed is returned when a ledger entry cannot be written.
	ErrLedgerWriteFailed = zerr.New("failed to write run ledger")

	// ErrLedgerReadFailed is returned when ledger entries cannot be read.
	ErrLedgerReadFailed = zerr.New("failed to read run ledger")

	// ErrInvalidSchedule is returned when a watch schedule cannot be parsed.
	ErrInvalidSchedule = zerr.New("invalid schedule")
)
