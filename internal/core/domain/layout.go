package domain

import "path/filepath"

const (
	// StateDirName is the name of the local state directory.
	StateDirName = ".gbfsync"

	// LedgerFileName is the name of the run ledger database.
	LedgerFileName = "ledger.db"

	// ConfigFileName is the base name of the configuration file.
	ConfigFileName = "gbfsync"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultLedgerPath returns the default path of the run ledger.
// It joins .gbfsync and ledger.db.
func DefaultLedgerPath() string {
	return filepath.Join(StateDirName, LedgerFileName)
}
