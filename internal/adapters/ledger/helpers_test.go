package ledger_test

import (
	"os"

	"go.trai.ch/gbfsync/internal/core/domain"
)

func writeFile(path string) error {
	return os.WriteFile(path, []byte("not a directory"), domain.FilePerm)
}
