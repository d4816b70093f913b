package repo

import (
	"github.com/odvcencio/oxid/pkg/object"
)

// MetaDirName is the repository metadata directory, named .git for
// compatibility with existing version-control tooling.
const MetaDirName = ".git"

// Repo represents an opened oxid repository.
type Repo struct {
	RootDir string        // working directory root
	GitDir  string        // .git/ metadata directory
	Store   *object.Store // content-addressed object store
}
