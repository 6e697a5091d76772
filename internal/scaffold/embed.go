package scaffold

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templatesFS embed.FS

// Builtin returns the embedded default template corpus.
func Builtin() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates/project")
	if err != nil {
		// The embedded path is fixed at compile time.
		panic(err)
	}
	return sub
}
