package assets

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed lists/*.yaml
var listsFS embed.FS

//go:embed sql/*.sql
var sqlFS embed.FS

// Migrations exposes the schema scripts rooted at sql/.
func Migrations() fs.FS {
	sub, _ := fs.Sub(sqlFS, "sql")
	return sub
}

// ListFiles returns the embedded word-list file names, sorted.
func ListFiles() ([]string, error) {
	entries, err := fs.ReadDir(listsFS, "lists")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// ReadList returns the raw document of an embedded word list.
func ReadList(name string) ([]byte, error) {
	return listsFS.ReadFile(path.Join("lists", name))
}
