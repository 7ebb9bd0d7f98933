package scaffold

import (
	"os"
	"path/filepath"

	"github.com/NielsdaWheelz/mazegen/internal/fs"
)

// StubFile represents a starter file to create.
type StubFile struct {
	RelPath string // relative path from the project root (e.g., "materials/practice_example.txt")
	Content string
}

// PracticeStub is an example text materials file. Its tag is "practice".
const PracticeStub = `[["practice", 101], "Maze", {s:"The dog chased the ball across the yard.", a:"x-x-x sum decided ten dry prices ago cold."}],
[["practice", 102], "Maze", {s:"She left the keys on the kitchen table.", a:"x-x-x sold sum host ask ago crossed lists."}],
`

// DefaultStubs returns the example materials to create.
func DefaultStubs() []StubFile {
	return []StubFile{
		{RelPath: filepath.Join("materials", "practice_example.txt"), Content: PracticeStub},
	}
}

// TemplateStubs returns copies of the built-in templates for customization.
func TemplateStubs() []StubFile {
	return []StubFile{
		{RelPath: filepath.Join("templates", JSONIncludeName), Content: JSONIncludeTemplate},
		{RelPath: filepath.Join("templates", TextIncludeName), Content: TextIncludeTemplate},
	}
}

// CreateStubsResult holds the result of stub creation.
type CreateStubsResult struct {
	Created []string // relative paths of files that were created
	Skipped []string // relative paths of files that already existed
}

// CreateStubs creates stubs under root if they don't exist.
// Never overwrites existing files.
func CreateStubs(fsys fs.FS, root string, stubs []StubFile) (CreateStubsResult, error) {
	result := CreateStubsResult{}

	for _, stub := range stubs {
		absPath := filepath.Join(root, stub.RelPath)

		_, err := fsys.Stat(absPath)
		if err == nil {
			result.Skipped = append(result.Skipped, stub.RelPath)
			continue
		}
		if !os.IsNotExist(err) {
			return result, err
		}

		if err := fsys.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			return result, err
		}
		if err := fsys.WriteFile(absPath, []byte(stub.Content), 0644); err != nil {
			return result, err
		}

		result.Created = append(result.Created, stub.RelPath)
	}

	return result, nil
}
