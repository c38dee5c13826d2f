package gen

import (
	"go/build"
	"go/parser"
	"go/token"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulePath = "github.com/mobility-lab-vsb/can-library-generator"

// moduleDeps follows the non-test imports of pkgs through the module. It
// returns the module packages reached and every import outside of them.
func moduleDeps(t *testing.T, pkgs []string) (local, external []string) {
	t.Helper()
	seen := map[string]bool{}
	outside := map[string]bool{}
	for len(pkgs) > 0 {
		path := pkgs[0]
		pkgs = pkgs[1:]
		if seen[path] {
			continue
		}
		rel, ok := strings.CutPrefix(path, modulePath+"/")
		if !ok {
			outside[path] = true
			continue
		}
		seen[path] = true
		p, err := build.ImportDir(filepath.Join("..", filepath.FromSlash(rel)), 0)
		require.NoError(t, err, path)
		pkgs = append(pkgs, p.Imports...)
	}
	for path := range seen {
		local = append(local, path)
	}
	for path := range outside {
		external = append(external, path)
	}
	sort.Strings(local)
	sort.Strings(external)
	return local, external
}

func TestGeneratedDependencies(t *testing.T) {
	src, err := Generate(example(t), Options{Package: "vehicle"})
	require.NoError(t, err)
	f, err := parser.ParseFile(token.NewFileSet(), "vehicle.go", src, parser.ImportsOnly)
	require.NoError(t, err)

	var imports []string
	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		require.NoError(t, err)
		imports = append(imports, path)
	}

	local, external := moduleDeps(t, imports)
	assert.Equal(t, []string{modulePath + "/can", modulePath + "/registry", modulePath + "/rwmap"}, local)
	for _, path := range external {
		// standard library paths have no dot in the first element
		first, _, _ := strings.Cut(path, "/")
		assert.NotContains(t, first, ".", path)
	}
	assert.NotEmpty(t, external)
}

func TestCheckedInPackageDependencies(t *testing.T) {
	local, external := moduleDeps(t, []string{modulePath + "/gen/internal/vehicle"})
	assert.Equal(t, []string{
		modulePath + "/can", modulePath + "/gen/internal/vehicle", modulePath + "/registry", modulePath + "/rwmap",
	}, local)
	for _, path := range external {
		first, _, _ := strings.Cut(path, "/")
		assert.NotContains(t, first, ".", path)
	}
}
