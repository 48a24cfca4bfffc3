package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

var routerAnnotation = regexp.MustCompile(`(?m)^// @Router\s+(\S+)\s+\[(\w+)\]`)

type document struct {
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func readRegistered(t *testing.T) (document, string) {
	t.Helper()
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc, raw
}

func TestDoc_CoversEveryAnnotatedRoute(t *testing.T) {
	doc, _ := readRegistered(t)

	files, err := filepath.Glob(filepath.Join("..", "internal", "features", "*", "handler.go"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	total := 0
	for _, file := range files {
		src, err := os.ReadFile(file)
		require.NoError(t, err)
		for _, m := range routerAnnotation.FindAllStringSubmatch(string(src), -1) {
			total++
			ops, ok := doc.Paths[m[1]]
			if assert.True(t, ok, "missing path %s from %s", m[1], file) {
				assert.Contains(t, ops, strings.ToLower(m[2]), "missing %s %s", m[2], m[1])
			}
		}
	}

	ops := 0
	for _, methods := range doc.Paths {
		ops += len(methods)
	}
	assert.Equal(t, total, ops)
}

func TestDoc_RefsResolve(t *testing.T) {
	doc, raw := readRegistered(t)

	refs := regexp.MustCompile(`"#/definitions/([^"]+)"`).FindAllStringSubmatch(raw, -1)
	require.NotEmpty(t, refs)
	for _, m := range refs {
		assert.Contains(t, doc.Definitions, m[1])
	}
}

func TestSwaggerFiles_MatchTemplate(t *testing.T) {
	doc, _ := readRegistered(t)

	raw, err := os.ReadFile("swagger.json")
	require.NoError(t, err)
	var onDisk document
	require.NoError(t, json.Unmarshal(raw, &onDisk))

	assert.Equal(t, len(doc.Paths), len(onDisk.Paths))
	assert.Equal(t, len(doc.Definitions), len(onDisk.Definitions))
}
