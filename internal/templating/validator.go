package templating

import (
	"fmt"
	"strings"
)

// ValidationResult reports template/declaration drift: declared variable
// paths the template text never references. It is a lint over the template
// source, not a check of runtime data, and is advisory only.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks that every expected path is referenced somewhere in the
// template: as a plain substitution, a helper argument, an {{#if}} condition
// or the root of an {{#each}}.
func Validate(template string, expectedPaths []string) ValidationResult {
	referenced := referencedPaths(template)
	result := ValidationResult{Valid: true, Errors: []string{}}
	for _, path := range expectedPaths {
		if _, ok := referenced[path]; ok {
			continue
		}
		result.Errors = append(result.Errors, fmt.Sprintf("variável esperada %q não encontrada no template", path))
	}
	result.Valid = len(result.Errors) == 0
	return result
}

// referencedPaths scans tag contents without building a full parse tree so
// the lint still works on templates with unbalanced blocks.
func referencedPaths(template string) map[string]struct{} {
	paths := make(map[string]struct{})
	i := 0
	for i < len(template) {
		start := strings.Index(template[i:], "{{")
		if start == -1 {
			break
		}
		start += i
		open, close := 2, "}}"
		if strings.HasPrefix(template[start:], "{{{") {
			open, close = 3, "}}}"
		}
		end := strings.Index(template[start+open:], close)
		if end == -1 {
			break
		}
		content := strings.TrimSpace(template[start+open : start+open+end])
		i = start + open + end + len(close)

		content = strings.TrimSpace(strings.TrimPrefix(content, "#if"))
		content = strings.TrimSpace(strings.TrimPrefix(content, "#each"))
		if content == "" || content == "else" || strings.HasPrefix(content, "/") {
			continue
		}
		fields := strings.Fields(content)
		path := fields[0]
		if len(fields) == 2 {
			if _, isHelper := helpers[fields[0]]; isHelper {
				path = fields[1]
			}
		}
		paths[path] = struct{}{}
	}
	return paths
}
