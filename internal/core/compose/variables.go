package compose

import "regexp"

// =============================================================================
// Variable Extraction
// =============================================================================

// variablePlaceholderRegex matches ${VAR_NAME}, ${VAR_NAME:-default}, ${VAR_NAME-default},
// ${VAR_NAME:?err} and ${VAR_NAME?err}.
var variablePlaceholderRegex = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:[:]?[-?+][^}]*)?\}`)

// ExtractVariablesFromYAML extracts environment variable placeholders from raw YAML content.
// Returns unique variable names without the ${} wrapper, in order of first appearance.
// Escaped placeholders ($${VAR}) are skipped.
func ExtractVariablesFromYAML(yamlContent string) []string {
	seen := make(map[string]bool)
	var vars []string

	matches := variablePlaceholderRegex.FindAllStringSubmatchIndex(yamlContent, -1)
	for _, match := range matches {
		if match[0] > 0 && yamlContent[match[0]-1] == '$' {
			continue
		}
		varName := yamlContent[match[2]:match[3]]
		if !seen[varName] {
			seen[varName] = true
			vars = append(vars, varName)
		}
	}

	return vars
}
