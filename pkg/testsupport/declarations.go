package testsupport

import "regexp"

var declaration = regexp.MustCompile(`(?m)^\w[^\n]*[\s*](\w+)\n\($`)

// DeclaredIdentifiers extracts the names of C function definitions laid out
// as "<return type> <name>" followed by a line holding "(".
func DeclaredIdentifiers(source string) []string {
	matches := declaration.FindAllStringSubmatch(source, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}
