package annotation

import (
	"regexp"
	"strings"
)

// directiveRe matches: apexfix:ignore [rules...] [# reason]
// or apexfix:ignore-file [# reason], inside a // or /* comment.
var directiveRe = regexp.MustCompile(`apexfix:(ignore-file|ignore)\b([^#]*)(?:#\s*(.*))?$`)

// ParseFile extracts all apexfix annotations from Apex source
func ParseFile(filename string, src []byte) []*Annotation {
	var annotations []*Annotation

	for i, line := range strings.Split(string(src), "\n") {
		comment, ok := commentText(line)
		if !ok {
			continue
		}

		m := directiveRe.FindStringSubmatch(comment)
		if m == nil {
			continue
		}

		ann := &Annotation{
			Filename: filename,
			Line:     i + 1,
			Reason:   strings.TrimSpace(m[3]),
		}
		if m[1] == "ignore-file" {
			ann.Scope = ScopeFile
		}
		for _, field := range strings.FieldsFunc(m[2], func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		}) {
			ann.Rules = append(ann.Rules, field)
		}

		annotations = append(annotations, ann)
	}

	return annotations
}

// commentText returns the comment portion of a line, if any
func commentText(line string) (string, bool) {
	if idx := strings.Index(line, "//"); idx != -1 {
		return strings.TrimSuffix(strings.TrimSpace(line[idx+2:]), "*/"), true
	}
	if idx := strings.Index(line, "/*"); idx != -1 {
		text := line[idx+2:]
		if end := strings.Index(text, "*/"); end != -1 {
			text = text[:end]
		}
		return strings.TrimSpace(text), true
	}
	return "", false
}
