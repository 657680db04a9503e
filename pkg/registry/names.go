package registry

import "strings"

// JSONName converts a snake_case field name to its lowerCamelCase JSON key.
// Every letter following an underscore is upper-cased and the underscore
// dropped, so "subject_or_biosample_id" becomes "subjectOrBiosampleId".
func JSONName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	upper := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			upper = true
			continue
		}
		if upper && 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		upper = false
		b.WriteByte(c)
	}
	return b.String()
}

// FullName joins a package and a relative (possibly nested) type name.
func FullName(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// ShortName is the last dotted segment of a type name.
func ShortName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func validDotted(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !validIdent(part) {
			return false
		}
	}
	return true
}
