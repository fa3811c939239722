package permissions

import "strings"

// Has reports whether the group's combined permission set authorizes the
// given permission string. The empty permission is never authorized. A group
// holding the universal wildcard ".*" authorizes everything else.
//
// Otherwise the permission is matched segment by segment: for "a.b.c" the
// set is probed for "a.*", then "a.b.*", then the exact string "a.b.c". Any
// wildcard hit authorizes immediately; the final segment requires an exact
// match. A permission with no dot is probed as-is. Matching is
// case-insensitive.
func (g *Group) Has(permission string) bool {
	if permission == "" {
		return false
	}
	if _, ok := g.Combined[UniversalWildcard]; ok {
		return true
	}

	segments := strings.Split(strings.ToLower(permission), ".")
	var prefix strings.Builder
	for i, segment := range segments {
		if i > 0 {
			prefix.WriteByte('.')
		}
		prefix.WriteString(segment)
		if i == len(segments)-1 {
			_, ok := g.Combined[prefix.String()]
			return ok
		}
		if _, ok := g.Combined[prefix.String()+".*"]; ok {
			return true
		}
	}
	return false
}
