// Package emit renders parsed value trees as text.
package emit

import (
	"strings"

	"github.com/Aidix21/Conf-SH-A-R-Pr4/value"
)

// TOML flattens tbl into TOML text. Each table level lists its scalar
// entries as KEY = VALUE lines first, then every nested table under a
// blank line and a [dotted.path] header. Non-empty output ends with a
// newline; an empty table renders as the empty string.
func TOML(tbl *value.Table) string {
	var lines []string
	flatten(&lines, tbl, "")
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func flatten(lines *[]string, tbl *value.Table, prefix string) {
	tbl.Each(func(key string, v value.Value) {
		if _, ok := v.(*value.Table); !ok {
			*lines = append(*lines, key+" = "+v.String())
		}
	})
	tbl.Each(func(key string, v value.Value) {
		sub, ok := v.(*value.Table)
		if !ok {
			return
		}
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		*lines = append(*lines, "", "["+path+"]")
		flatten(lines, sub, path)
	})
}
