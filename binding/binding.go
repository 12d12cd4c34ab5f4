package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Filter 对插值结果做一次变换。
type Filter func(string) string

var filters = map[string]Filter{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"trim":  strings.TrimSpace,
	"snake": snake,
}

// Interpolate 将文本中的 ${path.to.value} 或 ${path|filter|...} 替换为 data 中的值。
// 若 data 为空、路径不存在或过滤器未知，则保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		parts := strings.Split(groups[1], "|")
		path := strings.TrimSpace(parts[0])
		if path == "" {
			return match
		}
		val, ok := resolvePath(data, path)
		if !ok {
			return match
		}
		out := fmt.Sprint(val)
		for _, name := range parts[1:] {
			f, ok := filters[strings.TrimSpace(name)]
			if !ok {
				return match
			}
			out = f(out)
		}
		return out
	})
}

// Placeholders 返回模板中引用的全部路径（不含过滤器），按出现顺序。
func Placeholders(text string) []string {
	var out []string
	for _, groups := range exprPattern.FindAllStringSubmatch(text, -1) {
		path := strings.TrimSpace(strings.SplitN(groups[1], "|", 2)[0])
		if path != "" {
			out = append(out, path)
		}
	}
	return out
}

// snake 把连续空白折叠为单个下划线。
func snake(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), "_")
}

func resolvePath(data any, path string) (any, bool) {
	current := data
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			current, ok = descendMap(current, name)
			if !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			current, ok = descendArray(current, idx)
			if !ok {
				return nil, false
			}
		}
	}
	return current, true
}

func parseSegment(segment string) (string, []string) {
	name := segment
	indexes := []string{}
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 {
			if rest[0] != '[' {
				break
			}
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]interface{}:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []interface{}:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	case []string:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}
