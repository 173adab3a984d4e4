package builder

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
)

// CharClassDef is the parsed contents of char.def: the class name
// table plus the code-point-to-class assignment and per-class flags.
type CharClassDef struct {
	Classes  []string
	Category []byte
	Invoke   []bool
	Group    []bool
}

var (
	reCharClass         = regexp.MustCompile(`^(\w+)\s+(\d+)\s+(\d+)\s+(\d+)`)
	reCharCategory      = regexp.MustCompile(`^(0[xX][0-9A-Fa-f]+)(?:\s+([^#\s]+))(?:\s+([^#\s]+))?`)
	reCharCategoryRange = regexp.MustCompile(`^(0[xX][0-9A-Fa-f]+)\.\.(0[xX][0-9A-Fa-f]+)(?:\s+([^#\s]+))(?:\s+([^#\s]+))?`)
)

// ParseCharDef parses char.def: class-definition lines ("CLASS invoke
// group length"), single code point assignments, and code point ranges.
func ParseCharDef(path string, enc encoding.Encoding) (*CharClassDef, error) {
	decoded, err := readDecoded(path, enc)
	if err != nil {
		return nil, err
	}

	var classes []string
	category := make([]byte, 1<<16)
	var invoke, group []bool
	classID := make(map[string]byte)

	scanner := bufio.NewScanner(bytes.NewReader(decoded))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case reCharCategoryRange.MatchString(line):
			m := reCharCategoryRange.FindStringSubmatch(line)
			start, err := parseHex(m[1])
			if err != nil {
				return nil, fmt.Errorf("builder: %s line %d: %w", path, lineNo, err)
			}
			end, err := parseHex(m[2])
			if err != nil {
				return nil, fmt.Errorf("builder: %s line %d: %w", path, lineNo, err)
			}
			id, ok := classID[m[3]]
			if !ok {
				return nil, fmt.Errorf("builder: %s line %d: unknown class %q", path, lineNo, m[3])
			}
			for cp := start; cp <= end && int(cp) < len(category); cp++ {
				category[cp] = id
			}

		case reCharCategory.MatchString(line):
			m := reCharCategory.FindStringSubmatch(line)
			cp, err := parseHex(m[1])
			if err != nil {
				return nil, fmt.Errorf("builder: %s line %d: %w", path, lineNo, err)
			}
			id, ok := classID[m[2]]
			if !ok {
				return nil, fmt.Errorf("builder: %s line %d: unknown class %q", path, lineNo, m[2])
			}
			if int(cp) < len(category) {
				category[cp] = id
			}

		case reCharClass.MatchString(line):
			m := reCharClass.FindStringSubmatch(line)
			invokeFlag := m[2] == "1"
			groupFlag := m[3] == "1"
			classID[m[1]] = byte(len(classes))
			classes = append(classes, m[1])
			invoke = append(invoke, invokeFlag)
			group = append(group, groupFlag)

		default:
			return nil, fmt.Errorf("builder: %s line %d: invalid char.def line: %q", path, lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("builder: %s: %w", path, err)
	}

	return &CharClassDef{Classes: classes, Category: category, Invoke: invoke, Group: group}, nil
}

func parseHex(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid code point %q: %w", s, err)
	}
	return uint32(v), nil
}
