package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Entry is one parsed logrus text-format line.
type Entry struct {
	Time    string
	Level   string
	Message string
	Fields  map[string]string
	Raw     string
}

// FieldString renders the extra fields as sorted key=value pairs.
func (e Entry) FieldString() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+e.Fields[k])
	}
	return strings.Join(parts, " ")
}

// Read returns at most maxLines entries from the end of the log at path. A
// missing file yields no entries.
func Read(path string, maxLines int) ([]Entry, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, idx := 0, 0
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		count = min(count+1, maxLines)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	start := 0
	if count == maxLines {
		start = idx
	}
	entries := make([]Entry, count)
	for i := range entries {
		entries[i] = Parse(ring[(start+i)%maxLines])
	}
	return entries, nil
}

// Parse splits a line written by logrus.TextFormatter. Lines that are not
// key=value pairs come back with only Raw and Message set.
func Parse(line string) Entry {
	e := Entry{Raw: line}
	pairs, ok := splitPairs(line)
	if !ok {
		e.Message = line
		return e
	}
	for _, kv := range pairs {
		switch kv[0] {
		case "time":
			e.Time = kv[1]
		case "level":
			e.Level = kv[1]
		case "msg":
			e.Message = kv[1]
		default:
			if e.Fields == nil {
				e.Fields = make(map[string]string)
			}
			e.Fields[kv[0]] = kv[1]
		}
	}
	return e
}

func splitPairs(line string) ([][2]string, bool) {
	var pairs [][2]string
	rest := strings.TrimSpace(line)
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq <= 0 || strings.ContainsAny(rest[:eq], " \"") {
			return nil, false
		}
		key := rest[:eq]
		rest = rest[eq+1:]

		var value string
		if strings.HasPrefix(rest, `"`) {
			end := closingQuote(rest)
			if end < 0 {
				return nil, false
			}
			unquoted, err := strconv.Unquote(rest[:end+1])
			if err != nil {
				return nil, false
			}
			value, rest = unquoted, rest[end+1:]
		} else {
			sp := strings.IndexByte(rest, ' ')
			if sp < 0 {
				sp = len(rest)
			}
			value, rest = rest[:sp], rest[sp:]
		}
		pairs = append(pairs, [2]string{key, value})
		rest = strings.TrimLeft(rest, " ")
	}
	return pairs, len(pairs) > 0
}

// closingQuote returns the index of the quote that ends the string starting
// at s[0].
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
