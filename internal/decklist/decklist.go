// Package decklist turns pasted decklist text into card lookup requests.
//
// Two line formats are accepted, detected per line:
//
//	1 Sol Ring (LTC) 280
//	4 Counterspell
//
// The first blank line ends the list; everything after it is ignored.
package decklist

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CardRequest is the intent of one decklist line. SetCode and CollectorNumber
// are either both set or both empty; the line grammar cannot produce one
// without the other.
type CardRequest struct {
	Quantity        int
	Name            string
	SetCode         string
	CollectorNumber string
}

// ExactPrinting reports whether the request pins a specific printing.
func (r CardRequest) ExactPrinting() bool {
	return r.SetCode != "" && r.CollectorNumber != ""
}

func (r CardRequest) key() string {
	if r.ExactPrinting() {
		return strings.ToLower(r.SetCode) + "-" + r.CollectorNumber
	}
	return strings.ToLower(r.Name)
}

// LineError reports a single decklist line that could not be parsed. It never
// aborts the batch; the remaining lines still resolve.
type LineError struct {
	Line int // 1-based line number
	Text string
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: cannot parse %q", e.Line, e.Text)
}

// The set code is only recognized as a parenthesized 2-5 character token
// followed by a collector number; any other trailing text stays part of the
// card name.
var lineRe = regexp.MustCompile(`^\s*(\d+)\s+(.+?)(?:\s+\(([0-9A-Za-z]{2,5})\)\s+([\w-]+))?\s*$`)

// Parse converts raw decklist text into requests, in input order. Lines that
// repeat an already-seen card are dropped; quantity is informational only.
func Parse(raw string) ([]CardRequest, []LineError) {
	var (
		requests []CardRequest
		problems []LineError
	)
	seen := make(map[string]bool)
	for i, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			break
		}
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			problems = append(problems, LineError{Line: i + 1, Text: strings.TrimSpace(line)})
			continue
		}
		quantity, err := strconv.Atoi(m[1])
		if err != nil || quantity < 1 {
			problems = append(problems, LineError{Line: i + 1, Text: strings.TrimSpace(line)})
			continue
		}
		request := CardRequest{
			Quantity:        quantity,
			Name:            strings.TrimSpace(m[2]),
			SetCode:         m[3],
			CollectorNumber: m[4],
		}
		if seen[request.key()] {
			continue
		}
		seen[request.key()] = true
		requests = append(requests, request)
	}
	return requests, problems
}
