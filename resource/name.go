// Copyright (c) 2026 The nsd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package resource

import "fmt"

// reservedSuffixes are the RFC 2606 special-use labels neither namespace
// may terminate in: a target claiming to live under one of these can never
// actually resolve, so rejecting it at encode time is cheaper than letting
// it round-trip into a dead record.
var reservedSuffixes = []string{".test", ".example", ".invalid", ".localhost"}

// verifyName checks a target name against §4.1's rules. chainNamespace
// selects whether '_' is an allowed label character (only the naming
// chain's own namespace permits it, for its service-record style labels).
func verifyName(name string, chainNamespace bool) error {
	if name == "" {
		return fmt.Errorf("resource: name must not be empty")
	}
	if name[0] == '.' || name[len(name)-1] == '.' {
		return fmt.Errorf("resource: name %q has a leading or trailing dot", name)
	}

	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c == '.':
			if i > 0 && name[i-1] == '.' {
				return fmt.Errorf("resource: name %q has adjacent dots", name)
			}
		case c == '-' || c == '_':
			if c == '_' && !chainNamespace {
				return fmt.Errorf("resource: name %q uses '_' outside the chain namespace", name)
			}
			if i == 0 || i == len(name)-1 {
				return fmt.Errorf("resource: name %q starts or ends with %q", name, c)
			}
			if name[i-1] == '.' || name[i+1] == '.' {
				return fmt.Errorf("resource: name %q has %q adjacent to a dot", name, c)
			}
		default:
			return fmt.Errorf("resource: name %q contains invalid character %q", name, c)
		}
	}

	for _, suffix := range reservedSuffixes {
		if len(name) >= len(suffix) && name[len(name)-len(suffix):] == suffix {
			return fmt.Errorf("resource: name %q ends with the reserved suffix %q", name, suffix)
		}
	}

	return nil
}
