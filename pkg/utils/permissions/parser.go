// Package permissions parses octal file mode strings given on the command line.
package permissions

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultFilePerms applies to containers, sample images and extracted payloads.
const DefaultFilePerms os.FileMode = 0o644

// ParseOctalString parses "644", "0644" or "0o644" into a file mode.
// An empty string yields DefaultFilePerms.
func ParseOctalString(s string) (os.FileMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultFilePerms, nil
	}

	digits := strings.TrimPrefix(strings.ToLower(s), "0o")
	val, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return DefaultFilePerms, fmt.Errorf("invalid permission string %q: %w", s, err)
	}
	if val > 0o777 {
		return DefaultFilePerms, fmt.Errorf("invalid permission string %q: only permission bits are allowed", s)
	}

	return os.FileMode(val), nil
}

// FormatOctal formats a file mode as "0644".
func FormatOctal(perm os.FileMode) string {
	return fmt.Sprintf("%04o", uint32(perm.Perm()))
}
