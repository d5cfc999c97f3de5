package config

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// WriteConfigOrdered writes cfg as TOML with its tables sorted by name, so
// regenerated files diff cleanly.
func WriteConfigOrdered(cfg *Config, path string) error {
	data, err := EncodeOrdered(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EncodeOrdered renders cfg the way WriteConfigOrdered writes it.
func EncodeOrdered(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return []byte(sortTOMLSections(buf.String())), nil
}

// sortTOMLSections reorders [table] blocks alphabetically. Keys before the
// first table stay on top.
func sortTOMLSections(content string) string {
	type block struct {
		name  string
		lines []string
	}

	var head []string
	var blocks []block
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && !strings.HasPrefix(trimmed, "[[") {
			blocks = append(blocks, block{name: strings.Trim(trimmed, "[]")})
		}
		if trimmed == "" {
			continue
		}
		if len(blocks) == 0 {
			head = append(head, line)
			continue
		}
		last := &blocks[len(blocks)-1]
		last.lines = append(last.lines, line)
	}

	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].name < blocks[j].name })

	parts := make([]string, 0, len(blocks)+1)
	if len(head) > 0 {
		parts = append(parts, strings.Join(head, "\n"))
	}
	for _, b := range blocks {
		parts = append(parts, strings.Join(b.lines, "\n"))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}
