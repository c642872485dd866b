package vaults

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/recule556688/obsidian-dotfiles/pkg/errors"
	"github.com/recule556688/obsidian-dotfiles/pkg/logging"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
)

// PromptSelection prints a numbered vault list to w, reads one line of input
// from r and returns the selected vaults. The input is either the literal
// "all" or a whitespace-separated list of 1-based indices. Invalid entries
// are reported on w and skipped; empty input selects nothing.
func PromptSelection(r io.Reader, w io.Writer, vaults []types.Vault) ([]types.Vault, error) {
	logger := logging.GetLogger("vaults.selection")

	if len(vaults) == 0 {
		return nil, nil
	}

	fmt.Fprintln(w, "Found the following vaults:")
	for i, vault := range vaults {
		marker := ""
		if vault.Ignored {
			marker = " [ignored]"
		}
		fmt.Fprintf(w, "  %d. %s (%s)%s\n", i+1, vault.Name, vault.Path, marker)
	}
	fmt.Fprint(w, "Install to which? (all, or numbers separated by spaces): ")

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			// Closed stdin selects nothing
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrSelectionInput, "failed to read selection")
	}

	selected, invalid := ParseSelection(line, vaults)
	for _, entry := range invalid {
		fmt.Fprintf(w, "Skipping invalid selection %q\n", entry)
	}

	logger.Info().
		Int("selected", len(selected)).
		Int("invalid", len(invalid)).
		Int("total", len(vaults)).
		Msg("Selected vaults")

	return selected, nil
}

// ParseSelection resolves one line of selection input against a vault list.
// It returns the selected vaults in input order plus the entries that were
// out of range or not numbers. Repeated indices are selected once.
func ParseSelection(input string, vaults []types.Vault) (selected []types.Vault, invalid []string) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, nil
	}

	if len(fields) == 1 && strings.EqualFold(fields[0], "all") {
		return append([]types.Vault(nil), vaults...), nil
	}

	seen := make(map[int]bool)
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 || n > len(vaults) {
			invalid = append(invalid, field)
			continue
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		selected = append(selected, vaults[n-1])
	}

	return selected, invalid
}

// Names returns the vault names in order
func Names(vaults []types.Vault) []string {
	names := make([]string, len(vaults))
	for i, vault := range vaults {
		names[i] = vault.Name
	}
	return names
}
