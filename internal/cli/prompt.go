package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/danieljhkim/humanutils/internal/planner"
)

const promptSuffix = "? [Y/n]"

// readConfirmation reads one answer line. An empty line or an answer
// starting with y is a yes; end of input or anything else is a no.
func readConfirmation(in *bufio.Reader) bool {
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	if line == "\n" || line == "\r\n" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y")
}

// kindWord names an existing entry in a prompt.
func kindWord(record planner.ConflictRecord) string {
	return record.Kind.String()
}

// overwritePrompt asks to overwrite or delete existing entries before
// creating over them.
func overwritePrompt(records []planner.ConflictRecord) string {
	if len(records) == 1 {
		r := records[0]
		return fmt.Sprintf("Overwrite %s \"%s\"%s", kindWord(r), r.Path, promptSuffix)
	}
	var b strings.Builder
	b.WriteString("For the following...\n")
	for _, r := range records {
		b.WriteString(pathString(displayPath(r.Path, r.Kind)))
		b.WriteString("\n")
	}
	b.WriteString("...overwrite all" + promptSuffix)
	return b.String()
}

// replacePrompt asks to replace the destination of a rename.
func replacePrompt(record planner.ConflictRecord, display string) string {
	word := "File"
	if record.Kind == planner.KindDirectory {
		word = "Directory"
	}
	return fmt.Sprintf("%s \"%s\" already exists, replace it? [Y/n]", word, display)
}
