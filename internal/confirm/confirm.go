// Package confirm implements the typed-challenge gate in front of
// destructive commands. The gate runs entirely client-side: a mismatch
// aborts before any request is sent.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/core"
)

// ResetKeyword is the literal challenge for resetting the server
// configuration.
const ResetKeyword = "delete"

// Gate describes one challenge: the operator must type Expected
// verbatim before the guarded command may be dispatched.
type Gate struct {
	Prompt   string
	Expected string
}

// DeleteUser builds the gate for deleting an account: the operator
// retypes the account's email.
func DeleteUser(email string) Gate {
	return Gate{
		Prompt:   fmt.Sprintf("Type %q to permanently delete this user", email),
		Expected: email,
	}
}

// ResetConfig builds the gate for resetting the server configuration.
func ResetConfig() Gate {
	return Gate{
		Prompt:   fmt.Sprintf("Type %q to reset the configuration to defaults", ResetKeyword),
		Expected: ResetKeyword,
	}
}

// Check compares the operator's input against the challenge. Leading
// and trailing whitespace is forgiven; anything else must match
// exactly.
func (g Gate) Check(input string) error {
	if strings.TrimSpace(input) != g.Expected {
		return core.ErrConfirmation("confirmation does not match, aborting")
	}
	return nil
}

// Ask prompts on w and reads one line from r, then checks it. Used by
// the non-interactive CLI commands; the panel runs the same Check
// against its modal input.
func (g Gate) Ask(r io.Reader, w io.Writer) error {
	fmt.Fprintf(w, "%s: ", g.Prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return core.ErrConfirmation("no confirmation input")
	}
	return g.Check(strings.TrimSuffix(line, "\n"))
}
