package classvm

import "github.com/pkg/errors"

// wrap attaches a stack trace to err for the diagnostic written to
// stderr. This is the one place in the module that reaches for
// github.com/pkg/errors — everywhere else stays on plain
// fmt.Errorf("...: %w", err), so the enrichment is additive rather
// than a wholesale style change.
func wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, context)
}
