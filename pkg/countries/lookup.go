package countries

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/airportmap/pkg/errors"
)

// Lookup supplies a code for a country name missing from the table.
// Implementations return errors.ErrUnresolvedCountry when they have no answer.
type Lookup interface {
	Lookup(ctx context.Context, name string) (string, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, name string) (string, error)

// Lookup calls f.
func (f LookupFunc) Lookup(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// Fail returns a Lookup that never resolves.
func Fail() Lookup {
	return LookupFunc(func(context.Context, string) (string, error) {
		return "", errors.ErrUnresolvedCountry
	})
}

// Fixed is a static override table.
type Fixed map[string]string

// Lookup returns the override for name.
func (f Fixed) Lookup(_ context.Context, name string) (string, error) {
	if code, ok := f[name]; ok && strings.TrimSpace(code) != "" {
		return strings.TrimSpace(code), nil
	}
	return "", errors.ErrUnresolvedCountry
}

// Chain tries each lookup in order until one resolves. Errors other than
// errors.ErrUnresolvedCountry stop the chain.
func Chain(lookups ...Lookup) Lookup {
	return LookupFunc(func(ctx context.Context, name string) (string, error) {
		for _, l := range lookups {
			code, err := l.Lookup(ctx, name)
			if err == nil {
				return code, nil
			}
			if !errors.IsUnresolvedCountry(err) {
				return "", err
			}
		}
		return "", errors.ErrUnresolvedCountry
	})
}

// PromptLookup asks an operator for the code of each unknown country.
type PromptLookup struct {
	in  *bufio.Reader
	out io.Writer
}

// Prompt returns a Lookup that writes a question to out and reads the
// answer, one line, from in.
func Prompt(in io.Reader, out io.Writer) *PromptLookup {
	return &PromptLookup{in: bufio.NewReader(in), out: out}
}

// Lookup prompts for name. End of input without an answer is unresolved.
func (p *PromptLookup) Lookup(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintf(p.out, "Enter the country code for %s: ", name); err != nil {
		return "", errors.WrapIO("write", "prompt", err)
	}

	line, err := p.in.ReadString('\n')
	answer := strings.TrimSpace(line)
	if err != nil {
		if err == io.EOF && answer != "" {
			return answer, nil
		}
		if err == io.EOF {
			return "", errors.ErrUnresolvedCountry
		}
		return "", errors.WrapIO("read", "prompt", err)
	}
	return answer, nil
}
