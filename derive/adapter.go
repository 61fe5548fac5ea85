// Package derive runs an external hd-wallet-derive compatible tool and turns its JSON output
// into wallet records.
package derive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AlexZinkM/hd-derive/internal/model"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultTimeout bounds a single tool run when the Adapter has none configured
	DefaultTimeout = 30 * time.Second

	// waitDelay bounds how long Wait keeps reading pipes after the process was killed
	waitDelay = time.Second
)

// Deriver derives wallet records for a request
type Deriver interface {
	Derive(ctx context.Context, req model.DerivationRequest) ([]model.WalletRecord, error)
}

// Adapter invokes the derivation tool. The zero value is not usable, Path must be set.
// An Adapter holds no per-call state and is safe for concurrent use.
type Adapter struct {
	Path     string        // tool executable
	BaseArgs []string      // prepended to the derivation flags
	Env      []string      // added to the inherited environment
	Timeout  time.Duration // per call, DefaultTimeout if zero
}

// NewAdapter creates an Adapter for the tool at path
func NewAdapter(path string, timeout time.Duration) *Adapter {
	return &Adapter{
		Path:    path,
		Timeout: timeout,
	}
}

// Args builds the tool argument vector for req. The key or mnemonic is passed as its own
// argument, nothing is ever interpreted by a shell.
func Args(req model.DerivationRequest) []string {
	secret := "--key=" + req.Key
	if req.Mnemonic != "" {
		secret = "--mnemonic=" + model.NormalizeMnemonic(req.Mnemonic)
	}
	args := []string{
		"-g",
		secret,
		"--cols=" + strings.Join(req.Columns(), ","),
		"--coin=" + string(req.Coin),
		"--format=" + req.OutputFormat(),
	}
	if req.NumDerive > 0 {
		args = append(args, "--numderive="+strconv.Itoa(req.NumDerive))
	}
	if req.StartIndex > 0 {
		args = append(args, "--startindex="+strconv.Itoa(req.StartIndex))
	}
	if req.Path != "" {
		args = append(args, "--path="+req.Path)
	}
	return args
}

// Derive runs the tool once and returns the derived records in tool order.
// Errors are *TimeoutError, *ExternalToolError, *MalformedOutputError, *SchemaError,
// ErrInvalidRequest (wrapped) or the caller's context error.
func (a *Adapter) Derive(ctx context.Context, req model.DerivationRequest) ([]model.WalletRecord, error) {
	req.Coin = model.Coin(strings.ToUpper(string(req.Coin)))
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	// a shorter caller deadline is the one that fires, report that
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = max(remaining, 0)
		}
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := append(append([]string{}, a.BaseArgs...), Args(req)...)
	cmd := exec.CommandContext(runCtx, a.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdin = nil // /dev/null
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	if len(a.Env) > 0 {
		cmd.Env = append(os.Environ(), a.Env...)
	}

	start := time.Now()
	// Run starts the process and waits for it, the process is reaped on every path
	runErr := cmd.Run()
	took := time.Since(start)

	if runErr != nil {
		err := a.runError(ctx, runCtx, runErr, timeout, stderr.String(), secretsOf(req))
		log.Warn().Err(err).Object("request", req).Dur("took", took).Msg("derivation tool failed")
		return nil, err
	}

	records, err := parseRecords(stdout.Bytes(), req.Columns(), secretsOf(req))
	if err != nil {
		log.Warn().Err(err).Object("request", req).Msg("unusable derivation tool output")
		return nil, err
	}

	log.Debug().Object("request", req).Int("records", len(records)).Dur("took", took).Msg("derived wallet records")
	return records, nil
}

// runError classifies a failed run
func (a *Adapter) runError(ctx, runCtx context.Context, runErr error, timeout time.Duration, stderr string, secrets []string) error {
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Timeout: timeout}
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("derivation cancelled: %w", err)
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return &ExternalToolError{
			ExitCode: exitErr.ExitCode(),
			Stderr:   redact(stderr, maxStderrLen, secrets...),
			Err:      runErr,
		}
	}
	return &ExternalToolError{
		ExitCode: -1,
		Stderr:   redact(stderr, maxStderrLen, secrets...),
		Err:      runErr,
	}
}

// stringColumns are decoded into the named WalletRecord fields
var stringColumns = map[string]bool{
	model.ColPath:    true,
	model.ColAddress: true,
	model.ColPrivKey: true,
	model.ColPubKey:  true,
}

// parseRecords decodes tool stdout into records and checks every requested column is present.
// Nothing is returned on error.
func parseRecords(out []byte, cols []string, secrets []string) ([]model.WalletRecord, error) {
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		return nil, &MalformedOutputError{Err: errors.New("empty output")}
	}
	if !utf8.Valid(trimmed) {
		return nil, &MalformedOutputError{
			Excerpt: redact(strings.ToValidUTF8(string(trimmed), "?"), maxExcerptLen, secrets...),
			Err:     errors.New("output is not valid UTF-8"),
		}
	}
	if !json.Valid(trimmed) {
		var v any
		err := json.Unmarshal(trimmed, &v)
		return nil, &MalformedOutputError{
			Excerpt: redact(string(trimmed), maxExcerptLen, secrets...),
			Err:     err,
		}
	}

	if trimmed[0] != '[' {
		return nil, &SchemaError{Index: -1, Reason: "expected a JSON array of records, got " + jsonKind(trimmed)}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &MalformedOutputError{Excerpt: redact(string(trimmed), maxExcerptLen, secrets...), Err: err}
	}

	records := make([]model.WalletRecord, 0, len(items))
	for i, item := range items {
		rec, err := parseRecord(i, item, cols)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(i int, item json.RawMessage, cols []string) (model.WalletRecord, error) {
	var rec model.WalletRecord
	item = bytes.TrimSpace(item)
	if len(item) == 0 || item[0] != '{' {
		return rec, &SchemaError{Index: i, Reason: "expected an object, got " + jsonKind(item)}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return rec, &SchemaError{Index: i, Reason: err.Error()}
	}

	for _, col := range cols {
		v, ok := fields[col]
		if !ok || string(v) == "null" {
			return rec, &SchemaError{Index: i, Field: col, Reason: "is missing"}
		}
	}

	for name, v := range fields {
		if !stringColumns[name] {
			if rec.Extra == nil {
				rec.Extra = make(map[string]json.RawMessage)
			}
			rec.Extra[name] = v
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return model.WalletRecord{}, &SchemaError{Index: i, Field: name, Reason: "must be a string"}
		}
		switch name {
		case model.ColPath:
			rec.Path = s
		case model.ColAddress:
			rec.Address = s
		case model.ColPrivKey:
			rec.PrivKey = s
		case model.ColPubKey:
			rec.PubKey = s
		}
	}
	return rec, nil
}

// jsonKind names the type of a valid JSON value by its first byte
func jsonKind(v []byte) string {
	if len(v) == 0 {
		return "nothing"
	}
	switch v[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
