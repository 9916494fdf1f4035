package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/fmrd/internal/gate"
	"github.com/mesh-intelligence/fmrd/internal/paths"
	"github.com/mesh-intelligence/fmrd/internal/store"
	"github.com/mesh-intelligence/fmrd/pkg/types"
)

// backendConfig resolves the data directory and reads the backend keys.
func (a *app) backendConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
		DSN:     a.config.GetString(cfgKeyDSN),
	}, nil
}

// attachBackend opens the configured database. The caller must defer
// backend.Detach().
func (a *app) attachBackend(ctx context.Context) (*store.Backend, error) {
	cfg, err := a.backendConfig()
	if err != nil {
		return nil, sysError(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, userError(fmt.Errorf("config.yaml: %w", err))
	}
	b := store.NewBackend(a.logger)
	if err := b.Attach(ctx, cfg); err != nil {
		return nil, sysError(fmt.Errorf("attach backend: %w", err))
	}
	return b, nil
}

// newGate builds the readiness gate from config.yaml. A bad threshold or
// table name is the user's to fix.
func (a *app) newGate(b *store.Backend) (*gate.Gate, error) {
	g, err := gate.New(b, b, gateConfig(a.config), a.logger)
	if err != nil {
		return nil, userError(fmt.Errorf("config.yaml: %w", err))
	}
	return g, nil
}

func (a *app) newGuard(b *store.Backend) (*gate.Guard, error) {
	g, err := gate.NewGuard(b, types.DefaultRegistry(), a.logger)
	if err != nil {
		return nil, sysError(err)
	}
	return g, nil
}

// lookupEntity resolves an entity name from the command line.
func lookupEntity(name string) (types.EntitySpec, error) {
	registry := types.DefaultRegistry()
	spec, err := registry.Lookup(name)
	if err != nil {
		return types.EntitySpec{}, userError(fmt.Errorf("unknown entity %q (valid: %s)",
			name, strings.Join(registry.Names(), ", ")))
	}
	return spec, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, userError(fmt.Errorf("%w: %q", types.ErrInvalidID, s))
	}
	return id, nil
}

// classify maps record errors caused by user input to user errors and
// everything else to system errors.
func classify(err error) error {
	for _, target := range []error{
		types.ErrNotFound,
		types.ErrInvalidID,
		types.ErrInvalidData,
		types.ErrDuplicateRecord,
		types.ErrHasDependents,
	} {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal output: %w", err))
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// recordJSON keys a record's values by column name.
func recordJSON(spec types.EntitySpec, rec types.Record) map[string]any {
	m := make(map[string]any, len(spec.Columns)+1)
	m[spec.IDColumn] = rec.ID
	for i, c := range spec.Columns {
		if i < len(rec.Values) {
			m[c] = rec.Values[i]
		}
	}
	return m
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
