package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/weirlive/panw-object/internal/domain"
	"github.com/weirlive/panw-object/internal/synthesizer"
	"github.com/weirlive/panw-object/internal/validation"
	"go.uber.org/zap"
)

// Generation is the outcome of one Generate call. Directives counts
// directive lines, Skipped counts skipped entries.
type Generation struct {
	ID         string         `json:"id"`
	Result     domain.Result  `json:"result"`
	Outcome    domain.Outcome `json:"outcome"`
	Directives int            `json:"directives"`
	Skipped    int            `json:"skipped"`
	Checksum   string         `json:"checksum"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Classification is the detected type and name of a single entry.
type Classification struct {
	Entry  string            `json:"entry"`
	Type   domain.ObjectType `json:"type,omitempty"`
	Suffix string            `json:"suffix"`
	Name   string            `json:"name,omitempty"`
	Skip   string            `json:"skip,omitempty"`
}

// Stats counts generations since start.
type Stats struct {
	Generations int `json:"generations"`
	Directives  int `json:"directives"`
	Skipped     int `json:"skipped"`
}

// Generator validates requests and runs them through the synthesizer.
// It is shared by the API, the web form and the CLI.
type Generator struct {
	synth  *synthesizer.Synthesizer
	logger *zap.Logger

	mu    sync.Mutex
	stats Stats
}

// NewGenerator creates a new Generator.
func NewGenerator(synth *synthesizer.Synthesizer, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		synth:  synth,
		logger: logger,
	}
}

// Policy returns the active naming policy.
func (g *Generator) Policy() synthesizer.Policy {
	return g.synth.Policy()
}

// Generate validates req and synthesizes its directives. Precondition
// failures wrap domain.ErrInvalidInput around validation.ValidationErrors.
func (g *Generator) Generate(ctx context.Context, req domain.Request) (*Generation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	validation.NormalizeRequest(&req)
	if err := validation.ValidateRequest(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	result := g.synth.Synthesize(req)
	text := result.Text()
	sum := sha256.Sum256([]byte(text))

	gen := &Generation{
		ID:         uuid.New().String(),
		Result:     result,
		Outcome:    result.Outcome(),
		Directives: len(result.Directives()),
		Skipped:    len(result.Skipped()),
		Checksum:   hex.EncodeToString(sum[:]),
		CreatedAt:  time.Now(),
	}

	g.mu.Lock()
	g.stats.Generations++
	g.stats.Directives += gen.Directives
	g.stats.Skipped += gen.Skipped
	g.mu.Unlock()

	g.logger.Info("generated directives",
		zap.String("id", gen.ID),
		zap.String("zone", req.ZoneName()),
		zap.String("operation", string(req.Operation)),
		zap.Int("entries", len(req.Entries)),
		zap.Int("directives", gen.Directives),
		zap.Int("skipped", gen.Skipped),
		zap.String("outcome", string(gen.Outcome)),
	)

	return gen, nil
}

// Classify previews what create in auto mode would do with each non-blank
// entry. Zone is optional; without it only the type and suffix are filled.
func (g *Generator) Classify(zone string, entries []string) []Classification {
	zone = strings.TrimSpace(zone)
	out := make([]Classification, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		c := Classification{Entry: entry, Suffix: g.synth.Suffix(entry)}
		typ, ok := g.synth.Classify(entry)
		switch {
		case !ok:
			c.Skip = "cannot classify entry"
		case c.Suffix == "":
			c.Type = typ
			c.Skip = "empty name suffix after sanitization"
		default:
			c.Type = typ
			if zone != "" {
				c.Name = synthesizer.ObjectName(zone, string(typ), c.Suffix)
			}
		}
		out = append(out, c)
	}
	return out
}

// GroupName previews the address-group name for zone and suffix.
func (g *Generator) GroupName(zone, suffix string) string {
	return g.synth.GroupName(zone, suffix)
}

// Stats returns the running totals.
func (g *Generator) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}
