package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/flagkit/pkg/expr"
	"github.com/dmitrymomot/flagkit/pkg/flag"
	"github.com/dmitrymomot/flagkit/pkg/tracking"
)

// settings are read from the environment (and an optional .env file).
type settings struct {
	ConfigPath string `env:"FLAGKIT_CONFIG" envDefault:"flags.yaml"`
	LogLevel   string `env:"FLAGKIT_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"FLAGKIT_LOG_FORMAT" envDefault:"text"`
}

const usage = `Usage: flagkit <user_key> [feature_key] [attr=value ...]

Evaluates features from the configuration file against the given context and
prints one decision per line as JSON. Without a feature_key, every feature is
evaluated. Attribute values are parsed as JSON where possible ("true", "42",
"3.5"), otherwise taken as strings.

Environment:
  FLAGKIT_CONFIG      path to flags.json / flags.yaml (default "flags.yaml")
  FLAGKIT_LOG_LEVEL   debug | info | warn | error (default "info")
  FLAGKIT_LOG_FORMAT  text | json (default "text")
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// The .env file might not exist and that's ok.
	_ = godotenv.Load()

	var cfg settings
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	log := newLogger(cfg)

	if len(args) < 1 {
		return fmt.Errorf("%s", usage)
	}
	userKey := args[0]

	featureKey := ""
	rest := args[1:]
	if len(rest) > 0 && !strings.Contains(rest[0], "=") {
		featureKey = rest[0]
		rest = rest[1:]
	}

	attrs, err := parseAttributes(rest)
	if err != nil {
		return err
	}

	fileCfg, err := flag.LoadFile(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config %q: %w", cfg.ConfigPath, err)
	}
	registry, err := flag.Build(fileCfg, expr.NewCompiler())
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}
	log.Debug("registry built",
		slog.String("config", cfg.ConfigPath),
		slog.Int("features", registry.Len()),
	)

	client, err := tracking.NewClient(registry,
		tracking.WithTracker(tracking.TrackerFunc(func(event tracking.Event) {
			log.Debug("decision tracked",
				slog.String("feature_key", event.FeatureKey),
				slog.String("variant", event.VariantKey),
				slog.String("reason", event.Reason),
			)
		})),
		tracking.WithLogger(log),
	)
	if err != nil {
		return err
	}

	ctx := flag.NewContext(userKey, attrs)

	var decisions []flag.Decision
	if featureKey != "" {
		decisions = []flag.Decision{client.Decide(featureKey, ctx)}
	} else {
		decisions = client.DecideAll(ctx)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, d := range decisions {
		if err := enc.Encode(decisionOutput(d)); err != nil {
			return err
		}
	}
	return nil
}

// parseAttributes turns k=v arguments into an attribute map, decoding values
// as JSON scalars where possible and falling back to plain strings.
func parseAttributes(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	attrs := make(map[string]any, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid attribute %q, want key=value", arg)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		attrs[key] = value
	}
	return attrs, nil
}

// decisionOutput extends the decision's JSON shape with the diagnostic error
// text, which the core keeps as a typed error.
func decisionOutput(d flag.Decision) map[string]any {
	out := map[string]any{
		"feature_key": d.FeatureKey,
		"variant":     d.VariantKey,
		"value":       d.Value.Any(),
		"hash":        d.Hash,
		"reason":      d.Reason.String(),
		"rule_index":  d.RuleIndex,
	}
	if d.RuleName != "" {
		out["rule"] = d.RuleName
	}
	if text := d.ErrorText(); text != "" {
		out["error"] = text
	}
	return out
}

func newLogger(cfg settings) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
