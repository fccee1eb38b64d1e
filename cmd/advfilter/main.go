package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/akamensky/argparse"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	filter "github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/catalog"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/domain/rule"
	filterinfra "github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/infrastructure"
	"github.com/Seantoni/os-deal-booking-sub005/advfilter/filter/interfaces/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

type stdio struct {
	stdin  io.Reader
	stdout io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	parser := argparse.NewParser("advfilter", "Evaluate advanced filter rules in memory or compile them into where predicates")
	envFile := parser.String("e", "env", &argparse.Options{
		Default: ".env",
		Help:    "dotenv file to load before reading ADVFILTER_* variables",
	})
	logLevel := parser.String("l", "log-level", &argparse.Options{
		Help: "debug, info, warn or error (overrides " + envLogLevel + ")",
	})
	catalogPath := parser.String("c", "catalog", &argparse.Options{
		Help: "YAML catalog merged over the built-in one (overrides " + envCatalog + ")",
	})
	nowFlag := parser.String("n", "now", &argparse.Options{
		Help: "RFC 3339 instant used to resolve date presets, defaults to the current time",
	})

	serveCmd := parser.NewCommand("serve", "Serve the filter HTTP API")
	addr := serveCmd.String("a", "addr", &argparse.Options{
		Help: "listen address (overrides " + envAddr + ")",
	})

	whereCmd := parser.NewCommand("where", "Compile rules into a where predicate")
	whereRules := whereCmd.String("r", "rules", &argparse.Options{
		Required: true,
		Help:     "JSON rule array, @file, or - for stdin",
	})
	whereEntity := whereCmd.String("E", "entity", &argparse.Options{
		Help: "refuse rules the entity's catalog does not allow",
	})

	applyCmd := parser.NewCommand("apply", "Filter a JSON array of records")
	applyRecords := applyCmd.String("i", "records", &argparse.Options{
		Default: "-",
		Help:    "JSON array of records: a file path or - for stdin",
	})
	applyRules := applyCmd.String("r", "rules", &argparse.Options{
		Required: true,
		Help:     "JSON rule array, @file, or - for stdin when --records is a file",
	})
	applyEntity := applyCmd.String("E", "entity", &argparse.Options{
		Help: "refuse rules the entity's catalog does not allow",
	})

	operatorsCmd := parser.NewCommand("operators", "List the operators applicable to a field type")
	fieldType := operatorsCmd.Selector("t", "type", fieldTypeNames(), &argparse.Options{
		Required: true,
		Help:     "field type",
	})

	if err := parser.Parse(args); err != nil {
		return errors.New(parser.Usage(err))
	}

	cfg, err := LoadConfig(*envFile)
	if err != nil {
		return err
	}
	override(&cfg.LogLevel, *logLevel)
	override(&cfg.CatalogPath, *catalogPath)
	override(&cfg.Addr, *addr)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = filterinfra.LoadCatalog(cfg.CatalogPath, cat)
		if err != nil {
			return err
		}
		logger.Debug("catalog loaded", "path", cfg.CatalogPath, "entities", cat.Entities())
	}

	now, err := clock(*nowFlag)
	if err != nil {
		return err
	}
	streams := stdio{stdin: stdin, stdout: stdout}

	switch {
	case serveCmd.Happened():
		if err := cfg.ValidateListen(); err != nil {
			return err
		}
		server := rest.NewServer(cat, rest.WithLogger(logger), rest.WithNow(now))
		return server.Run(ctx, cfg.Addr)
	case whereCmd.Happened():
		return runWhere(streams, logger, cat, now, *whereRules, *whereEntity)
	case applyCmd.Happened():
		return runApply(streams, cat, now, *applyRecords, *applyRules, *applyEntity)
	case operatorsCmd.Happened():
		return writeJSON(stdout, catalog.OperatorsFor(catalog.FieldType(*fieldType)))
	}
	return errors.New(parser.Usage("no command given"))
}

func runWhere(streams stdio, logger *slog.Logger, cat catalog.Catalog, now func() time.Time, rulesArg, entity string) error {
	raw, err := readArgument(rulesArg, streams.stdin)
	if err != nil {
		return err
	}
	rules := rule.Parse(raw)
	if entity != "" {
		if err := cat.CheckRules(entity, rules); err != nil {
			return errors.Wrap(err, "rules")
		}
	}
	compiler := filterinfra.NewCompiler(
		filterinfra.WithNow(now),
		filterinfra.WithDropObserver(func(d filterinfra.DroppedRule) {
			logger.Warn("rule dropped", "index", d.Index, "field", d.Rule.Field, "operator", d.Rule.Operator, "reason", d.Reason)
		}),
	)
	where := compiler.BuildWhere(rules)
	if where.HasNaN() {
		return errors.New("a comparison value is not a number")
	}
	return writeJSON(streams.stdout, where)
}

func runApply(streams stdio, cat catalog.Catalog, now func() time.Time, recordsArg, rulesArg, entity string) error {
	if recordsArg == "-" && rulesArg == "-" {
		return errors.New("records and rules cannot both be read from stdin")
	}
	rawRecords, err := readInput(recordsArg, streams.stdin)
	if err != nil {
		return err
	}
	var records []map[string]any
	if err := json.Unmarshal(rawRecords, &records); err != nil {
		return errors.Wrap(err, "decode records")
	}
	rawRules, err := readArgument(rulesArg, streams.stdin)
	if err != nil {
		return err
	}
	rules := rule.Parse(rawRules)
	if entity != "" {
		if err := cat.CheckRules(entity, rules); err != nil {
			return errors.Wrap(err, "rules")
		}
	}
	evaluator := filter.NewEvaluator(filter.WithNow(now))
	return writeJSON(streams.stdout, filter.Apply(evaluator, records, rules))
}

// readArgument returns inline text as is, reads @path from a file and - from
// stdin.
func readArgument(value string, stdin io.Reader) (string, error) {
	switch {
	case value == "-":
		data, err := io.ReadAll(stdin)
		return string(data), errors.Wrap(err, "read stdin")
	case strings.HasPrefix(value, "@"):
		data, err := os.ReadFile(value[1:])
		return string(data), errors.Wrapf(err, "read %s", value[1:])
	}
	return value, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		return data, errors.Wrap(err, "read stdin")
	}
	data, err := os.ReadFile(path)
	return data, errors.Wrapf(err, "read %s", path)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encode output")
}

func clock(value string) (func() time.Time, error) {
	if value == "" {
		return time.Now, nil
	}
	fixed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, errors.Wrap(err, "--now")
	}
	return func() time.Time { return fixed }, nil
}

func override(target *string, value string) {
	if value != "" {
		*target = value
	}
}

func fieldTypeNames() []string {
	types := catalog.FieldTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return names
}
