package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/weirlive/panw-object/internal/batch"
	"github.com/weirlive/panw-object/internal/domain"
	"github.com/weirlive/panw-object/internal/output"
	"github.com/weirlive/panw-object/internal/service"
	"github.com/weirlive/panw-object/internal/synthesizer"
	"go.uber.org/zap"
)

// ErrNothingGenerated is returned when a batch produced no directives.
var ErrNothingGenerated = errors.New("no commands generated")

type generateOptions struct {
	root *rootOptions

	zone            string
	operation       string
	objectType      string
	tag             string
	description     string
	declareTag      bool
	group           bool
	groupSuffix     string
	groupTag        string
	declareGroupTag bool

	input   string
	request string
	out     string
	copy    bool

	sanitize   string
	detect     string
	renameFrom string
	renameType string
	strictFQDN bool
	noGroupTag bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{root: root}

	cmd := &cobra.Command{
		Use:   "generate [entries...]",
		Short: "Generate commands for a batch of entries",
		Long: `Reads entries (one per line) from the arguments, --input or stdin and
prints the PAN-OS commands for them.

A request file (--request) in YAML, TOML or JSON may describe the whole
batch; flags given on the command line override its fields.`,
		Example: `  panw-object generate --zone DMZ 10.0.0.1 10.0.0.0/24 www.example.com
  panw-object generate --zone DMZ --group --group-suffix Web --input hosts.txt
  panw-object generate --request batch.yaml --out commands.txt --copy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.zone, "zone", "z", "", "Zone name used as the object name prefix")
	f.StringVarP(&opts.operation, "op", "o", string(domain.OperationCreate), "Operation (create, rename, delete)")
	f.StringVarP(&opts.objectType, "type", "t", string(domain.TypeAuto), "Object type (auto, host, subnet, range, fqdn)")
	f.StringVar(&opts.tag, "tag", "", "Tag attached to each object (defaults to the zone)")
	f.StringVar(&opts.description, "description", "", "Description for each object (defaults to the entry)")
	f.BoolVar(&opts.declareTag, "declare-tag", false, "Emit a command creating the tag")
	f.BoolVar(&opts.group, "group", false, "Collect the objects into a static address group")
	f.StringVar(&opts.groupSuffix, "group-suffix", "", "Address group name suffix")
	f.StringVar(&opts.groupTag, "group-tag", "", "Tag attached to the group (defaults to the zone)")
	f.BoolVar(&opts.declareGroupTag, "declare-group-tag", false, "Emit a command creating the group tag")

	f.StringVarP(&opts.input, "input", "i", "", `File with one entry per line ("-" for stdin)`)
	f.StringVarP(&opts.request, "request", "r", "", "Request file (.yaml, .toml or .json)")
	f.StringVar(&opts.out, "out", "", "Write the commands to this file instead of stdout")
	f.BoolVar(&opts.copy, "copy", false, "Also copy the commands to the clipboard")

	f.StringVar(&opts.sanitize, "sanitize", string(synthesizer.SanitizePreserveDots), "Name sanitizing (preserve-dots, replace-dots)")
	f.StringVar(&opts.detect, "detect", string(synthesizer.DetectRangeFirst), "Auto-detection order (range-first, subnet-first)")
	f.StringVar(&opts.renameFrom, "rename-from", string(synthesizer.RenameFromName), "Rename suffix source (name, last-segment)")
	f.StringVar(&opts.renameType, "rename-type", synthesizer.DefaultRenameType, "Type code used in renamed object names")
	f.BoolVar(&opts.strictFQDN, "strict-fqdn", false, "Skip FQDN entries that are not valid domain names")
	f.BoolVar(&opts.noGroupTag, "no-group-tag", false, "Do not tag the address group")

	return cmd
}

func (o *generateOptions) policy() (synthesizer.Policy, error) {
	p := synthesizer.Policy{
		Sanitize:   synthesizer.SanitizeMode(strings.ToLower(o.sanitize)),
		Detection:  synthesizer.DetectionOrder(strings.ToLower(o.detect)),
		RenameType: strings.ToUpper(o.renameType),
		RenameFrom: synthesizer.RenameSource(strings.ToLower(o.renameFrom)),
		TagGroups:  !o.noGroupTag,
		StrictFQDN: o.strictFQDN,
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("invalid policy: %w", err)
	}
	return p, nil
}

// buildRequest merges the request file, the flags and the entries.
func (o *generateOptions) buildRequest(cmd *cobra.Command, args []string) (domain.Request, error) {
	var req domain.Request
	if o.request != "" {
		loaded, err := batch.Load(o.request)
		if err != nil {
			return req, err
		}
		req = *loaded
	}

	flags := cmd.Flags()
	set := func(name string) bool { return o.request == "" || flags.Changed(name) }

	if set("zone") {
		req.Zone = o.zone
	}
	if set("op") {
		req.Operation = domain.Operation(o.operation)
	}
	if set("type") {
		req.ObjectType = domain.ObjectType(o.objectType)
	}
	if set("tag") {
		req.Tag = o.tag
	}
	if set("description") {
		req.Description = o.description
	}
	if set("declare-tag") {
		req.DeclareTag = o.declareTag
	}

	if o.group || flags.Changed("group-suffix") || flags.Changed("group-tag") || flags.Changed("declare-group-tag") {
		if req.Group == nil {
			req.Group = &domain.GroupSpec{}
		}
		if flags.Changed("group-suffix") {
			req.Group.Suffix = o.groupSuffix
		}
		if flags.Changed("group-tag") {
			req.Group.Tag = o.groupTag
		}
		if flags.Changed("declare-group-tag") {
			req.Group.DeclareTag = o.declareGroupTag
		}
	}

	switch {
	case len(args) > 0:
		req.Entries = batch.SplitEntries(strings.Join(args, "\n"))
	case o.input != "":
		text, err := readInput(cmd, o.input)
		if err != nil {
			return req, err
		}
		req.Entries = batch.SplitEntries(text)
	case o.request == "":
		text, err := readInput(cmd, "-")
		if err != nil {
			return req, err
		}
		req.Entries = batch.SplitEntries(text)
	}

	return req, nil
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read entries: %w", err)
	}
	return string(data), nil
}

func runGenerate(cmd *cobra.Command, opts *generateOptions, args []string) error {
	logger := opts.root.logger

	policy, err := opts.policy()
	if err != nil {
		return err
	}
	req, err := opts.buildRequest(cmd, args)
	if err != nil {
		return err
	}

	generator := service.NewGenerator(synthesizer.New(policy), logger)
	gen, err := generator.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}

	text := gen.Result.Text()
	if text != "" {
		text += "\n"
	}

	var (
		sinks []output.Sink
		file  *output.FileSink
	)
	if opts.out != "" {
		file = output.NewFileSink(opts.out, logger)
		sinks = append(sinks, file)
	} else {
		sinks = append(sinks, output.NewWriterSink(cmd.OutOrStdout()))
	}
	if opts.copy {
		sinks = append(sinks, output.ClipboardSink{})
	}

	stderr := cmd.ErrOrStderr()
	if err := output.Multi(cmd.Context(), text, sinks...); err != nil {
		if !errors.Is(err, output.ErrClipboard) {
			return err
		}
		logger.Warn("clipboard copy failed", zap.Error(err))
		fmt.Fprintln(stderr, "Copy Failed: could not copy commands to the clipboard.")
	} else if opts.copy {
		fmt.Fprintln(stderr, "Copied to Clipboard!")
	}

	switch gen.Outcome {
	case domain.OutcomeNothing:
		return ErrNothingGenerated
	case domain.OutcomePartial:
		fmt.Fprintf(stderr, "%d entries skipped.\n", gen.Skipped)
	}
	if file != nil {
		fmt.Fprintf(stderr, "Wrote %d commands to %s (sha256 %s)\n", gen.Directives, opts.out, file.Checksum())
	}
	return nil
}
