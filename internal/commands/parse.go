package commands

import (
	"bytes"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/reoring/yamlprops"
	"github.com/reoring/yamlprops/i18n"
	"github.com/reoring/yamlprops/source/lines"
)

const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatProps = "props"
)

func addInputFlags(fs *pflag.FlagSet) {
	fs.String("encoding", "utf-8", "Character encoding of the input (any WHATWG label)")
	fs.Int("buffer-size", lines.DefaultBufferSize, "Size in bytes of the raw read buffer")
	fs.Bool("strict", false, "Use the strict grammar")
	fs.StringSlice("require", nil, "Mandatory single property (repeatable)")
	fs.StringSlice("optional", nil, "Optional single property (repeatable)")
	fs.StringSlice("require-list", nil, "Mandatory list property (repeatable)")
	fs.StringSlice("optional-list", nil, "Optional list property (repeatable)")
}

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a file and print the resulting properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := a.load(args[0])
			if err != nil {
				return err
			}
			b, err := render(doc, a.v.GetString("format"))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	addInputFlags(cmd.Flags())
	cmd.Flags().String("format", formatJSON, "Output format: json, yaml, props")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a file and report the first problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, unknown, err := a.load(args[0])
			if err != nil {
				return err
			}
			if a.v.GetBool("no-unknown") && len(unknown) > 0 {
				var iss yamlprops.Issues
				for _, k := range unknown {
					iss = yamlprops.AppendIssues(iss, yamlprops.Issue{
						Code:    yamlprops.CodeUnknownKey,
						Phase:   yamlprops.PhaseCollector,
						Path:    k,
						Message: i18n.T(yamlprops.CodeUnknownKey, map[string]string{"key": k}),
					})
				}
				return fmt.Errorf("%s: %w", args[0], iss)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d properties)\n", args[0], doc.Len())
			return nil
		},
	}
	addInputFlags(cmd.Flags())
	cmd.Flags().Bool("no-unknown", false, "Fail when the input has properties the schema does not declare")
	return cmd
}

// load parses path according to the bound flags. When any identifier flag is
// set the document is validated against a schema built from them, and the
// undeclared keys are returned.
func (a *app) load(path string) (*yamlprops.Document, []string, error) {
	enc, err := lines.LookupEncoding(a.v.GetString("encoding"))
	if err != nil {
		return nil, nil, err
	}
	f, err := a.fs.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	logger := log.With(a.logger, "file", path)
	src := yamlprops.FromBytes(f, enc, a.v.GetInt("buffer-size"))
	opt := yamlprops.ParseOpt{Strict: a.v.GetBool("strict"), Logger: logger}

	var unknown []string
	s, err := a.schema(func(key, raw string) {
		if len(unknown) == 0 || unknown[len(unknown)-1] != key {
			unknown = append(unknown, key)
		}
		level.Warn(logger).Log("msg", "unknown property", "key", key)
	})
	if err != nil {
		return nil, nil, err
	}

	var doc *yamlprops.Document
	if s == nil {
		doc, err = yamlprops.Parse(src, opt)
	} else {
		doc, err = yamlprops.ParseWithSchema(src, s, opt)
	}
	if err != nil {
		level.Error(logger).Log("msg", "parse failed", "err", err)
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	level.Info(logger).Log("msg", "parsed", "properties", doc.Len())
	return doc, unknown, nil
}

// schema returns nil when no identifier flag is set.
func (a *app) schema(onUnknown yamlprops.UnknownFunc) (*yamlprops.Schema, error) {
	var ids []yamlprops.Identifier
	for _, d := range []struct {
		flag string
		c    yamlprops.Cardinality
		p    yamlprops.Presence
	}{
		{"require", yamlprops.CardinalitySingle, yamlprops.Mandatory},
		{"optional", yamlprops.CardinalitySingle, yamlprops.Optional},
		{"require-list", yamlprops.CardinalityMultiple, yamlprops.Mandatory},
		{"optional-list", yamlprops.CardinalityMultiple, yamlprops.Optional},
	} {
		for _, k := range a.v.GetStringSlice(d.flag) {
			ids = append(ids, yamlprops.Identifier{Key: k, Cardinality: d.c, Presence: d.p})
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	b := yamlprops.NewSchema().OnUnknown(onUnknown)
	for _, id := range ids {
		b.Declare(id)
	}
	return b.Build()
}

func render(doc *yamlprops.Document, format string) ([]byte, error) {
	switch format {
	case formatJSON:
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case formatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case formatProps:
		var buf bytes.Buffer
		if _, err := doc.WriteTo(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
