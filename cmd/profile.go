package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abdallahossam66/GRC-PROJECT/internal/model"
)

// readProfile loads a questionnaire profile. "-" reads JSON from stdin;
// files ending in .yaml or .yml are YAML, anything else JSON.
func readProfile(path string, stdin io.Reader) (model.Profile, error) {
	if path == "" {
		return model.Profile{}, eris.New("--profile is required (use - for stdin)")
	}

	var (
		data   []byte
		err    error
		format = model.ProfileFormatFor(path)
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return model.Profile{}, eris.Wrapf(err, "read profile %s", path)
	}
	return model.DecodeProfile(data, format)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Work with questionnaire profiles",
}

var profileTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Print the default questionnaire profile",
	Long:  "Prints a complete profile with the questionnaire defaults. Edit it and pass it to report or score with --profile.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		return writeProfile(cmd.OutOrStdout(), model.DefaultProfile(), format)
	},
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a profile file parses",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("profile")
		p, err := readProfile(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		cmd.Printf("profile ok: %s (industry %q, %d employees)\n", p.DisplayName(), p.Industry, p.Employees)
		return nil
	},
}

func writeProfile(w io.Writer, p model.Profile, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(p), "encode profile")
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return eris.Wrap(err, "encode profile")
		}
		return eris.Wrap(enc.Close(), "encode profile")
	}
	return eris.Errorf("unknown profile format %q (want json or yaml)", format)
}

func init() {
	profileTemplateCmd.Flags().String("format", "yaml", "output format: json or yaml")
	profileValidateCmd.Flags().String("profile", "", "profile file (JSON or YAML; - for stdin)")

	profileCmd.AddCommand(profileTemplateCmd, profileValidateCmd)
	rootCmd.AddCommand(profileCmd)
}
