package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/mazegen/internal/commands"
	"github.com/NielsdaWheelz/mazegen/internal/config"
	"github.com/NielsdaWheelz/mazegen/internal/errors"
)

// materialsFlags are the overrides shared by json, text and check.
type materialsFlags struct {
	materialsDir    string
	pattern         string
	outDir          string
	outPath         string
	itemsPerSubject int
	template        string
}

// loadConfig loads mazegen.yaml, applies the flags the user actually set,
// then validates the result.
func (a *app) loadConfig(cmd *cobra.Command, apply func(*config.Config)) (config.Config, error) {
	return config.LoadAndValidate(a.fsys, a.configPath, cmd.Flags().Changed("config"), apply)
}

func (a *app) newJSONCmd() *cobra.Command {
	var f materialsFlags
	cmd := &cobra.Command{
		Use:   "json",
		Short: "Generate one script per JSON materials file",
		Long: `Generate one script per JSON materials file.

Each file holds a JSON array of [condition, item_type, payload] records and
becomes <out_dir>/<stem>.js. Records are substituted as written.`,
		Example: "  mazegen json --materials_dir materials --out_dir data_includes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd, func(c *config.Config) {
				setIfChanged(cmd, "materials_dir", &c.MaterialsDir, f.materialsDir)
				setIfChanged(cmd, "pattern", &c.JSON.Pattern, f.pattern)
				setIfChanged(cmd, "out_dir", &c.JSON.OutDir, f.outDir)
				setIfChanged(cmd, "template", &c.JSON.Template, f.template)
			})
			if err != nil {
				return err
			}
			return commands.GenerateJSON(cmd.Context(), a.fsys, cfg, a.log, a.stdout)
		},
	}
	d := config.Default()
	cmd.Flags().StringVar(&f.materialsDir, "materials_dir", d.MaterialsDir, "directory holding the materials files")
	cmd.Flags().StringVar(&f.pattern, "pattern", d.JSON.Pattern, "glob selecting materials files (** recurses)")
	cmd.Flags().StringVar(&f.outDir, "out_dir", d.JSON.OutDir, "directory for generated scripts")
	cmd.Flags().StringVar(&f.template, "template", "", "template file replacing the built-in one")
	return cmd
}

func (a *app) newTextCmd() *cobra.Command {
	var f materialsFlags
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Generate one runtime-sampled script from text materials",
		Long: `Generate one runtime-sampled script from text materials.

Each line of a text file is a near-JSON record; unquoted keys and single
quoted strings are repaired. Records are grouped by the file-name prefix
before the first underscore, redo is forced on, and the script samples
items_per_subject items per participant in proportion to group size.`,
		Example: "  mazegen text -n 115 --out_path data_includes/experiment.js",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.textConfig(cmd, f)
			if err != nil {
				return err
			}
			return commands.GenerateText(cmd.Context(), a.fsys, cfg, a.log, a.stdout)
		},
	}
	addTextFlags(cmd, &f)
	cmd.Flags().StringVar(&f.outPath, "out_path", config.Default().Text.OutPath, "path of the generated script")
	cmd.Flags().StringVar(&f.template, "template", "", "template file replacing the built-in one")
	return cmd
}

func (a *app) newCheckCmd() *cobra.Command {
	var f materialsFlags
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate text materials and show the sampling plan",
		Long: `Validate text materials and show the sampling plan without writing.

Reports the files and conditions found, the generated selector, and how many
items per tag each participant will see.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.textConfig(cmd, f)
			if err != nil {
				return err
			}
			return commands.Check(cmd.Context(), a.fsys, cfg, commands.CheckOpts{JSON: jsonOut}, a.log, a.stdout)
		},
	}
	addTextFlags(cmd, &f)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}

func (a *app) newInitCmd() *cobra.Command {
	var opts commands.InitOpts
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create mazegen.yaml and example materials",
		Long: `Create mazegen.yaml and example materials in the current directory.

Existing materials and template files are never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(errors.EInternal, "failed to get working directory", err)
			}
			return commands.Init(a.fsys, cwd, opts, a.log, a.stdout)
		},
	}
	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite existing mazegen.yaml")
	cmd.Flags().BoolVar(&opts.Templates, "templates", false, "also copy the built-in templates into templates/")
	return cmd
}

func addTextFlags(cmd *cobra.Command, f *materialsFlags) {
	d := config.Default()
	cmd.Flags().StringVar(&f.materialsDir, "materials_dir", d.MaterialsDir, "directory holding the materials files")
	cmd.Flags().StringVar(&f.pattern, "pattern", d.Text.Pattern, "glob selecting materials files (** recurses)")
	cmd.Flags().IntVarP(&f.itemsPerSubject, "items_per_subject", "n", d.Text.ItemsPerSubject, "items sampled per participant")
}

func (a *app) textConfig(cmd *cobra.Command, f materialsFlags) (config.Config, error) {
	if cmd.Flags().Changed("items_per_subject") && f.itemsPerSubject <= 0 {
		return config.Config{}, errors.New(errors.EUsage, "--items_per_subject must be a positive integer")
	}
	return a.loadConfig(cmd, func(c *config.Config) {
		setIfChanged(cmd, "materials_dir", &c.MaterialsDir, f.materialsDir)
		setIfChanged(cmd, "pattern", &c.Text.Pattern, f.pattern)
		setIfChanged(cmd, "out_path", &c.Text.OutPath, f.outPath)
		setIfChanged(cmd, "template", &c.Text.Template, f.template)
		if cmd.Flags().Changed("items_per_subject") {
			c.Text.ItemsPerSubject = f.itemsPerSubject
		}
	})
}

// setIfChanged copies a string flag over the config value when the user set it.
func setIfChanged(cmd *cobra.Command, name string, dst *string, value string) {
	if cmd.Flags().Changed(name) {
		*dst = value
	}
}
