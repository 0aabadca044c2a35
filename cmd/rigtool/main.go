// Command rigtool renames, restructures and rescales rigged character scenes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rigtool/internal/report"
)

var (
	// Process flags
	inputPath   string
	outputPath  string
	jointsPath  string
	bulk        bool
	addIK       bool
	fixRig      bool
	scale       float64
	withPreview bool
	workers     int

	verbose bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rigtool",
	Short: "Batch post-processor for rigged character scenes",
	Long: `rigtool rewrites skeleton hierarchies of rigged character scenes.

It prunes leaf bones, inserts a new root joint, resets bind poses, renames joints
and attaches proxy geometry from a joint-mapping file, adds a standard IK joint set
and rescales whole scenes while keeping skinning intact.

Single file:  rigtool -i hero.rig.json -o out/hero.rig.json -j joints.yaml
Directory:    rigtool -b -i assets -o processed -j joints.json --workers 4`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = report.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runProcess,
}

// inspectCmd prints a scene's metadata and hierarchy
var inspectCmd = &cobra.Command{
	Use:   "inspect [scene file]",
	Short: "Print a scene's metadata and joint hierarchy",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Output verbose information")

	f := rootCmd.Flags()
	f.StringVarP(&inputPath, "input-files", "i", "", "path to the input file(s)")
	f.StringVarP(&outputPath, "output-files", "o", "", "path for the output file(s)")
	f.BoolVarP(&bulk, "bulk", "b", false, "process every scene file below the input directory")
	f.StringVarP(&jointsPath, "joints", "j", "", "joint-mapping file (JSON or YAML)")
	f.BoolVarP(&addIK, "add-ik", "k", false, "add the standard IK joints")
	f.BoolVarP(&fixRig, "fix-rig", "f", false, "apply known rig quirk fixes")
	f.Float64Var(&scale, "scale", 0, "uniform scale factor (overrides the joint file)")
	f.BoolVar(&withPreview, "preview", false, "write a WebP skeleton preview next to each output")
	f.IntVar(&workers, "workers", 1, "files processed concurrently in bulk mode")

	rootCmd.AddCommand(inspectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
