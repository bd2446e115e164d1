// Package cli implements the maskforge command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/maskforge/maskforge/pkg/artifact"
	"github.com/maskforge/maskforge/pkg/buildinfo"
	"github.com/maskforge/maskforge/pkg/pdk"
	"github.com/maskforge/maskforge/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "maskforge"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Global flag values, bound in RootCommand and applied in setup.
	logLevel string
	noColor  bool
	pdkRef   string
	cacheLoc string
	quiet    bool

	kit *pdk.PDK
}

// New creates a CLI whose logger writes to w at info level. Global flags
// adjust the level and styling before any command runs.
func New(w io.Writer) *CLI {
	return &CLI{Logger: newLogger(w, log.InfoLevel)}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Maskforge builds photonic mask layouts from parametric cells",
		Long:          `Maskforge is a layout tool for photonic components: parametric cell factories build memoized geometry, netlists capture the reference hierarchy, and renders turn frozen cells into mask artwork.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.logLevel, "log-level", envOr("MASKFORGE_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	pf.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	pf.StringVar(&c.pdkRef, "pdk", envOr("MASKFORGE_PDK", ""), "PDK definition to load (TOML file or URL; embedded generic kit if empty)")
	pf.StringVar(&c.cacheLoc, "cache-dir", envOr("MASKFORGE_CACHE_DIR", ""), "artifact cache directory (XDG cache if empty)")
	pf.BoolVarP(&c.quiet, "quiet", "q", false, "suppress status output")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.cellsCommand())
	root.AddCommand(c.pdkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies the global flags. It runs once before every command.
func (c *CLI) setup() error {
	level, err := log.ParseLevel(c.logLevel)
	if err != nil {
		return err
	}
	if c.quiet && level < log.WarnLevel {
		level = log.WarnLevel
	}
	c.Logger.SetLevel(level)
	setQuiet(c.quiet)

	if c.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		c.Logger.SetColorProfile(termenv.Ascii)
	}
	return nil
}

// pdkKit loads the PDK selected by --pdk, once. File paths and URLs are
// both accepted; without the flag the embedded generic kit is used.
func (c *CLI) pdkKit(ctx context.Context) (*pdk.PDK, error) {
	if c.kit != nil {
		return c.kit, nil
	}
	var (
		kit *pdk.PDK
		err error
	)
	switch {
	case c.pdkRef == "":
		kit = pdk.Default()
	case isURL(c.pdkRef):
		kit, err = pdk.LoadURL(ctx, c.pdkRef)
	default:
		kit, err = pdk.Load(c.pdkRef)
	}
	if err != nil {
		return nil, err
	}
	c.kit = kit
	return kit, nil
}

// newRunner assembles the pipeline runner shared by build, serve, and
// browse: instrumented artifact cache, keys scoped by the kit name so
// two PDKs never share cached artifacts, and the active PDK on the
// build context.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	kit, err := c.pdkKit(ctx)
	if err != nil {
		return nil, err
	}
	cache, err := c.newCache()
	if err != nil {
		c.Logger.Warn("artifact cache unavailable, continuing without", "err", err)
		cache = artifact.NewNullCache()
	}
	keyer := artifact.NewScopedKeyer(nil, kit.Name()+":")
	r := pipeline.NewRunner(artifact.NewInstrumented(cache), keyer, c.Logger)
	r.Context.PDK = kit
	return r, nil
}

func (c *CLI) newCache() (artifact.Cache, error) {
	dir, err := c.cacheDir()
	if err != nil {
		return nil, err
	}
	return artifact.NewFileCache(dir)
}

// cacheDir resolves the artifact cache directory: the --cache-dir flag
// when set, otherwise the XDG standard path (~/.cache/maskforge).
func (c *CLI) cacheDir() (string, error) {
	if c.cacheLoc != "" {
		return c.cacheLoc, nil
	}
	return cacheDir()
}

func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataDir returns the design library directory using the XDG standard
// (~/.local/share/maskforge).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
