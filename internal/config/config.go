package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/gridcell/internal/errors"
	"github.com/vango-dev/gridcell/pkg/cell"
	"github.com/vango-dev/gridcell/pkg/grid"
)

const (
	// ConfigFileName is the name written by SaveTo when creating a project.
	ConfigFileName = "gridcell.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 7070

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"

	// DefaultTitle is the page title used when none is configured.
	DefaultTitle = "gridcell"

	// DefaultRegion is the S3 region used when none is configured.
	DefaultRegion = "us-east-1"
)

// FileNames lists the config file names Load looks for, in order.
var FileNames = []string{"gridcell.json", "gridcell.jsonc", "gridcell.yaml", "gridcell.yml"}

// Config represents a gridcell project configuration.
type Config struct {
	// Title is the page and table title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Data is the row source: a path relative to the config file or an
	// s3://bucket/key URI.
	Data string `json:"data,omitempty" yaml:"data,omitempty"`

	// Columns defines the grid columns.
	Columns []grid.ColumnDef `json:"columns" yaml:"columns"`

	// Server contains preview server configuration.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Render contains output configuration.
	Render RenderConfig `json:"render,omitempty" yaml:"render,omitempty"`

	// S3 configures the client used for s3:// data sources.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains preview server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// MetricsPath is the Prometheus endpoint. "-" disables it.
	MetricsPath string `json:"metricsPath,omitempty" yaml:"metricsPath,omitempty"`
}

// RenderConfig contains output settings.
type RenderConfig struct {
	// Pretty indents HTML output.
	Pretty bool `json:"pretty,omitempty" yaml:"pretty,omitempty"`

	// AssetBase is the default basePath for repeatIcon columns that do
	// not set one.
	AssetBase string `json:"assetBase,omitempty" yaml:"assetBase,omitempty"`

	// MaxCellWidth truncates cells in text output. Zero means no limit.
	MaxCellWidth int `json:"maxCellWidth,omitempty" yaml:"maxCellWidth,omitempty"`
}

// S3Config contains settings for S3 data sources.
type S3Config struct {
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory, trying each
// of FileNames in order.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return nil, errors.New("E100").
		WithDetail("No gridcell.json or gridcell.yaml found in " + dir).
		WithSuggestion("Run 'gridcell init' to create one")
}

// LoadFile reads configuration from the specified file path. The format
// follows the extension: .yaml and .yml are YAML, anything else JSONC.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No config file at " + path).
				WithSuggestion("Run 'gridcell init' to create one")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	default:
		err = decodeJSONC(data, cfg)
	}
	if err != nil {
		e := errors.New("E101").Wrap(err).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error())
		if line, col, ok := errorPosition(data, err); ok {
			e = e.WithLocation(path, line, col)
		}
		return nil, e
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

func decodeJSONC(data []byte, cfg *Config) error {
	// jsonc.ToJSON blanks comments in place, so offsets still match data.
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// errorPosition maps a JSON decode error to a 1-based line and column.
func errorPosition(data []byte, err error) (line, col int, ok bool) {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case stderrors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return 0, 0, false
	}
	if offset <= 0 || offset > int64(len(data)) {
		return 0, 0, false
	}
	before := data[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	col = int(offset) - bytes.LastIndexByte(before, '\n') - 1
	return line, col, true
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path, as YAML for .yaml/.yml and
// JSON otherwise.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E101").Wrap(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E101").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.S3.Region == "" {
		c.S3.Region = DefaultRegion
	}
}

// Validate checks the configuration against the built-in renderers.
func (c *Config) Validate() error {
	return c.ValidateWith(cell.DefaultRegistry())
}

// ValidateWith checks the configuration against reg.
func (c *Config) ValidateWith(reg *cell.Registry) error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E104").
			WithDetailf("Port %d is out of range.", c.Server.Port)
	}
	if err := grid.ValidateColumns(c.Columns, reg); err != nil {
		if e, ok := err.(*errors.Error); ok && c.configPath != "" && e.Location == nil {
			e.Location = &errors.Location{File: c.configPath}
		}
		return err
	}
	return nil
}

// Address returns the host:port the preview server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// MetricsEnabled reports whether the metrics endpoint is served.
func (c *Config) MetricsEnabled() bool {
	return c.Server.MetricsPath != "-"
}

// DataSource returns the row source URI with relative paths resolved
// against the config file's directory. It returns "" when no data is
// configured.
func (c *Config) DataSource() string {
	switch {
	case c.Data == "":
		return ""
	case strings.Contains(c.Data, "://"), filepath.IsAbs(c.Data), c.Dir() == "":
		return c.Data
	default:
		return filepath.Join(c.Dir(), c.Data)
	}
}

// ColumnDefs returns the columns with render defaults applied. The
// configured columns are not modified.
func (c *Config) ColumnDefs() []grid.ColumnDef {
	out := make([]grid.ColumnDef, len(c.Columns))
	for i, col := range c.Columns {
		if c.Render.AssetBase != "" && col.Renderer == cell.RepeatIconName {
			if _, set := col.Params["basePath"]; !set {
				params := make(map[string]any, len(col.Params)+1)
				for k, v := range col.Params {
					params[k] = v
				}
				params["basePath"] = c.Render.AssetBase
				col.Params = params
			}
		}
		out[i] = col
	}
	return out
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E100").
				WithDetail("No config file found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'gridcell init' to create one")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working
// directory or its nearest parent that has one.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
