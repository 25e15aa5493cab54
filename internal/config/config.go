package config

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/totegamma/music-gateway/internal/utils"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Services Services `yaml:"services"`
	Client   Client   `yaml:"client"`
	Log      Log      `yaml:"log"`
	Trace    Trace    `yaml:"trace"`
}

type Server struct {
	Port string `yaml:"port"`
}

// Services holds the base URL of every entity service. An empty URL leaves
// the service unconfigured; operations needing it fail on their own.
type Services struct {
	Albums  string `yaml:"albums"`
	Tracks  string `yaml:"tracks"`
	Artists string `yaml:"artists"`
	Bands   string `yaml:"bands"`
	Genres  string `yaml:"genres"`
	Users   string `yaml:"users"`
}

type Client struct {
	Timeout string  `yaml:"timeout"`
	FanOut  int     `yaml:"fanout"`
	Rate    float64 `yaml:"rate"`
	Burst   int     `yaml:"burst"`

	// ---
	TimeoutDuration time.Duration `yaml:"-"`
}

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

type Trace struct {
	Enable   bool   `yaml:"enable"`
	Endpoint string `yaml:"endpoint"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8000"},
		Client: Client{Timeout: "5s", FanOut: 16, Burst: 1},
		Log:    Log{Level: "info", MaxSizeMB: 100, MaxBackups: 5, MaxAgeDays: 30},
	}
}

// Map lists the services by name, in declaration order.
func (s Services) Map() *utils.OrderedKVMap[string] {
	m := utils.NewOrderedKVMap[string](6)
	m.Set("albums", s.Albums)
	m.Set("tracks", s.Tracks)
	m.Set("artists", s.Artists)
	m.Set("bands", s.Bands)
	m.Set("genres", s.Genres)
	m.Set("users", s.Users)
	return m
}

// Load reads the YAML file at path (skipped when path is empty), then a
// .env file if one exists, then environment overrides.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "config.Load: open")
		}
		defer file.Close()

		err = yaml.NewDecoder(file).Decode(&config)
		if err != nil && err != io.EOF {
			return Config{}, errors.Wrap(err, "config.Load: decode")
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return Config{}, errors.Wrap(err, "config.Load: .env")
	}

	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := config.finish(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"ALBUMS_URL":      &c.Services.Albums,
		"TRACKS_URL":      &c.Services.Tracks,
		"ARTISTS_URL":     &c.Services.Artists,
		"BANDS_URL":       &c.Services.Bands,
		"GENRES_URL":      &c.Services.Genres,
		"USERS_URL":       &c.Services.Users,
		"PORT":            &c.Server.Port,
		"LOG_LEVEL":       &c.Log.Level,
		"LOG_FILE":        &c.Log.File,
		"REQUEST_TIMEOUT": &c.Client.Timeout,
		"TRACE_ENDPOINT":  &c.Trace.Endpoint,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("FANOUT_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "config: FANOUT_LIMIT")
		}
		c.Client.FanOut = n
	}
	if v, ok := lookup("RATE_LIMIT"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(err, "config: RATE_LIMIT")
		}
		c.Client.Rate = f
	}
	if v, ok := lookup("TRACE_ENDPOINT"); ok && v != "" {
		c.Trace.Enable = true
	}
	return nil
}

func (c *Config) finish() error {
	d, err := time.ParseDuration(c.Client.Timeout)
	if err != nil {
		return errors.Wrap(err, "config: client.timeout")
	}
	if d <= 0 {
		return errors.New("config: client.timeout must be positive")
	}
	c.Client.TimeoutDuration = d

	if c.Client.FanOut < 1 {
		return errors.New("config: client.fanout must be at least 1")
	}
	if c.Client.Rate < 0 {
		return errors.New("config: client.rate must not be negative")
	}
	if c.Client.Burst < 1 {
		c.Client.Burst = 1
	}
	return nil
}
