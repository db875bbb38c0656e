package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// Settings represents the application configuration persisted to disk.
// Secrets normally arrive via environment variables (see applyEnvOverrides);
// env values win over the file so a committed settings file never needs to
// hold credentials.
type Settings struct {
	Server ServerSettings `json:"server"`
	Google GoogleSettings `json:"google"`
	Auth   AuthSettings   `json:"auth"`
	Access AccessSettings `json:"access"`
	Export ExportSettings `json:"export"`
	Log    LogConfig      `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// GoogleSettings addresses the backing spreadsheet and the service account
// used to reach it. PrivateKey may carry literal \n sequences from env files.
type GoogleSettings struct {
	SheetID             string `json:"sheetId"`
	ServiceAccountEmail string `json:"serviceAccountEmail"`
	PrivateKey          string `json:"privateKey"`
}

// AuthSettings configures the social login flow and the JWT cookies.
type AuthSettings struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	Secret       string `json:"secret"` // JWT signing secret
	URL          string `json:"url"`    // externally visible base URL
	AdminEmail   string `json:"adminEmail,omitempty"`
	AvatarDir    string `json:"avatarDir"`
}

// AccessSettings tunes the Drive permission check.
type AccessSettings struct {
	CacheTTLMinutes int `json:"cacheTtlMinutes"`
}

// ExportSettings configures local sheet snapshots.
type ExportSettings struct {
	Directory string `json:"directory"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	File       string `json:"file"`
	Level      string `json:"level"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

// DefaultSettings returns the configuration written on first start.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Host: "0.0.0.0",
			Port: 7590,
		},
		Auth: AuthSettings{
			URL:       "http://127.0.0.1:7590",
			AvatarDir: filepath.Join("cache", "avatars"),
		},
		Access: AccessSettings{
			CacheTTLMinutes: 5,
		},
		Export: ExportSettings{
			Directory: filepath.Join("cache", "exports"),
		},
		Log: LogConfig{
			File:       filepath.Join("cache", "logs", "sheetr.log"),
			Level:      "info",
			MaxSize:    10,
			MaxAge:     14,
			MaxBackups: 5,
			Compress:   true,
		},
	}
}

// Manager loads and persists settings to a JSON file.
type Manager struct {
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

// EnsureDir ensures parent directory exists.
func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads settings from disk, creating defaults if missing, then applies
// environment overrides.
func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}

	if _, err := os.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		defaults := DefaultSettings()
		if err := m.Save(defaults); err != nil {
			return Settings{}, err
		}
		applyEnvOverrides(&defaults)
		return defaults, nil
	}

	f, err := os.Open(m.path)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	var s Settings
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return Settings{}, err
	}

	applyEnvOverrides(&s)
	return s, nil
}

// Save writes the provided settings to disk atomically.
func (m *Manager) Save(s Settings) error {
	if m.path == "" {
		return errors.New("config path not set")
	}
	if err := m.EnsureDir(); err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, m.path)
}

func applyEnvOverrides(s *Settings) {
	setString(&s.Google.SheetID, "GOOGLE_SHEET_ID")
	setString(&s.Google.ServiceAccountEmail, "GOOGLE_SERVICE_ACCOUNT_EMAIL")
	setString(&s.Google.PrivateKey, "GOOGLE_PRIVATE_KEY")
	setString(&s.Auth.ClientID, "GOOGLE_CLIENT_ID")
	setString(&s.Auth.ClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&s.Auth.Secret, "SHEETR_AUTH_SECRET")
	setString(&s.Auth.URL, "SHEETR_URL")
	setString(&s.Auth.AdminEmail, "ADMIN_EMAIL")

	if v := os.Getenv("SHEETR_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			s.Server.Port = port
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
