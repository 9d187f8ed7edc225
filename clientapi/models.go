package clientapi

import (
	"time"

	"github.com/adamwoolhether/pterom/resource"
)

type Account struct {
	ID        int    `json:"id"`
	Admin     bool   `json:"admin"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Language  string `json:"language"`
}

// SystemPermissions lists every subuser permission the panel knows,
// grouped by area ("control", "file", ...).
type SystemPermissions struct {
	Permissions map[string]PermissionGroup `json:"permissions"`
}

type PermissionGroup struct {
	Description string            `json:"description"`
	Keys        map[string]string `json:"keys"`
}

type RecoveryTokens struct {
	Tokens []string `json:"tokens"`
}

type APIKey struct {
	Identifier  string     `json:"identifier"`
	Description string     `json:"description"`
	AllowedIPs  []string   `json:"allowed_ips"`
	LastUsedAt  *time.Time `json:"last_used_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewAPIKey is a freshly created key. SecretToken is only ever
// returned at creation.
type NewAPIKey struct {
	APIKey
	SecretToken string
}

type Limits struct {
	Memory  int     `json:"memory"`
	Swap    int     `json:"swap"`
	Disk    int     `json:"disk"`
	IO      int     `json:"io"`
	CPU     int     `json:"cpu"`
	Threads *string `json:"threads"`
}

type FeatureLimits struct {
	Databases   int `json:"databases"`
	Allocations int `json:"allocations"`
	Backups     int `json:"backups"`
}

type SFTPDetails struct {
	IP   string `json:"ip"`
	Port int    `json:"port"`
}

type Server struct {
	ServerOwner   bool          `json:"server_owner"`
	Identifier    string        `json:"identifier"`
	UUID          string        `json:"uuid"`
	Name          string        `json:"name"`
	Node          string        `json:"node"`
	SFTPDetails   SFTPDetails   `json:"sftp_details"`
	Description   string        `json:"description"`
	Limits        Limits        `json:"limits"`
	FeatureLimits FeatureLimits `json:"feature_limits"`
	IsSuspended   bool          `json:"is_suspended"`
	IsInstalling  bool          `json:"is_installing"`
}

type Resources struct {
	CurrentState string `json:"current_state"`
	IsSuspended  bool   `json:"is_suspended"`
	Resources    struct {
		MemoryBytes    int64   `json:"memory_bytes"`
		CPUAbsolute    float64 `json:"cpu_absolute"`
		DiskBytes      int64   `json:"disk_bytes"`
		NetworkRxBytes int64   `json:"network_rx_bytes"`
		NetworkTxBytes int64   `json:"network_tx_bytes"`
		Uptime         int64   `json:"uptime"`
	} `json:"resources"`
}

type DatabaseHost struct {
	Address string `json:"address"`
	Port    int    `json:"port"`
}

type Database struct {
	ID              string       `json:"id"`
	Host            DatabaseHost `json:"host"`
	Name            string       `json:"name"`
	Username        string       `json:"username"`
	ConnectionsFrom string       `json:"connections_from"`
	MaxConnections  int          `json:"max_connections"`
	Relationships   struct {
		Password *resource.Object[struct {
			Password string `json:"password"`
		}] `json:"password,omitempty"`
	} `json:"relationships"`
}

// Password returns the database password when the response included it.
func (d *Database) Password() string {
	if d.Relationships.Password == nil {
		return ""
	}

	return d.Relationships.Password.Attributes.Password
}

type FileObject struct {
	Name       string    `json:"name"`
	Mode       string    `json:"mode"`
	ModeBits   string    `json:"mode_bits"`
	Size       int64     `json:"size"`
	IsFile     bool      `json:"is_file"`
	IsSymlink  bool      `json:"is_symlink"`
	Mimetype   string    `json:"mimetype"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

type Cron struct {
	DayOfWeek  string `json:"day_of_week"`
	DayOfMonth string `json:"day_of_month"`
	Month      string `json:"month"`
	Hour       string `json:"hour"`
	Minute     string `json:"minute"`
}

type Schedule struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Cron           Cron       `json:"cron"`
	IsActive       bool       `json:"is_active"`
	IsProcessing   bool       `json:"is_processing"`
	OnlyWhenOnline bool       `json:"only_when_online"`
	LastRunAt      *time.Time `json:"last_run_at"`
	NextRunAt      *time.Time `json:"next_run_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type Task struct {
	ID                int       `json:"id"`
	SequenceID        int       `json:"sequence_id"`
	Action            string    `json:"action"`
	Payload           string    `json:"payload"`
	TimeOffset        int       `json:"time_offset"`
	IsQueued          bool      `json:"is_queued"`
	ContinueOnFailure bool      `json:"continue_on_failure"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type Allocation struct {
	ID        int     `json:"id"`
	IP        string  `json:"ip"`
	IPAlias   *string `json:"ip_alias"`
	Port      int     `json:"port"`
	Notes     *string `json:"notes"`
	IsDefault bool    `json:"is_default"`
}

type User struct {
	UUID        string    `json:"uuid"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Image       string    `json:"image"`
	TwoFactor   bool      `json:"2fa_enabled"`
	CreatedAt   time.Time `json:"created_at"`
	Permissions []string  `json:"permissions"`
}

type Backup struct {
	UUID         string     `json:"uuid"`
	IsSuccessful bool       `json:"is_successful"`
	IsLocked     bool       `json:"is_locked"`
	Name         string     `json:"name"`
	IgnoredFiles []string   `json:"ignored_files"`
	Checksum     *string    `json:"checksum"`
	Bytes        int64      `json:"bytes"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

type Variable struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	EnvVariable  string  `json:"env_variable"`
	DefaultValue string  `json:"default_value"`
	ServerValue  *string `json:"server_value"`
	IsEditable   bool    `json:"is_editable"`
	Rules        string  `json:"rules"`
}

// Startup is the startup variable list together with the resolved
// startup command.
type Startup struct {
	Object string                      `json:"object"`
	Data   []resource.Object[Variable] `json:"data"`
	Meta   struct {
		StartupCommand    string `json:"startup_command"`
		RawStartupCommand string `json:"raw_startup_command"`
	} `json:"meta"`
}

// Variables returns the attributes of every variable.
func (s *Startup) Variables() []Variable {
	vars := make([]Variable, len(s.Data))
	for i, o := range s.Data {
		vars[i] = o.Attributes
	}

	return vars
}
